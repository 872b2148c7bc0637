package roster

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStorage persists shifts in Postgres.
type PGStorage struct {
	pool *pgxpool.Pool
}

// NewPGStorage creates a Postgres-backed roster storage.
func NewPGStorage(pool *pgxpool.Pool) *PGStorage {
	return &PGStorage{pool: pool}
}

func (s *PGStorage) DayShifts(ctx context.Context, date string) ([]Shift, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, date, slot, instructor_id, activity
		 FROM roster_shifts WHERE date = $1 ORDER BY slot, instructor_id`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Shift
	for rows.Next() {
		var sh Shift
		if err := rows.Scan(&sh.ID, &sh.Date, &sh.Slot, &sh.InstructorID, &sh.Activity); err != nil {
			return nil, err
		}
		out = append(out, sh)
	}
	return out, rows.Err()
}

func (s *PGStorage) UpsertShift(ctx context.Context, shift Shift) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO roster_shifts (id, date, slot, instructor_id, activity)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE
		 SET date = EXCLUDED.date, slot = EXCLUDED.slot,
		     instructor_id = EXCLUDED.instructor_id, activity = EXCLUDED.activity`,
		shift.ID, shift.Date, shift.Slot, shift.InstructorID, shift.Activity)
	return err
}
