package sms

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skyops/instructorhub/internal/identity"
)

// PGStorage persists safety reports in Postgres.
type PGStorage struct {
	pool *pgxpool.Pool
}

// NewPGStorage creates a Postgres-backed safety-report storage.
func NewPGStorage(pool *pgxpool.Pool) *PGStorage {
	return &PGStorage{pool: pool}
}

func (s *PGStorage) List(ctx context.Context, section identity.Page) ([]Report, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, section, title, details, filed_by, filed_at
		 FROM safety_reports WHERE section = $1 ORDER BY filed_at DESC`, section)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Report
	for rows.Next() {
		var rep Report
		if err := rows.Scan(&rep.ID, &rep.Section, &rep.Title, &rep.Details, &rep.FiledBy, &rep.FiledAt); err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

func (s *PGStorage) File(ctx context.Context, report Report) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO safety_reports (id, section, title, details, filed_by, filed_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		report.ID, report.Section, report.Title, report.Details, report.FiledBy, report.FiledAt)
	return err
}

// MemoryStorage is an in-memory Storage for tests and local development.
type MemoryStorage struct {
	mu      sync.RWMutex
	reports map[uuid.UUID]Report
}

// NewMemoryStorage creates an empty in-memory safety-report storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{reports: make(map[uuid.UUID]Report)}
}

func (s *MemoryStorage) List(ctx context.Context, section identity.Page) ([]Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Report
	for _, rep := range s.reports {
		if rep.Section == section {
			out = append(out, rep)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FiledAt.After(out[j].FiledAt) })
	return out, nil
}

func (s *MemoryStorage) File(ctx context.Context, report Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[report.ID] = report
	return nil
}
