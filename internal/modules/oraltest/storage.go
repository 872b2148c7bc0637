package oraltest

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStorage persists the question bank in Postgres.
type PGStorage struct {
	pool *pgxpool.Pool
}

// NewPGStorage creates a Postgres-backed oral-test storage.
func NewPGStorage(pool *pgxpool.Pool) *PGStorage {
	return &PGStorage{pool: pool}
}

func (s *PGStorage) ListQuestions(ctx context.Context, category string) ([]Question, error) {
	query := `SELECT id, category, text, answer, created_by, created_at
	          FROM oral_test_questions`
	args := []any{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Question
	for rows.Next() {
		var q Question
		if err := rows.Scan(&q.ID, &q.Category, &q.Text, &q.Answer, &q.CreatedBy, &q.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *PGStorage) CreateQuestion(ctx context.Context, q Question) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO oral_test_questions (id, category, text, answer, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		q.ID, q.Category, q.Text, q.Answer, q.CreatedBy, q.CreatedAt)
	return err
}

func (s *PGStorage) UpdateQuestion(ctx context.Context, q Question) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE oral_test_questions SET category = $2, text = $3, answer = $4 WHERE id = $1`,
		q.ID, q.Category, q.Text, q.Answer)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PGStorage) DeleteQuestion(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM oral_test_questions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PGStorage) ListExaminees(ctx context.Context) ([]Examinee, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, email, created_at FROM oral_test_examinees ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Examinee
	for rows.Next() {
		var e Examinee
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *PGStorage) CreateExaminee(ctx context.Context, e Examinee) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO oral_test_examinees (id, name, email, created_at)
		 VALUES ($1, $2, $3, $4)`,
		e.ID, e.Name, e.Email, e.CreatedAt)
	return err
}

// MemoryStorage is an in-memory Storage for tests and local development.
type MemoryStorage struct {
	mu        sync.RWMutex
	questions map[uuid.UUID]Question
	examinees map[uuid.UUID]Examinee
}

// NewMemoryStorage creates an empty in-memory oral-test storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		questions: make(map[uuid.UUID]Question),
		examinees: make(map[uuid.UUID]Examinee),
	}
}

func (s *MemoryStorage) ListQuestions(ctx context.Context, category string) ([]Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Question
	for _, q := range s.questions {
		if category == "" || q.Category == category {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStorage) CreateQuestion(ctx context.Context, q Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions[q.ID] = q
	return nil
}

func (s *MemoryStorage) UpdateQuestion(ctx context.Context, q Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.questions[q.ID]
	if !ok {
		return ErrNotFound
	}
	stored.Category = q.Category
	stored.Text = q.Text
	stored.Answer = q.Answer
	s.questions[q.ID] = stored
	return nil
}

func (s *MemoryStorage) DeleteQuestion(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.questions[id]; !ok {
		return ErrNotFound
	}
	delete(s.questions, id)
	return nil
}

func (s *MemoryStorage) ListExaminees(ctx context.Context) ([]Examinee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Examinee
	for _, e := range s.examinees {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemoryStorage) CreateExaminee(ctx context.Context, e Examinee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.examinees[e.ID] = e
	return nil
}
