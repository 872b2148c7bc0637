// Package oraltest implements the oral-test question bank: categorized
// questions with model answers, and the examinee roster for test
// sessions. Sub-pages are individually gated, so an instructor may be
// able to edit questions without seeing examinees at all.
package oraltest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no question matches the given id.
	ErrNotFound = errors.New("oraltest: question not found")

	// ErrEmptyQuestion is returned when a question has no text.
	ErrEmptyQuestion = errors.New("oraltest: question text must not be empty")
)

// Question is one entry in the question bank.
type Question struct {
	ID        uuid.UUID `json:"id"`
	Category  string    `json:"category"`
	Text      string    `json:"text"`
	Answer    string    `json:"answer"`
	CreatedBy uuid.UUID `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// Examinee is a candidate registered for an oral test session.
type Examinee struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Storage persists the question bank and examinee roster.
type Storage interface {
	ListQuestions(ctx context.Context, category string) ([]Question, error)
	CreateQuestion(ctx context.Context, q Question) error
	UpdateQuestion(ctx context.Context, q Question) error
	DeleteQuestion(ctx context.Context, id uuid.UUID) error

	ListExaminees(ctx context.Context) ([]Examinee, error)
	CreateExaminee(ctx context.Context, e Examinee) error
}

// Service implements the oral-test operations over a Storage.
type Service struct {
	storage Storage
	log     *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// NewService creates an oral-test service.
func NewService(storage Storage, opts ...ServiceOption) *Service {
	s := &Service{
		storage: storage,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Questions lists the bank, optionally filtered by category.
func (s *Service) Questions(ctx context.Context, category string) ([]Question, error) {
	return s.storage.ListQuestions(ctx, category)
}

// AddQuestion records a new question authored by the given instructor.
func (s *Service) AddQuestion(ctx context.Context, createdBy uuid.UUID, category, text, answer string) (Question, error) {
	if text == "" {
		return Question{}, ErrEmptyQuestion
	}
	q := Question{
		ID:        uuid.New(),
		Category:  category,
		Text:      text,
		Answer:    answer,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.storage.CreateQuestion(ctx, q); err != nil {
		return Question{}, err
	}
	s.log.InfoContext(ctx, "question added", "question_id", q.ID, "instructor_id", createdBy)
	return q, nil
}

// UpdateQuestion replaces a question's content.
func (s *Service) UpdateQuestion(ctx context.Context, q Question) error {
	if q.Text == "" {
		return ErrEmptyQuestion
	}
	return s.storage.UpdateQuestion(ctx, q)
}

// RemoveQuestion deletes a question from the bank.
func (s *Service) RemoveQuestion(ctx context.Context, id uuid.UUID) error {
	return s.storage.DeleteQuestion(ctx, id)
}

// Examinees lists registered candidates.
func (s *Service) Examinees(ctx context.Context) ([]Examinee, error) {
	return s.storage.ListExaminees(ctx)
}

// AddExaminee registers a candidate.
func (s *Service) AddExaminee(ctx context.Context, name, email string) (Examinee, error) {
	e := Examinee{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.storage.CreateExaminee(ctx, e); err != nil {
		return Examinee{}, err
	}
	return e, nil
}
