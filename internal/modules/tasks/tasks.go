// Package tasks implements the instructor task-tracking module: listing
// open work items, creating new ones, and marking them complete.
package tasks

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no task matches the given id.
	ErrNotFound = errors.New("tasks: task not found")

	// ErrEmptyTitle is returned when a task is created without a title.
	ErrEmptyTitle = errors.New("tasks: title must not be empty")
)

// Task is a tracked work item assigned to an instructor.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	AssigneeID  uuid.UUID  `json:"assignee_id"`
	Done        bool       `json:"done"`
	CreatedBy   uuid.UUID  `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Storage persists tasks.
type Storage interface {
	List(ctx context.Context) ([]Task, error)
	Create(ctx context.Context, task Task) error
	Complete(ctx context.Context, id uuid.UUID, at time.Time) error
}

// Service implements the task operations over a Storage.
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

// NewService creates a task service.
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

// List returns all tasks, newest first.
func (s *Service) List(ctx context.Context) ([]Task, error) {
	return s.storage.List(ctx)
}

// Create records a new task created by the given instructor. Tasks
// without an assignee default to the creator.
func (s *Service) Create(ctx context.Context, createdBy uuid.UUID, title string, assigneeID uuid.UUID) (Task, error) {
	if title == "" {
		return Task{}, ErrEmptyTitle
	}
	if assigneeID == uuid.Nil {
		assigneeID = createdBy
	}
	task := Task{
		ID:         uuid.New(),
		Title:      title,
		AssigneeID: assigneeID,
		CreatedBy:  createdBy,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.storage.Create(ctx, task); err != nil {
		return Task{}, err
	}
	s.log.InfoContext(ctx, "task created", "task_id", task.ID, "instructor_id", createdBy)
	return task, nil
}

// Complete marks a task done.
func (s *Service) Complete(ctx context.Context, id uuid.UUID) error {
	return s.storage.Complete(ctx, id, time.Now().UTC())
}
