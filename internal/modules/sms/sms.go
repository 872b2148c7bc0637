// Package sms implements the safety-management subsystem: instructor
// reports filed under the reports, hazards, and audits sections. Each
// section maps onto a page grant within the sms application.
package sms

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/skyops/instructorhub/internal/identity"
)

var (
	// ErrUnknownSection is returned for section names outside the closed set.
	ErrUnknownSection = errors.New("sms: unknown section")

	// ErrEmptyTitle is returned when a report has no title.
	ErrEmptyTitle = errors.New("sms: title must not be empty")
)

// Report is a filed safety record.
type Report struct {
	ID      uuid.UUID     `json:"id"`
	Section identity.Page `json:"section"`
	Title   string        `json:"title"`
	Details string        `json:"details"`
	FiledBy uuid.UUID     `json:"filed_by"`
	FiledAt time.Time     `json:"filed_at"`
}

// Storage persists safety reports.
type Storage interface {
	List(ctx context.Context, section identity.Page) ([]Report, error)
	File(ctx context.Context, report Report) error
}

// Service implements safety-management operations over a Storage.
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

// NewService creates a safety-management service.
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

// List returns the reports filed under a section.
func (s *Service) List(ctx context.Context, section identity.Page) ([]Report, error) {
	return s.storage.List(ctx, section)
}

// File records a new safety report.
func (s *Service) File(ctx context.Context, filedBy uuid.UUID, section identity.Page, title, details string) (Report, error) {
	if title == "" {
		return Report{}, ErrEmptyTitle
	}
	report := Report{
		ID:      uuid.New(),
		Section: section,
		Title:   title,
		Details: details,
		FiledBy: filedBy,
		FiledAt: time.Now().UTC(),
	}
	if err := s.storage.File(ctx, report); err != nil {
		return Report{}, err
	}
	s.log.InfoContext(ctx, "safety report filed",
		"report_id", report.ID, "section", report.Section, "instructor_id", filedBy)
	return report, nil
}
