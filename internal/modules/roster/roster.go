// Package roster implements the instructor rostering module: per-day
// shift schedules with a short-lived cache over the day view.
package roster

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInvalidDate is returned when a date parameter is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("roster: invalid date")

	// ErrInvalidSlot is returned when a shift slot is outside the known set.
	ErrInvalidSlot = errors.New("roster: invalid slot")
)

// DateLayout is the wire format for roster dates.
const DateLayout = "2006-01-02"

// Slot is a scheduling block within a day.
type Slot string

const (
	SlotMorning   Slot = "morning"
	SlotAfternoon Slot = "afternoon"
	SlotNight     Slot = "night"
)

// ParseSlot validates a raw slot name.
func ParseSlot(s string) (Slot, bool) {
	switch Slot(s) {
	case SlotMorning, SlotAfternoon, SlotNight:
		return Slot(s), true
	}
	return "", false
}

// Shift is one instructor's assignment on a given day.
type Shift struct {
	ID           uuid.UUID `json:"id"`
	Date         string    `json:"date"`
	Slot         Slot      `json:"slot"`
	InstructorID uuid.UUID `json:"instructor_id"`
	Activity     string    `json:"activity"`
}

// Storage persists shifts.
type Storage interface {
	DayShifts(ctx context.Context, date string) ([]Shift, error)
	UpsertShift(ctx context.Context, shift Shift) error
}

// DayCache caches rendered day views. A miss is (nil, false, nil);
// cache failures must never fail the request.
type DayCache interface {
	GetDay(ctx context.Context, date string) ([]Shift, bool, error)
	SetDay(ctx context.Context, date string, shifts []Shift) error
	InvalidateDay(ctx context.Context, date string) error
}

// Service implements roster operations over Storage with a DayCache in
// front of the read path.
type Service struct {
	storage Storage
	cache   DayCache
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

// WithDayCache puts a cache in front of day reads.
func WithDayCache(c DayCache) ServiceOption {
	return func(s *Service) { s.cache = c }
}

// NewService creates a roster service.
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

// Day returns the shifts for a date, serving from cache when possible.
func (s *Service) Day(ctx context.Context, date string) ([]Shift, error) {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, ErrInvalidDate
	}

	if s.cache != nil {
		if shifts, ok, err := s.cache.GetDay(ctx, date); err != nil {
			s.log.WarnContext(ctx, "roster cache read failed", "error", err, "date", date)
		} else if ok {
			return shifts, nil
		}
	}

	shifts, err := s.storage.DayShifts(ctx, date)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetDay(ctx, date, shifts); err != nil {
			s.log.WarnContext(ctx, "roster cache write failed", "error", err, "date", date)
		}
	}
	return shifts, nil
}

// Assign creates or replaces a shift assignment and invalidates the
// cached day view.
func (s *Service) Assign(ctx context.Context, shift Shift) (Shift, error) {
	if _, err := time.Parse(DateLayout, shift.Date); err != nil {
		return Shift{}, ErrInvalidDate
	}
	if _, ok := ParseSlot(string(shift.Slot)); !ok {
		return Shift{}, ErrInvalidSlot
	}
	if shift.ID == uuid.Nil {
		shift.ID = uuid.New()
	}

	if err := s.storage.UpsertShift(ctx, shift); err != nil {
		return Shift{}, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateDay(ctx, shift.Date); err != nil {
			s.log.WarnContext(ctx, "roster cache invalidation failed", "error", err, "date", shift.Date)
		}
	}

	s.log.InfoContext(ctx, "shift assigned",
		"shift_id", shift.ID, "date", shift.Date, "instructor_id", shift.InstructorID)
	return shift, nil
}
