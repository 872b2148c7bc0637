package identity

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryLookup is an in-memory Lookup for tests and local development.
// It is safe for concurrent use and returns copies so callers cannot
// mutate stored records.
type MemoryLookup struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*Instructor
	byEmail map[string]uuid.UUID
}

// NewMemoryLookup creates a MemoryLookup seeded with the given instructors.
func NewMemoryLookup(instructors ...*Instructor) *MemoryLookup {
	m := &MemoryLookup{
		byID:    make(map[uuid.UUID]*Instructor),
		byEmail: make(map[string]uuid.UUID),
	}
	for _, ins := range instructors {
		m.Put(ins)
	}
	return m
}

// Put stores or replaces an instructor record.
func (m *MemoryLookup) Put(ins *Instructor) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := cloneInstructor(ins)
	m.byID[cp.ID] = cp
	m.byEmail[strings.ToLower(cp.Email)] = cp.ID
}

// ByID fetches an instructor by id, or ErrNotFound.
func (m *MemoryLookup) ByID(ctx context.Context, id uuid.UUID) (*Instructor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ins, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneInstructor(ins), nil
}

// ByEmail fetches an instructor by email, or ErrNotFound.
func (m *MemoryLookup) ByEmail(ctx context.Context, email string) (*Instructor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneInstructor(m.byID[id]), nil
}

// UpdateAuthLevel sets an instructor's ordinal tier, or ErrNotFound.
func (m *MemoryLookup) UpdateAuthLevel(ctx context.Context, id uuid.UUID, level int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ins, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	ins.AuthLevel = level
	return nil
}

func cloneInstructor(ins *Instructor) *Instructor {
	cp := *ins
	if ins.Apps != nil {
		cp.Apps = make(Grants, len(ins.Apps))
		for app, entry := range ins.Apps {
			pages := make([]Page, len(entry.Pages))
			copy(pages, entry.Pages)
			entry.Pages = pages
			cp.Apps[app] = entry
		}
	}
	return &cp
}
