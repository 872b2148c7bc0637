package roster_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyops/instructorhub/internal/modules/roster"
)

type fakeStorage struct {
	shifts map[string][]roster.Shift
	reads  int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{shifts: make(map[string][]roster.Shift)}
}

func (s *fakeStorage) DayShifts(ctx context.Context, date string) ([]roster.Shift, error) {
	s.reads++
	return s.shifts[date], nil
}

func (s *fakeStorage) UpsertShift(ctx context.Context, shift roster.Shift) error {
	s.shifts[shift.Date] = append(s.shifts[shift.Date], shift)
	return nil
}

type fakeCache struct {
	days map[string][]roster.Shift
}

func newFakeCache() *fakeCache {
	return &fakeCache{days: make(map[string][]roster.Shift)}
}

func (c *fakeCache) GetDay(ctx context.Context, date string) ([]roster.Shift, bool, error) {
	shifts, ok := c.days[date]
	return shifts, ok, nil
}

func (c *fakeCache) SetDay(ctx context.Context, date string, shifts []roster.Shift) error {
	c.days[date] = shifts
	return nil
}

func (c *fakeCache) InvalidateDay(ctx context.Context, date string) error {
	delete(c.days, date)
	return nil
}

func TestService_DayServesFromCache(t *testing.T) {
	t.Parallel()

	storage := newFakeStorage()
	cache := newFakeCache()
	svc := roster.NewService(storage, roster.WithDayCache(cache))

	_, err := svc.Assign(context.Background(), roster.Shift{
		Date:         "2026-09-01",
		Slot:         roster.SlotMorning,
		InstructorID: uuid.New(),
		Activity:     "circuit training",
	})
	require.NoError(t, err)

	first, err := svc.Day(context.Background(), "2026-09-01")
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, storage.reads)

	// Second read hits the cache, not storage.
	second, err := svc.Day(context.Background(), "2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, storage.reads)
}

func TestService_AssignInvalidatesDay(t *testing.T) {
	t.Parallel()

	storage := newFakeStorage()
	cache := newFakeCache()
	svc := roster.NewService(storage, roster.WithDayCache(cache))

	_, err := svc.Day(context.Background(), "2026-09-02")
	require.NoError(t, err)
	require.Equal(t, 1, storage.reads)

	_, err = svc.Assign(context.Background(), roster.Shift{
		Date:         "2026-09-02",
		Slot:         roster.SlotNight,
		InstructorID: uuid.New(),
	})
	require.NoError(t, err)

	shifts, err := svc.Day(context.Background(), "2026-09-02")
	require.NoError(t, err)
	assert.Len(t, shifts, 1)
	assert.Equal(t, 2, storage.reads, "write must invalidate the cached day")
}

func TestService_Validation(t *testing.T) {
	t.Parallel()

	svc := roster.NewService(newFakeStorage())

	_, err := svc.Day(context.Background(), "01-09-2026")
	assert.ErrorIs(t, err, roster.ErrInvalidDate)

	_, err = svc.Assign(context.Background(), roster.Shift{Date: "2026-09-01", Slot: "brunch"})
	assert.ErrorIs(t, err, roster.ErrInvalidSlot)

	_, err = svc.Assign(context.Background(), roster.Shift{Date: "bad", Slot: roster.SlotMorning})
	assert.ErrorIs(t, err, roster.ErrInvalidDate)
}

func TestParseSlot(t *testing.T) {
	t.Parallel()

	slot, ok := roster.ParseSlot("afternoon")
	require.True(t, ok)
	assert.Equal(t, roster.SlotAfternoon, slot)

	_, ok = roster.ParseSlot("standby")
	assert.False(t, ok)
}
