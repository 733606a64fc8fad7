package session

import (
	"sync"
	"testing"
	"time"

	"github.com/cuenta-regresiva/backend/internal/cities"
	"github.com/cuenta-regresiva/backend/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(max int) (*Manager, *clock.Fixed) {
	clk := clock.NewFixed(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	return NewManager(cities.Default(), clk, max), clk
}

func TestManager_CreateAndGet(t *testing.T) {
	m, _ := newTestManager(0)

	s, err := m.Create("Monterrey")
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "Monterrey", s.City)

	got, err := m.Get(s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, "Monterrey", got.City)

	_, err = m.Get("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManager_CreateUnknownCity(t *testing.T) {
	m, _ := newTestManager(0)

	_, err := m.Create("Atlantis")
	assert.ErrorIs(t, err, cities.ErrCityNotFound)
	assert.Equal(t, 0, m.Len())
}

func TestManager_Select(t *testing.T) {
	m, _ := newTestManager(0)
	s, err := m.Create("")
	require.NoError(t, err)
	assert.Empty(t, s.City)

	updated, err := m.Select(s.ID, "Madrid")
	require.NoError(t, err)
	assert.Equal(t, "Madrid", updated.City)

	_, err = m.Select(s.ID, "Atlantis")
	assert.ErrorIs(t, err, cities.ErrCityNotFound)

	got, err := m.Get(s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Madrid", got.City, "failed selection leaves the session unchanged")

	_, err = m.Select("missing", "Madrid")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManager_CleanupOldSessions(t *testing.T) {
	m, clk := newTestManager(0)

	idle, err := m.Create("Monterrey")
	require.NoError(t, err)

	clk.Advance(50 * time.Minute)
	active, err := m.Create("Madrid")
	require.NoError(t, err)

	clk.Advance(20 * time.Minute)
	assert.True(t, m.TouchSession(active.ID))

	removed := m.CleanupOldSessions(time.Hour)
	assert.Equal(t, 1, removed)

	_, err = m.Get(idle.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = m.Get(active.ID)
	assert.NoError(t, err)
}

func TestManager_EvictsOldestAtCapacity(t *testing.T) {
	m, clk := newTestManager(2)

	first, err := m.Create("Monterrey")
	require.NoError(t, err)
	clk.Advance(time.Minute)
	second, err := m.Create("Madrid")
	require.NoError(t, err)
	clk.Advance(time.Minute)
	third, err := m.Create("Bogotá")
	require.NoError(t, err)

	assert.Equal(t, 2, m.Len())
	_, err = m.Get(first.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = m.Get(second.ID)
	assert.NoError(t, err)
	_, err = m.Get(third.ID)
	assert.NoError(t, err)
}

func TestManager_ConcurrentCreateAtCapacity(t *testing.T) {
	m, _ := newTestManager(4)

	var wg sync.WaitGroup
	errs := make(chan error, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Create("Madrid")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 4, m.Len())
}

func TestManager_Delete(t *testing.T) {
	m, _ := newTestManager(0)
	s, err := m.Create("Monterrey")
	require.NoError(t, err)

	require.NoError(t, m.Delete(s.ID))
	assert.Equal(t, 0, m.Len())
	_, err = m.Get(s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.ErrorIs(t, m.Delete(s.ID), ErrSessionNotFound)
}
