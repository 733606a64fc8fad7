package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cuenta-regresiva/backend/internal/cities"
	"github.com/cuenta-regresiva/backend/internal/clock"
	"github.com/cuenta-regresiva/backend/internal/models"
	"github.com/google/uuid"
)

// DefaultMaxSessions limits concurrent sessions to prevent memory exhaustion
const DefaultMaxSessions = 1000

// SessionKeepAliveWindow is how long a recently used session survives cleanup
const SessionKeepAliveWindow = 5 * time.Minute

var ErrSessionNotFound = errors.New("session not found")

// Manager holds viewer selection sessions in memory. Nothing survives a restart.
type Manager struct {
	sessions    map[string]*models.SelectionSession
	mu          sync.RWMutex
	table       *cities.Table
	clock       clock.Clock
	maxSessions int
}

// NewManager creates a session manager that validates selections against table.
func NewManager(table *cities.Table, clk clock.Clock, maxSessions int) *Manager {
	if clk == nil {
		clk = clock.System{}
	}
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	return &Manager{
		sessions:    make(map[string]*models.SelectionSession),
		table:       table,
		clock:       clk,
		maxSessions: maxSessions,
	}
}

// Create starts a session with city selected. An empty city leaves the
// selection blank until Select is called.
func (m *Manager) Create(city string) (models.SelectionSession, error) {
	if city != "" && !m.table.Has(city) {
		return models.SelectionSession{}, fmt.Errorf("%w: %s", cities.ErrCityNotFound, city)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sessions) >= m.maxSessions {
		m.evictOldestLocked()
	}

	now := m.clock.Now()
	s := &models.SelectionSession{
		ID:           uuid.New().String(),
		City:         city,
		CreatedAt:    now,
		LastAccessed: now,
	}
	m.sessions[s.ID] = s
	fmt.Printf("[Session] Created %s (city=%q)\n", short(s.ID), city)
	return *s, nil
}

// Get returns a copy of the session and refreshes its access time.
func (m *Manager) Get(id string) (models.SelectionSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return models.SelectionSession{}, ErrSessionNotFound
	}
	s.LastAccessed = m.clock.Now()
	return *s, nil
}

// Select changes the session's city. Unknown names are rejected with
// cities.ErrCityNotFound and leave the session untouched.
func (m *Manager) Select(id, city string) (models.SelectionSession, error) {
	if _, err := m.table.Resolve(city); err != nil {
		return models.SelectionSession{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return models.SelectionSession{}, ErrSessionNotFound
	}
	s.City = city
	s.LastAccessed = m.clock.Now()
	fmt.Printf("[Session] %s selected %s\n", short(id), city)
	return *s, nil
}

// TouchSession updates the LastAccessed timestamp for a session.
func (m *Manager) TouchSession(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return false
	}
	s.LastAccessed = m.clock.Now()
	return true
}

// Delete ends a session.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	fmt.Printf("[Session] Deleted %s\n", short(id))
	return nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// CleanupOldSessions removes sessions idle for longer than maxAge,
// but keeps sessions that have been accessed within SessionKeepAliveWindow.
// It returns the number removed.
func (m *Manager) CleanupOldSessions(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	cutoff := now.Add(-maxAge)
	keepAliveCutoff := now.Add(-SessionKeepAliveWindow)

	removed := 0
	for id, s := range m.sessions {
		if s.LastAccessed.After(keepAliveCutoff) {
			continue
		}
		if s.LastAccessed.Before(cutoff) {
			delete(m.sessions, id)
			removed++
			fmt.Printf("[Session] Cleaned up idle session %s (last accessed: %s ago)\n",
				short(id), now.Sub(s.LastAccessed).Round(time.Second))
		}
	}
	return removed
}

// evictOldestLocked drops the least recently used session. m.mu must be held.
func (m *Manager) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, s := range m.sessions {
		if oldestID == "" || s.LastAccessed.Before(oldest) {
			oldestID, oldest = id, s.LastAccessed
		}
	}
	if oldestID != "" {
		delete(m.sessions, oldestID)
		fmt.Printf("[Session] Evicted %s to stay under %d sessions\n", short(oldestID), m.maxSessions)
	}
}

func short(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
