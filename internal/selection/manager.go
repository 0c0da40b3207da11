package selection

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/junovet/booking-engine/internal/availability"
)

// ErrSessionNotFound reports an unknown or expired session id.
var ErrSessionNotFound = errors.New("selection: session not found")

// Session pairs a cursor with its id and last-touch time.
type Session struct {
	ID        string
	Cursor    *Selection
	UpdatedAt time.Time
}

// Manager hosts one cursor per widget session. All state transitions are
// applied under a single mutex, in the order requests arrive, which gives
// the event-ordering guarantee the widget relies on.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	svc      *availability.Service
	policy   AnchorPolicy
	ttl      time.Duration
}

// NewManager creates a session manager. Sessions idle longer than ttl are
// dropped lazily on the next access.
func NewManager(svc *availability.Service, policy AnchorPolicy, ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		svc:      svc,
		policy:   policy,
		ttl:      ttl,
	}
}

// Create opens a new session with a freshly seeded cursor.
func (m *Manager) Create() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweepLocked()
	sess := &Session{
		ID:        uuid.NewString(),
		Cursor:    New(m.svc, m.policy),
		UpdatedAt: m.svc.Oracle().Now(),
	}
	m.sessions[sess.ID] = sess
	return sess
}

// Do runs fn against the session's cursor under the manager lock and bumps
// the session's last-touch time.
func (m *Manager) Do(id string, fn func(*Selection) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[id]
	if !ok || m.expiredLocked(sess) {
		delete(m.sessions, id)
		return ErrSessionNotFound
	}
	if err := fn(sess.Cursor); err != nil {
		return err
	}
	sess.UpdatedAt = m.svc.Oracle().Now()
	return nil
}

// Len reports the number of live sessions, sweeping expired ones first.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked()
	return len(m.sessions)
}

func (m *Manager) expiredLocked(sess *Session) bool {
	if m.ttl <= 0 {
		return false
	}
	return m.svc.Oracle().Now().Sub(sess.UpdatedAt) > m.ttl
}

func (m *Manager) sweepLocked() {
	for id, sess := range m.sessions {
		if m.expiredLocked(sess) {
			delete(m.sessions, id)
		}
	}
}
