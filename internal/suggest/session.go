package suggest

import (
	"sync"
	"time"
)

type Step string

const (
	StepPhoto       Step = "awaiting_photo"
	StepName        Step = "awaiting_name"
	StepDescription Step = "awaiting_description"
	StepPrice       Step = "awaiting_price"
	StepConfirm     Step = "awaiting_confirmation"
)

// Session holds one voter's in-progress suggestion. It lives only in
// memory and is lost on restart.
type Session struct {
	Step        Step
	PhotoRef    string
	Name        string
	Description *string
	Price       float64
	UpdatedAt   time.Time
}

// SessionStore keeps wizard sessions keyed by voter id. Each voter's
// conversation only ever touches its own entry, so a single mutex is
// enough.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

func (s *SessionStore) Get(voterID string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[voterID]
	return session, ok
}

func (s *SessionStore) Put(voterID string, session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session.UpdatedAt = time.Now()
	s.sessions[voterID] = session
}

func (s *SessionStore) Delete(voterID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, voterID)
}

// EvictIdle drops sessions whose last activity is older than ttl and
// returns how many were removed.
func (s *SessionStore) EvictIdle(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-ttl)
	evicted := 0
	for voterID, session := range s.sessions {
		if session.UpdatedAt.Before(cutoff) {
			delete(s.sessions, voterID)
			evicted++
		}
	}
	return evicted
}
