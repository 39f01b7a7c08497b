package verification

import "sync"

// PendingRegistration is the in-flight verification attempt: which event,
// its title as shown in the email, and the code the user must echo back.
// It only ever lives in memory; a restart drops it and the user simply
// starts over.
type PendingRegistration struct {
	EventID    string
	EventTitle string
	Code       string
}

// Store holds at most one pending registration per user. Beginning a new
// registration overwrites whatever was in flight before; only commit or an
// explicit abandon clears the slot.
type Store struct {
	mu      sync.Mutex
	pending map[int64]PendingRegistration
}

func NewStore() *Store {
	return &Store{pending: make(map[int64]PendingRegistration)}
}

func (s *Store) Begin(userID int64, p PendingRegistration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[userID] = p
}

func (s *Store) Peek(userID int64) (PendingRegistration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pending[userID]
	return p, ok
}

func (s *Store) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, userID)
}
