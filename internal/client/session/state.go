package session

import (
	"sync"

	"github.com/dmitrijs2005/edusession/internal/client/identity"
)

type Status int

const (
	Unknown Status = iota
	Authenticated
	Anonymous
)

func (s Status) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// State is one snapshot of the session. User is non-nil only when Status is
// Authenticated.
type State struct {
	Status Status
	User   *identity.AuthUser
}

func (s State) LoggedIn() bool {
	return s.Status == Authenticated && s.User != nil
}

// Store is the process-wide session state. Readers use Current and
// Subscribe; the only writer is the Reconciler in this package.
type Store struct {
	mu   sync.RWMutex
	cur  State
	subs map[int]chan State
	next int
}

func NewStore() *Store {
	return &Store{subs: make(map[int]chan State)}
}

func (s *Store) Current() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Subscribe returns a channel that always holds the latest published state.
// Intermediate states may be skipped by slow readers. Call the returned func
// to unsubscribe; the channel is closed then.
func (s *Store) Subscribe() (<-chan State, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan State, 1)
	id := s.next
	s.next++
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			close(ch)
			s.mu.Unlock()
		})
	}
}

// set publishes st. It refuses to go back to Unknown once resolved and
// refuses an Authenticated state without a user.
func (s *Store) set(st State) bool {
	switch st.Status {
	case Unknown:
		return false
	case Authenticated:
		if st.User == nil {
			return false
		}
	case Anonymous:
		st.User = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cur = st
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- st
	}
	return true
}
