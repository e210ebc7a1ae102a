package memory

import (
	"context"
	"sync"
	"time"

	"github.com/happycyhe/Happyfamily-Lotto/internal/domain"
)

type entry struct {
	session domain.Session
	expires time.Time
}

// Store keeps sessions in process memory. Entries idle longer than the TTL
// are evicted lazily on access.
type Store struct {
	mu       sync.Mutex
	sessions map[string]entry
	ttl      time.Duration
	now      func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *Store) Get(_ context.Context, id string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(id).Clone(), nil
}

func (s *Store) Update(_ context.Context, id string, fn func(*domain.Session) error) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.load(id).Clone()
	if err := fn(&sess); err != nil {
		return domain.Session{}, err
	}

	s.sessions[id] = entry{session: sess, expires: s.now().Add(s.ttl)}
	return sess.Clone(), nil
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evict()
	return len(s.sessions)
}

// load must be called with mu held.
func (s *Store) load(id string) domain.Session {
	s.evict()
	if e, ok := s.sessions[id]; ok {
		return e.session
	}
	return domain.NewSession(id, s.now())
}

func (s *Store) evict() {
	if s.ttl <= 0 {
		return
	}
	now := s.now()
	for id, e := range s.sessions {
		if now.After(e.expires) {
			delete(s.sessions, id)
		}
	}
}
