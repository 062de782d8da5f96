package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/ports"
)

type sessionEntry[T any] struct {
	value   T
	touched time.Time
}

// SessionStore is an in-memory SessionStore implementation. Sessions idle for
// longer than the TTL are invisible to Load and removed by PurgeExpired.
type SessionStore[T any] struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry[T]
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionStore builds a store whose sessions expire after ttl of inactivity.
// A ttl of zero keeps sessions forever.
func NewSessionStore[T any](ttl time.Duration) *SessionStore[T] {
	return &SessionStore[T]{
		sessions: map[string]*sessionEntry[T]{},
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *SessionStore[T]) Load(_ context.Context, id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[id]
	if !ok || s.expired(entry) {
		var zero T
		return zero, false
	}
	entry.touched = s.now()
	return entry.value, true
}

func (s *SessionStore[T]) Save(_ context.Context, id string, value T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &sessionEntry[T]{value: value, touched: s.now()}
	return nil
}

func (s *SessionStore[T]) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// PurgeExpired drops idle sessions and reports how many were removed.
func (s *SessionStore[T]) PurgeExpired(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, entry := range s.sessions {
		if s.expired(entry) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// Len reports the number of stored sessions, expired or not.
func (s *SessionStore[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionStore[T]) expired(entry *sessionEntry[T]) bool {
	return s.ttl > 0 && s.now().Sub(entry.touched) > s.ttl
}

var _ ports.ExpiringSessionStore[int] = (*SessionStore[int])(nil)
