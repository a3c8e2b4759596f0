package redis

import (
	"context"
	"sync"
	"time"

	"github.com/Satvikjoshi17/PrepForge/internal/app"
	"github.com/redis/go-redis/v9"
)

// AttemptStore is a Redis-aware implementation of app.AttemptStore.
// Notes:
//   - Live attempts stay in a local in-memory map, since a running session
//     holds a timer goroutine and cannot be serialized.
//   - Redis marks attempt liveness so operators can see active attempts
//     (and could be extended to route cross-instance pub/sub).
type AttemptStore struct {
	client *redis.Client
	ttl    time.Duration

	mu       sync.RWMutex
	attempts map[string]*app.Attempt
}

func NewAttemptStore(client *redis.Client, ttl time.Duration) *AttemptStore {
	return &AttemptStore{
		client:   client,
		ttl:      ttl,
		attempts: make(map[string]*app.Attempt),
	}
}

func (s *AttemptStore) Put(attempt *app.Attempt) {
	s.mu.Lock()
	s.attempts[attempt.ID] = attempt
	s.mu.Unlock()
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(attempt.ID), attempt.UserID, s.ttl).Err()
}

func (s *AttemptStore) Get(id string) (*app.Attempt, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	attempt, ok := s.attempts[id]
	return attempt, ok
}

func (s *AttemptStore) Delete(id string) {
	s.mu.Lock()
	delete(s.attempts, id)
	s.mu.Unlock()
	_ = s.client.Del(context.Background(), s.key(id)).Err()
}

func (s *AttemptStore) key(attemptID string) string {
	return "attempt:" + attemptID + ":live"
}
