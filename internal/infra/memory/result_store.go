package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Satvikjoshi17/PrepForge/internal/domain"
)

// ResultStore keeps finalized attempt results per user, newest first.
// It serves both as result sink and result source when no database is wired.
type ResultStore struct {
	mu      sync.RWMutex
	results map[string][]domain.QuizResponse
}

func NewResultStore() *ResultStore {
	return &ResultStore{results: make(map[string][]domain.QuizResponse)}
}

func (s *ResultStore) SaveResult(_ context.Context, res domain.QuizResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[res.UserID] = append(s.results[res.UserID], res)
	return nil
}

func (s *ResultStore) ListResults(_ context.Context, userID string) ([]domain.QuizResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.results[userID]
	results := make([]domain.QuizResponse, len(stored))
	copy(results, stored)
	sort.Slice(results, func(i, j int) bool { return results[i].CompletedAt.After(results[j].CompletedAt) })
	return results, nil
}
