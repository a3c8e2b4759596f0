package app

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/Satvikjoshi17/PrepForge/internal/domain"
	"github.com/Satvikjoshi17/PrepForge/internal/engine"
	"github.com/Satvikjoshi17/PrepForge/internal/quizpool"
	"github.com/google/uuid"
)

// QuizRepository loads quiz content (from cache/backing store).
type QuizRepository interface {
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
	ListQuizzes(ctx context.Context) ([]domain.Quiz, error)
}

// AttemptStore abstracts where live attempts are tracked (in-memory, Redis, etc).
type AttemptStore interface {
	Put(attempt *Attempt)
	Get(id string) (*Attempt, bool)
	Delete(id string)
}

// ResultSink receives finalized attempt results. Delivery is fire-and-forget:
// the engine never retries a failed save.
type ResultSink interface {
	SaveResult(ctx context.Context, res domain.QuizResponse) error
}

// Attempt is one live quiz attempt bound to its session engine.
type Attempt struct {
	ID        string
	UserID    string
	Quiz      domain.Quiz
	Session   *engine.Session
	StartedAt time.Time
}

// AttemptService creates, tracks, and finalizes quiz attempts.
type AttemptService struct {
	quizzes QuizRepository
	store   AttemptStore
	sink    ResultSink
	now     func() time.Time
}

func NewAttemptService(quizzes QuizRepository, store AttemptStore, sink ResultSink) *AttemptService {
	return &AttemptService{quizzes: quizzes, store: store, sink: sink, now: time.Now}
}

// Begin assembles the question pool and opens a session in mode selection.
func (s *AttemptService) Begin(ctx context.Context, quizID, userID string, opts quizpool.Options) (*Attempt, error) {
	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	rnd := rand.New(rand.NewSource(s.now().UnixNano()))
	pool, err := quizpool.Build(quiz, opts, rnd)
	if err != nil {
		return nil, err
	}

	session, err := engine.NewSession(pool, engine.Config{PerQuestionSeconds: opts.Seconds()})
	if err != nil {
		return nil, err
	}

	attempt := &Attempt{
		ID:        uuid.NewString(),
		UserID:    userID,
		Quiz:      quiz,
		Session:   session,
		StartedAt: s.now(),
	}
	s.store.Put(attempt)
	return attempt, nil
}

// Get returns a live attempt by ID.
func (s *AttemptService) Get(id string) (*Attempt, bool) {
	return s.store.Get(id)
}

// Finalize turns a completed session into a stored result and releases the
// attempt. The result is returned even when the save fails; the caller
// surfaces the error, nothing retries.
func (s *AttemptService) Finalize(ctx context.Context, attemptID string) (domain.QuizResponse, error) {
	attempt, ok := s.store.Get(attemptID)
	if !ok {
		return domain.QuizResponse{}, domain.ErrAttemptNotFound
	}
	summary, done := attempt.Session.Results()
	if !done {
		return domain.QuizResponse{}, domain.ErrAttemptNotCompleted
	}

	response := domain.QuizResponse{
		ID:             uuid.NewString(),
		UserID:         attempt.UserID,
		QuizID:         attempt.Quiz.ID,
		QuizTitle:      attempt.Quiz.Title,
		QuizCategory:   attempt.Quiz.Category,
		Mode:           attempt.Session.Snapshot().Mode,
		Score:          summary.ScorePercent,
		TotalQuestions: summary.TotalCount,
		Answers:        summary.Breakdown,
		CompletedAt:    s.now(),
	}

	s.release(attempt)

	if err := s.sink.SaveResult(ctx, response); err != nil {
		log.Printf("save result for attempt %s: %v", attemptID, err)
		return response, err
	}
	return response, nil
}

// Abandon discards a live attempt, cancelling its timer.
func (s *AttemptService) Abandon(attemptID string) {
	if attempt, ok := s.store.Get(attemptID); ok {
		s.release(attempt)
	}
}

func (s *AttemptService) release(attempt *Attempt) {
	attempt.Session.Close()
	s.store.Delete(attempt.ID)
}
