package app

import (
	"context"
	"fmt"

	"github.com/Satvikjoshi17/PrepForge/internal/ai"
	"github.com/Satvikjoshi17/PrepForge/internal/analytics"
	"github.com/Satvikjoshi17/PrepForge/internal/domain"
)

// QuizWriter persists new quiz content (AI-generated quizzes).
type QuizWriter interface {
	SaveQuiz(ctx context.Context, quiz domain.Quiz) error
}

// ResultSource reads a user's stored attempt results.
type ResultSource interface {
	ListResults(ctx context.Context, userID string) ([]domain.QuizResponse, error)
}

// QuizService covers the catalog, AI generation, and analytics use cases.
type QuizService struct {
	quizzes QuizRepository
	writer  QuizWriter
	results ResultSource
	flows   *ai.Flows
}

func NewQuizService(quizzes QuizRepository, writer QuizWriter, results ResultSource, flows *ai.Flows) *QuizService {
	return &QuizService{quizzes: quizzes, writer: writer, results: results, flows: flows}
}

func (s *QuizService) GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	return s.quizzes.GetQuiz(ctx, quizID)
}

func (s *QuizService) ListQuizzes(ctx context.Context) ([]domain.Quiz, error) {
	return s.quizzes.ListQuizzes(ctx)
}

// GenerateFromText builds a quiz from source text via the AI flows and stores it.
func (s *QuizService) GenerateFromText(ctx context.Context, in ai.GenerateQuizInput) (domain.Quiz, error) {
	if s.flows == nil {
		return domain.Quiz{}, fmt.Errorf("quiz generation is not configured")
	}
	quiz, err := s.flows.GenerateQuiz(ctx, in)
	if err != nil {
		return domain.Quiz{}, err
	}
	if err := s.writer.SaveQuiz(ctx, quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("store generated quiz: %w", err)
	}
	return quiz, nil
}

func (s *QuizService) ResultsForUser(ctx context.Context, userID string) ([]domain.QuizResponse, error) {
	return s.results.ListResults(ctx, userID)
}

// CategorySummary aggregates a user's stored results for the profile view.
func (s *QuizService) CategorySummary(ctx context.Context, userID string) (analytics.Summary, error) {
	attempts, err := s.results.ListResults(ctx, userID)
	if err != nil {
		return analytics.Summary{}, err
	}
	return analytics.Aggregate(attempts, nil), nil
}
