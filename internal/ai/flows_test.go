package ai

import (
	"context"
	"strings"
	"testing"

	"github.com/Satvikjoshi17/PrepForge/internal/domain"
)

const longEnoughSource = "Goroutines are lightweight threads managed by the Go runtime. Channels provide typed communication between them."

func TestGenerateQuizRejectsShortSource(t *testing.T) {
	flows := NewFlows(NewClient(&scriptedProvider{id: "fast"}))
	_, err := flows.GenerateQuiz(context.Background(), GenerateQuizInput{SourceText: "too short"})
	if err != domain.ErrSourceTooShort {
		t.Fatalf("expected ErrSourceTooShort, got %v", err)
	}
}

func TestGenerateQuizRejectsErrorTitle(t *testing.T) {
	provider := &scriptedProvider{id: "fast", payload: `{
		"title": "ERROR: not enough academic material",
		"category": "General",
		"description": "",
		"questions": [{
			"id": "q1", "text": "?", "options": ["a", "b"],
			"correctAnswer": "a", "topic": "General", "explanation": "n/a"
		}]
	}`}
	flows := NewFlows(NewClient(provider))

	_, err := flows.GenerateQuiz(context.Background(), GenerateQuizInput{SourceText: longEnoughSource})
	if err != domain.ErrNotEnoughMaterial {
		t.Fatalf("expected ErrNotEnoughMaterial, got %v", err)
	}
}

func TestGenerateQuizFillsDefaults(t *testing.T) {
	provider := &scriptedProvider{id: "fast", payload: `{
		"title": "Concurrency Basics",
		"category": "Go",
		"description": "Goroutines and channels.",
		"questions": [{
			"id": "q1",
			"text": "What starts a goroutine?",
			"options": ["go f()", "run f()"],
			"correctAnswer": "go f()",
			"topic": "Goroutines",
			"explanation": "The go statement starts a new goroutine."
		}]
	}`}
	flows := NewFlows(NewClient(provider))

	quiz, err := flows.GenerateQuiz(context.Background(), GenerateQuizInput{SourceText: longEnoughSource, Count: 1})
	if err != nil {
		t.Fatalf("generate quiz: %v", err)
	}
	if !strings.HasPrefix(quiz.ID, "generated-") {
		t.Fatalf("expected generated quiz ID, got %q", quiz.ID)
	}
	if quiz.Questions[0].Difficulty != domain.DifficultyMedium {
		t.Fatalf("expected difficulty defaulted to Medium, got %q", quiz.Questions[0].Difficulty)
	}
}

func TestInterviewPromptCarriesHistoryAndDefaults(t *testing.T) {
	prompt := interviewPrompt(MockInterviewInput{
		JobTitle:          "React Developer",
		JobDescription:    "Build UI components.",
		UserResponse:      "I would memoize the selector.",
		PreviousQuestions: []string{"What is reconciliation?"},
	})
	for _, want := range []string{
		"React Developer",
		"- What is reconciliation?",
		"Mode: professional",
		"Level: mid",
		"I would memoize the selector.",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("expected prompt to contain %q", want)
		}
	}
}

func TestFeedbackPromptRendersTranscript(t *testing.T) {
	prompt := feedbackPrompt(InterviewFeedbackInput{
		JobDescription: "Backend engineer",
		Conversation: []domain.InterviewTurn{
			{Speaker: "ai", Text: "Tell me about channels."},
			{Speaker: "user", Text: "They synchronize goroutines."},
		},
	})
	if !strings.Contains(prompt, "**ai**: Tell me about channels.") ||
		!strings.Contains(prompt, "**user**: They synchronize goroutines.") {
		t.Fatalf("expected transcript turns in prompt:\n%s", prompt)
	}
}

func TestRecommendationsPromptRendersPerformanceAndCatalog(t *testing.T) {
	prompt := recommendationsPrompt(RecommendationsInput{
		UserID: "u1",
		QuizResponses: []QuizPerformance{
			{QuizID: "quiz-1", Score: 40, Category: "CSS"},
		},
		MockInterviewResponses: []InterviewPerformance{
			{InterviewID: "iv-1", Score: 70, Category: "React", Feedback: "Needs deeper hooks knowledge."},
		},
		AvailableResources: []LearningResource{
			{ResourceID: "res-1", Title: "Flexbox Deep Dive", Category: "CSS", Type: "article", URL: "https://example.com/flexbox", Description: "Layout fundamentals."},
		},
	})
	for _, want := range []string{
		"Quiz ID: quiz-1, Score: 40, Category: CSS",
		"Interview ID: iv-1, Score: 70, Category: React, Feedback: Needs deeper hooks knowledge.",
		"Resource ID: res-1, Title: Flexbox Deep Dive, Category: CSS, Type: article",
		"suitable for a beginner",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("expected prompt to contain %q", want)
		}
	}
}

func TestRecommendationsParsesOutput(t *testing.T) {
	provider := &scriptedProvider{id: "fast", payload: `{
		"recommendations": [{
			"resourceId": "res-1",
			"title": "Flexbox Deep Dive",
			"category": "CSS",
			"type": "article",
			"url": "https://example.com/flexbox",
			"reason": "Quiz scores show CSS layout is a weaker area."
		}]
	}`}
	flows := NewFlows(NewClient(provider))

	out, err := flows.Recommendations(context.Background(), RecommendationsInput{UserID: "u1"})
	if err != nil {
		t.Fatalf("recommendations: %v", err)
	}
	if len(out.Recommendations) != 1 || out.Recommendations[0].ResourceID != "res-1" {
		t.Fatalf("unexpected recommendations: %+v", out)
	}
	if out.Recommendations[0].Reason == "" {
		t.Fatalf("expected a reason on the recommendation")
	}
}

func TestRecommendationsRejectsUnknownResourceType(t *testing.T) {
	provider := &scriptedProvider{id: "fast", payload: `{
		"recommendations": [{
			"resourceId": "res-1",
			"title": "Flexbox Deep Dive",
			"category": "CSS",
			"type": "video",
			"url": "https://example.com/flexbox",
			"reason": "n/a"
		}]
	}`}
	flows := NewFlows(NewClient(provider))

	if _, err := flows.Recommendations(context.Background(), RecommendationsInput{UserID: "u1"}); err == nil {
		t.Fatalf("expected schema rejection for unknown resource type")
	}
}

func TestInterviewFeedbackParsesOutput(t *testing.T) {
	provider := &scriptedProvider{id: "fast", payload: `{
		"score": 82,
		"summary": "Solid fundamentals, needs deeper system design answers.",
		"strengths": ["clear communication"],
		"weaknesses": ["system design depth"]
	}`}
	flows := NewFlows(NewClient(provider))

	fb, err := flows.InterviewFeedback(context.Background(), InterviewFeedbackInput{JobDescription: "SRE"})
	if err != nil {
		t.Fatalf("feedback: %v", err)
	}
	if fb.Score != 82 || len(fb.Strengths) != 1 || len(fb.Weaknesses) != 1 {
		t.Fatalf("unexpected feedback: %+v", fb)
	}
}
