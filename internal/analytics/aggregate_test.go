package analytics

import (
	"testing"
	"time"

	"github.com/Satvikjoshi17/PrepForge/internal/domain"
)

func TestAggregateBucketsByCategory(t *testing.T) {
	attempts := []domain.QuizResponse{
		{
			QuizTitle: "React Interview Prep",
			Score:     50,
			Answers: []domain.AnswerRecord{
				{QuestionID: "react-1", Topic: "Hooks", IsCorrect: true},
				{QuestionID: "react-2", Topic: "Hooks", IsCorrect: false},
				{QuestionID: "css-1", IsCorrect: true},
				{QuestionID: "q-9", IsCorrect: false},
			},
			CompletedAt: time.Now(),
		},
	}

	summary := Aggregate(attempts, nil)
	if summary.Attempts != 1 || summary.AverageScore != 50 {
		t.Fatalf("unexpected summary header: %+v", summary)
	}

	byName := map[string]CategoryStat{}
	for _, s := range summary.Categories {
		byName[s.Category] = s
	}
	if got := byName["Hooks"]; got.Correct != 1 || got.Total != 2 || got.Percent != 50 {
		t.Fatalf("unexpected Hooks stat: %+v", got)
	}
	if got := byName["CSS"]; got.Correct != 1 || got.Total != 1 {
		t.Fatalf("unexpected CSS stat: %+v", got)
	}
	if got := byName["React"]; got.Total != 1 {
		t.Fatalf("expected untagged title-matched answer under React, got %+v", got)
	}
}

func TestAggregateEstimatesLegacyAttempts(t *testing.T) {
	attempts := []domain.QuizResponse{
		{
			QuizTitle:      "Algorithms: Sorting",
			Score:          80,
			TotalQuestions: 10,
		},
	}

	summary := Aggregate(attempts, nil)
	if len(summary.Categories) != 1 {
		t.Fatalf("expected one estimated bucket, got %+v", summary.Categories)
	}
	got := summary.Categories[0]
	if got.Category != "Algorithms" || got.Correct != 8 || got.Total != 10 {
		t.Fatalf("unexpected legacy estimate: %+v", got)
	}
}

func TestAggregateLegacyTitleWithoutColonKeepsTitle(t *testing.T) {
	attempts := []domain.QuizResponse{
		{
			QuizTitle:      "Operating Systems Fundamentals",
			Score:          60,
			TotalQuestions: 5,
		},
	}

	summary := Aggregate(attempts, nil)
	if len(summary.Categories) != 1 {
		t.Fatalf("expected one bucket, got %+v", summary.Categories)
	}
	got := summary.Categories[0]
	if got.Category != "Operating Systems Fundamentals" {
		t.Fatalf("expected the full title as category, got %q", got.Category)
	}
	if got.Correct != 3 || got.Total != 5 {
		t.Fatalf("unexpected estimate: %+v", got)
	}
}

func TestAggregateSortsByPercentThenName(t *testing.T) {
	attempts := []domain.QuizResponse{
		{
			QuizTitle: "Mixed",
			Answers: []domain.AnswerRecord{
				{QuestionID: "q1", Topic: "B-Topic", IsCorrect: true},
				{QuestionID: "q2", Topic: "A-Topic", IsCorrect: true},
				{QuestionID: "q3", Topic: "Weak", IsCorrect: false},
			},
		},
	}

	summary := Aggregate(attempts, nil)
	if summary.Categories[0].Category != "A-Topic" || summary.Categories[1].Category != "B-Topic" {
		t.Fatalf("expected ties broken by name, got %+v", summary.Categories)
	}
	if summary.Categories[2].Category != "Weak" {
		t.Fatalf("expected weakest last, got %+v", summary.Categories)
	}
}

func TestAggregateEmpty(t *testing.T) {
	summary := Aggregate(nil, nil)
	if summary.Attempts != 0 || summary.AverageScore != 0 || len(summary.Categories) != 0 {
		t.Fatalf("expected empty summary, got %+v", summary)
	}
}
