package analytics

import (
	"math"
	"sort"
	"strings"

	"github.com/Satvikjoshi17/PrepForge/internal/domain"
)

// CategoryStat is one row of the per-category performance breakdown.
type CategoryStat struct {
	Category string  `json:"category"`
	Correct  int     `json:"correct"`
	Total    int     `json:"total"`
	Percent  float64 `json:"percent"`
}

// Summary is the profile-page aggregate across stored attempts.
type Summary struct {
	Attempts     int            `json:"attempts"`
	AverageScore float64        `json:"averageScore"`
	Categories   []CategoryStat `json:"categories"`
}

// Aggregate folds stored attempt results into per-category stats. Attempts
// persisted before per-question breakdowns existed carry no answers; those are
// estimated from the overall score and bucketed under the title prefix.
func Aggregate(attempts []domain.QuizResponse, classifier *Classifier) Summary {
	if classifier == nil {
		classifier = DefaultClassifier()
	}

	type bucket struct{ correct, total int }
	buckets := make(map[string]*bucket)
	add := func(category string, correct, total int) {
		b, ok := buckets[category]
		if !ok {
			b = &bucket{}
			buckets[category] = b
		}
		b.correct += correct
		b.total += total
	}

	scoreSum := 0.0
	for _, attempt := range attempts {
		scoreSum += attempt.Score
		if len(attempt.Answers) == 0 {
			estimated := int(math.Round(attempt.Score / 100 * float64(attempt.TotalQuestions)))
			add(legacyCategory(attempt), estimated, attempt.TotalQuestions)
			continue
		}
		for _, answer := range attempt.Answers {
			correct := 0
			if answer.IsCorrect {
				correct = 1
			}
			add(classifier.Categorize(answer, attempt), correct, 1)
		}
	}

	stats := make([]CategoryStat, 0, len(buckets))
	for category, b := range buckets {
		percent := 0.0
		if b.total > 0 {
			percent = math.Round(float64(b.correct) / float64(b.total) * 100)
		}
		stats = append(stats, CategoryStat{Category: category, Correct: b.correct, Total: b.total, Percent: percent})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Percent != stats[j].Percent {
			return stats[i].Percent > stats[j].Percent
		}
		return stats[i].Category < stats[j].Category
	})

	average := 0.0
	if len(attempts) > 0 {
		average = math.Round(scoreSum / float64(len(attempts)))
	}
	return Summary{
		Attempts:     len(attempts),
		AverageScore: average,
		Categories:   stats,
	}
}

// legacyCategory buckets a breakdown-less attempt: the title prefix before a
// colon, or the whole title when there is none.
func legacyCategory(attempt domain.QuizResponse) string {
	if category, ok := (TitlePrefixStrategy{}).Categorize(domain.AnswerRecord{}, attempt); ok {
		return category
	}
	if title := strings.TrimSpace(attempt.QuizTitle); title != "" {
		return title
	}
	return defaultCategory
}
