package engine

import (
	"math"

	"github.com/Satvikjoshi17/PrepForge/internal/domain"
)

// Score grades a completed attempt. It is total: every question in the pool
// receives a record, in pool order, with an absent or expired selection scored
// as incorrect. The percent uses round-half-up semantics.
func Score(pool []domain.Question, ledger Ledger) domain.ResultsSummary {
	breakdown := make([]domain.AnswerRecord, 0, len(pool))
	correct := 0
	for _, q := range pool {
		selected, _ := ledger.Selection(q.ID)
		isCorrect := selected == q.CorrectAnswer
		if isCorrect {
			correct++
		}
		topic := q.Topic
		if topic == "" {
			topic = "General"
		}
		breakdown = append(breakdown, domain.AnswerRecord{
			QuestionID: q.ID,
			Selected:   selected,
			Correct:    q.CorrectAnswer,
			IsCorrect:  isCorrect,
			Topic:      topic,
		})
	}

	return domain.ResultsSummary{
		ScorePercent: math.Round(float64(correct) / float64(len(pool)) * 100),
		CorrectCount: correct,
		TotalCount:   len(pool),
		Breakdown:    breakdown,
	}
}
