// Package quizpool assembles the immutable question pool for one attempt from
// a stored quiz: difficulty filter, uniform shuffle, count clamp.
package quizpool

import (
	"math/rand"

	"github.com/Satvikjoshi17/PrepForge/internal/domain"
)

const DefaultPerQuestionSeconds = 30

// Options configures pool assembly. Zero values mean "everything": all
// difficulties, all matching questions, default time per question.
type Options struct {
	Difficulty         domain.Difficulty
	Count              int
	PerQuestionSeconds int
	Shuffle            bool
}

// Seconds returns the per-question time, applying the default.
func (o Options) Seconds() int {
	if o.PerQuestionSeconds <= 0 {
		return DefaultPerQuestionSeconds
	}
	return o.PerQuestionSeconds
}

// Build returns the session pool for quiz under opts. The result is a fresh
// slice; the stored quiz is never mutated. Returns domain.ErrNoQuestions when
// the filter leaves nothing to ask.
func Build(quiz domain.Quiz, opts Options, rnd *rand.Rand) ([]domain.Question, error) {
	pool := make([]domain.Question, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		if opts.Difficulty == "" || q.Difficulty == opts.Difficulty {
			pool = append(pool, q)
		}
	}
	if len(pool) == 0 {
		return nil, domain.ErrNoQuestions
	}

	if opts.Shuffle && rnd != nil {
		rnd.Shuffle(len(pool), func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})
	}

	if opts.Count > 0 && opts.Count < len(pool) {
		pool = pool[:opts.Count]
	}
	return pool, nil
}
