// Package analytics aggregates stored attempt results into per-category
// performance for the profile view.
package analytics

import (
	"strings"

	"github.com/Satvikjoshi17/PrepForge/internal/domain"
)

const defaultCategory = "General"

// Strategy is one step of the category inference chain. It reports the
// category for an answer within its attempt, or false to pass to the next step.
type Strategy interface {
	Name() string
	Categorize(answer domain.AnswerRecord, attempt domain.QuizResponse) (string, bool)
}

// Classifier resolves an answer's category through an ordered strategy chain,
// falling back to "General" when no strategy claims it.
type Classifier struct {
	strategies []Strategy
}

func NewClassifier(strategies ...Strategy) *Classifier {
	return &Classifier{strategies: strategies}
}

// DefaultClassifier is the chain the product uses: exact topic tag, then the
// legacy question-ID prefixes, then title heuristics.
func DefaultClassifier() *Classifier {
	return NewClassifier(
		TopicTagStrategy{},
		IDPrefixStrategy{},
		TitleKeywordStrategy{},
		TitlePrefixStrategy{},
	)
}

func (c *Classifier) Categorize(answer domain.AnswerRecord, attempt domain.QuizResponse) string {
	for _, s := range c.strategies {
		if category, ok := s.Categorize(answer, attempt); ok {
			return category
		}
	}
	return defaultCategory
}

// TopicTagStrategy uses the per-question topic tag when present.
type TopicTagStrategy struct{}

func (TopicTagStrategy) Name() string { return "topic-tag" }

func (TopicTagStrategy) Categorize(answer domain.AnswerRecord, _ domain.QuizResponse) (string, bool) {
	if answer.Topic != "" && answer.Topic != defaultCategory {
		return answer.Topic, true
	}
	return "", false
}

// IDPrefixStrategy covers legacy catalog questions whose IDs encode a subject.
type IDPrefixStrategy struct{}

var idPrefixes = []struct {
	prefix   string
	category string
}{
	{"react-", "React"},
	{"css-", "CSS"},
	{"js-", "JavaScript"},
}

func (IDPrefixStrategy) Name() string { return "id-prefix" }

func (IDPrefixStrategy) Categorize(answer domain.AnswerRecord, _ domain.QuizResponse) (string, bool) {
	for _, p := range idPrefixes {
		if strings.HasPrefix(answer.QuestionID, p.prefix) {
			return p.category, true
		}
	}
	return "", false
}

// TitleKeywordStrategy claims attempts whose title starts with a known subject.
type TitleKeywordStrategy struct{}

var titleKeywords = map[string]bool{
	"React":      true,
	"CSS":        true,
	"JavaScript": true,
	"HTML":       true,
	"Next.js":    true,
}

func (TitleKeywordStrategy) Name() string { return "title-keyword" }

func (TitleKeywordStrategy) Categorize(_ domain.AnswerRecord, attempt domain.QuizResponse) (string, bool) {
	first, _, _ := strings.Cut(attempt.QuizTitle, " ")
	if titleKeywords[first] {
		return first, true
	}
	return "", false
}

// TitlePrefixStrategy uses the part of the title before a colon, which
// generated quizzes tend to lead with.
type TitlePrefixStrategy struct{}

func (TitlePrefixStrategy) Name() string { return "title-prefix" }

func (TitlePrefixStrategy) Categorize(_ domain.AnswerRecord, attempt domain.QuizResponse) (string, bool) {
	prefix, _, found := strings.Cut(attempt.QuizTitle, ":")
	prefix = strings.TrimSpace(prefix)
	if found && prefix != "" {
		return prefix, true
	}
	return "", false
}
