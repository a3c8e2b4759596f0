package domain

import "time"

// Difficulty grades a question. The zero value means unspecified.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Mode selects how an attempt is taken.
type Mode string

const (
	// ModeTest is timed with no feedback until the end.
	ModeTest Mode = "test"
	// ModePractice reveals correctness and explanations per question after a check.
	ModePractice Mode = "practice"
)

// Phase tracks the lifecycle of an attempt.
type Phase string

const (
	PhaseModeSelect Phase = "mode_select"
	PhaseInProgress Phase = "in_progress"
	PhaseCompleted  Phase = "completed"
)

// TimeExpired is the sentinel recorded in the ledger when a question's
// countdown reaches zero with no selection. It never equals a real option.
const TimeExpired = "TIME_EXPIRED"

// Question models an MCQ question. CorrectAnswer equals one of Options.
type Question struct {
	ID            string     `json:"id"`
	Text          string     `json:"text"`
	Options       []string   `json:"options"`
	CorrectAnswer string     `json:"correctAnswer"`
	Difficulty    Difficulty `json:"difficulty,omitempty"`
	Topic         string     `json:"topic,omitempty"`
	Explanation   string     `json:"explanation,omitempty"`
}

// Quiz is a stored collection of questions.
type Quiz struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
}

// AnswerRecord is the scored outcome for a single question, produced at completion.
type AnswerRecord struct {
	QuestionID string `json:"questionId"`
	Selected   string `json:"selected"`
	Correct    string `json:"correct"`
	IsCorrect  bool   `json:"isCorrect"`
	Topic      string `json:"topic,omitempty"`
}

// ResultsSummary is the finalized scoring output, ordered like the session's pool.
type ResultsSummary struct {
	ScorePercent float64        `json:"scorePercent"`
	CorrectCount int            `json:"correctCount"`
	TotalCount   int            `json:"totalCount"`
	Breakdown    []AnswerRecord `json:"breakdown"`
}

// QuizResponse is a persisted attempt result.
type QuizResponse struct {
	ID             string         `json:"id"`
	UserID         string         `json:"userId"`
	QuizID         string         `json:"quizId"`
	QuizTitle      string         `json:"quizTitle"`
	QuizCategory   string         `json:"quizCategory,omitempty"`
	Mode           Mode           `json:"mode"`
	Score          float64        `json:"score"`
	TotalQuestions int            `json:"totalQuestions"`
	Answers        []AnswerRecord `json:"answers"`
	CompletedAt    time.Time      `json:"completedAt"`
}

// InterviewTurn is one exchange in a mock interview transcript.
type InterviewTurn struct {
	Speaker string `json:"speaker"` // "ai" or "user"
	Text    string `json:"text"`
}

// InterviewFeedback is the AI assessment of a completed mock interview.
type InterviewFeedback struct {
	Score      float64  `json:"score"`
	Summary    string   `json:"summary"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
}
