package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/Satvikjoshi17/PrepForge/internal/domain"
	"github.com/google/uuid"
)

const minSourceTextLength = 50

// MockInterviewInput drives one turn of an AI-conducted mock interview.
type MockInterviewInput struct {
	JobTitle          string   `json:"jobTitle"`
	JobDescription    string   `json:"jobDescription"`
	UserResponse      string   `json:"userResponse"`
	PreviousQuestions []string `json:"previousQuestions,omitempty"`
	PreviousResponses []string `json:"previousResponses,omitempty"`
	InterviewMode     string   `json:"interviewMode,omitempty"` // friendly, professional, technical, behavioral, stress
	ExperienceLevel   string   `json:"experienceLevel,omitempty"`
}

// MockInterviewOutput is the next question to ask the candidate.
type MockInterviewOutput struct {
	Question string `json:"question"`
}

// InterviewFeedbackInput scores a completed interview transcript.
type InterviewFeedbackInput struct {
	JobDescription string                 `json:"jobDescription"`
	Conversation   []domain.InterviewTurn `json:"conversation"`
}

// GenerateQuizInput asks for a quiz built from free source text.
type GenerateQuizInput struct {
	SourceText string
	Topic      string
	Difficulty domain.Difficulty
	Count      int
}

// QuizPerformance is one past quiz attempt summarized for the recommender.
type QuizPerformance struct {
	QuizID   string  `json:"quizId"`
	Score    float64 `json:"score"`
	Category string  `json:"category"`
}

// InterviewPerformance is one past mock interview summarized for the recommender.
type InterviewPerformance struct {
	InterviewID string  `json:"interviewId"`
	Score       float64 `json:"score"`
	Category    string  `json:"category"`
	Feedback    string  `json:"feedback"`
}

// LearningResource is a recommendable quiz, article, or study material.
type LearningResource struct {
	ResourceID  string `json:"resourceId"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Type        string `json:"type"` // quiz, article, studyMaterial
	URL         string `json:"url"`
	Description string `json:"description"`
}

// RecommendationsInput carries past performance plus the resource catalog to
// recommend from.
type RecommendationsInput struct {
	UserID                 string                 `json:"userId"`
	QuizResponses          []QuizPerformance      `json:"quizResponses"`
	MockInterviewResponses []InterviewPerformance `json:"mockInterviewResponses"`
	AvailableResources     []LearningResource     `json:"availableResources"`
}

// Recommendation is one suggested resource with the model's reason for it.
type Recommendation struct {
	ResourceID string `json:"resourceId"`
	Title      string `json:"title"`
	Category   string `json:"category"`
	Type       string `json:"type"`
	URL        string `json:"url"`
	Reason     string `json:"reason"`
}

// RecommendationsOutput is the recommended resource list.
type RecommendationsOutput struct {
	Recommendations []Recommendation `json:"recommendations"`
}

// Flows bundles the product's generative use cases over one fallback client.
type Flows struct {
	client *Client
}

func NewFlows(client *Client) *Flows {
	return &Flows{client: client}
}

// NextInterviewQuestion produces the interviewer's next question for the turn.
func (f *Flows) NextInterviewQuestion(ctx context.Context, in MockInterviewInput) (MockInterviewOutput, error) {
	var out MockInterviewOutput
	err := f.client.GenerateJSON(ctx, interviewPrompt(in), interviewTurnSchema, GenerateConfig{Temperature: 0.7}, &out)
	if err != nil {
		return MockInterviewOutput{}, err
	}
	return out, nil
}

// InterviewFeedback scores the transcript from 0 to 100 with a written summary
// plus strength and weakness lists.
func (f *Flows) InterviewFeedback(ctx context.Context, in InterviewFeedbackInput) (domain.InterviewFeedback, error) {
	var out domain.InterviewFeedback
	err := f.client.GenerateJSON(ctx, feedbackPrompt(in), interviewFeedbackSchema, GenerateConfig{Temperature: 0.5}, &out)
	if err != nil {
		return domain.InterviewFeedback{}, err
	}
	return out, nil
}

// Recommendations picks 3-5 resources from the available catalog based on the
// user's past quiz and interview performance.
func (f *Flows) Recommendations(ctx context.Context, in RecommendationsInput) (RecommendationsOutput, error) {
	var out RecommendationsOutput
	err := f.client.GenerateJSON(ctx, recommendationsPrompt(in), recommendationsSchema, GenerateConfig{Temperature: 0.5}, &out)
	if err != nil {
		return RecommendationsOutput{}, err
	}
	return out, nil
}

// GenerateQuiz builds a quiz from source text. Every question carries a topic
// tag and an explanation so practice mode and analytics have something to show.
func (f *Flows) GenerateQuiz(ctx context.Context, in GenerateQuizInput) (domain.Quiz, error) {
	if len(strings.TrimSpace(in.SourceText)) < minSourceTextLength {
		return domain.Quiz{}, domain.ErrSourceTooShort
	}

	var out domain.Quiz
	err := f.client.GenerateJSON(ctx, quizPrompt(in), generatedQuizSchema, GenerateConfig{Temperature: 0.4}, &out)
	if err != nil {
		return domain.Quiz{}, err
	}
	// The model signals unusable source material through the title.
	if strings.Contains(out.Title, "ERROR:") {
		return domain.Quiz{}, domain.ErrNotEnoughMaterial
	}

	out.ID = "generated-" + uuid.NewString()
	for i := range out.Questions {
		if out.Questions[i].Difficulty == "" {
			out.Questions[i].Difficulty = domain.DifficultyMedium
		}
	}
	return out, nil
}

func interviewPrompt(in MockInterviewInput) string {
	mode := in.InterviewMode
	if mode == "" {
		mode = "professional"
	}
	level := in.ExperienceLevel
	if level == "" {
		level = "mid"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert technical interviewer conducting a mock interview for the role of '%s'.\n\n", in.JobTitle)
	fmt.Fprintf(&b, "Job Description: %s\n\n", in.JobDescription)
	fmt.Fprintf(&b, "Configuration:\n- Mode: %s\n- Level: %s\n\n", mode, level)
	b.WriteString("Context:\n")
	b.WriteString("- This is a professional interview simulation.\n")
	fmt.Fprintf(&b, "- Your goal is to assess the candidate's depth of knowledge, problem-solving abilities, and communication skills relevant to '%s'.\n", in.JobTitle)
	fmt.Fprintf(&b, "- Match the tone to the requested '%s' mode.\n", mode)
	fmt.Fprintf(&b, "- Tailor the complexity of questions to the '%s' level.\n", level)
	b.WriteString("- Avoid generic \"tell me about yourself\" questions after the first turn. Dive deep into technical concepts, scenarios, and behavioral aspects specific to the role.\n\n")
	b.WriteString("History:\nPrevious Questions:\n")
	b.WriteString(bulletList(in.PreviousQuestions))
	b.WriteString("\n\nPrevious Responses:\n")
	b.WriteString(bulletList(in.PreviousResponses))
	fmt.Fprintf(&b, "\n\nCurrent Interaction:\nCandidate's Latest Response: %q\n\n", in.UserResponse)
	b.WriteString("Instructions:\n")
	b.WriteString("1. Analyze the candidate's latest response.\n")
	b.WriteString("2. If the response is brief or superficial, ask a follow-up digging deeper into the specific concept mentioned.\n")
	fmt.Fprintf(&b, "3. If the response is good, move to the next relevant topic based on the Job Description and '%s'.\n", in.JobTitle)
	b.WriteString("4. Ensure the question is open-ended and challenging enough for the specified role and level.\n")
	b.WriteString("5. Do NOT repeat questions asked previously.\n")
	fmt.Fprintf(&b, "6. Keep the tone consistent with '%s'.\n", mode)
	b.WriteString("   - friendly: Encouraging, helpful, lower pressure.\n")
	b.WriteString("   - professional: Standard corporate tone, neutral.\n")
	b.WriteString("   - stress: Challenging, skeptical, pushing for edge cases, high pressure.\n")
	b.WriteString("   - technical: Deep dive into implementation details.\n")
	b.WriteString("   - behavioral: Focus on STAR method and soft skills.\n\n")
	b.WriteString(`Respond with JSON: {"question": "<the next interview question>"}`)
	return b.String()
}

func feedbackPrompt(in InterviewFeedbackInput) string {
	var b strings.Builder
	b.WriteString("You are an AI hiring manager providing feedback on a mock interview.\n\n")
	fmt.Fprintf(&b, "Job Description:\n%s\n\n", in.JobDescription)
	b.WriteString("Interview Transcript:\n")
	for _, turn := range in.Conversation {
		fmt.Fprintf(&b, "**%s**: %s\n", turn.Speaker, turn.Text)
	}
	b.WriteString("\nBased on the transcript and the job description, please provide a score from 0 to 100 and a detailed feedback summary. The summary should include:\n")
	b.WriteString("- An overall assessment of the candidate's performance.\n")
	b.WriteString("- Actionable advice for future interviews.\n\n")
	b.WriteString("Also provide two specific lists:\n")
	b.WriteString("1. Strengths: What did the candidate do well?\n")
	b.WriteString("2. Weaknesses: Where can the candidate improve?\n\n")
	b.WriteString(`Respond with JSON: {"score": <0-100>, "summary": "...", "strengths": ["..."], "weaknesses": ["..."]}`)
	return b.String()
}

func quizPrompt(in GenerateQuizInput) string {
	count := "20-30"
	if in.Count > 0 {
		count = fmt.Sprintf("%d", in.Count)
	}
	difficulty := string(in.Difficulty)
	if difficulty == "" {
		difficulty = string(domain.DifficultyMedium)
	}
	topic := in.Topic
	if topic == "" {
		topic = "General"
	}

	var b strings.Builder
	b.WriteString("You are an expert educational content creator.\n")
	b.WriteString("Create a comprehensive quiz based on the provided text.\n\n")
	fmt.Fprintf(&b, "Text Content:\n%q\n\n", in.SourceText)
	b.WriteString("Requirements:\n")
	fmt.Fprintf(&b, "1. Generate %s multiple choice questions.\n", count)
	fmt.Fprintf(&b, "2. Difficulty Level: %s.\n", difficulty)
	fmt.Fprintf(&b, "3. Topic focus: %s.\n", topic)
	b.WriteString("4. For EACH question, providing a specific 'topic' or 'concept' tag is MANDATORY.\n")
	b.WriteString("5. For EACH question, providing an 'explanation' is MANDATORY. It should explain the correct answer to help a student learn.\n")
	b.WriteString("6. Use the exact JSON format provided below.\n")
	b.WriteString("7. Ensure 'id's are unique strings.\n")
	b.WriteString("8. If the text does not contain enough academic material, set the title to start with \"ERROR:\".\n\n")
	b.WriteString("Output JSON Format:\n")
	b.WriteString(`{
  "title": "Quiz Title",
  "category": "Subject Category",
  "description": "Short description of what this quiz covers.",
  "questions": [
    {
      "id": "q1",
      "text": "Question text here?",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "correctAnswer": "Option B",
      "difficulty": "Medium",
      "topic": "Specific Concept Name",
      "explanation": "Option B is correct because..."
    }
  ]
}`)
	return b.String()
}

func recommendationsPrompt(in RecommendationsInput) string {
	var b strings.Builder
	b.WriteString("You are an AI learning assistant that provides personalized recommendations for quizzes, articles, and study materials based on a user's past performance.\n\n")
	b.WriteString("Here's the user's performance data:\n")
	b.WriteString("Quiz Responses:\n")
	if len(in.QuizResponses) == 0 {
		b.WriteString("None\n")
	}
	for _, q := range in.QuizResponses {
		fmt.Fprintf(&b, "- Quiz ID: %s, Score: %g, Category: %s\n", q.QuizID, q.Score, q.Category)
	}
	b.WriteString("Mock Interview Responses:\n")
	if len(in.MockInterviewResponses) == 0 {
		b.WriteString("None\n")
	}
	for _, iv := range in.MockInterviewResponses {
		fmt.Fprintf(&b, "- Interview ID: %s, Score: %g, Category: %s, Feedback: %s\n", iv.InterviewID, iv.Score, iv.Category, iv.Feedback)
	}
	b.WriteString("\nAvailable Resources:\n")
	for _, r := range in.AvailableResources {
		fmt.Fprintf(&b, "- Resource ID: %s, Title: %s, Category: %s, Type: %s, URL: %s, Description: %s\n", r.ResourceID, r.Title, r.Category, r.Type, r.URL, r.Description)
	}
	b.WriteString("\nFirst, summarize the user's weaker areas based on their quiz and mock interview performance. Then, for each available resource, determine if it could be useful for the user.\n\n")
	b.WriteString("CRITICAL: If the user has very little performance data, provide general high-quality recommendations from the available resources that are suitable for a beginner.\n\n")
	b.WriteString("Only recommend resources from the available list. Aim to provide 3-5 recommendations whenever possible. Even if the user is performing well, suggest advanced materials to keep them challenged.\n\n")
	b.WriteString(`Respond with JSON: {"recommendations": [{"resourceId": "...", "title": "...", "category": "...", "type": "quiz|article|studyMaterial", "url": "...", "reason": "why this resource is recommended"}]}`)
	return b.String()
}

func bulletList(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "- "+item)
	}
	return strings.Join(lines, "\n")
}
