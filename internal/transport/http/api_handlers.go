package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Satvikjoshi17/PrepForge/internal/ai"
	"github.com/Satvikjoshi17/PrepForge/internal/app"
	"github.com/Satvikjoshi17/PrepForge/internal/domain"
	"github.com/go-chi/chi/v5"
)

// APIHandler serves the quiz catalog, generation, results, and analytics routes.
type APIHandler struct {
	quizzes *app.QuizService
	flows   *ai.Flows
}

func NewAPIHandler(quizzes *app.QuizService, flows *ai.Flows) *APIHandler {
	return &APIHandler{quizzes: quizzes, flows: flows}
}

// quizSummary is the catalog listing entry; question content stays behind
// the per-quiz endpoint.
type quizSummary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Category      string `json:"category,omitempty"`
	Description   string `json:"description,omitempty"`
	QuestionCount int    `json:"questionCount"`
}

func (h *APIHandler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.quizzes.ListQuizzes(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	summaries := make([]quizSummary, 0, len(quizzes))
	for _, quiz := range quizzes {
		summaries = append(summaries, quizSummary{
			ID:            quiz.ID,
			Title:         quiz.Title,
			Category:      quiz.Category,
			Description:   quiz.Description,
			QuestionCount: len(quiz.Questions),
		})
	}
	respondJSON(w, http.StatusOK, summaries)
}

func (h *APIHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	quizID := chi.URLParam(r, "quizID")
	quiz, err := h.quizzes.GetQuiz(r.Context(), quizID)
	if errors.Is(err, domain.ErrQuizNotFound) {
		respondError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, quiz)
}

type generateQuizRequest struct {
	SourceText string `json:"sourceText"`
	Topic      string `json:"topic,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Count      int    `json:"questionCount,omitempty"`
}

func (h *APIHandler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	var req generateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	quiz, err := h.quizzes.GenerateFromText(r.Context(), ai.GenerateQuizInput{
		SourceText: req.SourceText,
		Topic:      req.Topic,
		Difficulty: domain.Difficulty(req.Difficulty),
		Count:      req.Count,
	})
	switch {
	case errors.Is(err, domain.ErrSourceTooShort), errors.Is(err, domain.ErrNotEnoughMaterial):
		respondError(w, http.StatusUnprocessableEntity, err)
		return
	case err != nil:
		respondError(w, http.StatusBadGateway, err)
		return
	}
	respondJSON(w, http.StatusCreated, quiz)
}

func (h *APIHandler) ListResults(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		respondError(w, http.StatusBadRequest, errors.New("missing userId"))
		return
	}
	results, err := h.quizzes.ResultsForUser(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	if results == nil {
		results = []domain.QuizResponse{}
	}
	respondJSON(w, http.StatusOK, results)
}

func (h *APIHandler) CategoryAnalytics(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		respondError(w, http.StatusBadRequest, errors.New("missing userId"))
		return
	}
	summary, err := h.quizzes.CategorySummary(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (h *APIHandler) NextInterviewQuestion(w http.ResponseWriter, r *http.Request) {
	if h.flows == nil {
		respondError(w, http.StatusServiceUnavailable, errors.New("interview flows are not configured"))
		return
	}
	var req ai.MockInterviewInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	out, err := h.flows.NextInterviewQuestion(r.Context(), req)
	if err != nil {
		respondError(w, http.StatusBadGateway, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *APIHandler) InterviewFeedback(w http.ResponseWriter, r *http.Request) {
	if h.flows == nil {
		respondError(w, http.StatusServiceUnavailable, errors.New("interview flows are not configured"))
		return
	}
	var req ai.InterviewFeedbackInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	feedback, err := h.flows.InterviewFeedback(r.Context(), req)
	if err != nil {
		respondError(w, http.StatusBadGateway, err)
		return
	}
	respondJSON(w, http.StatusOK, feedback)
}

func (h *APIHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	if h.flows == nil {
		respondError(w, http.StatusServiceUnavailable, errors.New("recommendations are not configured"))
		return
	}
	var req ai.RecommendationsInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	out, err := h.flows.Recommendations(r.Context(), req)
	if err != nil {
		respondError(w, http.StatusBadGateway, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *APIHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, code int, err error) {
	respondJSON(w, code, map[string]string{"error": err.Error()})
}
