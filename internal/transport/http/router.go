package http

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter assembles the REST and websocket routes.
func NewRouter(api *APIHandler, ws *WSHandler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.With(middleware.Timeout(30 * time.Second)).Group(func(r chi.Router) {
			r.Get("/quizzes", api.ListQuizzes)
			r.Get("/quizzes/{quizID}", api.GetQuiz)
			r.Get("/results", api.ListResults)
			r.Get("/analytics/categories", api.CategoryAnalytics)
		})
		// Generation calls out to the AI provider; give them a longer deadline.
		r.With(middleware.Timeout(2 * time.Minute)).Group(func(r chi.Router) {
			r.Post("/quizzes/generate", api.GenerateQuiz)
			r.Post("/interview/next", api.NextInterviewQuestion)
			r.Post("/interview/feedback", api.InterviewFeedback)
			r.Post("/recommendations", api.Recommendations)
		})
	})

	r.Get("/ws/attempt", ws.ServeWS)
	r.Get("/healthz", api.Health)

	return r
}
