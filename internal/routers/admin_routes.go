package routers

import (
	"dsaprep/internal/handlers"
	"dsaprep/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// AdminRoutes registers the question-bank management surface. All routes
// require an admin token.
func AdminRoutes(r *chi.Mux, topicHandler *handlers.TopicHandler, questionHandler *handlers.QuestionHandler, jwtSecret string) {
	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(middleware.RequireAuth(jwtSecret))
		r.Use(middleware.RequireAdmin)

		r.Route("/goals/{goal}/topics", func(r chi.Router) {
			r.Get("/", topicHandler.GetTopicsHandler)
			r.Post("/", topicHandler.CreateTopicHandler)
			r.Put("/{id}", topicHandler.RenameTopicHandler)
			r.Delete("/{id}", topicHandler.DeleteTopicHandler)

			r.Route("/{topicId}/questions", func(r chi.Router) {
				r.Get("/", questionHandler.GetQuestionsHandler)
				r.Post("/", questionHandler.CreateQuestionHandler)
			})
		})

		r.Route("/questions", func(r chi.Router) {
			r.Get("/{id}", questionHandler.GetQuestionByIDHandler)
			r.Put("/{id}", questionHandler.UpdateQuestionHandler)
			r.Delete("/{id}", questionHandler.DeleteQuestionHandler)
		})
	})
}
