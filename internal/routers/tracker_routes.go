package routers

import (
	"dsaprep/internal/handlers"
	"dsaprep/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func TrackerRoutes(r *chi.Mux, trackerHandler *handlers.TrackerHandler, jwtSecret string) {
	r.Route("/api/v1/tracker", func(r chi.Router) {
		r.Use(middleware.RequireAuth(jwtSecret))

		r.Get("/state", trackerHandler.GetStateHandler)
		r.Post("/topic", trackerHandler.SelectTopicHandler)
		r.Post("/question", trackerHandler.SelectQuestionHandler)
		r.Post("/progress", trackerHandler.RecordEditHandler)
		r.Delete("/progress/status", trackerHandler.ClearStatusHandler)
		r.Post("/goal", trackerHandler.SetGoalHandler)
	})
}
