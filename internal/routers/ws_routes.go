package routers

import (
	"dsaprep/internal/handlers"

	"github.com/go-chi/chi/v5"
)

func WSRoutes(r *chi.Mux, wsHandler *handlers.WSHandler) {
	r.Get("/ws", wsHandler.SessionEventsWS) // Session event stream
}
