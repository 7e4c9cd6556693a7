package routers

import (
	handlers "dsaprep/internal/handlers"

	"github.com/go-chi/chi/v5"
)

func UserRoutes(r *chi.Mux, userHandler *handlers.UserHandler) {
	r.Route("/api/v1/users", func(r chi.Router) {
		r.Put("/{id}", userHandler.UpdateUserHandler)    // Update own account
		r.Delete("/{id}", userHandler.DeleteUserHandler) // Delete own account
	})
}
