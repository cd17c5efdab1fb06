package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the /admin router for dashboard and user management.
// Other admin surfaces (categories, providers, services, applications,
// blacklist) mount their own subrouters next to this one.
func (h *Handler) Routes(authMiddleware, adminOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Use(adminOnly)

	r.Get("/dashboard", h.Dashboard)

	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.ListUsers)
		r.Post("/", h.CreateUser)
		r.Get("/{id}", h.GetUser)
		r.Put("/{id}", h.UpdateUser)
		r.Put("/{id}/role", h.ChangeRole)
		r.Put("/{id}/ban", h.SetBanned)
		r.Delete("/{id}", h.DeleteUser)
	})

	return r
}
