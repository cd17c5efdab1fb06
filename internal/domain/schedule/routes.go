package schedule

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// PublicRoutes returns the /schedules router
func (h *Handler) PublicRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/available", h.ListAvailable)
	r.Get("/{id}", h.Get)
	return r
}

// OwnerRoutes returns the /provider/schedules router
func (h *Handler) OwnerRoutes(authMiddleware, providerOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Use(providerOnly)

	r.Get("/", h.ListByService)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}
