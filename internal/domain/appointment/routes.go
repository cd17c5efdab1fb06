package appointment

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the /appointments router for authenticated customers
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Post("/", h.Create)
	r.Get("/my", h.ListMine)
	r.Get("/{id}", h.GetMine)
	r.Put("/{id}/cancel", h.CancelMine)

	return r
}

// OwnerRoutes returns the /provider/appointments router
func (h *Handler) OwnerRoutes(authMiddleware, providerOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Use(providerOnly)

	r.Get("/", h.ListForProvider)
	r.Put("/{id}/confirm", h.Confirm)
	r.Put("/{id}/complete", h.Complete)
	r.Put("/{id}/cancel", h.CancelForProvider)

	return r
}
