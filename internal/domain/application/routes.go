package application

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the /provider-applications router for authenticated users
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Post("/", h.Submit)
	r.Get("/my", h.ListMine)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Withdraw)

	return r
}

// AdminRoutes returns the /admin/provider-applications router
func (h *Handler) AdminRoutes(authMiddleware, adminOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Use(adminOnly)

	r.Get("/", h.ListByStatus)
	r.Get("/{id}", h.Get)
	r.Put("/{id}/approve", h.Approve)
	r.Put("/{id}/reject", h.Reject)

	return r
}
