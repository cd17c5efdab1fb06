package provider

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// PublicRoutes returns the /providers router
func (h *Handler) PublicRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{id}", h.Get)
	return r
}

// OwnerRoutes returns the /provider/providers router for provider-role users
func (h *Handler) OwnerRoutes(authMiddleware, providerOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Use(providerOnly)

	r.Get("/", h.ListMine)
	r.Put("/{id}", h.Update)

	return r
}

// AdminRoutes returns the /admin/providers router
func (h *Handler) AdminRoutes(authMiddleware, adminOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Use(adminOnly)

	r.Get("/", h.ListAll)
	r.Get("/status/{status}", h.ListByStatus)
	r.Put("/{id}/status", h.ChangeStatus)

	return r
}
