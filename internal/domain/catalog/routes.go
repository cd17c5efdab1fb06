package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// PublicRoutes returns the /services router
func (h *Handler) PublicRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListPublic)
	r.Get("/{id}", h.GetPublic)
	return r
}

// OwnerRoutes returns the /provider/services router
func (h *Handler) OwnerRoutes(authMiddleware, providerOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Use(providerOnly)

	r.Get("/", h.ListMine)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Put("/{id}/activate", h.Activate)
	r.Put("/{id}/deactivate", h.Deactivate)
	r.Delete("/{id}", h.Delete)

	return r
}

// AdminRoutes returns the /admin/services router
func (h *Handler) AdminRoutes(authMiddleware, adminOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Use(adminOnly)

	r.Get("/", h.ListAll)

	return r
}
