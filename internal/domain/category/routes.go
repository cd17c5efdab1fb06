package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// PublicRoutes returns the /categories router
func (h *Handler) PublicRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListPublic)
	return r
}

// AdminRoutes returns the /admin/categories router
func (h *Handler) AdminRoutes(authMiddleware, adminOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Use(adminOnly)

	r.Get("/", h.ListAll)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Put("/{id}/activate", h.Activate)
	r.Put("/{id}/deactivate", h.Deactivate)
	r.Delete("/{id}", h.Delete)

	return r
}
