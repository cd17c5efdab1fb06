package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func chiURLParam(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}

// Routes returns the /auth router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/refresh", h.Refresh)
	r.Post("/introspect", h.Introspect)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/logout", h.Logout)
	})

	return r
}

// AdminBlacklistRoutes returns the /admin/blacklist router
func (h *Handler) AdminBlacklistRoutes(authMiddleware, adminOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Use(adminOnly)

	r.Get("/stats", h.BlacklistStats)
	r.Post("/cleanup", h.CleanupBlacklist)
	r.Get("/user/{id}/active-tokens", h.UserActiveTokens)
	r.Post("/user/{id}/force-logout", h.ForceLogout)

	return r
}
