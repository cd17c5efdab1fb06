package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the /user router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/profile", h.GetProfile)
	r.Put("/profile", h.UpdateProfile)
	r.Put("/change-password", h.ChangePassword)
	r.Put("/avatar", h.UpdateAvatar)

	return r
}
