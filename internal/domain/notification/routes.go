package notification

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the /notifications router for authenticated users
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/", h.List)
	r.Get("/unread", h.UnreadCount)
	r.Put("/{id}/read", h.MarkRead)
	r.Put("/read-all", h.MarkAllRead)
	r.Get("/ws", h.WebSocket)

	return r
}
