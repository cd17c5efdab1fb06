package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/vietlong/booking-api/internal/middleware"
	"github.com/vietlong/booking-api/internal/pkg/response"
	"github.com/vietlong/booking-api/internal/pkg/validator"
)

// Handler handles authentication HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates auth handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register handles POST /auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Conflict(w, "EMAIL_TAKEN", "Email already registered")
			return
		}
		response.InternalError(w)
		return
	}

	response.Created(w, resp)
}

// Login handles POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	resp, err := h.service.Login(r.Context(), &req, r.RemoteAddr)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Unauthorized(w, "Invalid email or password")
		case errors.Is(err, ErrUserBanned):
			response.Forbidden(w, "Your account has been banned")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, resp)
}

// Logout handles POST /auth/logout (authenticated)
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	jti := middleware.GetTokenJTI(r.Context())
	if jti == "" {
		response.Unauthorized(w, "User not authenticated")
		return
	}

	if err := h.service.Logout(r.Context(), jti); err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]string{"message": "Logged out"})
}

// Refresh handles POST /auth/refresh
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	resp, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidToken):
			response.Unauthorized(w, "Invalid refresh token")
		case errors.Is(err, ErrUserBanned):
			response.Forbidden(w, "Your account has been banned")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, resp)
}

// Introspect handles POST /auth/introspect
func (h *Handler) Introspect(w http.ResponseWriter, r *http.Request) {
	var req IntrospectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	response.OK(w, h.service.Introspect(r.Context(), req.Token))
}

// BlacklistStats handles GET /admin/blacklist/stats
func (h *Handler) BlacklistStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.BlacklistStats(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, stats)
}

// CleanupBlacklist handles POST /admin/blacklist/cleanup
func (h *Handler) CleanupBlacklist(w http.ResponseWriter, r *http.Request) {
	removed, err := h.service.CleanupBlacklist(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, map[string]int{"removed": removed})
}

// UserActiveTokens handles GET /admin/blacklist/user/{id}/active-tokens
func (h *Handler) UserActiveTokens(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chiURLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user id")
		return
	}

	tokens, err := h.service.ActiveTokens(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, map[string]interface{}{"userId": userID, "activeTokens": tokens})
}

// ForceLogout handles POST /admin/blacklist/user/{id}/force-logout
func (h *Handler) ForceLogout(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chiURLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user id")
		return
	}

	revoked, err := h.service.ForceLogout(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, map[string]int{"revoked": revoked})
}
