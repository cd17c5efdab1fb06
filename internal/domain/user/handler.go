package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/vietlong/booking-api/internal/domain/media"
	"github.com/vietlong/booking-api/internal/middleware"
	"github.com/vietlong/booking-api/internal/pkg/response"
	"github.com/vietlong/booking-api/internal/pkg/validator"
)

// Handler handles user profile HTTP requests
type Handler struct {
	service *Service
	media   *media.Service
}

// NewHandler creates user handler
func NewHandler(service *Service, mediaSvc *media.Service) *Handler {
	return &Handler{service: service, media: mediaSvc}
}

// GetProfile handles GET /user/profile
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "User not authenticated")
		return
	}

	u, err := h.service.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, ToProfileResponse(u, h.avatarURL(u)))
}

// UpdateProfile handles PUT /user/profile
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	u, err := h.service.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, ToProfileResponse(u, h.avatarURL(u)))
}

// ChangePassword handles PUT /user/change-password
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := h.service.ChangePassword(r.Context(), userID, &req); err != nil {
		switch {
		case errors.Is(err, ErrWrongPassword):
			response.BadRequest(w, "Current password is incorrect")
		case errors.Is(err, ErrNotFound):
			response.NotFound(w, "User not found")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]string{"message": "Password changed"})
}

// UpdateAvatar handles PUT /user/avatar (multipart)
func (h *Handler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Missing file field")
		return
	}
	defer file.Close()

	upload, err := h.media.Store(r.Context(), userID, media.KindAvatar,
		header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		switch {
		case errors.Is(err, media.ErrInvalidFileType):
			response.BadRequest(w, "Unsupported file type")
		case errors.Is(err, media.ErrFileTooLarge):
			response.BadRequest(w, "File exceeds maximum size")
		default:
			response.InternalError(w)
		}
		return
	}

	if err := h.service.SetAvatar(r.Context(), userID, upload.Key); err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]string{"avatarUrl": h.media.URL(upload.Key)})
}

func (h *Handler) avatarURL(u *User) string {
	if !u.AvatarKey.Valid {
		return ""
	}
	return h.media.URL(u.AvatarKey.String)
}
