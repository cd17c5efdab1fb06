package provider

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vietlong/booking-api/internal/domain/media"
	"github.com/vietlong/booking-api/internal/middleware"
	"github.com/vietlong/booking-api/internal/pkg/response"
	"github.com/vietlong/booking-api/internal/pkg/validator"
)

// Handler handles provider HTTP requests
type Handler struct {
	service *Service
	media   *media.Service
}

// NewHandler creates provider handler
func NewHandler(service *Service, mediaSvc *media.Service) *Handler {
	return &Handler{service: service, media: mediaSvc}
}

// Get handles GET /providers/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid provider ID")
		return
	}

	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Provider not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, h.service.ToResponse(p))
}

// ListMine handles GET /provider/my-providers
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	providers, err := h.service.ListMine(r.Context(), ownerID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, h.service.ToResponseList(providers))
}

// Update handles PUT /provider/{id} (multipart: form fields + optional logo/banner files)
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid provider ID")
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}

	req := &UpdateProviderRequest{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Address:     r.FormValue("address"),
		Phone:       r.FormValue("phone"),
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	logoKey, err := h.storeFormImage(r, "logo", ownerID, media.KindProviderLogo)
	if err != nil {
		h.writeMediaError(w, err)
		return
	}
	bannerKey, err := h.storeFormImage(r, "banner", ownerID, media.KindProviderBanner)
	if err != nil {
		h.writeMediaError(w, err)
		return
	}

	p, err := h.service.Update(r.Context(), id, ownerID, req, logoKey, bannerKey)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(w, "Provider not found")
		case errors.Is(err, ErrNotOwner):
			response.Forbidden(w, "You do not own this provider")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, h.service.ToResponse(p))
}

// ListAll handles GET /admin/providers
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	providers, err := h.service.ListAll(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, h.service.ToResponseList(providers))
}

// ListByStatus handles GET /admin/providers/status/{status}
func (h *Handler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	status := chi.URLParam(r, "status")
	if !IsValidStatus(status) {
		response.BadRequest(w, "Invalid provider status")
		return
	}

	providers, err := h.service.ListByStatus(r.Context(), Status(status))
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, h.service.ToResponseList(providers))
}

// ChangeStatus handles PUT /admin/providers/{id}/status?status=
func (h *Handler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid provider ID")
		return
	}

	status := r.URL.Query().Get("status")

	if err := h.service.ChangeStatus(r.Context(), id, status); err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			response.BadRequest(w, "Invalid provider status")
		case errors.Is(err, ErrNotFound):
			response.NotFound(w, "Provider not found")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]string{"message": "Provider status updated"})
}

// storeFormImage saves an optional multipart image field; returns "" when absent.
func (h *Handler) storeFormImage(r *http.Request, field string, ownerID uuid.UUID, kind media.Kind) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", err
	}
	defer file.Close()

	upload, err := h.media.Store(r.Context(), ownerID, kind,
		header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		return "", err
	}
	return upload.Key, nil
}

func (h *Handler) writeMediaError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, media.ErrInvalidFileType):
		response.BadRequest(w, "Unsupported file type")
	case errors.Is(err, media.ErrFileTooLarge):
		response.BadRequest(w, "File exceeds maximum size")
	default:
		response.InternalError(w)
	}
}
