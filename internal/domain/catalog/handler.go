package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vietlong/booking-api/internal/domain/media"
	"github.com/vietlong/booking-api/internal/middleware"
	"github.com/vietlong/booking-api/internal/pkg/response"
	"github.com/vietlong/booking-api/internal/pkg/validator"
)

// Handler handles service catalog HTTP requests
type Handler struct {
	catalog *Catalog
	media   *media.Service
}

// NewHandler creates catalog handler
func NewHandler(catalog *Catalog, mediaSvc *media.Service) *Handler {
	return &Handler{catalog: catalog, media: mediaSvc}
}

// ListPublic handles GET /services?categoryId=&q=&page=&limit=
func (h *Handler) ListPublic(w http.ResponseWriter, r *http.Request) {
	filter := PublicFilter{Query: r.URL.Query().Get("q")}

	if raw := r.URL.Query().Get("categoryId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "Invalid category ID")
			return
		}
		filter.CategoryID = &id
	}

	filter.Page, filter.Limit = pageParams(r)

	details, total, err := h.catalog.ListPublic(r.Context(), filter)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.WithMeta(w, h.catalog.ToDetailResponseList(details),
		response.NewMeta(total, filter.Page, filter.Limit))
}

// GetPublic handles GET /services/{id}
func (h *Handler) GetPublic(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid service ID")
		return
	}

	d, err := h.catalog.GetPublic(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Service not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, h.catalog.ToDetailResponse(d))
}

// ListMine handles GET /provider/services?providerId=
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	providerID, err := uuid.Parse(r.URL.Query().Get("providerId"))
	if err != nil {
		response.BadRequest(w, "Invalid provider ID")
		return
	}

	services, err := h.catalog.ListMine(r.Context(), ownerID, providerID)
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}

	response.OK(w, h.catalog.ToResponseList(services))
}

// Create handles POST /provider/services (multipart)
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	req, providerID, ok := h.parseSaveForm(w, r, true)
	if !ok {
		return
	}

	imageKey, err := h.storeImage(r, ownerID)
	if err != nil {
		h.writeMediaError(w, err)
		return
	}

	s, err := h.catalog.Create(r.Context(), ownerID, providerID, req, imageKey)
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}

	response.Created(w, h.catalog.ToResponse(s))
}

// Update handles PUT /provider/services/{id} (multipart)
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid service ID")
		return
	}

	req, _, ok := h.parseSaveForm(w, r, false)
	if !ok {
		return
	}

	imageKey, err := h.storeImage(r, ownerID)
	if err != nil {
		h.writeMediaError(w, err)
		return
	}

	s, err := h.catalog.Update(r.Context(), id, ownerID, req, imageKey)
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}

	response.OK(w, h.catalog.ToResponse(s))
}

// Activate handles PUT /provider/services/{id}/activate
func (h *Handler) Activate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

// Deactivate handles PUT /provider/services/{id}/deactivate
func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

func (h *Handler) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	ownerID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid service ID")
		return
	}

	if err := h.catalog.SetActive(r.Context(), id, ownerID, active); err != nil {
		h.writeCatalogError(w, err)
		return
	}

	response.OK(w, map[string]bool{"isActive": active})
}

// Delete handles DELETE /provider/services/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid service ID")
		return
	}

	if err := h.catalog.Delete(r.Context(), id, ownerID); err != nil {
		if errors.Is(err, ErrHasAppointments) {
			response.Conflict(w, "SERVICE_HAS_APPOINTMENTS",
				"Service has open appointments; deactivate it instead")
			return
		}
		h.writeCatalogError(w, err)
		return
	}

	response.NoContent(w)
}

// ListAll handles GET /admin/services?page=&limit=
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	details, total, err := h.catalog.ListAll(r.Context(), page, limit)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.WithMeta(w, h.catalog.ToDetailResponseList(details), response.NewMeta(total, page, limit))
}

// parseSaveForm reads the multipart service form. providerId is only required
// on create; updates derive the provider from the stored service.
func (h *Handler) parseSaveForm(w http.ResponseWriter, r *http.Request, needProvider bool) (*SaveServiceRequest, uuid.UUID, bool) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return nil, uuid.Nil, false
	}

	var providerID uuid.UUID
	if needProvider {
		var err error
		providerID, err = uuid.Parse(r.FormValue("providerId"))
		if err != nil {
			response.BadRequest(w, "Invalid provider ID")
			return nil, uuid.Nil, false
		}
	}

	categoryID, err := uuid.Parse(r.FormValue("categoryId"))
	if err != nil {
		response.BadRequest(w, "Invalid category ID")
		return nil, uuid.Nil, false
	}

	price, err := strconv.ParseInt(r.FormValue("price"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid price")
		return nil, uuid.Nil, false
	}

	duration, err := strconv.Atoi(r.FormValue("durationMinutes"))
	if err != nil {
		response.BadRequest(w, "Invalid duration")
		return nil, uuid.Nil, false
	}

	req := &SaveServiceRequest{
		CategoryID:      categoryID,
		Name:            r.FormValue("name"),
		Description:     r.FormValue("description"),
		Price:           price,
		DurationMinutes: duration,
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return nil, uuid.Nil, false
	}

	return req, providerID, true
}

func (h *Handler) storeImage(r *http.Request, ownerID uuid.UUID) (string, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", err
	}
	defer file.Close()

	upload, err := h.media.Store(r.Context(), ownerID, media.KindServiceImage,
		header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		return "", err
	}
	return upload.Key, nil
}

func (h *Handler) writeCatalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.NotFound(w, "Service not found")
	case errors.Is(err, ErrNotOwner):
		response.Forbidden(w, "You do not own this service")
	case errors.Is(err, ErrProviderInvalid):
		response.BadRequest(w, "Provider does not exist")
	case errors.Is(err, ErrCategoryInvalid):
		response.BadRequest(w, "Category does not exist or is inactive")
	default:
		response.InternalError(w)
	}
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

func pageParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
