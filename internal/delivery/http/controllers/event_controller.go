package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"portalevents/internal/delivery/http/helpers"
	"portalevents/internal/domain"
)

// CreateEventRequest is the request body for POST /api/events. Images are URLs returned by /api/upload.
type CreateEventRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Images      []string `json:"images"`
}

// Validate implements Validator. It only checks presence; the domain rules run in the service.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	if strings.TrimSpace(c.Description) == "" {
		errs = append(errs, "description is required")
	}
	if strings.TrimSpace(c.Category) == "" {
		errs = append(errs, "category is required")
	}
	if len(c.Images) == 0 {
		errs = append(errs, "at least one image is required")
	}
	return errs
}

func (c CreateEventRequest) draft() domain.EventDraft {
	return domain.NewEventDraft(c.Title, c.Description, domain.Category(c.Category), c.Images)
}

// EventSuccessResponse is the success response envelope for endpoints returning one event.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventListSuccessResponse is the success response envelope for GET /api/categories/{category}/events (200).
type EventListSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CategoryListSuccessResponse is the success response envelope for GET /api/categories (200).
type CategoryListSuccessResponse struct {
	Data  []domain.CategoryInfo `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// DeleteEventResponse is the data of a successful delete.
type DeleteEventResponse struct {
	Status string `json:"status"`
}

type EventController struct {
	Logger       *slog.Logger
	Service      domain.EventService
	MaxFileBytes int64
}

func NewEventController(logger *slog.Logger, svc domain.EventService, maxFileBytes int64) *EventController {
	return &EventController{
		Logger:       logger,
		Service:      svc,
		MaxFileBytes: maxFileBytes,
	}
}

// ListCategories godoc
// @Summary List event categories
// @Description Returns the fixed category enumeration with display metadata, in display order.
// @Tags events
// @Produce json
// @Success 200 {object} controllers.CategoryListSuccessResponse
// @Router /api/categories [get]
func (c *EventController) ListCategories(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Service.ListCategories())
}

// ListEventsByCategory godoc
// @Summary List events of a category
// @Description Returns the events of a category, newest first. Unknown categories return an empty list.
// @Tags events
// @Produce json
// @Param category path string true "Category slug (wedding, fifteenth-birthday, birthday, corporate)"
// @Success 200 {object} controllers.EventListSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/categories/{category}/events [get]
func (c *EventController) ListEventsByCategory(w http.ResponseWriter, r *http.Request) {
	category := domain.Category(strings.TrimSpace(r.PathValue("category")))
	events, err := c.Service.ListEventsByCategory(r.Context(), category)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, domain.ErrQuery.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates an event from already uploaded image URLs. The first image is the cover.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.CreateEvent(r.Context(), req.draft())
	if err != nil {
		c.writeEventError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// PublishEvent godoc
// @Summary Upload images and create an event
// @Description Multipart form with title, description, category and 1 to 5 images. Images are stored first, in order; the event is created only if every upload succeeded.
// @Tags events
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title (min 3 characters)"
// @Param description formData string true "Description (min 10 characters)"
// @Param category formData string true "Category slug"
// @Param images formData file true "Images, first is the cover"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events/publish [post]
func (c *EventController) PublishEvent(w http.ResponseWriter, r *http.Request) {
	if err := helpers.ParseImageForm(w, r, domain.MaxEventImages, c.MaxFileBytes); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	files, err := helpers.ReadImageFiles(r, "images", domain.MaxEventImages, c.MaxFileBytes)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	draft := domain.NewEventDraft(r.FormValue("title"), r.FormValue("description"), domain.Category(r.FormValue("category")), nil)
	event, err := c.Service.PublishEvent(r.Context(), draft, files)
	if err != nil {
		c.writeEventError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deletes an event by id. Deletion is immediate and irreversible.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data.status: deleted"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := strings.TrimSpace(r.PathValue("eventID"))
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, domain.ErrDeletion.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteEventResponse{Status: "deleted"})
}

func (c *EventController) writeEventError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, verr.Error())
	case errors.Is(err, domain.ErrUpload):
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, domain.ErrUpload.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, domain.ErrPersistence.Error())
	}
}
