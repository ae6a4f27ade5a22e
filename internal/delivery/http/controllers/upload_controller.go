package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"portalevents/internal/delivery/http/helpers"
	"portalevents/internal/domain"
)

// Messages shown by the admin form.
const (
	msgNoImages    = "Nenhuma imagem enviada."
	msgUploadError = "Erro ao fazer upload das imagens."
)

// UploadResponse is the body of a successful POST /api/upload.
type UploadResponse struct {
	URLs []string `json:"urls"`
}

// FormErrorResponse is the body of a failed public form request.
type FormErrorResponse struct {
	Error string `json:"error"`
}

type UploadController struct {
	Logger       *slog.Logger
	Images       domain.ImageService
	MaxFileBytes int64
}

func NewUploadController(logger *slog.Logger, images domain.ImageService, maxFileBytes int64) *UploadController {
	return &UploadController{Logger: logger, Images: images, MaxFileBytes: maxFileBytes}
}

// Upload godoc
// @Summary Upload event images
// @Description Stores up to 5 images under the category folder and returns their public URLs in submission order. The batch fails as a whole.
// @Tags images
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param category formData string true "Category slug"
// @Param images formData file true "Images"
// @Success 200 {object} controllers.UploadResponse
// @Failure 400 {object} controllers.FormErrorResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} controllers.FormErrorResponse
// @Router /api/upload [post]
func (c *UploadController) Upload(w http.ResponseWriter, r *http.Request) {
	if err := helpers.ParseImageForm(w, r, domain.MaxEventImages, c.MaxFileBytes); err != nil {
		helpers.WriteJSON(w, http.StatusBadRequest, FormErrorResponse{Error: err.Error()})
		return
	}
	files, err := helpers.ReadImageFiles(r, "images", domain.MaxEventImages, c.MaxFileBytes)
	if err != nil {
		msg := err.Error()
		if errors.Is(err, helpers.ErrNoFiles) {
			msg = msgNoImages
		}
		helpers.WriteJSON(w, http.StatusBadRequest, FormErrorResponse{Error: msg})
		return
	}
	category := domain.Category(strings.TrimSpace(r.FormValue("category")))
	if !category.Valid() {
		helpers.WriteJSON(w, http.StatusBadRequest, FormErrorResponse{Error: "invalid category"})
		return
	}

	urls, err := c.Images.UploadImages(r.Context(), files, category)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSON(w, http.StatusInternalServerError, FormErrorResponse{Error: msgUploadError})
		return
	}
	helpers.WriteJSON(w, http.StatusOK, UploadResponse{URLs: urls})
}
