package controllers

import (
	"net/http"

	"portalevents/internal/delivery/http/helpers"
	"portalevents/internal/platform"
)

// HealthResponse reports the resolved mode of every backend.
type HealthResponse struct {
	Status   string          `json:"status"`
	Database platform.Status `json:"database"`
	Storage  platform.Status `json:"storage"`
	Auth     platform.Status `json:"auth"`
	Mail     platform.Status `json:"mail"`
}

type HealthController struct {
	Backends *platform.Backends
}

func NewHealthController(backends *platform.Backends) *HealthController {
	return &HealthController{Backends: backends}
}

// Health godoc
// @Summary Service health
// @Description Reports whether each backend runs live or on the demo fallback.
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse
// @Router /health [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	b := c.Backends
	helpers.WriteJSONSuccess(w, http.StatusOK, HealthResponse{
		Status:   "ok",
		Database: b.Database,
		Storage:  b.Storage,
		Auth:     b.Auth,
		Mail:     b.Mail,
	})
}
