package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"portalevents/internal/domain"
	"portalevents/internal/platform"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthController_Health(t *testing.T) {
	ctrl := NewHealthController(&platform.Backends{
		Database: platform.Status{Mode: domain.ModeLive, Provider: "postgres"},
		Storage:  platform.Status{Mode: domain.ModeDemo, Reason: "STORAGE_PROVIDER is not set"},
		Auth:     platform.Status{Mode: domain.ModeLive},
		Mail:     platform.Status{Mode: domain.ModeDemo},
	})
	rr := httptest.NewRecorder()

	ctrl.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var res HealthResponse
	require.Nil(t, decodeEnvelope(t, rr, &res))
	assert.Equal(t, "ok", res.Status)
	assert.Equal(t, domain.ModeLive, res.Database.Mode)
	assert.Equal(t, "STORAGE_PROVIDER is not set", res.Storage.Reason)
}
