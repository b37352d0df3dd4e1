package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/cardsync/internal/config"
	"github.com/MKhiriev/cardsync/internal/logger"
	"github.com/MKhiriev/cardsync/internal/service"
	"github.com/MKhiriev/cardsync/models"
)

func TestNewHandler(t *testing.T) {
	t.Run("wires services and logger", func(t *testing.T) {
		svc := &service.Services{}
		log := logger.Nop()

		h := NewHandler(svc, config.Server{}, log)

		require.NotNil(t, h)
		assert.Same(t, svc, h.services)
		assert.Same(t, log, h.logger)
	})

	t.Run("starts the limiter and the uptime clock", func(t *testing.T) {
		h := NewHandler(&service.Services{}, config.Server{RateLimitPerMinute: 60}, logger.Nop())

		require.NotNil(t, h.limiter)
		assert.InDelta(t, 60.0, h.limiter.maxTokens, 1e-9)
		assert.False(t, h.started.IsZero())
		assert.Zero(t, h.requests.Load())
		assert.Zero(t, h.errors.Load())
	})

	t.Run("instances do not share state", func(t *testing.T) {
		h1 := NewHandler(&service.Services{}, config.Server{}, logger.Nop())
		h2 := NewHandler(&service.Services{}, config.Server{}, logger.Nop())

		assert.NotSame(t, h1, h2)
		assert.NotSame(t, h1.limiter, h2.limiter)
	})
}

// Every route the artifact server announces, hit with a target that
// makes the handler run for real; even a bad-request reply proves the
// route is wired.
func TestInit_DeclaredRoutesAreServed(t *testing.T) {
	h, _, _ := newCatalogHandler(t)
	router := h.Init()
	require.NotNil(t, router)

	targets := []string{
		"/health",
		"/metrics",
		"/sync/status",
		"/sync/patch",
		"/sync/snapshot",
		"/sync/manifest",
		"/artifacts/versions/v6.snapshot.json",
	}

	for _, target := range targets {
		t.Run(target, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

			assert.NotEqual(t, http.StatusNotFound, rec.Code, "route not found: %s", target)
			assert.NotEqual(t, http.StatusMethodNotAllowed, rec.Code, "method not allowed: %s", target)
		})
	}
}

func TestGetHealth_OK(t *testing.T) {
	h, _, _ := newCatalogHandler(t)

	var body models.HealthResponse
	getJSON(t, h.Init(), "/health", http.StatusOK, &body)

	assert.True(t, body.OK)
	assert.Equal(t, fixtureDataset, body.Dataset)
	assert.Equal(t, "v6", body.LatestVersion)
	assert.Equal(t, "2026-08-23T22:31:00Z", body.GeneratedAt)
}

func TestGetHealth_ManifestMissing(t *testing.T) {
	h := newEmptyRootHandler(t)

	var errBody models.ErrorResponse
	getJSON(t, h.Init(), "/health", http.StatusInternalServerError, &errBody)

	assert.Equal(t, models.ErrCodeManifestMissing, errBody.Error)
}

func TestGetMetrics_CountsRequestsAndErrors(t *testing.T) {
	h, _, _ := newCatalogHandler(t)
	router := h.Init()

	for _, target := range []string{"/health", "/health", "/sync/status", "/nonexistent"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	}

	var metrics models.MetricsResponse
	getJSON(t, router, "/metrics", http.StatusOK, &metrics)

	// The /metrics request itself is the fifth counted request.
	assert.Equal(t, int64(5), metrics.Requests)
	assert.Equal(t, int64(1), metrics.Errors)
	assert.Equal(t, 1, metrics.TrackedIPs)
	assert.GreaterOrEqual(t, metrics.UptimeSeconds, int64(0))
}

func TestGetMetrics_WorksWithoutManifest(t *testing.T) {
	h := newEmptyRootHandler(t)

	var metrics models.MetricsResponse
	getJSON(t, h.Init(), "/metrics", http.StatusOK, &metrics)

	assert.Equal(t, int64(1), metrics.Requests)
	assert.Equal(t, int64(0), metrics.Errors)
}

func TestGetMetrics_JSONShape(t *testing.T) {
	h, _, _ := newCatalogHandler(t)
	router := h.Init()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	for _, key := range []string{"requests", "errors", "uptimeSeconds", "trackedIps"} {
		assert.Contains(t, raw, key)
	}
}
