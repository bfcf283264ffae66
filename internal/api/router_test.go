package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/orgdesk/orgdesk/internal/app"
	"github.com/orgdesk/orgdesk/internal/database/testutil"
)

func newTestRouter(t *testing.T, cfg *app.Config) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	db := testutil.MustOpenTestDB(t)

	router, err := NewRouter(db, cfg)
	require.NoError(t, err)
	return router
}

func TestRouterRequiresDependencies(t *testing.T) {
	gin.SetMode(gin.TestMode)

	_, err := NewRouter(nil, &app.Config{})
	require.Error(t, err)

	db := testutil.MustOpenTestDB(t)
	_, err = NewRouter(db, nil)
	require.Error(t, err)
}

func TestRouterServesRootBanner(t *testing.T) {
	router := newTestRouter(t, &app.Config{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "up and running")
}

func TestRouterHealthToggle(t *testing.T) {
	enabled := newTestRouter(t, &app.Config{
		Monitoring: app.MonitoringConfig{Health: app.HealthConfig{Enabled: true}},
	})

	w := httptest.NewRecorder()
	enabled.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	disabled := newTestRouter(t, &app.Config{})

	w = httptest.NewRecorder()
	disabled.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouterUnknownRouteReturnsJSON404(t *testing.T) {
	router := newTestRouter(t, &app.Config{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))

	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "application/json")
}

func TestRouterMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t, &app.Config{
		Monitoring: app.MonitoringConfig{
			Prometheus: app.PrometheusConfig{Enabled: true, Endpoint: "/metrics"},
		},
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
}
