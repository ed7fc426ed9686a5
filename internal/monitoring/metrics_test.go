package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleRun(t *testing.T) {
	m := NewMetrics()

	m.ModuleRun("grammar", "ok", 120*time.Millisecond)
	m.ModuleRun("grammar", "ok", 80*time.Millisecond)
	m.ModuleRun("sentiment", "error", 5*time.Millisecond)
	m.ModuleRun("voice", "skipped", 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ModuleRuns.WithLabelValues("grammar", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ModuleRuns.WithLabelValues("sentiment", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ModuleRuns.WithLabelValues("voice", "skipped")))
}

func TestMiddlewareRecordsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	router := gin.New()
	router.Use(Middleware(m))
	router.GET("/api/modules", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{})
	})

	req := httptest.NewRequest(http.MethodGet, "/api/modules", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0,
		testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/api/modules", "200")))
}

func TestMetricsEndpoint(t *testing.T) {
	m := NewMetrics()
	m.PipelineReady.Set(1)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "inkwell_pipeline_ready 1")
}
