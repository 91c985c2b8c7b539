package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	dto "github.com/prometheus/client_model/go"
)

func TestMetricsEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/metrics", Handler())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}

	body := w.Body.String()
	if len(body) == 0 {
		t.Error("Expected non-empty metrics response")
	}

	// Gauges and plain counters always appear; vectors only after the
	// first observation.
	for _, name := range []string{
		"tokenguard_active_websocket_clients",
		"tokenguard_validation_cache_hits_total",
		"tokenguard_validation_cache_misses_total",
	} {
		if !strings.Contains(body, name) {
			t.Errorf("Expected metrics output to contain %s", name)
		}
	}

	// Trigger labeled counters so we can verify they appear
	ValidationsTotal.WithLabelValues("low").Inc()
	QuickChecksTotal.WithLabelValues("verified").Inc()
	StageSignalMissing.WithLabelValues("contract").Inc()

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/metrics", nil)
	r.ServeHTTP(w, req)
	body = w.Body.String()

	for _, name := range []string{
		"tokenguard_validations_total",
		"tokenguard_quick_checks_total",
		"tokenguard_stage_signal_missing_total",
	} {
		if !strings.Contains(body, name) {
			t.Errorf("Expected %s after incrementing", name)
		}
	}
}

func TestCacheCountersIncrement(t *testing.T) {
	before := counterValue(t)
	CacheHits.Inc()
	CacheHits.Inc()
	after := counterValue(t)

	if after-before != 2 {
		t.Errorf("CacheHits delta: got %v, want 2", after-before)
	}
}

func counterValue(t *testing.T) float64 {
	t.Helper()
	var m dto.Metric
	if err := CacheHits.Write(&m); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestMiddleware_RecordsMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/test", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}

	// The request counter for the route must now be exported.
	mr := gin.New()
	mr.GET("/metrics", Handler())
	w = httptest.NewRecorder()
	mr.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	if !strings.Contains(w.Body.String(), "tokenguard_http_requests_total") {
		t.Error("Expected tokenguard_http_requests_total after a request")
	}
}
