package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mossrow/tokenguard/internal/config"
	"github.com/mossrow/tokenguard/internal/risk"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testConfig returns a minimal config for testing
func testConfig() *config.Config {
	return &config.Config{
		Port:              "0",
		Env:               "development",
		LogLevel:          "error",
		ValidationTimeout: 5 * time.Second,
		CacheTTL:          time.Minute,
		RateLimitRPM:      10000,
	}
}

// newTestServer creates a server with in-memory storage
func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(testConfig(), WithStore(risk.NewMemoryStore()))
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}
	return s
}

// ---------------------------------------------------------------------------
// Health endpoint tests
// ---------------------------------------------------------------------------

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	s.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if resp["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", resp["status"])
	}
}

func TestLivenessEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health/live", nil)
	s.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
}

func TestReadinessEndpoint(t *testing.T) {
	s := newTestServer(t)

	// Not ready until Run marks it
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health/ready", nil)
	s.router.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 before ready, got %d", w.Code)
	}

	s.ready.Store(true)

	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest("GET", "/health/ready", nil))
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 when ready, got %d", w.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	s.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "tokenguard_") {
		t.Error("Expected tokenguard metrics in output")
	}
}

func TestInfoEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest("GET", "/api", nil))

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if resp["name"] != "Tokenguard" {
		t.Errorf("Expected name Tokenguard, got %v", resp["name"])
	}
}

// ---------------------------------------------------------------------------
// API smoke tests through the full middleware chain
// ---------------------------------------------------------------------------

func TestQuickCheckThroughServer(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/v1/tokens/1/0xdAC17F958D2ee523a2206206994597C13D831ec7/quick", nil)
	s.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		RiskLevel string `json:"riskLevel"`
		Trusted   bool   `json:"trusted"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if resp.RiskLevel != "verified" || !resp.Trusted {
		t.Errorf("Expected trusted verified token, got %+v", resp)
	}
}

func TestValidateThroughServer(t *testing.T) {
	s := newTestServer(t)

	body := `{"address":"0xdAC17F958D2ee523a2206206994597C13D831ec7","chainId":1}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/v1/tokens/validate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	s.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestListsThroughServer(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest("GET", "/v1/lists/1", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest("GET", "/api", nil))

	if w.Header().Get("X-Request-ID") == "" {
		t.Error("Expected X-Request-ID header on response")
	}

	// Caller-supplied IDs are echoed back
	w = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api", nil)
	req.Header.Set("X-Request-ID", "req_test123")
	s.router.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "req_test123" {
		t.Errorf("Expected echoed request ID, got %q", got)
	}
}

func TestUnknownRouteReturns404(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest("GET", "/v1/nope", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}
