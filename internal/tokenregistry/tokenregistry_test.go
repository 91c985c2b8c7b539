package tokenregistry

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

const testAddr = "0xdAC17F958D2ee523a2206206994597C13D831ec7"

func TestLookupListed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q, want bearer key", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"code": 1,
			"result": map[string]any{
				testAddr: map[string]any{
					"listed":       true,
					"verified":     true,
					"flagged_scam": false,
					"trust_score":  0.95,
				},
			},
		})
	}))
	defer ts.Close()

	c := New(ts.URL, "test-key", nil)
	signal, err := c.Lookup(t.Context(), testAddr, 1)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !signal.Listed || !signal.Verified {
		t.Errorf("signal = %+v, want listed and verified", signal)
	}
	if signal.TrustScore != 0.95 {
		t.Errorf("TrustScore = %v, want 0.95", signal.TrustScore)
	}
}

func TestLookupLowercaseKeyedResult(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"code": 1,
			"result": map[string]any{
				"0xdac17f958d2ee523a2206206994597c13d831ec7": map[string]any{
					"listed":       true,
					"flagged_scam": true,
					"trust_score":  0.1,
				},
			},
		})
	}))
	defer ts.Close()

	c := New(ts.URL, "", nil)
	signal, err := c.Lookup(t.Context(), testAddr, 1)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !signal.Listed || !signal.FlaggedScam {
		t.Errorf("signal = %+v, want listed and flagged", signal)
	}
}

func TestLookupUnknownToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer ts.Close()

	c := New(ts.URL, "", nil)
	signal, err := c.Lookup(t.Context(), testAddr, 1)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if signal.Listed {
		t.Error("unknown token should not be listed")
	}
}

func TestLookupRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"code":   1,
			"result": map[string]any{testAddr: map[string]any{"listed": true}},
		})
	}))
	defer ts.Close()

	c := New(ts.URL, "", nil)
	signal, err := c.Lookup(t.Context(), testAddr, 1)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !signal.Listed {
		t.Error("expected listed signal after retries")
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
}

func TestLookupClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer ts.Close()

	c := New(ts.URL, "", nil)
	if _, err := c.Lookup(t.Context(), testAddr, 1); err == nil {
		t.Fatal("expected error")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1 (permanent error)", got)
	}
}

func TestLookupBreakerOpens(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := New(ts.URL, "", nil)
	for i := 0; i < breakerFailures; i++ {
		if _, err := c.Lookup(t.Context(), testAddr, 1); err == nil {
			t.Fatal("expected error while registry is down")
		}
	}

	if c.breaker.Allow("chain-1") {
		t.Error("breaker should be open after repeated failures")
	}
}
