// Package tokenregistry queries an external token security registry.
//
// The client shape follows GoPlus-style security APIs: GET per token,
// keyed by chain and address, returning a flat risk record. Failures are
// tolerated by the caller; the client's job is to be well-behaved about
// retries and to stop hammering a registry that is down.
package tokenregistry

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mossrow/tokenguard/internal/circuitbreaker"
	"github.com/mossrow/tokenguard/internal/metrics"
	"github.com/mossrow/tokenguard/internal/retry"
	"github.com/mossrow/tokenguard/internal/risk"
)

const (
	defaultTimeout  = 5 * time.Second
	maxAttempts     = 3
	retryBaseDelay  = 200 * time.Millisecond
	breakerFailures = 5
	breakerCooldown = 30 * time.Second
)

// Client is an HTTP client for a token security registry.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	breaker *circuitbreaker.Breaker
	logger  *slog.Logger
}

// New creates a registry client. apiKey may be empty for keyless registries.
func New(baseURL, apiKey string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: defaultTimeout},
		breaker: circuitbreaker.New(breakerFailures, breakerCooldown),
		logger:  logger,
	}
}

// tokenRecord is the registry's wire format for one token.
type tokenRecord struct {
	Listed      bool    `json:"listed"`
	Verified    bool    `json:"verified"`
	FlaggedScam bool    `json:"flagged_scam"`
	TrustScore  float64 `json:"trust_score"`
}

type lookupResponse struct {
	Code    int                    `json:"code"`
	Message string                 `json:"message"`
	Result  map[string]tokenRecord `json:"result"`
}

// Lookup fetches the registry's record for a token. Returns a zero-valued
// signal with Listed=false when the registry has never seen the token.
func (c *Client) Lookup(ctx context.Context, address string, chainID risk.ChainID) (*risk.RegistrySignal, error) {
	key := "chain-" + strconv.FormatInt(int64(chainID), 10)

	if !c.breaker.Allow(key) {
		metrics.ProviderRequestsTotal.WithLabelValues("registry", "breaker_open").Inc()
		return nil, fmt.Errorf("registry circuit open for chain %d", chainID)
	}

	var signal *risk.RegistrySignal
	err := retry.Do(ctx, maxAttempts, retryBaseDelay, func() error {
		s, err := c.fetch(ctx, address, chainID)
		if err != nil {
			return err
		}
		signal = s
		return nil
	})

	if err != nil {
		c.breaker.RecordFailure(key)
		metrics.ProviderRequestsTotal.WithLabelValues("registry", "error").Inc()
		return nil, err
	}

	c.breaker.RecordSuccess(key)
	metrics.ProviderRequestsTotal.WithLabelValues("registry", "success").Inc()
	return signal, nil
}

func (c *Client) fetch(ctx context.Context, address string, chainID risk.ChainID) (*risk.RegistrySignal, error) {
	url := fmt.Sprintf("%s/token_security/%d?contract_addresses=%s", c.baseURL, chainID, address)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, retry.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("registry request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusNotFound:
		// Unknown token. Not an error, just no signal.
		return &risk.RegistrySignal{}, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, retry.Permanent(fmt.Errorf("registry returned status %d", resp.StatusCode))
	default:
		return nil, fmt.Errorf("registry returned status %d", resp.StatusCode)
	}

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode registry response: %w", err)
	}

	rec, ok := body.Result[address]
	if !ok {
		// Some registries key results by lowercased address.
		for k, v := range body.Result {
			if strings.EqualFold(k, address) {
				rec = v
				ok = true
				break
			}
		}
	}
	if !ok {
		return &risk.RegistrySignal{}, nil
	}

	return &risk.RegistrySignal{
		Listed:      rec.Listed,
		Verified:    rec.Verified,
		FlaggedScam: rec.FlaggedScam,
		TrustScore:  rec.TrustScore,
	}, nil
}
