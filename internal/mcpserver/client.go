package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Config holds the configuration for connecting to the Tokenguard API.
type Config struct {
	APIURL string // Base URL, e.g. "http://localhost:8080"
}

// TokenguardClient is a pure HTTP client for the Tokenguard API.
type TokenguardClient struct {
	cfg        Config
	httpClient *http.Client
}

// NewTokenguardClient creates a new client for the Tokenguard API.
func NewTokenguardClient(cfg Config) *TokenguardClient {
	return &TokenguardClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// apiError represents an error response from the API.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// doRequest makes an HTTP request to the API and returns the response body.
func (c *TokenguardClient) doRequest(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	u, err := url.Parse(c.cfg.APIURL + path)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, apiErr.Message)
		}
		return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, string(respBody))
	}

	return json.RawMessage(respBody), nil
}

// QuickCheck runs a synchronous list-and-pattern check on a token.
func (c *TokenguardClient) QuickCheck(ctx context.Context, chainID, address, name, symbol string) (json.RawMessage, error) {
	q := url.Values{}
	if name != "" {
		q.Set("name", name)
	}
	if symbol != "" {
		q.Set("symbol", symbol)
	}
	path := "/v1/tokens/" + chainID + "/" + address + "/quick"
	return c.doRequest(ctx, http.MethodGet, path, q, nil)
}

// ValidateToken runs the full multi-stage validation.
func (c *TokenguardClient) ValidateToken(ctx context.Context, body map[string]any) (json.RawMessage, error) {
	return c.doRequest(ctx, http.MethodPost, "/v1/tokens/validate", nil, body)
}

// GetRiskLevels returns every risk level with advisory text.
func (c *TokenguardClient) GetRiskLevels(ctx context.Context) (json.RawMessage, error) {
	return c.doRequest(ctx, http.MethodGet, "/v1/risk/levels", nil, nil)
}

// GetChainLists returns the security lists for one chain.
func (c *TokenguardClient) GetChainLists(ctx context.Context, chainID string) (json.RawMessage, error) {
	return c.doRequest(ctx, http.MethodGet, "/v1/lists/"+chainID, nil, nil)
}
