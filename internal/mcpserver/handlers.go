package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers holds the handler functions for each MCP tool.
type Handlers struct {
	client *TokenguardClient
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(client *TokenguardClient) *Handlers {
	return &Handlers{client: client}
}

// HandleCheckToken runs the fast list-and-pattern check.
func (h *Handlers) HandleCheckToken(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	chainID := req.GetString("chain_id", "")
	if chainID == "" {
		return mcp.NewToolResultError("chain_id is required"), nil
	}
	address := req.GetString("address", "")
	if address == "" {
		return mcp.NewToolResultError("address is required"), nil
	}
	name := req.GetString("name", "")
	symbol := req.GetString("symbol", "")

	raw, err := h.client.QuickCheck(ctx, chainID, address, name, symbol)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to check token: %v", err)), nil
	}

	text, err := formatQuickResult(raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to parse result: %v", err)), nil
	}

	return mcp.NewToolResultText(text), nil
}

// HandleValidateToken runs the full multi-stage validation.
func (h *Handlers) HandleValidateToken(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	chainID := req.GetString("chain_id", "")
	if chainID == "" {
		return mcp.NewToolResultError("chain_id is required"), nil
	}
	address := req.GetString("address", "")
	if address == "" {
		return mcp.NewToolResultError("address is required"), nil
	}

	body := map[string]any{
		"address": address,
		"chainId": json.Number(chainID),
	}

	meta := map[string]any{}
	if name := req.GetString("name", ""); name != "" {
		meta["name"] = name
	}
	if symbol := req.GetString("symbol", ""); symbol != "" {
		meta["symbol"] = symbol
	}
	if decimals := req.GetInt("decimals", -1); decimals >= 0 {
		meta["decimals"] = decimals
	}
	if len(meta) > 0 {
		body["metadata"] = meta
	}

	if req.GetBool("strict", false) {
		body["config"] = map[string]any{
			"enableMetadataValidation": true,
			"enableCaching":            true,
			"strictMode":               true,
			"validationTimeout":        5_000_000_000,
		}
	}

	raw, err := h.client.ValidateToken(ctx, body)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to validate token: %v", err)), nil
	}

	text, err := formatValidation(raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to parse result: %v", err)), nil
	}

	return mcp.NewToolResultText(text), nil
}

// HandleGetRiskGuidance explains the risk levels.
func (h *Handlers) HandleGetRiskGuidance(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := h.client.GetRiskLevels(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get risk guidance: %v", err)), nil
	}

	text, err := formatRiskLevels(raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to parse levels: %v", err)), nil
	}

	return mcp.NewToolResultText(text), nil
}

// HandleGetSecurityLists fetches the lists for a chain.
func (h *Handlers) HandleGetSecurityLists(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	chainID := req.GetString("chain_id", "")
	if chainID == "" {
		return mcp.NewToolResultError("chain_id is required"), nil
	}

	raw, err := h.client.GetChainLists(ctx, chainID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get security lists: %v", err)), nil
	}

	text, err := formatChainLists(raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to parse lists: %v", err)), nil
	}

	return mcp.NewToolResultText(text), nil
}

// --- Formatting helpers ---

func formatQuickResult(raw json.RawMessage) (string, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return "", err
	}

	level := getString(m, "riskLevel")
	trusted, _ := m["trusted"].(bool)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Token: %s (chain %s)\n", getString(m, "address"), getString(m, "chainId"))
	fmt.Fprintf(&sb, "Risk level: %s\n", strings.ToUpper(level))
	if trusted {
		sb.WriteString("Trusted: yes\n")
	} else {
		sb.WriteString("Trusted: no\n")
	}
	if v := getString(m, "reason"); v != "" {
		fmt.Fprintf(&sb, "Reason: %s\n", v)
	}
	if v := getString(m, "recommendation"); v != "" {
		fmt.Fprintf(&sb, "\n%s", v)
	}
	return sb.String(), nil
}

func formatValidation(raw json.RawMessage) (string, error) {
	var resp struct {
		Validation     map[string]any `json:"validation"`
		Description    string         `json:"description"`
		Recommendation string         `json:"recommendation"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", err
	}
	if resp.Validation == nil {
		return "", fmt.Errorf("no validation in response")
	}
	v := resp.Validation

	var sb strings.Builder
	fmt.Fprintf(&sb, "Token: %s (chain %s)\n", getString(v, "address"), getString(v, "chainId"))
	fmt.Fprintf(&sb, "Risk level: %s\n", strings.ToUpper(getString(v, "riskLevel")))
	if score, ok := getFloat(v, "securityScore"); ok {
		fmt.Fprintf(&sb, "Security score: %.0f/100\n", score)
	}
	if verified, ok := v["isVerified"].(bool); ok && verified {
		sb.WriteString("Verified: yes\n")
	}

	if issues, ok := v["issues"].([]any); ok && len(issues) > 0 {
		sb.WriteString("\nIssues found:\n")
		for _, item := range issues {
			issue, ok := item.(map[string]any)
			if !ok {
				continue
			}
			fmt.Fprintf(&sb, "  - [%s] %s\n", getString(issue, "severity"), getString(issue, "message"))
		}
	}

	if resp.Description != "" {
		fmt.Fprintf(&sb, "\n%s\n", resp.Description)
	}
	if resp.Recommendation != "" {
		fmt.Fprintf(&sb, "Recommendation: %s", resp.Recommendation)
	}
	return sb.String(), nil
}

func formatRiskLevels(raw json.RawMessage) (string, error) {
	var resp struct {
		Levels []map[string]any `json:"levels"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", err
	}
	if len(resp.Levels) == 0 {
		return "", fmt.Errorf("no levels in response")
	}

	var sb strings.Builder
	sb.WriteString("Tokenguard risk levels:\n\n")
	for _, l := range resp.Levels {
		fmt.Fprintf(&sb, "%s\n", strings.ToUpper(getString(l, "level")))
		if v := getString(l, "description"); v != "" {
			fmt.Fprintf(&sb, "  %s\n", v)
		}
		if v := getString(l, "recommendation"); v != "" {
			fmt.Fprintf(&sb, "  Action: %s\n", v)
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

func formatChainLists(raw json.RawMessage) (string, error) {
	var resp struct {
		ChainID json.Number `json:"chainId"`
		Lists   struct {
			Verified    []string `json:"verified"`
			Blacklisted []string `json:"blacklisted"`
			Risky       []string `json:"risky"`
		} `json:"lists"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Security lists for chain %s:\n\n", resp.ChainID.String())
	writeAddrSection(&sb, "Verified", resp.Lists.Verified)
	writeAddrSection(&sb, "Blacklisted", resp.Lists.Blacklisted)
	writeAddrSection(&sb, "Risky", resp.Lists.Risky)
	return strings.TrimRight(sb.String(), "\n"), nil
}

func writeAddrSection(sb *strings.Builder, title string, addrs []string) {
	fmt.Fprintf(sb, "%s (%d):\n", title, len(addrs))
	if len(addrs) == 0 {
		sb.WriteString("  (none)\n\n")
		return
	}
	for _, a := range addrs {
		fmt.Fprintf(sb, "  %s\n", a)
	}
	sb.WriteString("\n")
}

// getString extracts a string value from a map, trying multiple key names.
func getString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if s, ok := v.(string); ok {
				return s
			}
			if f, ok := v.(float64); ok {
				return fmt.Sprintf("%g", f)
			}
		}
	}
	return ""
}

// getFloat extracts a float64 value from a map, trying multiple key names.
func getFloat(m map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if f, ok := v.(float64); ok {
				return f, true
			}
		}
	}
	return 0, false
}
