package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer creates a configured MCP server with all Tokenguard tools registered.
func NewMCPServer(cfg Config) *server.MCPServer {
	s := server.NewMCPServer("tokenguard", "1.0.0")
	client := NewTokenguardClient(cfg)
	h := NewHandlers(client)

	s.AddTool(ToolCheckToken, h.HandleCheckToken)
	s.AddTool(ToolValidateToken, h.HandleValidateToken)
	s.AddTool(ToolGetRiskGuidance, h.HandleGetRiskGuidance)
	s.AddTool(ToolGetSecurityLists, h.HandleGetSecurityLists)

	return s
}
