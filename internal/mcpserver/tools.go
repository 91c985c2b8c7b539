package mcpserver

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions for the Tokenguard MCP server.
// Descriptions are what the LLM reads to decide which tool to use.

var ToolCheckToken = mcp.NewTool("check_token",
	mcp.WithDescription(
		"Fast trust check for a token contract. "+
			"Answers immediately from curated security lists and scam-name patterns, "+
			"without any on-chain or external lookups. "+
			"Use this before showing a token to a user; use validate_token for a full assessment."),
	mcp.WithString("chain_id",
		mcp.Required(),
		mcp.Description("Numeric chain ID (e.g. '1' for Ethereum mainnet, '137' for Polygon)")),
	mcp.WithString("address",
		mcp.Required(),
		mcp.Description("Token contract address (e.g. '0xdAC1...')")),
	mcp.WithString("name",
		mcp.Description("Token name as shown in the wallet, enables scam-name screening")),
	mcp.WithString("symbol",
		mcp.Description("Token symbol, enables scam-symbol screening")),
)

var ToolValidateToken = mcp.NewTool("validate_token",
	mcp.WithDescription(
		"Full multi-stage risk assessment of a token contract. "+
			"Combines security lists, metadata pattern analysis, optional contract bytecode "+
			"inspection, and an external security registry into a 0-100 security score and a "+
			"risk level (verified/low/medium/high/critical). "+
			"Slower than check_token but far more thorough."),
	mcp.WithString("chain_id",
		mcp.Required(),
		mcp.Description("Numeric chain ID (e.g. '1' for Ethereum mainnet)")),
	mcp.WithString("address",
		mcp.Required(),
		mcp.Description("Token contract address (e.g. '0xdAC1...')")),
	mcp.WithString("name",
		mcp.Description("Token name for metadata analysis")),
	mcp.WithString("symbol",
		mcp.Description("Token symbol for metadata analysis")),
	mcp.WithNumber("decimals",
		mcp.Description("Token decimals, flagged when implausible (0 or above 24)")),
	mcp.WithBoolean("strict",
		mcp.Description("Strict mode: lowers the achievable score for tokens with no verification signal")),
)

var ToolGetRiskGuidance = mcp.NewTool("get_risk_guidance",
	mcp.WithDescription(
		"Explain the Tokenguard risk levels. "+
			"Returns every level with a plain-language description and a recommended action, "+
			"so you can translate a validation result into advice for the user."),
)

var ToolGetSecurityLists = mcp.NewTool("get_security_lists",
	mcp.WithDescription(
		"Fetch the curated security lists for a chain: verified token deployments, "+
			"blacklisted scam contracts, and risky contracts under review."),
	mcp.WithString("chain_id",
		mcp.Required(),
		mcp.Description("Numeric chain ID (e.g. '1' for Ethereum mainnet)")),
)
