// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/scorecard/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Scorecard MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Scorecard Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: score_submission ---
	s.AddTool(mcp.NewTool("score_submission",
		mcp.WithDescription("Score one or more compliance submissions against the active rubric and rank them."),
		mcp.WithString("submission", mcp.Description("Submission document as JSON or YAML: a single submission or a 'submissions' list."), mcp.Required()),
		mcp.WithString("support_policy", mcp.Description("Support designation policy. Defaults to the server configuration."), mcp.Enum("three-tier", "two-tier")),
		mcp.WithBoolean("flagged", mcp.Description("Only return organizations designated for Y-USA Support.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleScoreSubmission)

	// --- 2. Tool: classify_percentage ---
	s.AddTool(mcp.NewTool("classify_percentage",
		mcp.WithDescription("Classify a percentage score into a performance category and support designation."),
		mcp.WithNumber("percentage", mcp.Description("Percentage score between 0 and 100."), mcp.Required()),
		mcp.WithString("support_policy", mcp.Description("Support designation policy."), mcp.Enum("three-tier", "two-tier")),
	), h.handleClassifyPercentage)

	// --- 3. Tool: get_rubric ---
	s.AddTool(mcp.NewTool("get_rubric",
		mcp.WithDescription("Return the sections, questions and metric thresholds of the active rubric."),
	), h.handleGetRubric)

	return s
}

// StartMCPServer starts the Scorecard MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
