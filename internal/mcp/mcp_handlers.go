package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/huangsam/scorecard/core"
	"github.com/huangsam/scorecard/internal/contract"
	"github.com/huangsam/scorecard/internal/outwriter"
	"github.com/huangsam/scorecard/internal/rubric"
	"github.com/huangsam/scorecard/internal/submission"
	"github.com/huangsam/scorecard/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

// applyPolicy overrides the support policy when the request names a valid one.
func applyPolicy(cfg *contract.Config, request mcp.CallToolRequest) error {
	p := request.GetString("support_policy", "")
	if p == "" {
		return nil
	}
	policy := schema.SupportPolicy(p)
	if _, ok := schema.ValidSupportPolicies[policy]; !ok {
		return fmt.Errorf("invalid support policy '%s'. must be three-tier, two-tier", p)
	}
	cfg.SupportPolicy = policy
	return nil
}

func (h *toolHandler) handleScoreSubmission(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := applyPolicy(cfg, request); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cfg.Flagged = request.GetBool("flagged", cfg.Flagged)
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	raw := request.GetString("submission", "")
	if raw == "" {
		return mcp.NewToolResultError("submission is required"), nil
	}
	subs, err := submission.Parse("submission", []byte(raw))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid submission: %v", err)), nil
	}
	if len(subs) == 0 {
		return mcp.NewToolResultError(submission.ErrNoSubmissions.Error()), nil
	}

	result, _, err := core.GetScoringResults(core.WithSuppressHeader(ctx), cfg, h.mgr, subs)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleClassifyPercentage(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := applyPolicy(cfg, request); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	pct := request.GetFloat("percentage", math.NaN())
	if math.IsNaN(pct) || pct < 0 || pct > 100 {
		return mcp.NewToolResultError(core.ErrInvalidPercentage.Error()), nil
	}

	c, err := core.ClassifyPercentage(cfg, pct)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("classification failed: %v", err)), nil
	}

	policy := cfg.SupportPolicy
	if policy == "" {
		policy = schema.ThreeTierPolicy
	}
	jsonData, _ := json.MarshalIndent(struct {
		PercentageScore float64              `json:"percentage_score"`
		Policy          schema.SupportPolicy `json:"support_policy"`
		schema.Classification
	}{pct, policy, c}, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetRubric(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r, err := rubric.Resolve(h.baseCfg.RubricPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load rubric: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(outwriter.NewRubricView(r), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
