package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"rigkpi/core"
	"rigkpi/internal/contract"
	"rigkpi/internal/textnorm"
	"rigkpi/schema"

	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

// applyPeriodOverrides copies the shared period and rig arguments onto a
// cloned config.
func applyPeriodOverrides(cfg *contract.Config, request mcp.CallToolRequest) {
	if y := request.GetInt("year", 0); y > 0 {
		cfg.Year = y
	}
	if m := request.GetInt("month", 0); m > 0 {
		cfg.Month = m
	}
	if rigs := request.GetString("rigs", ""); rigs != "" {
		cfg.IncludeRigs = contract.ParseRigList(rigs)
	}
}

func (h *toolHandler) handleGetDailyMetrics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.InputPath = request.GetString("input_path", "")
	cfg.ByShift = request.GetBool("by_shift", false)
	applyPeriodOverrides(cfg, request)

	rows, stats, err := core.GetDailyResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("aggregation failed: %v", err)), nil
	}
	if l := request.GetInt("limit", 0); l > 0 && l < len(rows) {
		rows = rows[:l]
	}

	payload := struct {
		Rows  []schema.DailyMetrics `json:"filas"`
		Stats schema.RowStats       `json:"estadisticas"`
	}{Rows: rows, Stats: stats}
	jsonData, _ := json.MarshalIndent(payload, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetRigSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.InputPath = request.GetString("input_path", "")
	applyPeriodOverrides(cfg, request)

	rows, err := core.GetSummaryResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("aggregation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(rows, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetGapAttribution(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.BaselinePath = request.GetString("baseline_path", "")
	cfg.ComparisonPath = request.GetString("comparison_path", "")
	if m := request.GetString("metric", ""); m != "" {
		cfg.Metric = schema.Metric(m)
	}
	if y := request.GetInt("compare_year", 0); y > 0 {
		cfg.CompareYear = y
	}
	if m := request.GetInt("compare_month", 0); m > 0 {
		cfg.CompareMonth = m
	}

	if target := request.GetFloat("target", 0); target != 0 {
		ratio, ok := textnorm.ParseRatio(target)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid target value: %v", target)), nil
		}
		if cfg.Metric == schema.MetricAvailability {
			cfg.AvailabilityTarget = &ratio
		} else {
			cfg.UEBDTarget = &ratio
		}
	}

	result, err := core.GetGapResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("gap attribution failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
