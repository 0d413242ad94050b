// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"rigkpi/internal/contract"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the rigkpi MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Rig KPI Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_daily_metrics ---
	s.AddTool(mcp.NewTool("get_daily_metrics",
		mcp.WithDescription("Aggregate an equipment-state log into Availability and UEBD per rig and operational day."),
		mcp.WithString("input_path", mcp.Description("Path to the delimited events file."), mcp.Required()),
		mcp.WithNumber("year", mcp.Description("Restrict the aggregation to this year.")),
		mcp.WithNumber("month", mcp.Description("Restrict the aggregation to this month (1-12, requires year).")),
		mcp.WithString("rigs", mcp.Description("Comma-separated list of rigs to include (empty means all).")),
		mcp.WithBoolean("by_shift", mcp.Description("Break daily rows down by shift.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of rows returned.")),
	), h.handleGetDailyMetrics)

	// --- 2. Tool: get_rig_summary ---
	s.AddTool(mcp.NewTool("get_rig_summary",
		mcp.WithDescription("Condense an equipment-state log into one row per rig plus a fleet TOTAL row."),
		mcp.WithString("input_path", mcp.Description("Path to the delimited events file."), mcp.Required()),
		mcp.WithNumber("year", mcp.Description("Restrict the aggregation to this year.")),
		mcp.WithNumber("month", mcp.Description("Restrict the aggregation to this month (1-12, requires year).")),
		mcp.WithString("rigs", mcp.Description("Comma-separated list of rigs to include (empty means all).")),
	), h.handleGetRigSummary)

	// --- 3. Tool: get_gap_attribution ---
	s.AddTool(mcp.NewTool("get_gap_attribution",
		mcp.WithDescription("Attribute a KPI gap between two periods to the delay codes behind it."),
		mcp.WithString("baseline_path", mcp.Description("Path to the baseline period events file."), mcp.Required()),
		mcp.WithString("comparison_path", mcp.Description("Path to the comparison period events file."), mcp.Required()),
		mcp.WithString("metric", mcp.Description("KPI whose gap is attributed. Defaults to 'uebd'."), mcp.Enum("disponibilidad", "uebd")),
		mcp.WithNumber("compare_year", mcp.Description("Restrict the comparison period to this year.")),
		mcp.WithNumber("compare_month", mcp.Description("Restrict the comparison period to this month (1-12).")),
		mcp.WithNumber("target", mcp.Description("Objective ratio for the metric (0.9 and 90 both mean 90%). Defaults to the baseline's realized ratio.")),
	), h.handleGetGapAttribution)

	return s
}

// StartMCPServer starts the rigkpi MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
