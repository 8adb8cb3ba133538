package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/neisdata/neis/internal/model"
	"github.com/neisdata/neis/internal/service"
)

// registerTools registers all NEIS MCP tools on the given server.
func (s *MCPServer) registerTools(srv *server.MCPServer) {

	srv.AddTool(
		mcp.NewTool("neis_list_regions",
			mcp.WithDescription(
				"List every region present in the generation dataset. Region names are "+
					"exact, case-sensitive strings; use them verbatim in other tools.",
			),
			mcp.WithToolAnnotation(readOnlyAnnotation()),
		),
		s.handleListRegions,
	)

	srv.AddTool(
		mcp.NewTool("neis_national_summary",
			mcp.WithDescription(
				"National energy generation and emissions totals. Emissions resolve with "+
					"strict precedence: disabled (estimate_emissions=false) beats a manual "+
					"override, which beats the calculated dataset total.",
			),
			mcp.WithToolAnnotation(readOnlyAnnotation()),
			mcp.WithBoolean("estimate_emissions",
				mcp.Description("Set false to report emissions as 0 with source 'disabled' (default true)"),
			),
			mcp.WithBoolean("use_manual_override",
				mcp.Description("Set false to ignore any recorded manual override (default true)"),
			),
		),
		s.handleNationalSummary,
	)

	srv.AddTool(
		mcp.NewTool("neis_region_summary",
			mcp.WithDescription(
				"Generation total, per-source breakdown, and resolved emissions for one "+
					"region. Unknown regions are an error; names are case-sensitive.",
			),
			mcp.WithToolAnnotation(readOnlyAnnotation()),
			mcp.WithString("region",
				mcp.Required(),
				mcp.Description("Exact region name as returned by neis_list_regions"),
			),
			mcp.WithBoolean("estimate_emissions",
				mcp.Description("Set false to report emissions as 0 with source 'disabled' (default true)"),
			),
			mcp.WithBoolean("use_manual_override",
				mcp.Description("Set false to ignore any recorded manual override (default true)"),
			),
		),
		s.handleRegionSummary,
	)

	srv.AddTool(
		mcp.NewTool("neis_set_manual_emissions",
			mcp.WithDescription(
				"Record a manual emissions value (tonnes CO2) for a scope: 'national' or "+
					"a region name. The value must be non-negative; the last write for a "+
					"scope wins. The scope is stored exactly as given without checking it "+
					"against known regions.",
			),
			mcp.WithToolAnnotation(mutatingAnnotation()),
			mcp.WithString("scope",
				mcp.Required(),
				mcp.Description("'national' or an exact region name"),
			),
			mcp.WithNumber("value",
				mcp.Required(),
				mcp.Description("Emissions in tonnes CO2, must be >= 0"),
			),
		),
		s.handleSetManualEmissions,
	)
}

func (s *MCPServer) handleListRegions(
	ctx context.Context,
	request mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	return successJSON(map[string]interface{}{
		"regions": s.engine.Regions(),
	})
}

func (s *MCPServer) handleNationalSummary(
	ctx context.Context,
	request mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {

	estimate := request.GetBool("estimate_emissions", true)
	useOverride := request.GetBool("use_manual_override", true)

	emissions, source := s.resolver.Resolve(service.ScopeNational, estimate, useOverride)
	return successJSON(model.NationalSummary{
		TotalGeneration: s.engine.NationalGeneration(),
		TotalEmissions:  emissions,
		EmissionsSource: source,
		RenewableShare:  model.NationalRenewableShare,
	})
}

func (s *MCPServer) handleRegionSummary(
	ctx context.Context,
	request mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {

	region, err := request.RequireString("region")
	if err != nil {
		return toolError("missing required parameter %q", "region")
	}
	if !s.engine.HasRegion(region) {
		return toolError("region %q not found; use neis_list_regions for valid names", region)
	}

	estimate := request.GetBool("estimate_emissions", true)
	useOverride := request.GetBool("use_manual_override", true)

	generation, bySource := s.engine.RegionGeneration(region)
	emissions, source := s.resolver.Resolve(region, estimate, useOverride)
	return successJSON(model.RegionSummary{
		Region:          region,
		TotalGeneration: generation,
		BySource:        bySource,
		TotalEmissions:  emissions,
		EmissionsSource: source,
		RenewableShare:  model.RegionRenewableShare,
	})
}

func (s *MCPServer) handleSetManualEmissions(
	ctx context.Context,
	request mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {

	scope, err := request.RequireString("scope")
	if err != nil {
		return toolError("missing required parameter %q", "scope")
	}
	value, err := request.RequireFloat("value")
	if err != nil {
		return toolError("missing required parameter %q", "value")
	}

	if err := s.overrides.Set(scope, value); err != nil {
		return toolError("store override: %v", err)
	}
	return successJSON(model.OverrideReceipt{Scope: scope, Value: value})
}

// successJSON marshals data to JSON and returns it as a tool result.
func successJSON(data interface{}) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(b)), nil
}

// toolError returns a tool-level error result, visible to the client without
// terminating the MCP session.
func toolError(format string, args ...interface{}) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(fmt.Sprintf(format, args...)), nil
}

func readOnlyAnnotation() mcp.ToolAnnotation {
	return mcp.ToolAnnotation{ReadOnlyHint: boolPtr(true)}
}

func mutatingAnnotation() mcp.ToolAnnotation {
	return mcp.ToolAnnotation{ReadOnlyHint: boolPtr(false)}
}

func boolPtr(b bool) *bool {
	return &b
}
