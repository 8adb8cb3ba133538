package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/neisdata/neis/internal/aggregate"
	"github.com/neisdata/neis/internal/model"
	"github.com/neisdata/neis/internal/service"
)

// EnergyHandler serves the national and regional energy summaries.
type EnergyHandler struct {
	engine   *aggregate.Engine
	resolver *service.EmissionsResolver
}

// NewEnergyHandler creates an EnergyHandler.
func NewEnergyHandler(engine *aggregate.Engine, resolver *service.EmissionsResolver) *EnergyHandler {
	return &EnergyHandler{engine: engine, resolver: resolver}
}

// NationalSummary returns the national generation and emissions totals.
// The two boolean query parameters default to true:
//   - estimate_emissions=false forces emissions to 0 with source "disabled"
//   - use_manual_override=false skips any recorded override
//
// GET /api/energy/summary
func (h *EnergyHandler) NationalSummary(w http.ResponseWriter, r *http.Request) {
	estimate := queryBool(r, "estimate_emissions", true)
	useOverride := queryBool(r, "use_manual_override", true)

	emissions, source := h.resolver.Resolve(service.ScopeNational, estimate, useOverride)
	writeData(w, http.StatusOK, model.NationalSummary{
		TotalGeneration: h.engine.NationalGeneration(),
		TotalEmissions:  emissions,
		EmissionsSource: source,
		RenewableShare:  model.NationalRenewableShare,
	})
}

// RegionSummary returns generation, per-source breakdown, and resolved
// emissions for one region. The region name is matched exactly as given in
// the path, with no case folding; unknown regions are a 404 and no emissions
// resolution happens for them, even when an override exists under that name.
// GET /api/energy/region/{name}
func (h *EnergyHandler) RegionSummary(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !h.engine.HasRegion(name) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Region '%s' not found.", name))
		return
	}

	estimate := queryBool(r, "estimate_emissions", true)
	useOverride := queryBool(r, "use_manual_override", true)

	generation, bySource := h.engine.RegionGeneration(name)
	emissions, source := h.resolver.Resolve(name, estimate, useOverride)
	writeData(w, http.StatusOK, model.RegionSummary{
		Region:          name,
		TotalGeneration: generation,
		BySource:        bySource,
		TotalEmissions:  emissions,
		EmissionsSource: source,
		RenewableShare:  model.RegionRenewableShare,
	})
}

// Examples returns example usage URLs. Unauthenticated, for discoverability.
// GET /api/energy/examples
func (h *EnergyHandler) Examples(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.APIResponse{
		Status: "success",
		Data: map[string]string{
			"generate_key":     "/api/generate-key",
			"national_summary": "/api/energy/summary",
			"region_summary":   "/api/energy/region/Nairobi",
			"manual_emissions": "/api/energy/emissions/manual",
		},
		Message: "Fetch your API key from /api/generate-key and include it in header 'X-API-Key'.",
	})
}
