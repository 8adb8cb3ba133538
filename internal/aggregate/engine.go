// Package aggregate computes national and per-region totals over the loaded
// dataset. All operations are pure reads against the provider's current
// snapshot and are safe for unbounded concurrent use.
package aggregate

import (
	"sort"

	"github.com/neisdata/neis/internal/dataset"
	"github.com/neisdata/neis/internal/model"
)

// Engine answers aggregation queries against the dataset provider.
type Engine struct {
	provider *dataset.Provider
}

// NewEngine creates an Engine bound to the given provider.
func NewEngine(p *dataset.Provider) *Engine {
	return &Engine{provider: p}
}

// NationalGeneration sums the generation column across every row, including
// rows without a region.
func (e *Engine) NationalGeneration() float64 {
	var total float64
	for _, row := range e.provider.Snapshot().Generation {
		total += row.MWh
	}
	return total
}

// NationalEmissions sums the emissions column across every row. An absent
// emissions table reads as zero.
func (e *Engine) NationalEmissions() float64 {
	var total float64
	for _, row := range e.provider.Snapshot().Emissions {
		total += row.TCO2
	}
	return total
}

// RegionGeneration returns the generation total for a region and its
// per-source breakdown. The breakdown has one entry per distinct source
// label, sorted by label for stable output; rows without a source label are
// excluded from the breakdown but still count toward the total.
func (e *Engine) RegionGeneration(region string) (float64, []model.SourceGeneration) {
	var total float64
	bySource := map[string]float64{}
	for _, row := range e.provider.Snapshot().Generation {
		if row.Region != region {
			continue
		}
		total += row.MWh
		if row.Source != "" {
			bySource[row.Source] += row.MWh
		}
	}

	breakdown := make([]model.SourceGeneration, 0, len(bySource))
	for source, mwh := range bySource {
		breakdown = append(breakdown, model.SourceGeneration{Source: source, GenerationMWh: mwh})
	}
	sort.Slice(breakdown, func(i, j int) bool { return breakdown[i].Source < breakdown[j].Source })
	return total, breakdown
}

// RegionEmissions sums emissions rows matching the region. Unknown regions
// read as zero.
func (e *Engine) RegionEmissions(region string) float64 {
	var total float64
	for _, row := range e.provider.Snapshot().Emissions {
		if row.Region == region {
			total += row.TCO2
		}
	}
	return total
}

// KnownRegions returns every distinct non-empty region identifier in the
// generation table. Region names are exact, case-sensitive strings.
func (e *Engine) KnownRegions() map[string]struct{} {
	regions := map[string]struct{}{}
	for _, row := range e.provider.Snapshot().Generation {
		if row.Region != "" {
			regions[row.Region] = struct{}{}
		}
	}
	return regions
}

// HasRegion reports whether the generation table contains the region.
func (e *Engine) HasRegion(region string) bool {
	_, ok := e.KnownRegions()[region]
	return ok
}

// Regions returns the known regions as a sorted slice, for listings.
func (e *Engine) Regions() []string {
	set := e.KnownRegions()
	out := make([]string, 0, len(set))
	for r := range set {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}
