package dataset

import "time"

// GenerationRow is one record of the generation table. Region may be empty:
// such rows count toward national totals but are excluded from region
// enumeration. Source may be empty when the dataset has no source column.
type GenerationRow struct {
	Date   string
	Region string
	Source string
	MWh    float64
}

// EmissionRow is one record of the emissions table.
type EmissionRow struct {
	Date   string
	Region string
	TCO2   float64
}

// Tables is an immutable snapshot of the loaded dataset. A snapshot is never
// mutated after construction; reloads build a fresh one and swap the pointer.
type Tables struct {
	Generation []GenerationRow
	Emissions  []EmissionRow
	LoadedAt   time.Time
}

// Empty reports whether both tables contain no rows.
func (t *Tables) Empty() bool {
	return len(t.Generation) == 0 && len(t.Emissions) == 0
}
