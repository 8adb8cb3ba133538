package model

// Emissions source tags attached to every reported emissions figure. They
// record how the number was derived so consumers can audit it.
const (
	EmissionsCalculated  = "calculated"
	EmissionsUserEntered = "user_entered"
	EmissionsDisabled    = "disabled"
)

// Placeholder renewable-share figures carried over from the upstream dataset
// publication. These are static until per-source classification lands.
const (
	NationalRenewableShare = 65.5
	RegionRenewableShare   = 50.0
)

// KeyGrant is returned by the key-issuance endpoint. ExpiresAt is RFC 3339
// UTC with an explicit Z suffix.
type KeyGrant struct {
	APIKey    string `json:"api_key"`
	ExpiresAt string `json:"expires_at"`
}

// SourceGeneration is one entry of a region's per-source generation breakdown.
type SourceGeneration struct {
	Source        string  `json:"source"`
	GenerationMWh float64 `json:"generation_MWh"`
}

// NationalSummary aggregates generation and emissions across the whole
// dataset, including rows that carry no region.
type NationalSummary struct {
	TotalGeneration float64 `json:"total_generation"`
	TotalEmissions  float64 `json:"total_emissions"`
	EmissionsSource string  `json:"emissions_source"`
	RenewableShare  float64 `json:"renewable_share"`
}

// RegionSummary aggregates generation and emissions for a single region.
// BySource is empty (never null) when the dataset has no source column.
type RegionSummary struct {
	Region          string             `json:"region"`
	TotalGeneration float64            `json:"total_generation"`
	BySource        []SourceGeneration `json:"by_source"`
	TotalEmissions  float64            `json:"total_emissions"`
	EmissionsSource string             `json:"emissions_source"`
	RenewableShare  float64            `json:"renewable_share"`
}

// OverrideReceipt confirms a stored manual emissions value.
type OverrideReceipt struct {
	Scope string  `json:"scope"`
	Value float64 `json:"value"`
}
