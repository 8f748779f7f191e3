package models

// Priority tiers, ordered from most to least urgent.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// SectorGeneral is the fallback sector when no keyword matches.
const SectorGeneral = "general"

// ClassificationResult holds sector labels and a priority tier for a piece of text.
// Sectors is never empty; Priority is always one of the three tiers.
type ClassificationResult struct {
	Sectors  []string `json:"sectors"`
	Priority string   `json:"priority"`
}

// EntityBundle holds the five independent entity sets mined from raw text.
// Each slice is deduplicated; ordering within a slice is not guaranteed.
type EntityBundle struct {
	Locations     []string `json:"locations"`
	Organizations []string `json:"organizations"`
	Disasters     []string `json:"disasters"`
	Dates         []string `json:"dates"`
	Amounts       []string `json:"amounts"`
}
