// pkg/api/report_v1.go
package api

// OutcomeV1 is the stable schema for one QC check outcome.
// Status is "Pass" | "Fail" | "MissingData".
type OutcomeV1 struct {
	Check     string `json:"check"`
	Value     string `json:"value,omitempty"`
	Threshold string `json:"threshold,omitempty"`
	Status    string `json:"status"`
}

// ResultsRowV1 is the stable per-sample results schema.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ResultsRowV1 struct {
	Sample         string      `json:"sample"`
	BrackenSpecies string      `json:"detected_species_bracken,omitempty"`
	NCBISpecies    string      `json:"detected_species_ncbi,omitempty"`
	GenusConflict  bool        `json:"genus_conflict,omitempty"`
	Checks         []OutcomeV1 `json:"checks"`
	Overall        string      `json:"overall"` // "Pass" | "Fail"
}

// ThresholdV1 is one effective threshold parameter for a sample.
// Source is "default" | "species_override".
type ThresholdV1 struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Source string  `json:"source"`
}

// ThresholdsRowV1 is the stable per-sample thresholds schema.
type ThresholdsRowV1 struct {
	Sample     string        `json:"sample"`
	Parameters []ThresholdV1 `json:"parameters"`
}
