// internal/output/json.go
package output

import (
	"encoding/json"
	"io"

	"bactqc/internal/qc"
	"bactqc/internal/report"
	"bactqc/internal/thresholds"
	"bactqc/pkg/api"
)

// ToAPIResultsRow converts a sample report to the stable wire schema (v1).
func ToAPIResultsRow(rep qc.SampleReport) api.ResultsRowV1 {
	row := api.ResultsRowV1{
		Sample:         rep.Sample,
		BrackenSpecies: rep.BrackenSpecies,
		NCBISpecies:    rep.NCBISpecies,
		GenusConflict:  rep.GenusConflict,
		Checks:         make([]api.OutcomeV1, 0, len(rep.Outcomes)),
		Overall:        string(qc.Fail),
	}
	if rep.OverallPass {
		row.Overall = string(qc.Pass)
	}
	for _, o := range rep.Outcomes {
		row.Checks = append(row.Checks, api.OutcomeV1{
			Check:     string(o.Check),
			Value:     o.Value,
			Threshold: o.Threshold,
			Status:    string(o.Status),
		})
	}
	return row
}

// ToAPIThresholdsRow converts a resolved threshold set to the wire schema.
func ToAPIThresholdsRow(sample string, set thresholds.Set) api.ThresholdsRowV1 {
	row := api.ThresholdsRowV1{
		Sample:     sample,
		Parameters: make([]api.ThresholdV1, 0, len(thresholds.Params)),
	}
	for _, p := range thresholds.Params {
		row.Parameters = append(row.Parameters, api.ThresholdV1{
			Name:   string(p),
			Value:  set.Value(p),
			Source: string(set.Source(p)),
		})
	}
	return row
}

// reportV1 is the combined JSON document for one run.
type reportV1 struct {
	Results    []api.ResultsRowV1    `json:"results"`
	Thresholds []api.ThresholdsRowV1 `json:"thresholds"`
}

// WriteJSON writes both tables as a single pretty-indented JSON document.
func WriteJSON(w io.Writer, runs []report.SampleRun) error {
	doc := reportV1{
		Results:    make([]api.ResultsRowV1, 0, len(runs)),
		Thresholds: make([]api.ThresholdsRowV1, 0, len(runs)),
	}
	for _, r := range runs {
		doc.Results = append(doc.Results, ToAPIResultsRow(r.Report))
		doc.Thresholds = append(doc.Thresholds, ToAPIThresholdsRow(r.Report.Sample, r.Thresholds))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
