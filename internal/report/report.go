// internal/report/report.go
package report

import (
	"bactqc/internal/qc"
	"bactqc/internal/thresholds"
)

// Row is one report row in row-of-mapping form; Table is an ordered list of
// rows. Row order always equals the input sample order: no sorting, no
// deduplication.
type (
	Row   map[string]string
	Table []Row
)

// SampleRun pairs a sample's report with the threshold set it was judged by.
type SampleRun struct {
	Report     qc.SampleReport
	Thresholds thresholds.Set
}

// Results-table column names. Single- and multi-sample runs share the schema.
const (
	ColSample         = "sample"
	ColBrackenSpecies = "Detected_species_(Bracken)"
	ColNCBISpecies    = "Detected_species_(NCBI)"
	ColOverall        = "Overall"
)

var checkColumns = map[qc.Check]string{
	qc.CheckBracken:      "Bracken",
	qc.CheckMLST:         "MLST",
	qc.CheckCheckM:       "CheckM",
	qc.CheckAssemblyScan: "Assembly_scan",
	qc.CheckFastp:        "Fastp",
}

// ResultsColumns returns the fixed column order of the results table.
func ResultsColumns() []string {
	cols := []string{ColSample, ColBrackenSpecies, ColNCBISpecies}
	for _, c := range qc.CheckOrder {
		cols = append(cols, checkColumns[c])
	}
	return append(cols, ColOverall)
}

// ThresholdsColumns returns the fixed column order of the thresholds table:
// one value column and one provenance column per parameter.
func ThresholdsColumns() []string {
	cols := []string{ColSample}
	for _, p := range thresholds.Params {
		cols = append(cols, string(p), string(p)+"_source")
	}
	return cols
}

// Results builds the results table, one row per run in input order.
func Results(runs []SampleRun) Table {
	t := make(Table, 0, len(runs))
	for _, r := range runs {
		row := Row{
			ColSample:         r.Report.Sample,
			ColBrackenSpecies: r.Report.BrackenSpecies,
			ColNCBISpecies:    r.Report.NCBISpecies,
			ColOverall:        overall(r.Report.OverallPass),
		}
		for _, c := range qc.CheckOrder {
			row[checkColumns[c]] = string(r.Report.Outcome(c).Status)
		}
		t = append(t, row)
	}
	return t
}

// Thresholds builds the thresholds table: the numeric bound actually used
// per parameter plus its provenance, one row per run in input order.
func Thresholds(runs []SampleRun) Table {
	t := make(Table, 0, len(runs))
	for _, r := range runs {
		row := Row{ColSample: r.Report.Sample}
		for _, p := range thresholds.Params {
			row[string(p)] = r.Thresholds.FormatValue(p)
			row[string(p)+"_source"] = string(r.Thresholds.Source(p))
		}
		t = append(t, row)
	}
	return t
}

func overall(pass bool) string {
	if pass {
		return string(qc.Pass)
	}
	return string(qc.Fail)
}
