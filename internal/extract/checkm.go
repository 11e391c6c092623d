// internal/extract/checkm.go
package extract

import (
	"strconv"
	"strings"

	"bactqc/internal/qc"
)

const (
	colBinID         = "Bin Id"
	colCompleteness  = "Completeness"
	colContamination = "Contamination"
)

// CheckM reads a checkm.tsv summary and emits completeness and contamination
// (percent, 0-100) for the named sample. The file may hold rows for many
// samples; a missing sample row is a ParseError.
func CheckM(sample, path string) (qc.Record, error) {
	rows, err := readTSV(path)
	if err != nil {
		return qc.Record{}, err
	}
	idx, err := headerIndex(path, rows[0], colBinID, colCompleteness, colContamination)
	if err != nil {
		return qc.Record{}, err
	}

	for i, row := range rows[1:] {
		if len(row) <= idx[colBinID] {
			continue
		}
		if strings.TrimSpace(row[idx[colBinID]]) != sample {
			continue
		}
		if len(row) <= idx[colCompleteness] || len(row) <= idx[colContamination] {
			return qc.Record{}, parseErrorf(path, "row %d: too few columns", i+2)
		}
		comp, err := strconv.ParseFloat(strings.TrimSpace(row[idx[colCompleteness]]), 64)
		if err != nil {
			return qc.Record{}, parseErrorf(path, "non-numeric completeness %q", row[idx[colCompleteness]])
		}
		contam, err := strconv.ParseFloat(strings.TrimSpace(row[idx[colContamination]]), 64)
		if err != nil {
			return qc.Record{}, parseErrorf(path, "non-numeric contamination %q", row[idx[colContamination]])
		}
		return qc.Record{Sample: sample, Check: qc.CheckCheckM, Fields: map[string]any{
			qc.FieldCompleteness:  comp,
			qc.FieldContamination: contam,
		}}, nil
	}
	return qc.Record{}, parseErrorf(path, "sample %q not found", sample)
}
