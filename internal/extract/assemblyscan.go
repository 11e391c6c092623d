// internal/extract/assemblyscan.go
package extract

import (
	"strconv"
	"strings"

	"bactqc/internal/qc"
)

const (
	colTotalContig       = "total_contig"
	colN50ContigLength   = "n50_contig_length"
	colTotalContigLength = "total_contig_length"
)

// AssemblyScan reads the single-row assembly statistics TSV and emits
// contig_count, n50 and total_length (bp).
func AssemblyScan(sample, path string) (qc.Record, error) {
	rows, err := readTSV(path)
	if err != nil {
		return qc.Record{}, err
	}
	idx, err := headerIndex(path, rows[0], colTotalContig, colN50ContigLength, colTotalContigLength)
	if err != nil {
		return qc.Record{}, err
	}
	if len(rows) != 2 {
		return qc.Record{}, parseErrorf(path, "expected one data row, got %d", len(rows)-1)
	}
	row := rows[1]

	intCol := func(col string) (int64, error) {
		if len(row) <= idx[col] {
			return 0, parseErrorf(path, "missing value for %q", col)
		}
		v, err := strconv.ParseInt(strings.TrimSpace(row[idx[col]]), 10, 64)
		if err != nil {
			return 0, parseErrorf(path, "non-numeric %s %q", col, row[idx[col]])
		}
		return v, nil
	}

	contigs, err := intCol(colTotalContig)
	if err != nil {
		return qc.Record{}, err
	}
	n50, err := intCol(colN50ContigLength)
	if err != nil {
		return qc.Record{}, err
	}
	total, err := intCol(colTotalContigLength)
	if err != nil {
		return qc.Record{}, err
	}

	return qc.Record{Sample: sample, Check: qc.CheckAssemblyScan, Fields: map[string]any{
		qc.FieldContigCount: contigs,
		qc.FieldN50:         n50,
		qc.FieldTotalLength: total,
	}}, nil
}
