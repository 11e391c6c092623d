// internal/extract/mlst.go
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"bactqc/internal/qc"
)

var (
	fastaExt = regexp.MustCompile(`\.(fna|fasta|fa)(\.gz)?$`)
	// allele calls look like "abcZ(1)"; novel/unresolved calls carry "~",
	// "?", "-" or a non-numeric value inside the parentheses.
	alleleCall = regexp.MustCompile(`^[^(]+\(([^)]*)\)$`)
)

// MLST reads the headerless mlst TSV row (sample, scheme, ST, allele calls)
// and emits scheme, sequence_type and has_novel_alleles. The sample column's
// FASTA extension is stripped before it is compared against anything.
func MLST(sample, path string) (qc.Record, error) {
	rows, err := readTSV(path)
	if err != nil {
		return qc.Record{}, err
	}
	if len(rows) != 1 {
		return qc.Record{}, parseErrorf(path, "expected one row, got %d", len(rows))
	}
	row := rows[0]
	if len(row) < 3 {
		return qc.Record{}, parseErrorf(path, "expected at least 3 fields (sample, scheme, ST), got %d", len(row))
	}

	fileSample := fastaExt.ReplaceAllString(strings.TrimSpace(row[0]), "")
	scheme := strings.TrimSpace(row[1])
	st := strings.TrimSpace(row[2])
	alleles := make([]string, 0, len(row)-3)
	for _, a := range row[3:] {
		alleles = append(alleles, strings.TrimSpace(a))
	}

	novel := false
	for _, a := range alleles {
		if novelAllele(a) {
			novel = true
			break
		}
	}

	fields := map[string]any{
		qc.FieldScheme:          scheme,
		qc.FieldSequenceType:    st,
		qc.FieldHasNovelAlleles: novel,
		qc.FieldAlleles:         strings.Join(alleles, ";"),
		"source_sample":         fileSample,
	}
	return qc.Record{Sample: sample, Check: qc.CheckMLST, Fields: fields}, nil
}

func novelAllele(call string) bool {
	if call == "" || call == "-" {
		return true
	}
	inner := call
	if m := alleleCall.FindStringSubmatch(call); m != nil {
		inner = m[1]
	}
	if _, err := strconv.Atoi(inner); err != nil {
		return true
	}
	return false
}
