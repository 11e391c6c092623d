// internal/extract/bracken.go
package extract

import (
	"sort"
	"strconv"
	"strings"

	"bactqc/internal/qc"
)

// Bracken columns required from the ranked abundance table.
const (
	colName     = "name"
	colTaxid    = "taxonomy_id"
	colFraction = "fraction_total_reads"
)

// Bracken reads a ranked abundance table and emits primary/secondary species
// fields. Taxa are ranked by descending fraction with a stable tie-break
// (upstream row order preserved among equal abundances). A single-taxon
// report is valid: the secondary fields are simply absent.
func Bracken(sample, path string) (qc.Record, error) {
	rows, err := readTSV(path)
	if err != nil {
		return qc.Record{}, err
	}
	idx, err := headerIndex(path, rows[0], colName, colTaxid, colFraction)
	if err != nil {
		return qc.Record{}, err
	}

	type taxon struct {
		name     string
		taxid    string
		fraction float64
	}
	var taxa []taxon
	for i, row := range rows[1:] {
		if len(row) <= idx[colFraction] || len(row) <= idx[colName] || len(row) <= idx[colTaxid] {
			return qc.Record{}, parseErrorf(path, "row %d: too few columns", i+2)
		}
		frac, err := strconv.ParseFloat(strings.TrimSpace(row[idx[colFraction]]), 64)
		if err != nil {
			return qc.Record{}, parseErrorf(path, "row %d: non-numeric %s %q", i+2, colFraction, row[idx[colFraction]])
		}
		taxa = append(taxa, taxon{
			name:     strings.TrimSpace(row[idx[colName]]),
			taxid:    strings.TrimSpace(row[idx[colTaxid]]),
			fraction: frac,
		})
	}
	if len(taxa) == 0 {
		return qc.Record{}, parseErrorf(path, "no abundance rows")
	}
	sort.SliceStable(taxa, func(i, j int) bool { return taxa[i].fraction > taxa[j].fraction })

	fields := map[string]any{
		qc.FieldPrimarySpecies:   taxa[0].name,
		qc.FieldPrimaryAbundance: taxa[0].fraction,
		qc.FieldPrimaryTaxid:     taxa[0].taxid,
	}
	if len(taxa) > 1 {
		fields[qc.FieldSecondarySpecies] = taxa[1].name
		fields[qc.FieldSecondaryAbundance] = taxa[1].fraction
		fields[qc.FieldGenusConflict] = genusConflict(taxa[0].name, taxa[1].name)
	} else {
		fields[qc.FieldGenusConflict] = false
	}
	return qc.Record{Sample: sample, Check: qc.CheckBracken, Fields: fields}, nil
}

// genusConflict flags the Escherichia/Shigella ambiguity: the two genera are
// near-indistinguishable by k-mer classification, so either split across the
// top two taxa is reported rather than trusted.
func genusConflict(primary, secondary string) bool {
	pg := firstWord(primary)
	sg := firstWord(secondary)
	pair := map[string]struct{}{pg: {}, sg: {}}
	_, hasE := pair["Escherichia"]
	_, hasS := pair["Shigella"]
	return hasE && hasS && pg != sg
}

func firstWord(s string) string {
	f := strings.Fields(s)
	if len(f) == 0 {
		return ""
	}
	return f[0]
}
