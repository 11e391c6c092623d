// internal/qc/qc.go
package qc

import "github.com/spf13/cast"

// Check names one of the five upstream tools judged per sample.
type Check string

const (
	CheckBracken      Check = "bracken"
	CheckMLST         Check = "mlst"
	CheckCheckM       Check = "checkm"
	CheckAssemblyScan Check = "assembly_scan"
	CheckFastp        Check = "fastp"
)

// CheckOrder is the fixed report ordering. No check depends on another;
// the order only pins report columns.
var CheckOrder = [...]Check{CheckBracken, CheckMLST, CheckCheckM, CheckAssemblyScan, CheckFastp}

// Status is the tri-state outcome of one check.
type Status string

const (
	Pass        Status = "Pass"
	Fail        Status = "Fail"
	MissingData Status = "MissingData"
)

// Well-known Record field names.
const (
	FieldPrimarySpecies     = "primary_species"
	FieldPrimaryAbundance   = "primary_abundance"
	FieldPrimaryTaxid       = "primary_taxid"
	FieldSecondarySpecies   = "secondary_species"
	FieldSecondaryAbundance = "secondary_abundance"
	FieldGenusConflict      = "genus_conflict"
	FieldScheme             = "scheme"
	FieldSequenceType       = "sequence_type"
	FieldHasNovelAlleles    = "has_novel_alleles"
	FieldAlleles            = "alleles"
	FieldCompleteness       = "completeness"
	FieldContamination      = "contamination"
	FieldContigCount        = "contig_count"
	FieldN50                = "n50"
	FieldTotalLength        = "total_length"
	FieldQ30Rate            = "q30_rate"
	FieldCoverage           = "coverage"
)

// Record is the normalized output of one extractor: one tool, one sample.
// Fields hold numeric or categorical values; a required field that could not
// be derived is simply absent (see Engine's MissingData policy).
type Record struct {
	Sample string
	Check  Check
	Fields map[string]any
}

// Has reports whether a field is present.
func (r Record) Has(name string) bool {
	_, ok := r.Fields[name]
	return ok
}

// Float returns a field coerced to float64 and whether it was present
// and numeric.
func (r Record) Float(name string) (float64, bool) {
	v, ok := r.Fields[name]
	if !ok {
		return 0, false
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Int returns a field coerced to int and whether it was present and numeric.
func (r Record) Int(name string) (int, bool) {
	v, ok := r.Fields[name]
	if !ok {
		return 0, false
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// String returns a field coerced to string ("" when absent).
func (r Record) String(name string) string {
	v, ok := r.Fields[name]
	if !ok {
		return ""
	}
	return cast.ToString(v)
}

// Bool returns a field coerced to bool (false when absent).
func (r Record) Bool(name string) bool {
	v, ok := r.Fields[name]
	if !ok {
		return false
	}
	return cast.ToBool(v)
}

// Outcome is the result of evaluating one check against its thresholds.
// Status is a pure function of Value and Threshold; there is no hidden state.
type Outcome struct {
	Check     Check
	Value     string // observed value, possibly composite ("species @ 0.93")
	Threshold string // bound(s) actually applied
	Status    Status
}

// GenomeSize carries the NCBI expected-size bounds for the detected taxon.
// Informational only; it does not feed any pass/fail decision.
type GenomeSize struct {
	Known          bool
	ExpectedLength int64
	MinimumLength  int64
	MaximumLength  int64
	WithinBounds   bool
}

// SampleReport aggregates all check outcomes for one sample. It is built
// fresh per sample per run and never mutated afterwards.
type SampleReport struct {
	Sample         string
	Outcomes       []Outcome // in CheckOrder
	BrackenSpecies string
	NCBISpecies    string
	GenusConflict  bool
	GenomeSize     GenomeSize
	OverallPass    bool
}

// Outcome returns the outcome for a named check (zero Outcome if absent).
func (s SampleReport) Outcome(c Check) Outcome {
	for _, o := range s.Outcomes {
		if o.Check == c {
			return o
		}
	}
	return Outcome{Check: c, Status: MissingData}
}
