// internal/thresholds/thresholds.go
package thresholds

import "strconv"

// Param names one tunable QC bound.
type Param string

const (
	MinPrimaryAbundance Param = "min_primary_abundance"
	MinCompleteness     Param = "min_completeness"
	MaxContamination    Param = "max_contamination"
	MaximumContigs      Param = "maximum_contigs"
	MinimumN50          Param = "minimum_n50"
	MinQ30Bases         Param = "min_q30_bases"
	MinCoverage         Param = "min_coverage"
)

// Params is the fixed parameter ordering used by reports.
var Params = [...]Param{
	MinPrimaryAbundance,
	MinCompleteness,
	MaxContamination,
	MaximumContigs,
	MinimumN50,
	MinQ30Bases,
	MinCoverage,
}

// Direction is the comparison sense of a parameter. Both bounds are
// inclusive: a value exactly at the threshold satisfies it.
type Direction int

const (
	AtLeast Direction = iota // observed >= bound
	AtMost                   // observed <= bound
)

// Direction returns the fixed comparison sense for a parameter.
func (p Param) Direction() Direction {
	switch p {
	case MaxContamination, MaximumContigs:
		return AtMost
	default:
		return AtLeast
	}
}

// Provenance records where an effective value came from.
type Provenance string

const (
	FromDefault  Provenance = "default"
	FromOverride Provenance = "species_override"
)

// Defaults are the caller-supplied global bounds, one per parameter.
type Defaults struct {
	MinPrimaryAbundance float64 // fraction, 0-1
	MinCompleteness     float64 // percent, 0-100
	MaxContamination    float64 // percent, 0-100
	MaximumContigs      int
	MinimumN50          int     // bp
	MinQ30Bases         float64 // fraction, 0-1
	MinCoverage         float64 // mean depth
}

// Entry is one effective bound plus its provenance.
type Entry struct {
	Value  float64
	Source Provenance
}

// Set is the effective threshold set for one sample: exactly one entry per
// parameter. Immutable after Resolve.
type Set struct {
	entries map[Param]Entry
}

// Value returns the effective bound for a parameter.
func (s Set) Value(p Param) float64 { return s.entries[p].Value }

// Source returns the provenance of the effective bound.
func (s Set) Source(p Param) Provenance { return s.entries[p].Source }

// Met reports whether an observed value satisfies the parameter's bound,
// inclusively in either direction.
func (s Set) Met(p Param, observed float64) bool {
	bound := s.entries[p].Value
	if p.Direction() == AtMost {
		return observed <= bound
	}
	return observed >= bound
}

// FormatValue renders a bound the way reports show it (no trailing zeros).
func (s Set) FormatValue(p Param) string {
	return strconv.FormatFloat(s.entries[p].Value, 'f', -1, 64)
}

// Resolve produces the effective Set for one sample. Each parameter takes the
// species override when the table has one for the (normalized) species, and
// the caller default otherwise. An empty or unknown species resolves entirely
// to defaults; resolution never fails.
func Resolve(d Defaults, species string, table SpeciesTable) Set {
	base := map[Param]float64{
		MinPrimaryAbundance: d.MinPrimaryAbundance,
		MinCompleteness:     d.MinCompleteness,
		MaxContamination:    d.MaxContamination,
		MaximumContigs:      float64(d.MaximumContigs),
		MinimumN50:          float64(d.MinimumN50),
		MinQ30Bases:         d.MinQ30Bases,
		MinCoverage:         d.MinCoverage,
	}
	overrides := table.lookup(species)

	entries := make(map[Param]Entry, len(Params))
	for _, p := range Params {
		if v, ok := overrides[p]; ok {
			entries[p] = Entry{Value: v, Source: FromOverride}
		} else {
			entries[p] = Entry{Value: base[p], Source: FromDefault}
		}
	}
	return Set{entries: entries}
}
