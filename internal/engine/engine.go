// internal/engine/engine.go
package engine

import (
	"fmt"
	"strconv"

	"bactqc/internal/qc"
	"bactqc/internal/thresholds"
)

// Engine evaluates metric records against one effective threshold set.
// It is stateless beyond its configuration; every method is a pure function
// of its inputs.
type Engine struct {
	set thresholds.Set
}

// New creates an Engine bound to one sample's resolved thresholds.
func New(set thresholds.Set) *Engine { return &Engine{set: set} }

// Evaluate applies one metric record against the threshold set. A record
// whose required comparison fields are absent yields MissingData, never a
// silent pass. Equality satisfies the bound in both directions.
func (e *Engine) Evaluate(check qc.Check, rec qc.Record, present bool) qc.Outcome {
	switch check {
	case qc.CheckBracken:
		return e.bracken(rec, present)
	case qc.CheckMLST:
		return e.mlst(rec, present)
	case qc.CheckCheckM:
		return e.checkm(rec, present)
	case qc.CheckAssemblyScan:
		return e.assemblyScan(rec, present)
	case qc.CheckFastp:
		return e.fastp(rec, present)
	}
	return qc.Outcome{Check: check, Status: qc.MissingData}
}

func (e *Engine) bracken(rec qc.Record, present bool) qc.Outcome {
	out := qc.Outcome{
		Check:     qc.CheckBracken,
		Threshold: "abundance ≥ " + e.set.FormatValue(thresholds.MinPrimaryAbundance),
	}
	if !present {
		out.Status = qc.MissingData
		return out
	}
	ab, ok := rec.Float(qc.FieldPrimaryAbundance)
	if !ok {
		out.Status = qc.MissingData
		return out
	}
	out.Value = fmt.Sprintf("%s @ %s", rec.String(qc.FieldPrimarySpecies), formatFloat(ab))
	out.Status = status(e.set.Met(thresholds.MinPrimaryAbundance, ab))
	return out
}

// mlst passes iff a sequence type was resolved and no allele call is novel.
// An unresolved type is a Fail, not MissingData: the absence of a clean type
// is itself a quality signal.
func (e *Engine) mlst(rec qc.Record, present bool) qc.Outcome {
	out := qc.Outcome{Check: qc.CheckMLST, Threshold: "ST resolved, no novel alleles"}
	if !present || !rec.Has(qc.FieldSequenceType) {
		out.Status = qc.MissingData
		return out
	}
	st := rec.String(qc.FieldSequenceType)
	out.Value = fmt.Sprintf("%s ST%s", rec.String(qc.FieldScheme), st)
	out.Status = status(stResolved(st) && !rec.Bool(qc.FieldHasNovelAlleles))
	return out
}

func (e *Engine) checkm(rec qc.Record, present bool) qc.Outcome {
	out := qc.Outcome{
		Check: qc.CheckCheckM,
		Threshold: fmt.Sprintf("completeness ≥ %s, contamination ≤ %s",
			e.set.FormatValue(thresholds.MinCompleteness),
			e.set.FormatValue(thresholds.MaxContamination)),
	}
	if !present {
		out.Status = qc.MissingData
		return out
	}
	comp, okC := rec.Float(qc.FieldCompleteness)
	contam, okT := rec.Float(qc.FieldContamination)
	if !okC || !okT {
		out.Status = qc.MissingData
		return out
	}
	out.Value = fmt.Sprintf("completeness %s, contamination %s", formatFloat(comp), formatFloat(contam))
	out.Status = status(e.set.Met(thresholds.MinCompleteness, comp) &&
		e.set.Met(thresholds.MaxContamination, contam))
	return out
}

func (e *Engine) assemblyScan(rec qc.Record, present bool) qc.Outcome {
	out := qc.Outcome{
		Check: qc.CheckAssemblyScan,
		Threshold: fmt.Sprintf("contigs ≤ %s, N50 ≥ %s",
			e.set.FormatValue(thresholds.MaximumContigs),
			e.set.FormatValue(thresholds.MinimumN50)),
	}
	if !present {
		out.Status = qc.MissingData
		return out
	}
	contigs, okC := rec.Int(qc.FieldContigCount)
	n50, okN := rec.Int(qc.FieldN50)
	if !okC || !okN {
		out.Status = qc.MissingData
		return out
	}
	out.Value = fmt.Sprintf("%d contigs, N50 %d", contigs, n50)
	out.Status = status(e.set.Met(thresholds.MaximumContigs, float64(contigs)) &&
		e.set.Met(thresholds.MinimumN50, float64(n50)))
	return out
}

func (e *Engine) fastp(rec qc.Record, present bool) qc.Outcome {
	out := qc.Outcome{
		Check: qc.CheckFastp,
		Threshold: fmt.Sprintf("Q30 ≥ %s, coverage ≥ %s",
			e.set.FormatValue(thresholds.MinQ30Bases),
			e.set.FormatValue(thresholds.MinCoverage)),
	}
	if !present {
		out.Status = qc.MissingData
		return out
	}
	q30, okQ := rec.Float(qc.FieldQ30Rate)
	cov, okC := rec.Float(qc.FieldCoverage)
	if !okQ || !okC {
		out.Status = qc.MissingData
		return out
	}
	out.Value = fmt.Sprintf("Q30 %s, coverage %sx", formatFloat(q30), formatFloat(cov))
	out.Status = status(e.set.Met(thresholds.MinQ30Bases, q30) &&
		e.set.Met(thresholds.MinCoverage, cov))
	return out
}

func status(met bool) qc.Status {
	if met {
		return qc.Pass
	}
	return qc.Fail
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func stResolved(st string) bool {
	if st == "" || st == "-" {
		return false
	}
	_, err := strconv.Atoi(st)
	return err == nil
}
