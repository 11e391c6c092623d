// internal/engine/aggregate.go
package engine

import "bactqc/internal/qc"

// Inputs carries the extraction results for one sample. A check present in
// Errors (or absent from both maps) had no usable metric record; its outcome
// degrades to MissingData instead of aborting the sample.
type Inputs struct {
	Records map[qc.Check]qc.Record
	Errors  map[qc.Check]error

	// Informational context resolved by the caller.
	Organism   string
	GenomeSize qc.GenomeSize
}

// Aggregate runs all five checks in the fixed order and combines them into a
// SampleReport. Overall passes iff every outcome is Pass; any Fail or
// MissingData fails the sample.
func (e *Engine) Aggregate(sample string, in Inputs) qc.SampleReport {
	rep := qc.SampleReport{
		Sample:      sample,
		Outcomes:    make([]qc.Outcome, 0, len(qc.CheckOrder)),
		NCBISpecies: in.Organism,
		GenomeSize:  in.GenomeSize,
		OverallPass: true,
	}
	for _, check := range qc.CheckOrder {
		rec, ok := in.Records[check]
		if _, failed := in.Errors[check]; failed {
			ok = false
		}
		out := e.Evaluate(check, rec, ok)
		if out.Status != qc.Pass {
			rep.OverallPass = false
		}
		rep.Outcomes = append(rep.Outcomes, out)
	}
	if rec, ok := in.Records[qc.CheckBracken]; ok {
		rep.BrackenSpecies = rec.String(qc.FieldPrimarySpecies)
		rep.GenusConflict = rec.Bool(qc.FieldGenusConflict)
	}
	return rep
}
