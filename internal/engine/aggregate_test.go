// internal/engine/aggregate_test.go
package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bactqc/internal/qc"
)

func passingInputs() Inputs {
	return Inputs{
		Records: map[qc.Check]qc.Record{
			qc.CheckBracken: record(qc.CheckBracken, map[string]any{
				qc.FieldPrimarySpecies:   "Escherichia coli",
				qc.FieldPrimaryAbundance: 0.94,
			}),
			qc.CheckMLST: record(qc.CheckMLST, map[string]any{
				qc.FieldScheme:          "ecoli",
				qc.FieldSequenceType:    "131",
				qc.FieldHasNovelAlleles: false,
			}),
			qc.CheckCheckM: record(qc.CheckCheckM, map[string]any{
				qc.FieldCompleteness:  99.1,
				qc.FieldContamination: 0.3,
			}),
			qc.CheckAssemblyScan: record(qc.CheckAssemblyScan, map[string]any{
				qc.FieldContigCount: 87,
				qc.FieldN50:         145677,
			}),
			qc.CheckFastp: record(qc.CheckFastp, map[string]any{
				qc.FieldQ30Rate:  0.96,
				qc.FieldCoverage: 30.0,
			}),
		},
		Errors: map[qc.Check]error{},
	}
}

func TestAggregateAllPass(t *testing.T) {
	rep := New(testSet(t, "", nil)).Aggregate("s1", passingInputs())

	assert.Equal(t, "s1", rep.Sample)
	assert.True(t, rep.OverallPass)
	assert.Equal(t, "Escherichia coli", rep.BrackenSpecies)

	require.Len(t, rep.Outcomes, len(qc.CheckOrder))
	for i, c := range qc.CheckOrder {
		assert.Equal(t, c, rep.Outcomes[i].Check, "check order position %d", i)
		assert.Equal(t, qc.Pass, rep.Outcomes[i].Status)
	}
}

func TestAggregateExtractorFailureDegrades(t *testing.T) {
	in := passingInputs()
	delete(in.Records, qc.CheckCheckM)
	in.Errors[qc.CheckCheckM] = errors.New("checkm.tsv: file not found")

	rep := New(testSet(t, "", nil)).Aggregate("s1", in)

	// The failed check degrades, the rest of the sample still evaluates.
	assert.Equal(t, qc.MissingData, rep.Outcome(qc.CheckCheckM).Status)
	assert.Equal(t, qc.Pass, rep.Outcome(qc.CheckBracken).Status)
	assert.Equal(t, qc.Pass, rep.Outcome(qc.CheckFastp).Status)
	assert.False(t, rep.OverallPass)
}

func TestAggregateSingleFailFailsOverall(t *testing.T) {
	in := passingInputs()
	in.Records[qc.CheckFastp] = record(qc.CheckFastp, map[string]any{
		qc.FieldQ30Rate:  0.50,
		qc.FieldCoverage: 30.0,
	})

	rep := New(testSet(t, "", nil)).Aggregate("s1", in)
	assert.Equal(t, qc.Fail, rep.Outcome(qc.CheckFastp).Status)
	assert.False(t, rep.OverallPass)
}

func TestAggregateCarriesContext(t *testing.T) {
	in := passingInputs()
	in.Organism = "Escherichia coli"
	in.GenomeSize = qc.GenomeSize{Known: true, ExpectedLength: 4600000, WithinBounds: true}

	rep := New(testSet(t, "", nil)).Aggregate("s1", in)
	assert.Equal(t, "Escherichia coli", rep.NCBISpecies)
	assert.True(t, rep.GenomeSize.Known)
}
