// internal/report/report_test.go
package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bactqc/internal/qc"
	"bactqc/internal/thresholds"
)

func sampleRun(name string, overall bool, statuses map[qc.Check]qc.Status) SampleRun {
	rep := qc.SampleReport{Sample: name, OverallPass: overall}
	for _, c := range qc.CheckOrder {
		st, ok := statuses[c]
		if !ok {
			st = qc.Pass
		}
		rep.Outcomes = append(rep.Outcomes, qc.Outcome{Check: c, Status: st})
	}
	set := thresholds.Resolve(thresholds.Defaults{
		MinPrimaryAbundance: 0.80, MinCompleteness: 80, MaxContamination: 10,
		MaximumContigs: 500, MinimumN50: 15000, MinQ30Bases: 0.90, MinCoverage: 30,
	}, "", nil)
	return SampleRun{Report: rep, Thresholds: set}
}

func TestResultsPreservesOrderAndIsolatesFailures(t *testing.T) {
	runs := []SampleRun{
		sampleRun("A", true, nil),
		sampleRun("B", false, map[qc.Check]qc.Status{qc.CheckCheckM: qc.MissingData}),
		sampleRun("C", true, nil),
	}
	table := Results(runs)
	require.Len(t, table, 3)

	assert.Equal(t, "A", table[0][ColSample])
	assert.Equal(t, "B", table[1][ColSample])
	assert.Equal(t, "C", table[2][ColSample])

	assert.Equal(t, "MissingData", table[1]["CheckM"])
	assert.Equal(t, "Fail", table[1][ColOverall])
	assert.Equal(t, "Pass", table[0]["CheckM"])
	assert.Equal(t, "Pass", table[2]["CheckM"])
}

func TestResultsDuplicateSamplesKept(t *testing.T) {
	runs := []SampleRun{sampleRun("A", true, nil), sampleRun("A", true, nil)}
	table := Results(runs)
	require.Len(t, table, 2)
	assert.Equal(t, table[0], table[1])
}

func TestSchemaSharedAcrossBatchSizes(t *testing.T) {
	single := Results([]SampleRun{sampleRun("A", true, nil)})
	multi := Results([]SampleRun{sampleRun("A", true, nil), sampleRun("B", false, nil)})

	for _, col := range ResultsColumns() {
		_, ok := single[0][col]
		assert.True(t, ok, "single-run row missing %q", col)
		_, ok = multi[1][col]
		assert.True(t, ok, "multi-run row missing %q", col)
	}
}

func TestThresholdsTable(t *testing.T) {
	table := Thresholds([]SampleRun{sampleRun("A", true, nil)})
	require.Len(t, table, 1)
	row := table[0]

	assert.Equal(t, "A", row[ColSample])
	assert.Equal(t, "15000", row[string(thresholds.MinimumN50)])
	for _, p := range thresholds.Params {
		assert.Equal(t, "default", row[string(p)+"_source"], "param %s", p)
	}
	assert.Len(t, ThresholdsColumns(), 1+2*len(thresholds.Params))
}
