// internal/qc/qc_test.go
package qc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordCoercion(t *testing.T) {
	r := Record{Sample: "s1", Check: CheckAssemblyScan, Fields: map[string]any{
		FieldContigCount: int64(87),
		FieldN50:         145677,
		FieldTotalLength: 4641652.0,
		"label":          "ok",
		"flag":           true,
	}}

	n, ok := r.Int(FieldContigCount)
	assert.True(t, ok)
	assert.Equal(t, 87, n)

	f, ok := r.Float(FieldTotalLength)
	assert.True(t, ok)
	assert.Equal(t, 4641652.0, f)

	f, ok = r.Float(FieldN50)
	assert.True(t, ok)
	assert.Equal(t, 145677.0, f)

	assert.Equal(t, "ok", r.String("label"))
	assert.True(t, r.Bool("flag"))

	_, ok = r.Float("absent")
	assert.False(t, ok)
	assert.False(t, r.Has("absent"))

	_, ok = r.Float("label")
	assert.False(t, ok, "non-numeric value must not coerce")
}

func TestSampleReportOutcomeLookup(t *testing.T) {
	rep := SampleReport{Outcomes: []Outcome{
		{Check: CheckBracken, Status: Pass},
		{Check: CheckMLST, Status: Fail},
	}}
	assert.Equal(t, Fail, rep.Outcome(CheckMLST).Status)
	assert.Equal(t, MissingData, rep.Outcome(CheckFastp).Status)
}

func TestCheckOrderIsStable(t *testing.T) {
	assert.Equal(t, [...]Check{CheckBracken, CheckMLST, CheckCheckM, CheckAssemblyScan, CheckFastp}, CheckOrder)
}
