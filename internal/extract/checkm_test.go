// internal/extract/checkm_test.go
package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bactqc/internal/qc"
)

const checkmHeader = "Bin Id\tMarker lineage\t# genomes\tCompleteness\tContamination\tStrain heterogeneity\n"

func TestCheckMSelectsSampleRow(t *testing.T) {
	path := writeFile(t, "checkm.tsv", checkmHeader+
		"other\tf__Enterobacteriaceae\t134\t97.01\t1.92\t0.00\n"+
		"s1\tf__Enterobacteriaceae\t134\t99.12\t0.33\t0.00\n")

	rec, err := CheckM("s1", path)
	require.NoError(t, err)
	assert.Equal(t, qc.CheckCheckM, rec.Check)
	comp, ok := rec.Float(qc.FieldCompleteness)
	require.True(t, ok)
	assert.Equal(t, 99.12, comp)
	contam, ok := rec.Float(qc.FieldContamination)
	require.True(t, ok)
	assert.Equal(t, 0.33, contam)
}

func TestCheckMSampleMissing(t *testing.T) {
	path := writeFile(t, "checkm.tsv", checkmHeader+
		"other\tf__Enterobacteriaceae\t134\t97.01\t1.92\t0.00\n")

	var parseErr *ParseError
	_, err := CheckM("s1", path)
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, err.Error(), `"s1" not found`)
}

func TestCheckMMalformed(t *testing.T) {
	var parseErr *ParseError

	_, err := CheckM("s1", writeFile(t, "nohdr.tsv", "s1\t99.1\t0.3\n"))
	require.ErrorAs(t, err, &parseErr)

	_, err = CheckM("s1", writeFile(t, "badnum.tsv", checkmHeader+
		"s1\tf__Enterobacteriaceae\t134\thigh\t0.33\t0.00\n"))
	require.ErrorAs(t, err, &parseErr)
}
