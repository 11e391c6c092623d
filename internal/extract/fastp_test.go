// internal/extract/fastp_test.go
package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bactqc/internal/qc"
)

const fastpJSON = `{
  "summary": {
    "before_filtering": {
      "total_reads": 1000000,
      "total_bases": 150000000,
      "q20_rate": 0.98,
      "q30_rate": 0.94,
      "gc_content": 0.507
    },
    "after_filtering": {
      "total_reads": 980000,
      "total_bases": 139249560,
      "q20_rate": 0.99,
      "q30_rate": 0.96,
      "gc_content": 0.506
    }
  }
}`

func TestFastpWithCoverage(t *testing.T) {
	path := writeFile(t, "s1.fastp.json", fastpJSON)

	rec, err := Fastp("s1", path, 4641652)
	require.NoError(t, err)
	assert.Equal(t, qc.CheckFastp, rec.Check)

	q30, ok := rec.Float(qc.FieldQ30Rate)
	require.True(t, ok)
	assert.Equal(t, 0.96, q30)

	cov, ok := rec.Float(qc.FieldCoverage)
	require.True(t, ok)
	assert.Equal(t, 30.0, cov)
}

func TestFastpNoAssemblyLengthCoverageAbsent(t *testing.T) {
	path := writeFile(t, "s1.fastp.json", fastpJSON)

	rec, err := Fastp("s1", path, 0)
	require.NoError(t, err)
	assert.True(t, rec.Has(qc.FieldQ30Rate))
	assert.False(t, rec.Has(qc.FieldCoverage))
}

func TestFastpMalformed(t *testing.T) {
	var parseErr *ParseError

	_, err := Fastp("s1", writeFile(t, "bad.json", "{not json"), 1)
	require.ErrorAs(t, err, &parseErr)

	_, err = Fastp("s1", writeFile(t, "empty.json", ""), 1)
	require.ErrorAs(t, err, &parseErr)

	_, err = Fastp("s1", writeFile(t, "hollow.json", `{"summary":{}}`), 1)
	require.ErrorAs(t, err, &parseErr)
}

func TestCoverage(t *testing.T) {
	assert.Equal(t, 30.0, Coverage(139249560, 4641652))
	assert.Equal(t, 29.99, Coverage(139200000, 4641652))
}
