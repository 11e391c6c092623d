// internal/extract/fastp.go
package extract

import (
	"encoding/json"
	"math"
	"os"

	"bactqc/internal/qc"
)

type fastpSide struct {
	TotalReads int64   `json:"total_reads"`
	TotalBases int64   `json:"total_bases"`
	Q20Rate    float64 `json:"q20_rate"`
	Q30Rate    float64 `json:"q30_rate"`
	GCContent  float64 `json:"gc_content"`
}

type fastpSummary struct {
	Summary struct {
		Before fastpSide `json:"before_filtering"`
		After  fastpSide `json:"after_filtering"`
	} `json:"summary"`
}

// Fastp reads the fastp JSON summary and emits the post-filtering q30_rate
// plus mean coverage derived from post-filter bases over the assembly length.
// With no assembly length available (totalLength <= 0) the coverage field is
// absent, which downgrades the fastp check to MissingData rather than failing
// the parse.
func Fastp(sample, path string, totalLength int64) (qc.Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return qc.Record{}, &ParseError{Path: path, Msg: "file not found"}
	}
	if len(raw) == 0 {
		return qc.Record{}, parseErrorf(path, "empty file")
	}
	var data fastpSummary
	if err := json.Unmarshal(raw, &data); err != nil {
		return qc.Record{}, parseErrorf(path, "invalid JSON: %v", err)
	}
	if data.Summary.After.TotalReads == 0 && data.Summary.After.TotalBases == 0 {
		return qc.Record{}, parseErrorf(path, "no after_filtering summary")
	}

	fields := map[string]any{
		qc.FieldQ30Rate:         data.Summary.After.Q30Rate,
		"pre_filt_total_reads":  data.Summary.Before.TotalReads,
		"pre_filt_total_bases":  data.Summary.Before.TotalBases,
		"pre_filt_q30_rate":     data.Summary.Before.Q30Rate,
		"pre_filt_gc":           data.Summary.Before.GCContent,
		"post_filt_total_reads": data.Summary.After.TotalReads,
		"post_filt_total_bases": data.Summary.After.TotalBases,
		"post_filt_q20_rate":    data.Summary.After.Q20Rate,
		"post_filt_gc":          data.Summary.After.GCContent,
	}
	if totalLength > 0 {
		fields[qc.FieldCoverage] = Coverage(data.Summary.After.TotalBases, totalLength)
	}
	return qc.Record{Sample: sample, Check: qc.CheckFastp, Fields: fields}, nil
}

// Coverage is the mean depth estimate: post-filter sequenced bases divided by
// assembly length, rounded to two decimals.
func Coverage(postFilterBases, totalLength int64) float64 {
	return math.Round(float64(postFilterBases)/float64(totalLength)*100) / 100
}
