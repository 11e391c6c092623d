// internal/pretty/pretty.go
package pretty

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"bactqc/internal/qc"
	"bactqc/internal/report"
	"bactqc/internal/thresholds"
)

// Options control the console rendering.
type Options struct {
	Color bool // ANSI colors for statuses
}

// DefaultOptions matches the default terminal look.
var DefaultOptions = Options{Color: true}

var (
	passMark    = "✔ Pass"
	failMark    = "✘ Fail"
	missingMark = "? Missing"
)

func statusCell(s qc.Status, opt Options) string {
	var mark string
	var c *color.Color
	switch s {
	case qc.Pass:
		mark, c = passMark, color.New(color.FgGreen)
	case qc.Fail:
		mark, c = failMark, color.New(color.FgRed)
	default:
		mark, c = missingMark, color.New(color.FgYellow)
	}
	if !opt.Color {
		return mark
	}
	return c.Sprint(mark)
}

func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Format.Header = text.FormatDefault
	return tbl
}

// RenderResults renders the per-sample results as a console table.
func RenderResults(runs []report.SampleRun, opt Options) string {
	tbl := newTable()
	header := table.Row{"Sample", "Species (Bracken)", "Species (NCBI)"}
	for _, c := range qc.CheckOrder {
		header = append(header, string(c))
	}
	header = append(header, "Overall")
	tbl.AppendHeader(header)

	for _, r := range runs {
		row := table.Row{r.Report.Sample, r.Report.BrackenSpecies, r.Report.NCBISpecies}
		for _, c := range qc.CheckOrder {
			row = append(row, statusCell(r.Report.Outcome(c).Status, opt))
		}
		overall := qc.Fail
		if r.Report.OverallPass {
			overall = qc.Pass
		}
		row = append(row, statusCell(overall, opt))
		tbl.AppendRow(row)
	}
	return tbl.Render()
}

// RenderDetail renders one sample's observed values against the bounds that
// judged them, with enough context for a reviewer to act without recomputing.
func RenderDetail(run report.SampleRun, opt Options) string {
	tbl := newTable()
	tbl.AppendHeader(table.Row{"Check", "Observed", "Threshold", "Status"})
	for _, o := range run.Report.Outcomes {
		tbl.AppendRow(table.Row{string(o.Check), o.Value, o.Threshold, statusCell(o.Status, opt)})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s", run.Report.Sample, tbl.Render())
	if gs := run.Report.GenomeSize; gs.Known {
		verdict := "outside"
		if gs.WithinBounds {
			verdict = "within"
		}
		fmt.Fprintf(&b, "\nexpected genome size %s bp (%s to %s), assembly %s expected range",
			humanize.Comma(gs.ExpectedLength), humanize.Comma(gs.MinimumLength),
			humanize.Comma(gs.MaximumLength), verdict)
	}
	if run.Report.GenusConflict {
		b.WriteString("\nwarning: Escherichia/Shigella split across top taxa; classification unreliable")
	}
	return b.String()
}

// RenderThresholds renders the effective bounds per sample, flagging
// species overrides.
func RenderThresholds(runs []report.SampleRun, opt Options) string {
	tbl := newTable()
	header := table.Row{"Sample"}
	for _, p := range thresholds.Params {
		header = append(header, string(p))
	}
	tbl.AppendHeader(header)

	override := color.New(color.FgCyan)
	for _, r := range runs {
		row := table.Row{r.Report.Sample}
		for _, p := range thresholds.Params {
			cell := r.Thresholds.FormatValue(p)
			if r.Thresholds.Source(p) == thresholds.FromOverride {
				cell += " (species)"
				if opt.Color {
					cell = override.Sprint(cell)
				}
			}
			row = append(row, cell)
		}
		tbl.AppendRow(row)
	}
	return tbl.Render()
}
