// internal/writers/report.go
package writers

import (
	"fmt"
	"io"

	"bactqc/internal/output"
	"bactqc/internal/pretty"
	"bactqc/internal/report"
)

// StartReportWriter spins up a writer goroutine consuming SampleRuns in
// arrival order and emitting the selected format once the channel closes.
// Formats: "text" (TSV results + thresholds), "json", "pretty".
func StartReportWriter(out io.Writer, format string, header bool, popt pretty.Options, bufSize int) (chan<- report.SampleRun, <-chan error) {
	if bufSize <= 0 {
		bufSize = 16
	}
	in := make(chan report.SampleRun, bufSize)
	errCh := make(chan error, 1)

	go func() {
		var runs []report.SampleRun
		for r := range in {
			runs = append(runs, r)
		}

		var err error
		switch format {
		case "json":
			err = output.WriteJSON(out, runs)

		case "pretty":
			_, err = fmt.Fprintln(out, pretty.RenderResults(runs, popt))
			if err == nil {
				_, err = fmt.Fprintln(out, pretty.RenderThresholds(runs, popt))
			}
			for i := 0; err == nil && i < len(runs); i++ {
				_, err = fmt.Fprintln(out, pretty.RenderDetail(runs[i], popt))
			}

		case "text":
			err = output.WriteTSV(out, report.ResultsColumns(), report.Results(runs), header)
			if err == nil {
				_, err = fmt.Fprintln(out)
			}
			if err == nil {
				err = output.WriteTSV(out, report.ThresholdsColumns(), report.Thresholds(runs), header)
			}

		default:
			err = fmt.Errorf("unsupported output %q", format)
		}
		errCh <- err
	}()

	return in, errCh
}
