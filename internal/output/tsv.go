// internal/output/tsv.go
package output

import (
	"fmt"
	"io"
	"strings"

	"bactqc/internal/report"
)

// WriteTSV writes a table with the given column order, one tab-separated
// line per row. The header line is optional to match `--no-header`.
func WriteTSV(w io.Writer, cols []string, t report.Table, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, strings.Join(cols, "\t")); err != nil {
			return err
		}
	}
	cells := make([]string, len(cols))
	for _, row := range t {
		for i, c := range cols {
			cells[i] = row[c]
		}
		if _, err := fmt.Fprintln(w, strings.Join(cells, "\t")); err != nil {
			return err
		}
	}
	return nil
}
