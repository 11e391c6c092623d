// internal/extract/extract.go
package extract

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ParseError marks a tool result file that is absent, empty, or structurally
// invalid for its extractor. It is confined to one check for one sample and
// never aborts batch processing.
type ParseError struct {
	Path string
	Msg  string
}

func (e *ParseError) Error() string { return fmt.Sprintf("%s: %s", e.Path, e.Msg) }

func parseErrorf(path, format string, args ...any) error {
	return &ParseError{Path: path, Msg: fmt.Sprintf(format, args...)}
}

// readTSV reads a tab-separated file into rows of fields, skipping blank
// lines. Absent or empty files are ParseErrors.
func readTSV(path string) ([][]string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Msg: "file not found"}
	}
	defer func() { _ = fh.Close() }()

	var rows [][]string
	sc := bufio.NewScanner(fh)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, strings.Split(line, "\t"))
	}
	if err := sc.Err(); err != nil {
		return nil, &ParseError{Path: path, Msg: err.Error()}
	}
	if len(rows) == 0 {
		return nil, &ParseError{Path: path, Msg: "empty file"}
	}
	return rows, nil
}

// headerIndex maps required column names to their positions, rejecting files
// whose header is missing any of them.
func headerIndex(path string, header []string, required ...string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, parseErrorf(path, "missing column %q", col)
		}
	}
	return idx, nil
}
