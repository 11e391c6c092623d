// internal/thresholds/species.go
package thresholds

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ConfigurationError marks a malformed species threshold table. It is fatal
// for the table load, surfaced once per run, never per sample.
type ConfigurationError struct {
	Path string
	Line int
	Msg  string
}

func (e *ConfigurationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d %s", e.Path, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

// SpeciesTable maps a normalized species name to its partial parameter
// overrides. Loaded once per run, read-only thereafter; safe to share across
// concurrent sample evaluations.
type SpeciesTable map[string]map[Param]float64

func (t SpeciesTable) lookup(species string) map[Param]float64 {
	if t == nil {
		return nil
	}
	return t[NormalizeSpecies(species)]
}

// NormalizeSpecies lowercases and collapses internal whitespace. Matching is
// exact after normalization; there is no fuzzy matching.
func NormalizeSpecies(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

var validParams = func() map[Param]struct{} {
	m := make(map[Param]struct{}, len(Params))
	for _, p := range Params {
		m[p] = struct{}{}
	}
	return m
}()

// LoadSpeciesTable reads a three-column TSV of species overrides:
//
//	Escherichia coli	minimum_n50	20000
//
// Blank lines and '#' comments are skipped. Unknown parameter names and
// non-numeric values are ConfigurationErrors.
func LoadSpeciesTable(path string) (SpeciesTable, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()

	table := SpeciesTable{}
	sc := bufio.NewScanner(fh)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Split(line, "\t")
		if len(f) != 3 {
			return nil, &ConfigurationError{Path: path, Line: ln, Msg: fmt.Sprintf("expected 3 tab-separated fields, got %d", len(f))}
		}
		species := NormalizeSpecies(f[0])
		if species == "" {
			return nil, &ConfigurationError{Path: path, Line: ln, Msg: "empty species name"}
		}
		param := Param(strings.TrimSpace(f[1]))
		if _, ok := validParams[param]; !ok {
			return nil, &ConfigurationError{Path: path, Line: ln, Msg: fmt.Sprintf("unknown parameter %q", f[1])}
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(f[2]), 64)
		if err != nil {
			return nil, &ConfigurationError{Path: path, Line: ln, Msg: fmt.Sprintf("non-numeric value %q for %s", f[2], param)}
		}
		if table[species] == nil {
			table[species] = map[Param]float64{}
		}
		table[species][param] = v
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return table, nil
}
