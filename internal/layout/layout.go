// internal/layout/layout.go
package layout

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Layout maps samples to the bactopia output tree rooted at Root:
//
//	<root>/<sample>/tools/bracken/<sample>.bracken.adjusted.abundances.txt
//	<root>/<sample>/tools/mlst/<sample>.tsv
//	<root>/<sample>/main/assembler/<sample>.tsv
//	<root>/<sample>/main/qc/summary/<sample>.fastp.json
//	<root>/bactopia-runs/<timestamp>/.../checkm.tsv
type Layout struct {
	Root string
}

func New(root string) Layout { return Layout{Root: root} }

func (l Layout) BrackenAbundances(sample string) string {
	return filepath.Join(l.Root, sample, "tools", "bracken", sample+".bracken.adjusted.abundances.txt")
}

func (l Layout) MLST(sample string) string {
	return filepath.Join(l.Root, sample, "tools", "mlst", sample+".tsv")
}

func (l Layout) AssemblyScan(sample string) string {
	return filepath.Join(l.Root, sample, "main", "assembler", sample+".tsv")
}

func (l Layout) Fastp(sample string) string {
	return filepath.Join(l.Root, sample, "main", "qc", "summary", sample+".fastp.json")
}

const runsDir = "bactopia-runs"

// CheckM finds checkm.tsv under the shared runs directory. Runs are named by
// timestamp, so with several runs present the lexicographically last
// grandparent directory is the newest and wins.
func (l Layout) CheckM() (string, error) {
	var found []string
	root := filepath.Join(l.Root, runsDir)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == "checkm.tsv" {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("layout: scanning %s: %w", root, err)
	}
	if len(found) == 0 {
		return "", fmt.Errorf("layout: no checkm.tsv under %s", root)
	}
	sort.Slice(found, func(i, j int) bool {
		return runName(found[i]) < runName(found[j])
	})
	return found[len(found)-1], nil
}

func runName(path string) string {
	return filepath.Base(filepath.Dir(filepath.Dir(path)))
}

// Samples enumerates sample directories under Root (any directory with a
// tools/ or main/ subtree), sorted for determinism.
func (l Layout) Samples() ([]string, error) {
	entries, err := os.ReadDir(l.Root)
	if err != nil {
		return nil, err
	}
	var samples []string
	for _, e := range entries {
		if !e.IsDir() || e.Name() == runsDir {
			continue
		}
		toolsDir := filepath.Join(l.Root, e.Name(), "tools")
		mainDir := filepath.Join(l.Root, e.Name(), "main")
		if isDir(toolsDir) || isDir(mainDir) {
			samples = append(samples, e.Name())
		}
	}
	sort.Strings(samples)
	return samples, nil
}

func isDir(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.IsDir()
}
