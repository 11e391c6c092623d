// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"bactqc/internal/thresholds"
	"bactqc/internal/version"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	InputDir    string
	Samples     []string
	All         bool
	Taxid       string
	Offline     bool
	NCBIBaseURL string

	// Thresholds
	Defaults         thresholds.Defaults
	SpeciesTableFile string

	// Performance
	Threads int

	// Output
	Output string // text | json | pretty
	OutDir string
	Header bool // true unless --no-header
	Quiet  bool

	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: assembly quality control for bacterial genomes

Evaluates per-tool pipeline outputs (Bracken, MLST, CheckM, assembly
statistics, fastp) against default or species-specific thresholds and
reports pass/fail per sample.

Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// Parse is the top-level call for CLI parsing.
func Parse() (Options, error) { return ParseArgs(flag.CommandLine, nil) }

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	// Input
	fs.StringVar(&opt.InputDir, "input", "", "pipeline output directory [*]")
	var samples stringSlice
	fs.Var(&samples, "sample", "sample name (repeatable)")
	fs.BoolVar(&opt.All, "all", false, "evaluate every sample under --input [false]")
	fs.StringVar(&opt.Taxid, "taxid", "", "species taxid override for the expected-size lookup (single sample only)")
	fs.BoolVar(&opt.Offline, "offline", false, "skip the NCBI expected-genome-size lookup [false]")
	fs.StringVar(&opt.NCBIBaseURL, "ncbi-url", "", "override the NCBI expected-genome-size endpoint")

	// Thresholds
	fs.Float64Var(&opt.Defaults.MinPrimaryAbundance, "min-primary-abundance", 0.80, "minimum primary species abundance, fraction [0.80]")
	fs.Float64Var(&opt.Defaults.MinCompleteness, "min-completeness", 80, "minimum CheckM completeness, percent [80]")
	fs.Float64Var(&opt.Defaults.MaxContamination, "max-contamination", 10, "maximum CheckM contamination, percent [10]")
	fs.IntVar(&opt.Defaults.MaximumContigs, "max-contigs", 500, "maximum contig count [500]")
	fs.IntVar(&opt.Defaults.MinimumN50, "min-n50", 15000, "minimum N50, bp [15000]")
	fs.Float64Var(&opt.Defaults.MinQ30Bases, "min-q30", 0.90, "minimum post-filter Q30 rate, fraction [0.90]")
	fs.Float64Var(&opt.Defaults.MinCoverage, "min-coverage", 30, "minimum mean coverage [30]")
	fs.StringVar(&opt.SpeciesTableFile, "species-thresholds", "", "TSV of species-specific threshold overrides")

	// Performance
	fs.IntVar(&opt.Threads, "threads", 0, "number of worker threads (0 = all CPUs) [0]")

	// Output
	fs.StringVar(&opt.Output, "output", "text", "output format: text | json | pretty [text]")
	fs.StringVar(&opt.OutDir, "out-dir", "", "also write results/thresholds TSV files into this directory")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line in text/TSV [false]")
	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress warnings on stderr [false]")

	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	opt.Samples = samples
	opt.Header = !noHeader

	// Validation
	if opt.InputDir == "" {
		return opt, errors.New("--input is required")
	}
	switch {
	case opt.All && len(opt.Samples) > 0:
		return opt, errors.New("--all conflicts with --sample")
	case !opt.All && len(opt.Samples) == 0:
		return opt, errors.New("provide --sample or --all")
	}
	if opt.Taxid != "" && (opt.All || len(opt.Samples) != 1) {
		return opt, errors.New("--taxid applies to exactly one --sample")
	}
	if opt.Threads < 0 {
		return opt, errors.New("--threads must be ≥ 0")
	}
	if opt.Output != "text" && opt.Output != "json" && opt.Output != "pretty" {
		return opt, fmt.Errorf("invalid --output %q", opt.Output)
	}
	if opt.Defaults.MinPrimaryAbundance < 0 || opt.Defaults.MinPrimaryAbundance > 1 {
		return opt, errors.New("--min-primary-abundance must be within [0,1]")
	}
	if opt.Defaults.MinQ30Bases < 0 || opt.Defaults.MinQ30Bases > 1 {
		return opt, errors.New("--min-q30 must be within [0,1]")
	}
	return opt, nil
}

// stringSlice allows repeatable string flags.
type stringSlice []string

func (s *stringSlice) String() string     { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error { *s = append(*s, v); return nil }
