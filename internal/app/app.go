// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"bactqc/internal/cli"
	"bactqc/internal/engine"
	"bactqc/internal/extract"
	"bactqc/internal/genomesize"
	"bactqc/internal/layout"
	"bactqc/internal/output"
	"bactqc/internal/pipeline"
	"bactqc/internal/pretty"
	"bactqc/internal/qc"
	"bactqc/internal/report"
	"bactqc/internal/thresholds"
	"bactqc/internal/version"
	"bactqc/internal/writers"
)

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("bactqc")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		fs.SetOutput(outw)
		fs.Usage()
		return flushCode(outw, stderr, 0)
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			return flushCode(outw, stderr, 0)
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(outw)
		fs.Usage()
		return flushCode(outw, stderr, 2)
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "bactqc version %s\n", version.Version)
		return flushCode(outw, stderr, 0)
	}

	table := thresholds.SpeciesTable{}
	if opts.SpeciesTableFile != "" {
		table, err = thresholds.LoadSpeciesTable(opts.SpeciesTableFile)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
	}

	lay := layout.New(opts.InputDir)
	samples := opts.Samples
	if opts.All {
		samples, err = lay.Samples()
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
		if len(samples) == 0 {
			_, _ = fmt.Fprintf(stderr, "no samples found under %s\n", opts.InputDir)
			return 2
		}
	}

	// One shared checkm.tsv per run; a missing file degrades every sample's
	// checkm outcome to MissingData instead of aborting.
	checkmPath, checkmErr := lay.CheckM()

	var warnMu sync.Mutex
	warn := func(format string, args ...any) {
		if opts.Quiet {
			return
		}
		warnMu.Lock()
		defer warnMu.Unlock()
		_, _ = fmt.Fprintf(stderr, "warning: "+format+"\n", args...)
	}
	if checkmErr != nil {
		warn("%v", checkmErr)
	}

	var gsClient *genomesize.Client
	if !opts.Offline {
		gsClient = genomesize.New(nil, opts.NCBIBaseURL)
	}
	runner := sampleRunner{
		layout:     lay,
		checkmPath: checkmPath,
		checkmErr:  checkmErr,
		defaults:   opts.Defaults,
		species:    table,
		genome:     gsClient,
		taxid:      opts.Taxid,
		warn:       warn,
	}

	thr := opts.Threads
	if thr <= 0 {
		thr = runtime.NumCPU()
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	runs, err := pipeline.Map(ctx, pipeline.Config{Threads: thr}, samples, runner.run)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}

	popt := pretty.DefaultOptions
	inCh, writeErr := writers.StartReportWriter(outw, opts.Output, opts.Header, popt, thr*2)
	for _, r := range runs {
		inCh <- r
	}
	close(inCh)
	if err := <-writeErr; err != nil && !writers.IsBrokenPipe(err) {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}

	if opts.OutDir != "" {
		if err := writeFiles(opts.OutDir, runs, opts.Header); err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
	}

	code := 0
	for _, r := range runs {
		if !r.Report.OverallPass {
			code = 1
			break
		}
	}
	return flushCode(outw, stderr, code)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func flushCode(outw *bufio.Writer, stderr io.Writer, code int) int {
	if err := outw.Flush(); writers.IsBrokenPipe(err) {
		return 0
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	return code
}

// sampleRunner evaluates one sample end to end. It holds only run-wide
// read-only state and is safe for concurrent use across samples.
type sampleRunner struct {
	layout     layout.Layout
	checkmPath string
	checkmErr  error
	defaults   thresholds.Defaults
	species    thresholds.SpeciesTable
	genome     *genomesize.Client
	taxid      string
	warn       func(format string, args ...any)
}

func (s sampleRunner) run(ctx context.Context, sample string) report.SampleRun {
	in := engine.Inputs{
		Records: map[qc.Check]qc.Record{},
		Errors:  map[qc.Check]error{},
	}
	add := func(check qc.Check, rec qc.Record, err error) {
		if err != nil {
			in.Errors[check] = err
			s.warn("%s: %s: %v", sample, check, err)
			return
		}
		in.Records[check] = rec
	}

	brec, berr := extract.Bracken(sample, s.layout.BrackenAbundances(sample))
	add(qc.CheckBracken, brec, berr)

	mrec, merr := extract.MLST(sample, s.layout.MLST(sample))
	add(qc.CheckMLST, mrec, merr)

	if s.checkmErr != nil {
		in.Errors[qc.CheckCheckM] = s.checkmErr
	} else {
		crec, cerr := extract.CheckM(sample, s.checkmPath)
		add(qc.CheckCheckM, crec, cerr)
	}

	arec, aerr := extract.AssemblyScan(sample, s.layout.AssemblyScan(sample))
	add(qc.CheckAssemblyScan, arec, aerr)

	var totalLength int64
	if aerr == nil {
		if v, ok := arec.Float(qc.FieldTotalLength); ok {
			totalLength = int64(v)
		}
	}
	frec, ferr := extract.Fastp(sample, s.layout.Fastp(sample), totalLength)
	add(qc.CheckFastp, frec, ferr)

	in.Organism, in.GenomeSize = s.expectedSize(ctx, sample, brec, berr, totalLength)

	speciesName := ""
	if berr == nil {
		speciesName = brec.String(qc.FieldPrimarySpecies)
	}
	set := thresholds.Resolve(s.defaults, speciesName, s.species)

	rep := engine.New(set).Aggregate(sample, in)
	return report.SampleRun{Report: rep, Thresholds: set}
}

// expectedSize resolves the NCBI expected-size record, seeding the taxid from
// the top bracken taxon unless one was supplied. Lookup failure is a warning;
// the informational fields just stay empty.
func (s sampleRunner) expectedSize(ctx context.Context, sample string, brec qc.Record, berr error, totalLength int64) (string, qc.GenomeSize) {
	if s.genome == nil { // --offline
		return "", qc.GenomeSize{}
	}
	taxid := s.taxid
	if taxid == "" && berr == nil {
		taxid = brec.String(qc.FieldPrimaryTaxid)
	}
	if taxid == "" {
		return "", qc.GenomeSize{}
	}
	info, err := s.genome.Fetch(ctx, taxid)
	if err != nil {
		s.warn("%s: expected genome size: %v", sample, err)
		return "", qc.GenomeSize{}
	}
	size := qc.GenomeSize{
		Known:          true,
		ExpectedLength: info.ExpectedLength,
		MinimumLength:  info.MinimumLength,
		MaximumLength:  info.MaximumLength,
	}
	if totalLength > 0 {
		size.WithinBounds = totalLength >= info.MinimumLength && totalLength <= info.MaximumLength
	}
	return info.OrganismName, size
}

// writeFiles mirrors the report tables to TSV files: per-sample names for a
// single sample, combined names for a batch.
func writeFiles(dir string, runs []report.SampleRun, header bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	resultsName, thresholdsName := "qc_results.tsv", "qc_thresholds.tsv"
	if len(runs) == 1 {
		resultsName = runs[0].Report.Sample + "_qc_results.tsv"
		thresholdsName = runs[0].Report.Sample + "_qc_thresholds.tsv"
	}
	if err := writeTable(filepath.Join(dir, resultsName), report.ResultsColumns(), report.Results(runs), header); err != nil {
		return err
	}
	return writeTable(filepath.Join(dir, thresholdsName), report.ThresholdsColumns(), report.Thresholds(runs), header)
}

func writeTable(path string, cols []string, t report.Table, header bool) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := output.WriteTSV(fh, cols, t, header); err != nil {
		_ = fh.Close()
		return err
	}
	return fh.Close()
}
