// internal/cli/options_test.go
package cli

import (
	"flag"
	"io"
	"testing"
)

func newFS() *flag.FlagSet {
	fs := NewFlagSet("bactqc")
	fs.SetOutput(io.Discard)
	return fs
}

func TestParseArgsDefaults(t *testing.T) {
	opt, err := ParseArgs(newFS(), []string{"--input", "runs", "--sample", "s1"})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if opt.Defaults.MinPrimaryAbundance != 0.80 || opt.Defaults.MinimumN50 != 15000 ||
		opt.Defaults.MaximumContigs != 500 || opt.Defaults.MinCoverage != 30 {
		t.Fatalf("unexpected defaults: %+v", opt.Defaults)
	}
	if !opt.Header || opt.Output != "text" {
		t.Fatalf("unexpected output options: %+v", opt)
	}
}

func TestParseArgsRepeatableSamples(t *testing.T) {
	opt, err := ParseArgs(newFS(), []string{"--input", "runs", "--sample", "s1", "--sample", "s2"})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if len(opt.Samples) != 2 || opt.Samples[0] != "s1" || opt.Samples[1] != "s2" {
		t.Fatalf("samples: %v", opt.Samples)
	}
}

func TestParseArgsValidation(t *testing.T) {
	cases := [][]string{
		{},                                     // no input
		{"--input", "runs"},                    // neither --sample nor --all
		{"--input", "runs", "--sample", "s1", "--all"},                    // both
		{"--input", "runs", "--all", "--taxid", "562"},                    // taxid needs one sample
		{"--input", "runs", "--sample", "s1", "--threads", "-1"},          // bad threads
		{"--input", "runs", "--sample", "s1", "--output", "xml"},          // bad format
		{"--input", "runs", "--sample", "s1", "--min-q30", "1.5"},         // out of range
		{"--input", "runs", "--sample", "s1", "--min-primary-abundance", "2"},
	}
	for _, argv := range cases {
		if _, err := ParseArgs(newFS(), argv); err == nil {
			t.Fatalf("expected error for %v", argv)
		}
	}
}

func TestParseArgsNoHeader(t *testing.T) {
	opt, err := ParseArgs(newFS(), []string{"--input", "runs", "--sample", "s1", "--no-header"})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if opt.Header {
		t.Fatal("--no-header should clear Header")
	}
}
