package cli

import (
	"flag"
	"fmt"
)

// AlignOptions holds laus-align's flags: the two index input paths, the
// query sequence, and the tunables exposed straight through to
// laus-core/config.Config.
type AlignOptions struct {
	RefPath   string
	IndexPath string
	Query     string
	QueryFile string
	QueryID   string

	MinSeedLen  uint
	MaxAmbiguity uint
	DoReseed    bool
	UseRansac   bool
	Threads     uint
	LogLevel    string
}

// NewAlignFlagSet returns a FlagSet configured for laus-align.
func NewAlignFlagSet(name string) *flag.FlagSet {
	fs := NewFlagSet(name)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), `%s: align a query sequence against a PackedReference/FMIndex pair

Usage of %s:
`, name, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseAlignArgs registers and parses laus-align's flags.
func ParseAlignArgs(fs *flag.FlagSet, argv []string) (AlignOptions, error) {
	var opt AlignOptions
	var help bool

	fs.StringVar(&opt.RefPath, "ref", "", "path to a PackedReference file [*]")
	fs.StringVar(&opt.IndexPath, "index", "", "path to an FMIndex file [*]")
	fs.StringVar(&opt.Query, "query", "", "query sequence, inline [*]")
	fs.StringVar(&opt.QueryFile, "query-file", "", "path to a file holding the raw query sequence (no FASTA header parsing) [*]")
	fs.StringVar(&opt.QueryID, "query-id", "query", "query id used in telemetry/log context [query]")

	fs.UintVar(&opt.MinSeedLen, "min-seed-len", 16, "minimum seed length projected into the strip of consideration [16]")
	fs.UintVar(&opt.MaxAmbiguity, "max-ambiguity", 500, "drop SA-intervals larger than this [500]")
	fs.BoolVar(&opt.DoReseed, "reseed", false, "run the optional k-mer re-seeding pass [false]")
	fs.BoolVar(&opt.UseRansac, "ransac", true, "run RANSAC outlier filtering in the harmonizer [true]")
	fs.UintVar(&opt.Threads, "threads", 1, "work pool size [1]")
	fs.StringVar(&opt.LogLevel, "log-level", "info", "debug|info|warn|error [info]")
	fs.BoolVar(&help, "h", false, "show this help message [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}

	if opt.RefPath == "" || opt.IndexPath == "" {
		return opt, fmt.Errorf("cli: -ref and -index are required")
	}
	if opt.Query == "" && opt.QueryFile == "" {
		return opt, fmt.Errorf("cli: one of -query or -query-file is required")
	}
	if opt.Query != "" && opt.QueryFile != "" {
		return opt, fmt.Errorf("cli: -query and -query-file are mutually exclusive")
	}
	return opt, nil
}
