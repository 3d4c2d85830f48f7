package cli

import (
	"flag"
	"fmt"
)

// BuildOptions holds laus-build's flags: one or more named contigs, the
// FM-index sampling interval, and the two output paths.
type BuildOptions struct {
	Contigs   []string // "name=SEQUENCE" pairs, repeatable
	SAIntv    uint
	OutRef    string
	OutIndex  string
	LogLevel  string
}

// NewBuildFlagSet returns a FlagSet configured for laus-build.
func NewBuildFlagSet(name string) *flag.FlagSet {
	fs := NewFlagSet(name)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), `%s: build a PackedReference and FMIndex from inline sequences

Usage of %s:
`, name, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseBuildArgs registers and parses laus-build's flags.
func ParseBuildArgs(fs *flag.FlagSet, argv []string) (BuildOptions, error) {
	var opt BuildOptions
	var help bool

	var contigs stringSlice
	fs.Var(&contigs, "contig", "name=SEQUENCE pair (repeatable) [*]")
	fs.UintVar(&opt.SAIntv, "sa-intv", 32, "FM-index SA sampling interval, power of two [32]")
	fs.StringVar(&opt.OutRef, "out-ref", "", "output path for the packed reference [*]")
	fs.StringVar(&opt.OutIndex, "out-index", "", "output path for the FM-index [*]")
	fs.StringVar(&opt.LogLevel, "log-level", "info", "debug|info|warn|error [info]")
	fs.BoolVar(&help, "h", false, "show this help message [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	opt.Contigs = contigs

	if len(opt.Contigs) == 0 {
		return opt, fmt.Errorf("cli: at least one -contig name=SEQUENCE is required")
	}
	if opt.OutRef == "" || opt.OutIndex == "" {
		return opt, fmt.Errorf("cli: -out-ref and -out-index are required")
	}
	return opt, nil
}
