// Package cli holds the flag.FlagSet option parsing for the laus-build and
// laus-align binaries, in the teacher's ParseArgs(fs, argv) shape: an
// explicit FlagSet parameter so tests never touch the process-global
// flag.CommandLine.
package cli

import (
	"flag"
	"strings"
)

// NewFlagSet returns a clean FlagSet with ContinueOnError, matching the
// teacher's internal/cli/flagset.go.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {}
	return fs
}

// stringSlice allows a repeatable string flag (laus-build's -contig).
type stringSlice []string

func (s *stringSlice) String() string { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error {
	*s = append(*s, v)
	return nil
}
