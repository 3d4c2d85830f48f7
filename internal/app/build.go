// Package app wires laus-core into the two demo binaries, in the teacher's
// RunContext(ctx, argv, stdout, stderr) int shape (internal/app/app.go).
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"laus-core/fmindex"
	"laus-core/pack"

	"laus/internal/applog"
	"laus/internal/cli"
)

// RunBuildContext implements laus-build: parse -contig pairs into a
// PackedReference, build an FMIndex over it, and write both to disk.
func RunBuildContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := cli.NewBuildFlagSet("laus-build")
	fs.SetOutput(io.Discard)

	opt, err := cli.ParseBuildArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(stdout)
			fs.Usage()
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}

	log := applog.New(stderr, opt.LogLevel)

	p := pack.New()
	for _, spec := range opt.Contigs {
		name, seq, err := splitContigSpec(spec)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
		p.AppendContig(name, []byte(seq))
		log.WithField("contig", name).WithField("length", len(seq)).Debug("appended contig")
	}
	p.Finalize()

	fm, err := fmindex.Build(p, uint32(opt.SAIntv))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	log.WithField("refLen", p.RefLen()).Info("built FM-index")

	if err := writeToFile(opt.OutRef, p.Save); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if err := writeToFile(opt.OutIndex, fm.Save); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	fmt.Fprintf(stdout, "wrote %s and %s\n", opt.OutRef, opt.OutIndex)
	return 0
}

func splitContigSpec(spec string) (name, seq string, err error) {
	idx := strings.IndexByte(spec, '=')
	if idx < 0 {
		return "", "", fmt.Errorf("cli: -contig must be name=SEQUENCE, got %q", spec)
	}
	return spec[:idx], spec[idx+1:], nil
}

func writeToFile(path string, save func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := save(f); err != nil {
		return err
	}
	return f.Close()
}
