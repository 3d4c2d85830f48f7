package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"laus-core/config"
	"laus-core/fmindex"
	"laus-core/nucleotide"
	"laus-core/pack"
	"laus-core/pipeline"
	"laus-core/query"
	"laus-core/workpool"

	"laus/internal/applog"
	"laus/internal/cli"
)

// RunAlignContext implements laus-align: load a PackedReference and
// FMIndex from disk, run pipeline.Align on an inline query, and print the
// resulting chains as tab-separated rows plus a telemetry summary.
func RunAlignContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := cli.NewAlignFlagSet("laus-align")
	fs.SetOutput(io.Discard)

	opt, err := cli.ParseAlignArgs(fs, argv)
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

	ref, err := readFromFile(opt.RefPath, pack.Load)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	fm, err := readFromFile(opt.IndexPath, fmindex.Load)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	rawQuery := opt.Query
	if opt.QueryFile != "" {
		raw, err := os.ReadFile(opt.QueryFile)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		rawQuery = strings.TrimSpace(string(raw))
	}

	codes := make([]nucleotide.Code, 0, len(rawQuery))
	for i := 0; i < len(rawQuery); i++ {
		if rawQuery[i] == '\n' || rawQuery[i] == '\r' {
			continue
		}
		c, ok := nucleotide.Parse(rawQuery[i])
		if !ok {
			fmt.Fprintf(stderr, "laus-align: invalid base %q in query at position %d\n", rawQuery[i], i)
			return 2
		}
		codes = append(codes, c)
	}
	q := query.Query{ID: opt.QueryID, Nucleotides: codes}

	cfg := config.DefaultConfig()
	cfg.MinSeedLen = uint32(opt.MinSeedLen)
	cfg.MaxAmbiguity = uint32(opt.MaxAmbiguity)
	cfg.DoReseed = opt.DoReseed
	cfg.UseRansac = opt.UseRansac
	cfg.NumThreads = uint32(opt.Threads)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	pool := workpool.New(int(opt.Threads))
	defer pool.Shutdown()

	chains, tel, err := pipeline.Align(ctx, q, fm, ref, cfg, pool, log)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	fmt.Fprintln(stdout, "strand\tqStart\trefStart\tlength")
	for _, c := range chains {
		strand := "+"
		if !c.OnForward {
			strand = "-"
		}
		for _, s := range c.Seeds {
			fmt.Fprintf(stdout, "%s\t%d\t%d\t%d\n", strand, s.QStart, s.RefStart, s.Length)
		}
	}
	if tel != nil {
		fmt.Fprintf(stderr, "%s\n", tel.Snapshot())
	}
	return 0
}

func readFromFile[T any](path string, load func(io.Reader) (*T, error)) (*T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return load(f)
}
