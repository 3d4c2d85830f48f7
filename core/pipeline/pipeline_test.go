package pipeline

import (
	"context"
	"testing"

	"laus-core/config"
	"laus-core/fmindex"
	"laus-core/nucleotide"
	"laus-core/pack"
	"laus-core/query"
	"laus-core/workpool"
)

func buildRef(t *testing.T, seq string) (*pack.PackedReference, *fmindex.FMIndex) {
	t.Helper()
	p := pack.New()
	p.AppendContig("chr1", []byte(seq))
	p.Finalize()
	fm, err := fmindex.Build(p, 8)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return p, fm
}

func TestAlignFindsExactMatch(t *testing.T) {
	const ref = "AGGAGGCTGCGATTAAGCGTAAGGATCGGACCCTTTAAAGGGCCCATGATGATCGTAGCA"
	p, fm := buildRef(t, ref)
	pool := workpool.New(4)
	defer pool.Shutdown()

	q := query.Query{ID: "q1", Nucleotides: nucleotide.EncodeString(ref[10:40])}
	cfg := config.DefaultConfig()
	cfg.MinSeedLen = 1

	chains, tel, err := Align(context.Background(), q, fm, p, cfg, pool, nil)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if len(chains) == 0 {
		t.Fatalf("expected at least one chain for an exact substring query")
	}
	if tel.SegmentsProduced == 0 {
		t.Fatalf("expected telemetry to record at least one segment")
	}

	found := false
	for _, c := range chains {
		if c.OnForward && c.TotalLength() == len(q.Nucleotides) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a full-length forward chain, got %+v", chains)
	}
}

func TestAlignRejectsInvalidConfig(t *testing.T) {
	p, fm := buildRef(t, "ACGTACGT")
	pool := workpool.New(1)
	defer pool.Shutdown()

	q := query.Query{ID: "q1", Nucleotides: nucleotide.EncodeString("ACGT")}
	cfg := config.DefaultConfig()
	cfg.MinSoCTries = 100
	cfg.MaxSoCTries = 1 // MinSoCTries > MaxSoCTries is invalid

	_, _, err := Align(context.Background(), q, fm, p, cfg, pool, nil)
	if err == nil {
		t.Fatalf("expected Align to reject an invalid config")
	}
}

func TestAlignEmptyQueryReturnsNoChains(t *testing.T) {
	p, fm := buildRef(t, "ACGTACGT")
	pool := workpool.New(1)
	defer pool.Shutdown()

	q := query.Query{ID: "q1"}
	chains, _, err := Align(context.Background(), q, fm, p, config.DefaultConfig(), pool, nil)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if len(chains) != 0 {
		t.Fatalf("expected no chains for an empty query, got %+v", chains)
	}
}
