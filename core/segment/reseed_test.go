package segment

import (
	"testing"

	"laus-core/config"
	"laus-core/nucleotide"
	"laus-core/pack"
	"laus-core/seeds"
)

func TestReseedFillsArtificialGap(t *testing.T) {
	const ref = "ACGTACGTAAAACCCCGGGGTTTT" // len 24; gap [8,16) = "AAAACCCC"
	p := pack.New()
	p.AppendContig("chr1", []byte(ref))
	p.Finalize()
	fm := buildIndex(t, ref)

	query := nucleotide.EncodeString(ref)

	firstSeg := seeds.Segment{QStart: 0, Length: 8, SAInterval: fm.GetInterval(query[0:8])}
	lastSeg := seeds.Segment{QStart: 16, Length: 8, SAInterval: fm.GetInterval(query[16:24])}
	sv := seeds.SegmentVector{firstSeg, lastSeg}

	cfg := config.DefaultConfig()
	cfg.DoReseed = true
	out := Reseed(query, sv, p, fm, cfg)

	if len(out) <= len(sv) {
		t.Fatalf("expected Reseed to add at least one segment, got %d (started with %d)", len(out), len(sv))
	}

	covered := make([]bool, len(query))
	for _, seg := range out {
		for i := seg.QStart; i < seg.QEnd(); i++ {
			covered[i] = true
		}
	}
	for i := 8; i < 16; i++ {
		if !covered[i] {
			t.Fatalf("position %d in the gap was not recovered by Reseed", i)
		}
	}
}

func TestReseedNoOpWhenDisabled(t *testing.T) {
	const ref = "ACGTACGTAAAACCCCGGGGTTTT"
	p := pack.New()
	p.AppendContig("chr1", []byte(ref))
	p.Finalize()
	fm := buildIndex(t, ref)
	query := nucleotide.EncodeString(ref)

	sv := seeds.SegmentVector{{QStart: 0, Length: 8, SAInterval: fm.GetInterval(query[0:8])}}
	cfg := config.DefaultConfig()
	cfg.DoReseed = false

	out := Reseed(query, sv, p, fm, cfg)
	if len(out) != len(sv) {
		t.Fatalf("expected Reseed to be a no-op when DoReseed is false, got %d segments (started with %d)", len(out), len(sv))
	}
}
