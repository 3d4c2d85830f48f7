// Package harmonize implements the Harmonizer (§4.5): given a strip of
// candidate seeds it splits them by strand, removes crossing seeds with a
// linesweep, filters outliers with RANSAC, and clusters the survivors into
// colinear Chains.
package harmonize

import (
	"sort"

	"laus-core/alignerr"
	"laus-core/config"
	"laus-core/seeds"
)

// Chain re-exports seeds.Chain so callers outside this package can write
// harmonize.Chain, matching the Harmonizer's role as the component that
// produces chains (§3, §4.5).
type Chain = seeds.Chain

// Harmonize runs §4.5 end to end on a single strip, returning one Chain per
// surviving cluster (forward and reverse clusters both included). queryLen
// is the full query's length, needed for shadow-casting; queryID only
// labels an InvariantViolation should one be detected.
func Harmonize(strip *seeds.Strip, queryLen int, queryID string, cfg config.Config) ([]seeds.Chain, error) {
	for _, s := range strip.Seeds {
		if s.QStart < 0 || s.QEnd() > queryLen || s.Length <= 0 {
			return nil, alignerr.NewInvariantViolation(queryID, "harmonize", "seed out of query bounds reached Harmonize")
		}
	}

	fwd, rev := splitByStrand(strip.Seeds)

	var chains []seeds.Chain
	for _, group := range [][]seeds.Seed{fwd, rev} {
		if len(group) == 0 {
			continue
		}
		onForward := group[0].OnForward
		survivors := linesweep(group, queryLen)
		if cfg.UseRansac {
			survivors = ransacFilter(survivors, cfg)
		}
		for _, cluster := range clusterByDelta(survivors, cfg) {
			chains = append(chains, seeds.Chain{Seeds: cluster, OnForward: onForward})
		}
	}
	return chains, nil
}

// splitByStrand partitions a strip's seeds into forward and reverse-strand
// subsets (§4.5 step 1).
func splitByStrand(ss []seeds.Seed) (fwd, rev []seeds.Seed) {
	for _, s := range ss {
		if s.OnForward {
			fwd = append(fwd, s)
		} else {
			rev = append(rev, s)
		}
	}
	return fwd, rev
}

// shadow is the pair of intervals a seed casts onto the strip boundaries
// (§4.5 step 2).
type shadow struct {
	leftStart, leftEnd   int64
	rightStart, rightEnd int64
}

func castShadow(s seeds.Seed, queryLen int) shadow {
	return shadow{
		leftStart:  int64(s.RefStart),
		leftEnd:    int64(s.RefStart) + int64(s.QStart) + int64(s.Length),
		rightStart: int64(s.RefStart) + int64(s.QStart),
		rightEnd:   int64(s.RefEnd()) + int64(queryLen-s.QEnd()),
	}
}

// encloses reports whether a's shadow fully contains b's shadow.
func (a shadow) encloses(b shadow) bool {
	return a.leftStart <= b.leftStart && a.rightEnd >= b.rightEnd
}

// linesweep removes crossing/contradictory seeds in O(n log n) by sorting
// on left-shadow start and sweeping, keeping whichever of two mutually
// enclosing seeds is longer (ties broken by smaller qStart) (§4.5 step 2).
func linesweep(ss []seeds.Seed, queryLen int) []seeds.Seed {
	if len(ss) <= 1 {
		return ss
	}
	type entry struct {
		seed seeds.Seed
		sh   shadow
	}
	entries := make([]entry, len(ss))
	for i, s := range ss {
		entries[i] = entry{seed: s, sh: castShadow(s, queryLen)}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].sh.leftStart != entries[j].sh.leftStart {
			return entries[i].sh.leftStart < entries[j].sh.leftStart
		}
		return entries[i].seed.QStart < entries[j].seed.QStart
	})

	better := func(a, b entry) entry {
		if a.seed.Length != b.seed.Length {
			if a.seed.Length > b.seed.Length {
				return a
			}
			return b
		}
		if a.seed.QStart <= b.seed.QStart {
			return a
		}
		return b
	}

	var kept []entry
	cover := entries[0]
	for i := 1; i < len(entries); i++ {
		cur := entries[i]
		if cover.sh.encloses(cur.sh) || cur.sh.encloses(cover.sh) {
			cover = better(cover, cur)
			continue
		}
		kept = append(kept, cover)
		cover = cur
	}
	kept = append(kept, cover)

	out := make([]seeds.Seed, len(kept))
	for i, e := range kept {
		out[i] = e.seed
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QStart < out[j].QStart })
	return out
}

// diagonal is refStart - qStart, the line-fit coordinate RANSAC and
// clustering both key on (§4.5 steps 3-4). Seed.Diagonal adds the query
// length as a constant offset, which cancels out of every delta used here,
// so the simpler form is used directly.
func diagonal(s seeds.Seed) float64 { return float64(s.RefStart) - float64(s.QStart) }
