// Package soc implements the StripOfConsideration (§4.4): projecting
// segments onto reference diagonals and bucketing them into strips of
// densely co-located seeds, returned as a priority queue ordered by
// decreasing score.
package soc

import (
	"container/heap"
	"math"
	"sort"

	"laus-core/config"
	"laus-core/fmindex"
	"laus-core/nucleotide"
	"laus-core/pack"
	"laus-core/seeds"
	"laus-core/telemetry"
)

// BuildStrips implements §4.4 end to end: diagonal projection, bucketing,
// strip selection, and packaging the survivors into a priority queue.
func BuildStrips(segments seeds.SegmentVector, fm *fmindex.FMIndex, ref *pack.PackedReference, query []nucleotide.Code, cfg config.Config, tel *telemetry.Counters) *StripQueue {
	queryLen := len(query)
	projected := projectSeeds(segments, fm, ref, cfg, tel)
	sortByDiagonal(projected, queryLen)
	strips := selectStrips(projected, queryLen, cfg)

	pq := NewStripQueue()
	for _, s := range strips {
		heap.Push(pq, s)
	}
	if tel != nil {
		tel.AddStripsBuilt(int64(len(strips)))
	}
	return pq
}

// projectSeeds enumerates every occurrence of every eligible segment's
// SA-interval into a Seed, dropping intervals above MaxAmbiguity and seeds
// that bridge a contig boundary or the strand midpoint (§4.4, §4.1).
func projectSeeds(segments seeds.SegmentVector, fm *fmindex.FMIndex, ref *pack.PackedReference, cfg config.Config, tel *telemetry.Counters) []seeds.Seed {
	lFwd := ref.LFwd()
	var out []seeds.Seed
	for _, seg := range segments {
		if uint32(seg.Length) < cfg.MinSeedLen {
			continue
		}
		if seg.SAInterval.Size > uint64(cfg.MaxAmbiguity) {
			if tel != nil {
				tel.AddSeedsDroppedAmbiguous(int64(seg.SAInterval.Size))
			}
			continue
		}
		for k := seg.SAInterval.Start; k < seg.SAInterval.Start+seg.SAInterval.Size; k++ {
			pos := fm.SaToPos(k)
			length := uint64(seg.Length)
			if ref.Bridges(pos, pos+length) {
				if tel != nil {
					tel.AddSeedsDroppedBridging(1)
				}
				continue
			}
			var refStart uint64
			var onForward bool
			if pos+length <= lFwd {
				onForward = true
				refStart = pos
			} else {
				onForward = false
				refStart = 2*lFwd - pos - length
			}
			out = append(out, seeds.Seed{
				QStart:    seg.QStart,
				Length:    seg.Length,
				RefStart:  refStart,
				OnForward: onForward,
			})
		}
	}
	return out
}

// useRadixSort implements §4.4's sort-strategy switch literally:
// n·log2(n) > 2·34·n/log2(n) selects radix sort over comparison sort.
func useRadixSort(n int) bool {
	if n < 2 {
		return false
	}
	logn := math.Log2(float64(n))
	comparisonCost := float64(n) * logn
	radixCost := 2 * 34 * float64(n) / logn
	return comparisonCost > radixCost
}

func sortByDiagonal(ss []seeds.Seed, queryLen int) {
	if len(ss) < 2 {
		return
	}
	if useRadixSort(len(ss)) {
		radixSortByDiagonal(ss, queryLen)
		return
	}
	sort.Slice(ss, func(i, j int) bool {
		return ss[i].Diagonal(queryLen) < ss[j].Diagonal(queryLen)
	})
}

// radixSortByDiagonal is an LSD radix sort over the 64-bit diagonal key,
// used instead of comparison sort once useRadixSort says there are enough
// seeds to make the fixed per-pass cost pay for itself.
func radixSortByDiagonal(ss []seeds.Seed, queryLen int) {
	const bits = 8
	const passes = 64 / bits
	buf := make([]seeds.Seed, len(ss))
	keys := make([]uint64, len(ss))
	for i, s := range ss {
		// bias so the signed key sorts correctly as unsigned
		keys[i] = uint64(s.Diagonal(queryLen)) ^ (1 << 63)
	}
	keyBuf := make([]uint64, len(ss))
	src, dst := ss, buf
	srcKeys, dstKeys := keys, keyBuf
	for pass := 0; pass < passes; pass++ {
		shift := uint(pass * bits)
		var count [1 << bits]int
		for _, k := range srcKeys {
			count[(k>>shift)&0xff]++
		}
		sum := 0
		for i := range count {
			count[i], sum = sum, sum+count[i]
		}
		for i, k := range srcKeys {
			b := (k >> shift) & 0xff
			dst[count[b]] = src[i]
			dstKeys[count[b]] = k
			count[b]++
		}
		src, dst = dst, src
		srcKeys, dstKeys = dstKeys, srcKeys
	}
	copy(ss, src)
}

// selectStrips runs the sliding-window local-maxima scan of §4.4 and
// deduplicates overlapping maxima, keeping the higher-scoring one.
func selectStrips(sorted []seeds.Seed, queryLen int, cfg config.Config) []*seeds.Strip {
	if len(sorted) == 0 {
		return nil
	}
	stripSize := int64(cfg.StripSize(queryLen))
	minScore := cfg.MinAccumulatedLength * float64(queryLen)

	var candidates []*seeds.Strip
	lo := 0
	sumLen := 0
	for hi := 0; hi < len(sorted); hi++ {
		sumLen += sorted[hi].Length
		for sorted[hi].Diagonal(queryLen)-sorted[lo].Diagonal(queryLen) >= stripSize {
			sumLen -= sorted[lo].Length
			lo++
		}
		count := hi - lo + 1
		score := float64(sumLen)
		if uint32(count) > cfg.MinSeeds || score > minScore {
			windowSeeds := make([]seeds.Seed, count)
			copy(windowSeeds, sorted[lo:hi+1])
			candidates = append(candidates, &seeds.Strip{
				DiagonalStart: sorted[lo].Diagonal(queryLen),
				Seeds:         windowSeeds,
				Score:         score,
			})
		}
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Score > candidates[j].Score })

	var accepted []*seeds.Strip
	for _, c := range candidates {
		overlaps := false
		for _, a := range accepted {
			if abs64(c.DiagonalStart-a.DiagonalStart) < stripSize {
				overlaps = true
				break
			}
		}
		if !overlaps {
			accepted = append(accepted, c)
		}
	}
	return accepted
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
