package segment

import (
	"sort"

	"laus-core/config"
	"laus-core/fmindex"
	"laus-core/nucleotide"
	"laus-core/pack"
	"laus-core/seeds"
)

// kmerLen is the word size used by Reseed's k-mer hash map; short enough to
// find seeds in narrow gaps, long enough to keep the map's collision rate
// low for the window sizes Reseed builds.
const kmerLen = 12

// reseedSlop widens the reference window Reseed searches around each gap's
// diagonal projection, absorbing small indels between the two flanking
// segments.
const reseedSlop = 16

// Reseed runs the optional secondary pass of §4.3: for each gap between
// consecutive segments of sv, it hashes k-mers of a reference window near
// the gap's projected diagonal and looks up every k-mer of the query gap
// against it, extending hits into additional seeds. It is a no-op unless
// cfg.DoReseed is set.
func Reseed(query []nucleotide.Code, sv seeds.SegmentVector, ref *pack.PackedReference, fm *fmindex.FMIndex, cfg config.Config) seeds.SegmentVector {
	if !cfg.DoReseed || len(query) == 0 {
		return sv
	}

	sorted := make(seeds.SegmentVector, len(sv))
	copy(sorted, sv)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].QStart < sorted[j].QStart })

	out := make(seeds.SegmentVector, len(sorted))
	copy(out, sorted)

	for i := 0; i <= len(sorted); i++ {
		gapStart := 0
		if i > 0 {
			gapStart = sorted[i-1].QEnd()
		}
		gapEnd := len(query)
		if i < len(sorted) {
			gapEnd = sorted[i].QStart
		}
		if gapEnd-gapStart < kmerLen {
			continue
		}

		var anchor *seeds.Segment
		if i > 0 {
			anchor = &sorted[i-1]
		} else if i < len(sorted) {
			anchor = &sorted[i]
		} else {
			continue // no segments at all to anchor a diagonal against
		}
		if anchor.SAInterval.Empty() {
			continue
		}

		anchorPos := fm.SaToPos(anchor.SAInterval.Start)
		diagonal := int64(anchorPos) - int64(anchor.QStart)

		windowStart := diagonal + int64(gapStart) - reseedSlop
		windowEnd := diagonal + int64(gapEnd) + reseedSlop
		if windowStart < 0 {
			windowStart = 0
		}
		if windowEnd > int64(ref.RefLen()) {
			windowEnd = int64(ref.RefLen())
		}
		if windowEnd-windowStart < kmerLen {
			continue
		}

		found := reseedGap(query, gapStart, gapEnd, ref, fm, uint64(windowStart), uint64(windowEnd))
		out = append(out, found...)
	}

	return out
}

// reseedGap hashes every k-mer of ref[winStart:winEnd) and probes it against
// every k-mer of query[gapStart:gapEnd), extending hits to maximal matches
// and greedily keeping the longest, non-overlapping ones.
func reseedGap(query []nucleotide.Code, gapStart, gapEnd int, ref *pack.PackedReference, fm *fmindex.FMIndex, winStart, winEnd uint64) []seeds.Segment {
	type hit struct {
		qStart, length int
		refStart       uint64
	}

	kmerIndex := make(map[string][]uint64, int(winEnd-winStart))
	window := make([]nucleotide.Code, winEnd-winStart)
	for i := range window {
		window[i] = ref.Nuc(winStart + uint64(i))
	}
	for i := 0; i+kmerLen <= len(window); i++ {
		key := kmerKey(window[i : i+kmerLen])
		kmerIndex[key] = append(kmerIndex[key], winStart+uint64(i))
	}

	var hits []hit
	for q := gapStart; q+kmerLen <= gapEnd; q++ {
		key := kmerKey(query[q : q+kmerLen])
		for _, refPos := range kmerIndex[key] {
			if ref.Bridges(refPos, refPos+kmerLen) {
				continue
			}
			left, right := q, refPos
			for left > gapStart && right > winStart && query[left-1] == ref.Nuc(right-1) {
				left--
				right--
			}
			right2 := refPos + kmerLen
			end := q + kmerLen
			for end < gapEnd && right2 < winEnd && query[end] == ref.Nuc(right2) {
				end++
				right2++
			}
			hits = append(hits, hit{qStart: left, length: end - left, refStart: right})
		}
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].length > hits[j].length })

	occupied := make([]bool, gapEnd-gapStart)
	var out []seeds.Segment
	for _, h := range hits {
		overlap := false
		for i := h.qStart; i < h.qStart+h.length; i++ {
			if occupied[i-gapStart] {
				overlap = true
				break
			}
		}
		if overlap || ref.Bridges(h.refStart, h.refStart+uint64(h.length)) {
			continue
		}
		for i := h.qStart; i < h.qStart+h.length; i++ {
			occupied[i-gapStart] = true
		}
		ik := fm.GetInterval(query[h.qStart : h.qStart+h.length])
		if ik.Empty() {
			continue
		}
		out = append(out, seeds.Segment{QStart: h.qStart, Length: h.length, SAInterval: ik})
	}
	return out
}

func kmerKey(codes []nucleotide.Code) string {
	b := make([]byte, len(codes))
	for i, c := range codes {
		b[i] = byte(c)
	}
	return string(b)
}
