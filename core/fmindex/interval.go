package fmindex

import "laus-core/nucleotide"

// occBefore returns the number of occurrences of code c in bwt[0:pos)
// (exclusive), where pos ranges over [0, mLen()].
func (f *FMIndex) occBefore(c nucleotide.Code, pos uint64) uint64 {
	return f.occPrefix[c][pos]
}

// occ2 mirrors the authoritative algorithm's bwt_2occ4: given the
// (a,b]-style endpoints a and b (already decremented by the caller), it
// returns cntk = occBefore(*, a+1) and cntl = occBefore(*, b+1), i.e. counts
// over bwt[0:a] and bwt[0:b] inclusive.
func (f *FMIndex) occ2(a, b uint64) (cntk, cntl [4]uint64) {
	for c := nucleotide.Code(0); c < 4; c++ {
		cntk[c] = f.occBefore(c, a+1)
		cntl[c] = f.occBefore(c, b+1)
	}
	return
}

// InitInterval returns the SA-interval for a single character c (§4.2).
func (f *FMIndex) InitInterval(c nucleotide.Code) SaInterval {
	if c == nucleotide.N {
		return SaInterval{}
	}
	rc := nucleotide.Complement(c)
	return SaInterval{
		Start:   f.l2[c] + 1,
		StartRC: f.l2[rc] + 1,
		Size:    f.l2[c+1] - f.l2[c],
	}
}

// ExtendBackward implements the authoritative backward-extension algorithm
// of §4.2. It never fails: an ambiguous character or an interval that
// cannot be extended yields the empty interval.
func (f *FMIndex) ExtendBackward(ik SaInterval, c nucleotide.Code) SaInterval {
	if c == nucleotide.N || ik.Empty() {
		return SaInterval{}
	}

	// "the occurrence-counting routine treats them as (a,b], so both
	// endpoints are decremented by 1 before the call" (§4.2 step 2).
	cntk, cntl := f.occ2(ik.Start-1, ik.Start+ik.Size-1)

	var cnts [4]uint64
	for i := 0; i < 4; i++ {
		cnts[i] = cntl[i] - cntk[i]
	}

	// The primary-sentinel adjustment (§4.2 step 3): if the BWT's primary
	// row lies inside [ik.Start, ik.Start+ik.Size), that row is counted in
	// none of the cnts[] (so they sum to ik.Size-1) and startRC needs +1.
	startRC := ik.StartRC
	if ik.Start <= f.primary && ik.Start+ik.Size > f.primary {
		startRC++
	}

	// Build the reverse-complement interval's start for the extended
	// pattern c+P: accumulate cnts[] for every base that sorts before
	// complement(c) among {complement(0), complement(1), complement(2)}
	// (§4.2 step 4 — "up to but not including the contribution of
	// complement(c)").
	cntkRC := [4]uint64{startRC, 0, 0, 0}
	for i := 1; i < 4; i++ {
		cntkRC[i] = cntkRC[i-1] + cnts[nucleotide.Complement(nucleotide.Code(i-1))]
	}

	return SaInterval{
		Start:   f.l2[c] + cntk[c] + 1,
		StartRC: cntkRC[nucleotide.Complement(c)],
		Size:    cnts[c],
	}
}

// ExtendForward extends ik rightward by character c. A bidirectional
// FM-index tracks both a pattern's forward SA-interval and its
// reverse-complement's SA-interval in the same value, which makes forward
// extension the mirror image of ExtendBackward: extending P by c on the
// right is the same computation as backward-extending revcomp(P) by
// complement(c), with the start/startRC roles swapped back afterward.
func (f *FMIndex) ExtendForward(ik SaInterval, c nucleotide.Code) SaInterval {
	swapped := SaInterval{Start: ik.StartRC, StartRC: ik.Start, Size: ik.Size}
	ext := f.ExtendBackward(swapped, nucleotide.Complement(c))
	if ext.Empty() {
		return SaInterval{}
	}
	return SaInterval{Start: ext.StartRC, StartRC: ext.Start, Size: ext.Size}
}

// GetInterval backward-extends from the last character of a query pattern
// to the first, returning the SA-interval for the whole pattern (used by
// the round-trip property of §8: FMIndex.build(S).getInterval(S) for an
// S with no N's and no other occurrence should have size 1).
func (f *FMIndex) GetInterval(pattern []nucleotide.Code) SaInterval {
	if len(pattern) == 0 {
		return SaInterval{}
	}
	i := len(pattern) - 1
	ik := f.InitInterval(pattern[i])
	for i > 0 && !ik.Empty() {
		i--
		ik = f.ExtendBackward(ik, pattern[i])
	}
	return ik
}

// SaToPos unsamples SA[saIndex] by stepping the LF-mapping (ψ⁻¹) until a
// sampled rank is reached, accumulating the distance traveled (§4.2 "SA
// sampling and inversion").
//
// The primary row is a special case: by construction SA[primary] == 0 (it
// is the rank of the suffix starting at position 0, i.e. the full text),
// so it carries no sampled value and bwt[primary] is not a real base — LF
// mapping must not step through it. Whenever the walk reaches the primary
// row, the unknown position is resolved directly as 0 rather than by an
// occPrefix lookup against the placeholder row.
func (f *FMIndex) SaToPos(saIndex uint64) uint64 {
	steps := uint64(0)
	cur := saIndex
	for cur%uint64(f.saIntv) != 0 && cur != f.primary {
		c := f.bwt[cur]
		rank := f.occBefore(c, cur)
		cur = f.l2[c] + 1 + rank
		steps++
	}
	if cur == f.primary {
		return steps % f.mLen()
	}
	sampled := f.saSample[cur/uint64(f.saIntv)]
	return (sampled + steps) % f.mLen()
}
