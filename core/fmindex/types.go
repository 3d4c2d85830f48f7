// Package fmindex implements the BWT + sampled suffix array + cumulative
// counts FM-index of §4.2: backward extension of SA-intervals and
// sa->pos lookup, over the concatenated forward+reverse-complement
// reference produced by laus-core/pack.
package fmindex

import "laus-core/nucleotide"

// DefaultSAIntv is the default suffix-array sampling interval (§4.2): a
// power of two. Sampling is by rank (every DefaultSAIntv-th row), so the
// number of LF-mapping steps SaToPos takes is not bounded by the interval.
const DefaultSAIntv uint32 = 32

// occInterval is the OCC-block interleaving granularity of the persisted
// BWT payload (§6): "packed 2-bit with OCC blocks interleaved every 128
// nucleotides".
const occInterval = 128

// SaInterval is the triple (start, startRC, size) of §3: start is the
// lower bound in the suffix array for pattern P, startRC the lower bound
// for revcomp(P), and size the occurrence count. Empty iff size == 0.
type SaInterval struct {
	Start   uint64
	StartRC uint64
	Size    uint64
}

// Empty reports whether the interval has no occurrences.
func (s SaInterval) Empty() bool { return s.Size == 0 }

// FMIndex is the built, read-only index over a packed forward+RC reference.
type FMIndex struct {
	bwtLen  uint64 // n: length of the real (non-$) BWT, i.e. RefLen of the packed reference
	primary uint64 // rank (row) in the m=n+1 array holding the $ placeholder
	l2      [5]uint64

	// bwt holds one nucleotide.Code (0..3) per row of the m=n+1 array;
	// bwt[primary] is the unused placeholder (always nucleotide.A).
	bwt []nucleotide.Code

	// occPrefix[c][r] = number of occurrences of code c in bwt[0:r)
	// (exclusive). Length bwtLen()+2 (m+1) so r can range over [0,m].
	occPrefix [4][]uint64

	saIntv   uint32
	saSample []uint64 // sampled SA values at ranks r where r % saIntv == 0
}

// RefLen returns 2*L_fwd, matching pack.PackedReference.RefLen (§4.2).
func (f *FMIndex) RefLen() uint64 { return f.bwtLen }

// Primary exposes the BWT's primary-sentinel row, for diagnostics.
func (f *FMIndex) Primary() uint64 { return f.primary }

// L2 exposes the cumulative base-start counts L2[0..4], for diagnostics.
func (f *FMIndex) L2() [5]uint64 { return f.l2 }

// mLen is the size of the full (including the $ placeholder) BWT/SA array.
func (f *FMIndex) mLen() uint64 { return f.bwtLen + 1 }
