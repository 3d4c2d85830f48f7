// Package seeds holds the data model shared by the Segmenter, the
// StripOfConsideration and the Harmonizer (§3): Seed, Segment,
// SegmentVector, Strip and Chain.
package seeds

import "laus-core/fmindex"

// Seed is a single exact match: length bases starting at qStart in the
// query correspond to length bases starting at refStart in the reference
// (forward strand coordinates always; onForward disambiguates strand).
type Seed struct {
	QStart    int
	Length    int
	RefStart  uint64
	OnForward bool
}

// QEnd is the exclusive end of the seed's query range.
func (s Seed) QEnd() int { return s.QStart + s.Length }

// RefEnd is the exclusive end of the seed's forward-coordinate reference range.
func (s Seed) RefEnd() uint64 { return s.RefStart + uint64(s.Length) }

// Diagonal is refStart + (queryLen - qStart), the coordinate shared by
// seeds belonging to the same true alignment (the GLOSSARY's "Diagonal").
func (s Seed) Diagonal(queryLen int) int64 {
	return int64(s.RefStart) + int64(queryLen-s.QStart)
}

// Segment is a maximal exact match recorded as (qStart, length, saInterval)
// per §3; the actual reference positions are recovered lazily via
// FMIndex.SaToPos over saInterval, since a single Segment usually stands
// for many occurrences.
type Segment struct {
	QStart     int
	Length     int
	SAInterval fmindex.SaInterval
}

// QEnd is the exclusive end of the segment's query range.
func (s Segment) QEnd() int { return s.QStart + s.Length }

// SegmentVector is an ordered sequence of Segments produced by the
// Segmenter. Concurrent producers may append in any order; callers must
// treat it as a set (§5 Ordering guarantees).
type SegmentVector []Segment

// Strip is (diagonalStart, seeds) with the invariant that every seed's
// diagonal lies in [diagonalStart, diagonalStart+stripSize) (§3).
type Strip struct {
	DiagonalStart int64
	Seeds         []Seed
	Score         float64
}

// Chain is an ordered, colinear, non-overlapping sequence of seeds
// produced by the Harmonizer (§3): non-decreasing in query and reference
// coordinates (decreasing reference coordinates on the reverse strand), no
// overlaps, all on a single strand.
type Chain struct {
	Seeds     []Seed
	OnForward bool
}

// TotalLength sums the length of every seed in the chain. Chains are not
// ranked by it; SelectChains orders work by strip score.
func (c Chain) TotalLength() int {
	total := 0
	for _, s := range c.Seeds {
		total += s.Length
	}
	return total
}
