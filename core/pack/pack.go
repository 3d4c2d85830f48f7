// Package pack implements the 2-bit packed forward+reverse-complement
// reference (§3, §4.1): nuc(pos), bridges(a,b), extract(a,b) and build-time
// appendContig. The reverse-complement half is materialized in memory so the
// FM-index can treat both strands uniformly; it is never persisted (§6) —
// Load reconstructs it from the forward half.
package pack

import (
	"laus-core/nucleotide"
)

// ContigInfo describes one contig on the forward strand.
type ContigInfo struct {
	Name   string
	Start  uint64 // offset into the forward half, in bases
	Length uint64
}

// PackedReference stores the forward strand plus its reverse complement as
// a single logical sequence of length 2*L_fwd. In memory each base is one
// nucleotide.Code byte; only the on-disk payload is 2-bit packed. N bases are
// rejected at appendContig time: the packed alphabet only ever encodes
// {A,C,G,T}; spec §1's alphabet {A,C,G,T,N} is for queries, not the packed
// reference payload.
type PackedReference struct {
	contigs []ContigInfo
	lFwd    uint64

	// fwd holds the forward half only, one nucleotide.Code (0..3) per base,
	// appended by AppendContig. rev is derived once by Finalize after all
	// contigs are appended.
	fwd    []nucleotide.Code
	rev    []nucleotide.Code // reverse complement built by Finalize, same length as fwd
	closed bool
}

// New returns an empty, build-time PackedReference.
func New() *PackedReference {
	return &PackedReference{}
}

// AppendContig adds a contig's unpacked sequence (ASCII bases) to the
// forward half. Build-time only; panics if called after Finalize or if seq
// contains anything but A/C/G/T (case-insensitive).
func (p *PackedReference) AppendContig(name string, seq []byte) {
	if p.closed {
		panic("pack: AppendContig called after Finalize")
	}
	start := p.lFwd
	codes := make([]nucleotide.Code, len(seq))
	for i, b := range seq {
		c, ok := nucleotide.Parse(b)
		if !ok || c == nucleotide.N {
			panic("pack: reference sequence must be unambiguous A/C/G/T")
		}
		codes[i] = c
	}
	p.fwd = append(p.fwd, codes...)
	p.contigs = append(p.contigs, ContigInfo{Name: name, Start: start, Length: uint64(len(seq))})
	p.lFwd += uint64(len(seq))
}

// Finalize materializes the reverse-complement half. Must be called exactly
// once, after all contigs are appended and before any query operation.
func (p *PackedReference) Finalize() {
	if p.closed {
		return
	}
	p.rev = nucleotide.ReverseComplement(p.fwd)
	p.closed = true
}

// LFwd returns the forward strand length in bases.
func (p *PackedReference) LFwd() uint64 { return p.lFwd }

// RefLen returns 2*LFwd, the logical length of forward+reverse-complement.
func (p *PackedReference) RefLen() uint64 { return 2 * p.lFwd }

// Contigs returns the ordered, non-overlapping forward-strand contig list.
func (p *PackedReference) Contigs() []ContigInfo {
	out := make([]ContigInfo, len(p.contigs))
	copy(out, p.contigs)
	return out
}

// Nuc returns the nucleotide code at a logical position in [0, 2*LFwd).
// Positions in the upper half return the complement of the mirrored forward
// position, i.e. nuc(LFwd+i) == complement(nuc(LFwd-1-i)).
func (p *PackedReference) Nuc(pos uint64) nucleotide.Code {
	if pos < p.lFwd {
		return p.fwd[pos]
	}
	return p.rev[pos-p.lFwd]
}

// contigIndexAt returns the index of the contig containing a forward-strand
// position, or -1 if pos == LFwd (the exclusive end).
func (p *PackedReference) contigIndexAt(fwdPos uint64) int {
	for i, c := range p.contigs {
		if fwdPos >= c.Start && fwdPos < c.Start+c.Length {
			return i
		}
	}
	return -1
}

// Bridges reports whether [a,b) crosses a contig boundary or the
// forward/reverse-complement midpoint (§3, §4.1).
func (p *PackedReference) Bridges(a, b uint64) bool {
	if a >= b {
		return false
	}
	mid := p.lFwd
	if a < mid && b > mid {
		return true
	}
	// Map the range onto forward-strand coordinates for boundary checks;
	// the reverse half is mirrored, so [a,b) there is [2*mid-b, 2*mid-a).
	var fa, fb uint64
	if b <= mid {
		fa, fb = a, b
	} else {
		fa, fb = 2*mid-b, 2*mid-a
	}
	startIdx := p.contigIndexAt(fa)
	if startIdx == -1 {
		return true
	}
	c := p.contigs[startIdx]
	return fb > c.Start+c.Length
}

// Extract returns the nucleotide codes of [a,b). It panics if the range
// bridges a contig boundary or the strand midpoint (§4.1: "used only for
// verification").
func (p *PackedReference) Extract(a, b uint64) []nucleotide.Code {
	if p.Bridges(a, b) {
		panic("pack: Extract called on a bridging range")
	}
	out := make([]nucleotide.Code, b-a)
	for i := a; i < b; i++ {
		out[i-a] = p.Nuc(i)
	}
	return out
}
