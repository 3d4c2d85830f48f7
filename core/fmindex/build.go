package fmindex

import (
	"sort"

	"laus-core/alignerr"
	"laus-core/nucleotide"
	"laus-core/pack"
)

// Build constructs the BWT, samples the SA at interval saIntv (a power of
// two; 0 selects DefaultSAIntv), and computes the cumulative counts L2 of
// §4.2 for a finalized PackedReference.
//
// §4.2 permits "an in-memory quadratic-friendly suffix-sort" for small
// references; buildSuffixArray below is that path (grounded on the
// naive-comparison technique sketched in
// other_examples/will-rowe-go-bw__main.go, generalized to a full linear-text
// suffix array with a sentinel rather than that file's toy rotation sort).
// buildSAIS (build_sais.go) implements the linear-space alternative §4.2
// permits for larger references, grounded on
// other_examples/xiles84-dnatools__sais.go; build_test.go cross-checks the
// two against each other.
func Build(ref *pack.PackedReference, saIntv uint32) (*FMIndex, error) {
	if saIntv == 0 {
		saIntv = DefaultSAIntv
	}
	if saIntv&(saIntv-1) != 0 {
		return nil, &alignerr.CorruptIndex{Reason: "SA_INTV must be a power of two"}
	}

	n := ref.RefLen()
	if n == 0 {
		return nil, &alignerr.CorruptIndex{Reason: "empty reference"}
	}

	text := make([]nucleotide.Code, n)
	for i := uint64(0); i < n; i++ {
		text[i] = ref.Nuc(i)
	}

	extSA := buildSuffixArray(text) // length n+1, extSA[0] == n (the "$" row)
	return fromSuffixArray(text, extSA, saIntv)
}

// buildSuffixArray returns the suffix array of text+"$" where "$" sorts
// before every real code. It is the naive comparison-sort permitted for
// small references by §4.2; correctness (not asymptotic elegance) is the
// goal since it is cross-checked against buildSAIS in tests.
func buildSuffixArray(text []nucleotide.Code) []int {
	n := len(text)
	ext := make([]int, n+1)
	for i, c := range text {
		ext[i] = int(c)
	}
	ext[n] = -1 // sentinel, smaller than any real code (0..3)

	sa := make([]int, n+1)
	for i := range sa {
		sa[i] = i
	}
	sort.Slice(sa, func(i, j int) bool {
		return lessSuffix(ext, sa[i], sa[j])
	})
	return sa
}

func lessSuffix(ext []int, i, j int) bool {
	if i == j {
		return false
	}
	for i < len(ext) && j < len(ext) {
		if ext[i] != ext[j] {
			return ext[i] < ext[j]
		}
		i++
		j++
	}
	// One ran out of the sentinel-extended text first; since the sentinel
	// appears exactly once, this only happens when i==j, already handled.
	return i > j
}

// fromSuffixArray derives the BWT, L2 counts, primary row and sampled SA
// from a full (n+1)-length suffix array of text+"$" (extSA[0] == n).
func fromSuffixArray(text []nucleotide.Code, extSA []int, saIntv uint32) (*FMIndex, error) {
	n := uint64(len(text))
	m := n + 1

	f := &FMIndex{bwtLen: n, saIntv: saIntv}
	f.bwt = make([]nucleotide.Code, m)

	primary := -1
	for r, pos := range extSA {
		if pos == 0 {
			primary = r
			continue
		}
		f.bwt[r] = text[pos-1]
	}
	if primary < 0 {
		return nil, &alignerr.CorruptIndex{Reason: "suffix array missing position 0"}
	}
	f.primary = uint64(primary)
	f.bwt[primary] = nucleotide.A // placeholder for the "$" predecessor, per §4.2

	// L2[c] = number of bases in text strictly less than code c.
	var counts [4]uint64
	for _, c := range text {
		counts[c]++
	}
	f.l2[0] = 0
	for c := 1; c <= 4; c++ {
		f.l2[c] = f.l2[c-1] + counts[c-1]
	}

	// Occurrence prefix tables over the full m-length BWT array (including
	// the placeholder row), occPrefix[c][r] = count of c in bwt[0:r). The
	// primary row holds no real base (bwt[primary] is a placeholder stood
	// in for "$"), so it must never be tallied into any code's count —
	// doing so would inflate that code's occurrence total by one for every
	// SA-interval straddling the primary row, the same way bwa's bwt_occ
	// treats the primary row as a gap rather than a fourth base.
	for c := 0; c < 4; c++ {
		f.occPrefix[c] = make([]uint64, m+1)
	}
	for r := uint64(0); r < m; r++ {
		for c := 0; c < 4; c++ {
			f.occPrefix[c][r+1] = f.occPrefix[c][r]
		}
		if r != f.primary {
			f.occPrefix[f.bwt[r]][r+1]++
		}
	}

	// Sample the SA at every saIntv-th rank across the full m-length array.
	f.saSample = make([]uint64, 0, m/uint64(saIntv)+1)
	for r := uint64(0); r < m; r++ {
		if r%uint64(saIntv) == 0 {
			f.saSample = append(f.saSample, uint64(extSA[r]))
		}
	}

	return f, nil
}
