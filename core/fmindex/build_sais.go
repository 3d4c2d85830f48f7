package fmindex

import "laus-core/nucleotide"

// buildSAIS is the linear-space suffix array construction §4.2 requires
// for larger references, adapted from the SA-IS algorithm in
// other_examples/xiles84-dnatools__sais.go. It must produce the exact same
// suffix array as buildSuffixArray (the naive comparison sort); build_test.go
// checks this on a battery of small references. Codes are shifted by one
// (nucleotide.Code 0..4 -> int 1..5) so the appended sentinel can occupy the
// unique smallest symbol, 0, as SA-IS requires.
func buildSAIS(text []nucleotide.Code) []int {
	n := len(text)
	s := make([]int, n+1)
	for i, c := range text {
		s[i] = int(c) + 1
	}
	s[n] = 0
	return sais(s, 6, len(s), make([]int, len(s)), make([]int, len(s)))
}

func sais(s []int, k, n int, sa, lmsNames []int) []int {
	sa = sa[:n]
	for i := range sa {
		sa[i] = -1
	}
	if n == 0 {
		return sa
	}
	if n == 1 {
		sa[0] = 0
		return sa
	}

	t := make([]bool, n)
	t[n-1] = true
	for i := n - 2; i >= 0; i-- {
		switch {
		case s[i] < s[i+1]:
			t[i] = true
		case s[i] > s[i+1]:
			t[i] = false
		default:
			t[i] = t[i+1]
		}
	}

	var lmsPositions []int
	for i := 1; i < n; i++ {
		if t[i] && !t[i-1] {
			lmsPositions = append(lmsPositions, i)
		}
	}

	sa = saisInduce(s, sa, t, k, lmsPositions)

	var sortedLMS []int
	for _, pos := range sa {
		if pos > 0 && t[pos] && !t[pos-1] {
			sortedLMS = append(sortedLMS, pos)
		}
	}

	lmsNames = lmsNames[:n]
	for i := range lmsNames {
		lmsNames[i] = -1
	}
	name := 0
	prev := -1
	for _, pos := range sortedLMS {
		if prev != -1 && !lmsSubstringEq(s, t, prev, pos) {
			name++
		}
		lmsNames[pos] = name
		prev = pos
	}
	numNames := name + 1

	reduced := make([]int, 0, len(lmsPositions))
	for _, pos := range lmsPositions {
		reduced = append(reduced, lmsNames[pos])
	}

	var reducedSA []int
	if numNames < len(reduced) {
		reducedSA = sais(reduced, numNames, len(reduced), sa, lmsNames)
	} else {
		reducedSA = make([]int, len(reduced))
		for i, nm := range reduced {
			reducedSA[nm] = i
		}
	}

	orderedLMS := make([]int, len(reducedSA))
	for i, idx := range reducedSA {
		orderedLMS[i] = lmsPositions[idx]
	}

	for i := range sa {
		sa[i] = -1
	}
	return saisInduce(s, sa, t, k, orderedLMS)
}

func saisInduce(s, sa []int, t []bool, k int, lms []int) []int {
	bucketSizes := make([]int, k)
	for _, v := range s {
		bucketSizes[v]++
	}
	bucketTails := saisBucketTails(bucketSizes)
	for i := len(lms) - 1; i >= 0; i-- {
		pos := lms[i]
		c := s[pos]
		sa[bucketTails[c]] = pos
		bucketTails[c]--
	}

	bucketHeads := saisBucketHeads(bucketSizes)
	for i := range sa {
		pos := sa[i]
		if pos > 0 && !t[pos-1] {
			c := s[pos-1]
			sa[bucketHeads[c]] = pos - 1
			bucketHeads[c]++
		}
	}

	bucketTails = saisBucketTails(bucketSizes)
	for i := len(sa) - 1; i >= 0; i-- {
		pos := sa[i]
		if pos > 0 && t[pos-1] {
			c := s[pos-1]
			sa[bucketTails[c]] = pos - 1
			bucketTails[c]--
		}
	}
	return sa
}

func saisBucketHeads(bucketSizes []int) []int {
	heads := make([]int, len(bucketSizes))
	sum := 0
	for i, v := range bucketSizes {
		heads[i] = sum
		sum += v
	}
	return heads
}

func saisBucketTails(bucketSizes []int) []int {
	tails := make([]int, len(bucketSizes))
	sum := 0
	for i, v := range bucketSizes {
		sum += v
		tails[i] = sum - 1
	}
	return tails
}

func lmsSubstringEq(s []int, t []bool, i, j int) bool {
	n := len(s)
	for k := 0; ; k++ {
		if s[i] != s[j] {
			return false
		}
		iIsLMS := i > 0 && t[i] && !t[i-1]
		jIsLMS := j > 0 && t[j] && !t[j-1]
		// Both substrings start at an LMS position; only a later LMS
		// position ends them.
		if k > 0 && iIsLMS && jIsLMS {
			return true
		}
		if k > 0 && iIsLMS != jIsLMS {
			return false
		}
		i++
		j++
		if i >= n || j >= n {
			return false
		}
	}
}
