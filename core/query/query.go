// Package query defines the Query value the core consumes one at a time
// (§6, §9 "Coroutine-style laziness": the core is handed a Query, not an
// iterator over a FASTA stream).
package query

import "laus-core/nucleotide"

// Query is (id, name, nucleotides, quality) as named in §6's external
// interface table. Quality is optional (nil for FASTA-sourced queries);
// when present it must be the same length as Nucleotides.
type Query struct {
	ID          string
	Name        string
	Nucleotides []nucleotide.Code
	Quality     []byte
}

// Len is the query length in bases.
func (q Query) Len() int { return len(q.Nucleotides) }
