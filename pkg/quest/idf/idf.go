// Package idf computes inverse document frequency over a named
// collection of token sequences.
package idf

import (
	"math"
	"sort"
)

// Documents maps a document identifier to its token sequence. For the
// sentence pass the identifier is the sentence text itself.
type Documents map[string][]string

// Table maps terms to their IDF over one specific collection. The zero
// Table is empty and valid.
type Table struct {
	docs   int
	values map[string]float64
}

// Compute returns ln(N/df(term)) for every term that occurs in at least
// one document, where N is len(docs) and df counts documents, not
// occurrences. An empty collection yields an empty table.
func Compute(docs Documents) Table {
	df := make(map[string]int)
	for _, tokens := range docs {
		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	n := float64(len(docs))
	values := make(map[string]float64, len(df))
	for term, count := range df {
		values[term] = math.Log(n / float64(count))
	}

	return Table{docs: len(docs), values: values}
}

// Lookup returns the IDF of term and whether the term occurs in the
// collection the table was computed over.
func (t Table) Lookup(term string) (float64, bool) {
	v, ok := t.values[term]
	return v, ok
}

// Docs returns the size of the collection the table was computed over.
func (t Table) Docs() int {
	return t.docs
}

// Len returns the number of distinct terms.
func (t Table) Len() int {
	return len(t.values)
}

// Terms returns every term in the table in lexical order.
func (t Table) Terms() []string {
	terms := make([]string, 0, len(t.values))
	for term := range t.values {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}
