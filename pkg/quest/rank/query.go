package rank

import "sort"

// Query is a set of normalized query tokens
type Query map[string]struct{}

// NewQuery collapses tokens into a set
func NewQuery(tokens []string) Query {
	q := make(Query, len(tokens))
	for _, tok := range tokens {
		q[tok] = struct{}{}
	}
	return q
}

// Has reports whether tok is a query term
func (q Query) Has(tok string) bool {
	_, ok := q[tok]
	return ok
}

// Terms returns the query terms in lexical order. Scores are always
// accumulated in this order so that float sums do not depend on map
// iteration.
func (q Query) Terms() []string {
	terms := make([]string, 0, len(q))
	for t := range q {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return terms
}
