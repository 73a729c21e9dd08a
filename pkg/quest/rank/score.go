package rank

import (
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/cognicore/quest/pkg/quest/idf"
	"github.com/cognicore/quest/pkg/quest/internalerr"
)

var (
	// ErrEmptySentence is returned when a candidate sentence has no tokens.
	// Such sentences must be filtered out before ranking.
	ErrEmptySentence = fmt.Errorf("%w: sentence has no tokens", internalerr.ErrInvalidInput)

	// ErrIDFMismatch is returned when an IDF table was computed over a
	// collection of a different size than the one being ranked. Only the
	// document counts are compared; a table from another collection of
	// the same size is not detected.
	ErrIDFMismatch = fmt.Errorf("%w: idf table does not match collection", internalerr.ErrInvalidInput)

	// ErrNegativeCount is returned for a negative result count.
	ErrNegativeCount = fmt.Errorf("%w: result count must not be negative", internalerr.ErrInvalidInput)
)

// Options tunes how a ranking call is executed. It never changes the
// result.
type Options struct {
	// Workers > 1 scores items concurrently with at most this many
	// goroutines.
	Workers int
}

func firstOptions(opts []Options) Options {
	if len(opts) > 0 {
		return opts[0]
	}
	return Options{}
}

// weightedTerm is a query term that is known to the IDF table.
type weightedTerm struct {
	term string
	idf  float64
}

// knownTerms returns the query terms present in idfs, in lexical order.
// Terms absent from the table carry no weight and are left out here
// rather than looked up later.
func knownTerms(q Query, idfs idf.Table) []weightedTerm {
	terms := q.Terms()
	known := make([]weightedTerm, 0, len(terms))
	for _, term := range terms {
		if v, ok := idfs.Lookup(term); ok {
			known = append(known, weightedTerm{term: term, idf: v})
		}
	}
	return known
}

// termCounts counts occurrences of query terms in tokens.
func termCounts(q Query, tokens []string) map[string]int {
	counts := make(map[string]int)
	for _, tok := range tokens {
		if q.Has(tok) {
			counts[tok]++
		}
	}
	return counts
}

func checkCollection(docs idf.Documents, idfs idf.Table) error {
	if idfs.Docs() != len(docs) {
		return fmt.Errorf("%w: table covers %d documents, collection has %d", ErrIDFMismatch, idfs.Docs(), len(docs))
	}
	return nil
}

func sortedNames(docs idf.Documents) []string {
	names := make([]string, 0, len(docs))
	for name := range docs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// scoreEach calls fn for every index in [0, n) and returns the results
// in index order. With more than one worker the calls run concurrently;
// each call writes only its own slot.
func scoreEach[T any](n, workers int, fn func(i int) T) ([]T, error) {
	out := make([]T, n)
	if workers <= 1 || n < 2 {
		for i := range out {
			out[i] = fn(i)
		}
		return out, nil
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i := range out {
		g.Go(func() error {
			out[i] = fn(i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func limit(n, available int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("%w: got %d", ErrNegativeCount, n)
	}
	if n > available {
		return available, nil
	}
	return n, nil
}
