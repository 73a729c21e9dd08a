package rank

import (
	"sort"

	"github.com/cognicore/quest/pkg/quest/idf"
)

// ScoredFile is a document with its TF-IDF score against a query
type ScoredFile struct {
	Name  string
	Score float64
	// TermFrequency holds the occurrence count of each query term found
	// in the document.
	TermFrequency map[string]int
}

// RankFiles scores every document by the sum over query terms of
// TF(document, term) * IDF(term) and returns them most relevant first.
// Query terms unknown to idfs contribute nothing. Equal scores are
// ordered by document name.
func RankFiles(q Query, docs idf.Documents, idfs idf.Table, opts ...Options) ([]ScoredFile, error) {
	if err := checkCollection(docs, idfs); err != nil {
		return nil, err
	}
	opt := firstOptions(opts)

	names := sortedNames(docs)
	terms := knownTerms(q, idfs)

	scored, err := scoreEach(len(names), opt.Workers, func(i int) ScoredFile {
		tf := termCounts(q, docs[names[i]])
		score := 0.0
		for _, wt := range terms {
			score += float64(tf[wt.term]) * wt.idf
		}
		return ScoredFile{Name: names[i], Score: score, TermFrequency: tf}
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Name < scored[j].Name
	})
	return scored, nil
}

// TopFiles returns the names of the n documents that best match q.
// n larger than the collection returns every document; n == 0 returns
// an empty slice.
func TopFiles(q Query, docs idf.Documents, idfs idf.Table, n int, opts ...Options) ([]string, error) {
	n, err := limit(n, len(docs))
	if err != nil {
		return nil, err
	}
	scored, err := RankFiles(q, docs, idfs, opts...)
	if err != nil {
		return nil, err
	}

	names := make([]string, n)
	for i := range names {
		names[i] = scored[i].Name
	}
	return names, nil
}
