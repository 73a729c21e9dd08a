package rank

import (
	"fmt"
	"sort"

	"github.com/cognicore/quest/pkg/quest/idf"
)

// Record is the per-sentence score aggregate. Length counts the tokens
// left after punctuation and stopword filtering, the same tokens that
// are scored. A raw word count that includes stopwords and punctuation
// would give lower densities and can order density ties differently.
type Record struct {
	IDF        float64 // summed IDF of distinct query terms present
	QueryTerms int     // occurrences of query terms, with repetition
	Length     int     // tokens after filtering
	Density    float64 // QueryTerms / Length
}

// ScoredSentence is a candidate sentence with its score record
type ScoredSentence struct {
	Text   string
	Record Record
}

// RankSentences orders candidate sentences by IDF coverage of the
// query, breaking ties by query term density and then by sentence text.
// idfs must have been computed over sentences. A sentence with no
// tokens fails the whole call with ErrEmptySentence.
func RankSentences(q Query, sentences idf.Documents, idfs idf.Table, opts ...Options) ([]ScoredSentence, error) {
	if err := checkCollection(sentences, idfs); err != nil {
		return nil, err
	}
	opt := firstOptions(opts)

	texts := sortedNames(sentences)
	for _, text := range texts {
		if len(sentences[text]) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrEmptySentence, text)
		}
	}
	terms := knownTerms(q, idfs)

	scored, err := scoreEach(len(texts), opt.Workers, func(i int) ScoredSentence {
		tokens := sentences[texts[i]]
		tf := termCounts(q, tokens)

		rec := Record{Length: len(tokens)}
		for _, wt := range terms {
			if tf[wt.term] > 0 {
				rec.IDF += wt.idf
			}
		}
		for _, c := range tf {
			rec.QueryTerms += c
		}
		rec.Density = float64(rec.QueryTerms) / float64(rec.Length)
		return ScoredSentence{Text: texts[i], Record: rec}
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i].Record, scored[j].Record
		if a.IDF != b.IDF {
			return a.IDF > b.IDF
		}
		if a.Density != b.Density {
			return a.Density > b.Density
		}
		return scored[i].Text < scored[j].Text
	})
	return scored, nil
}

// TopSentences returns the n best sentences for q, best first.
func TopSentences(q Query, sentences idf.Documents, idfs idf.Table, n int, opts ...Options) ([]string, error) {
	n, err := limit(n, len(sentences))
	if err != nil {
		return nil, err
	}
	scored, err := RankSentences(q, sentences, idfs, opts...)
	if err != nil {
		return nil, err
	}

	texts := make([]string, n)
	for i := range texts {
		texts[i] = scored[i].Text
	}
	return texts, nil
}
