package cards

import (
	"crypto/rand"
	"sort"
	"sync"

	"github.com/cognicore/quest/pkg/quest/rank"
	"github.com/oklog/ulid/v2"
)

// Builder constructs answer cards
type Builder struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// New creates a new card builder
func New() *Builder {
	return &Builder{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Card is the ranked result of one query
type Card struct {
	ID            string        `json:"id"`
	Query         string        `json:"query"`
	QueryTokens   []string      `json:"query_tokens"`
	Files         []FileHit     `json:"files"`
	Sentences     []SentenceHit `json:"sentences"`
	MatchedTokens []string      `json:"matched_tokens"`
}

// FileHit is a ranked document
type FileHit struct {
	Name          string         `json:"name"`
	Score         float64        `json:"score"`
	TermFrequency map[string]int `json:"term_frequency,omitempty"`
}

// SentenceHit is a ranked sentence and the document it came from
type SentenceHit struct {
	Text       string  `json:"text"`
	Source     string  `json:"source,omitempty"`
	IDF        float64 `json:"idf"`
	QueryTerms int     `json:"query_terms"`
	Length     int     `json:"length"`
	Density    float64 `json:"density"`
}

// Build creates a card. sources maps sentence text to the document it
// was taken from and may be nil.
func (b *Builder) Build(query string, q rank.Query, files []rank.ScoredFile, sentences []rank.ScoredSentence, sources map[string]string) Card {
	card := Card{
		ID:          b.newID(),
		Query:       query,
		QueryTokens: q.Terms(),
		Files:       make([]FileHit, 0, len(files)),
		Sentences:   make([]SentenceHit, 0, len(sentences)),
	}

	matched := make(map[string]struct{})
	for _, f := range files {
		card.Files = append(card.Files, FileHit{
			Name:          f.Name,
			Score:         f.Score,
			TermFrequency: f.TermFrequency,
		})
		for term, n := range f.TermFrequency {
			if n > 0 {
				matched[term] = struct{}{}
			}
		}
	}

	for _, s := range sentences {
		card.Sentences = append(card.Sentences, SentenceHit{
			Text:       s.Text,
			Source:     sources[s.Text],
			IDF:        s.Record.IDF,
			QueryTerms: s.Record.QueryTerms,
			Length:     s.Record.Length,
			Density:    s.Record.Density,
		})
	}

	card.MatchedTokens = make([]string, 0, len(matched))
	for t := range matched {
		card.MatchedTokens = append(card.MatchedTokens, t)
	}
	sort.Strings(card.MatchedTokens)

	return card
}

// newID issues a ULID. MonotonicEntropy is not safe for concurrent use.
func (b *Builder) newID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return ulid.MustNew(ulid.Now(), b.entropy).String()
}
