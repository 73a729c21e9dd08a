// Package tokenize turns raw text into ordered sequences of normalized
// word tokens. Stopwords and punctuation are supplied by the caller.
package tokenize

import (
	"context"
	"runtime"
	"sort"
	"strings"

	"github.com/clipperhouse/uax29/v2/words"
	"golang.org/x/sync/errgroup"
)

// DefaultPunctuation is the ASCII punctuation set.
const DefaultPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Tokenizer handles text tokenization and normalization
type Tokenizer struct {
	stopwords   map[string]struct{}
	punctuation map[rune]struct{}
}

// NewTokenizer creates a tokenizer with the given stopword list and
// punctuation characters. An empty punctuation string selects
// DefaultPunctuation.
func NewTokenizer(stopwords []string, punctuation string) *Tokenizer {
	stops := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		stops[strings.ToLower(w)] = struct{}{}
	}
	if punctuation == "" {
		punctuation = DefaultPunctuation
	}
	punct := make(map[rune]struct{}, len(punctuation))
	for _, r := range punctuation {
		punct[r] = struct{}{}
	}
	return &Tokenizer{stopwords: stops, punctuation: punct}
}

// Tokenize lower-cases text, splits it on Unicode word boundaries and
// returns the surviving tokens in order. Segments made only of
// punctuation are dropped before the stopword check, so "don't" is
// kept while "--" is not.
func (t *Tokenizer) Tokenize(text string) []string {
	var tokens []string

	segments := words.FromString(strings.ToLower(text))
	for segments.Next() {
		seg := segments.Value()
		if strings.TrimSpace(seg) == "" {
			continue
		}
		if t.IsPunctuation(seg) {
			continue
		}
		if t.IsStopword(seg) {
			continue
		}
		tokens = append(tokens, seg)
	}

	return tokens
}

// IsPunctuation reports whether every character of tok is in the
// punctuation set. The empty string is not punctuation.
func (t *Tokenizer) IsPunctuation(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if _, ok := t.punctuation[r]; !ok {
			return false
		}
	}
	return true
}

// IsStopword reports whether tok is in the stopword set. tok must
// already be lower-cased.
func (t *Tokenizer) IsStopword(tok string) bool {
	_, ok := t.stopwords[tok]
	return ok
}

// AddStopword adds a word to the stopword list
func (t *Tokenizer) AddStopword(word string) {
	t.stopwords[strings.ToLower(word)] = struct{}{}
}

// RemoveStopword removes a word from the stopword list
func (t *Tokenizer) RemoveStopword(word string) {
	delete(t.stopwords, strings.ToLower(word))
}

// TokenizeAll tokenizes every text in texts, running up to workers
// tokenizations at once. workers <= 0 uses GOMAXPROCS. The result is
// the same as calling Tokenize on each entry in turn. The tokenizer
// must not be mutated while TokenizeAll runs.
func (t *Tokenizer) TokenizeAll(ctx context.Context, texts map[string]string, workers int) (map[string][]string, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	names := make([]string, 0, len(texts))
	for name := range texts {
		names = append(names, name)
	}
	sort.Strings(names)

	slots := make([][]string, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			slots[i] = t.Tokenize(texts[name])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make(map[string][]string, len(names))
	for i, name := range names {
		result[name] = slots[i]
	}
	return result, nil
}
