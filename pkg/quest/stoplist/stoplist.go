// Package stoplist holds the stopword sets handed to the tokenizer.
// Sets are plain values built once at startup; nothing here is global.
package stoplist

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed english.yaml
var englishYAML []byte

// File is the on-disk shape of a stoplist.
type File struct {
	Terms []string `yaml:"terms"`
}

// Set is a closed set of lower-cased stopwords
type Set struct {
	stops map[string]struct{}
}

// New creates a set from the given terms. Terms are lower-cased and
// surrounding whitespace is dropped.
func New(terms []string) *Set {
	s := &Set{stops: make(map[string]struct{}, len(terms))}
	for _, t := range terms {
		s.Add(t)
	}
	return s
}

// English returns a fresh copy of the bundled English stoplist.
func English() *Set {
	s, err := Parse(englishYAML)
	if err != nil {
		panic(fmt.Sprintf("stoplist: bundled english list is malformed: %v", err))
	}
	return s
}

// Load reads a YAML stoplist of the form `terms: [...]`.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse stoplist %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a YAML stoplist document.
func Parse(data []byte) (*Set, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return New(f.Terms), nil
}

// IsStop checks if a token is a stopword
func (s *Set) IsStop(token string) bool {
	_, ok := s.stops[token]
	return ok
}

// Add adds a term to the set
func (s *Set) Add(term string) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return
	}
	s.stops[term] = struct{}{}
}

// Remove removes a term from the set
func (s *Set) Remove(term string) {
	delete(s.stops, strings.ToLower(strings.TrimSpace(term)))
}

// Len returns the number of stopwords.
func (s *Set) Len() int {
	return len(s.stops)
}

// All returns all stopwords in lexical order.
func (s *Set) All() []string {
	result := make([]string, 0, len(s.stops))
	for t := range s.stops {
		result = append(result, t)
	}
	sort.Strings(result)
	return result
}
