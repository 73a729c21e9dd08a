// Package sentence splits raw document text into candidate sentences.
package sentence

import (
	"strings"

	"github.com/clipperhouse/uax29/v2/sentences"
)

// Splitter breaks a document into ordered sentence-like spans.
type Splitter interface {
	Split(text string) []string
}

// UAX29 splits text into passages on newlines and each passage into
// sentences using Unicode sentence boundaries (UAX #29). Spans are
// trimmed and empty spans are dropped.
type UAX29 struct{}

// Split implements Splitter.
func (UAX29) Split(text string) []string {
	var out []string
	for _, passage := range strings.Split(text, "\n") {
		if strings.TrimSpace(passage) == "" {
			continue
		}
		spans := sentences.FromString(passage)
		for spans.Next() {
			s := strings.TrimSpace(spans.Value())
			if s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// Func adapts an ordinary function to the Splitter interface.
type Func func(text string) []string

// Split implements Splitter.
func (f Func) Split(text string) []string {
	return f(text)
}
