package config

import (
	"fmt"

	"github.com/cognicore/quest/pkg/quest/stoplist"
	"github.com/cognicore/quest/pkg/quest/tokenize"
)

// Loader loads the tokenizer's configuration inputs
type Loader struct {
	StoplistPath string
	Punctuation  string
}

// Components holds the loaded components
type Components struct {
	Stoplist  *stoplist.Set
	Tokenizer *tokenize.Tokenizer
}

// NewLoader returns a Loader for cfg's tokenizer section.
func NewLoader(cfg TokenizerConfig) Loader {
	return Loader{StoplistPath: cfg.Stoplist, Punctuation: cfg.Punctuation}
}

// Load reads the stoplist (or takes the bundled English list) and
// returns the tokenizer built from it.
func (l Loader) Load() (*Components, error) {
	comp := &Components{}

	if l.StoplistPath != "" {
		set, err := stoplist.Load(l.StoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		comp.Stoplist = set
	} else {
		comp.Stoplist = stoplist.English()
	}

	comp.Tokenizer = tokenize.NewTokenizer(comp.Stoplist.All(), l.Punctuation)
	return comp, nil
}
