// Package corpus supplies raw document text to the engine. A corpus is
// a mapping from a unique document name to its unparsed text.
package corpus

import (
	"context"
	"sort"
)

// Loader supplies a corpus.
type Loader interface {
	Load(ctx context.Context) (map[string]string, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context) (map[string]string, error)

// Load implements Loader.
func (f LoaderFunc) Load(ctx context.Context) (map[string]string, error) {
	return f(ctx)
}

// Names returns the document names of docs in lexical order.
func Names(docs map[string]string) []string {
	names := make([]string, 0, len(docs))
	for name := range docs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
