package memcorpus

import (
	"context"
	"sync"
)

// Store is an in-memory corpus. It is safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	docs map[string]string
}

// New creates a store holding a copy of docs.
func New(docs map[string]string) *Store {
	s := &Store{docs: make(map[string]string, len(docs))}
	for name, text := range docs {
		s.docs[name] = text
	}
	return s
}

// Put inserts or replaces a document. Empty names are ignored.
func (s *Store) Put(name, text string) {
	if name == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[name] = text
}

// Delete removes a document.
func (s *Store) Delete(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, name)
}

// Len returns the number of documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Load implements corpus.Loader. The returned map is a snapshot.
func (s *Store) Load(ctx context.Context) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(s.docs))
	for name, text := range s.docs {
		out[name] = text
	}
	return out, nil
}
