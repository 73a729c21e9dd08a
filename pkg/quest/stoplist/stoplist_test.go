package stoplist

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnglish(t *testing.T) {
	s := English()
	if s.Len() != 179 {
		t.Fatalf("expected 179 english stopwords, got %d", s.Len())
	}
	for _, w := range []string{"the", "a", "don't", "wouldn't", "i"} {
		if !s.IsStop(w) {
			t.Errorf("%q should be a stopword", w)
		}
	}
	if s.IsStop("cat") {
		t.Error("'cat' should not be a stopword")
	}
}

func TestEnglishReturnsCopy(t *testing.T) {
	a := English()
	a.Remove("the")
	if !English().IsStop("the") {
		t.Error("mutating one english set should not affect another")
	}
}

func TestNewNormalizes(t *testing.T) {
	s := New([]string{" The ", "AND", ""})
	if s.Len() != 2 {
		t.Fatalf("expected 2 terms, got %d", s.Len())
	}
	if !s.IsStop("the") || !s.IsStop("and") {
		t.Errorf("terms should be lower-cased and trimmed, got %v", s.All())
	}
}

func TestAddRemove(t *testing.T) {
	s := New(nil)
	s.Add("Foo")
	if !s.IsStop("foo") {
		t.Error("Add should lower-case")
	}
	s.Remove("FOO")
	if s.IsStop("foo") {
		t.Error("Remove should lower-case")
	}
}

func TestAllSorted(t *testing.T) {
	s := New([]string{"c", "a", "b"})
	got := s.All()
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("All() = %v, want %v", got, want)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stoplist.yaml")
	if err := os.WriteFile(path, []byte("terms:\n  - the\n  - of\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Len() != 2 || !s.IsStop("of") {
		t.Errorf("unexpected set: %v", s.All())
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load should fail on a missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("terms: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load should fail on malformed YAML")
	}
}
