package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoaderDefaultStoplist(t *testing.T) {
	comp, err := Loader{}.Load()
	if err != nil {
		t.Fatalf("Empty loader should succeed: %v", err)
	}

	if comp.Tokenizer == nil || comp.Stoplist == nil {
		t.Fatal("Should have tokenizer and stoplist")
	}
	if !comp.Stoplist.IsStop("the") {
		t.Error("default stoplist should be English")
	}

	tokens := comp.Tokenizer.Tokenize("What is the capital of France?")
	if !reflect.DeepEqual(tokens, []string{"capital", "france"}) {
		t.Errorf("Tokenize() = %v", tokens)
	}
}

func TestLoaderCustomStoplist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stoplist.yaml")
	if err := os.WriteFile(path, []byte("terms: [capital]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	comp, err := NewLoader(TokenizerConfig{Stoplist: path, Punctuation: "?"}).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tokens := comp.Tokenizer.Tokenize("the capital?")
	if !reflect.DeepEqual(tokens, []string{"the"}) {
		t.Errorf("Tokenize() = %v", tokens)
	}
}

func TestLoaderNonExistentStoplist(t *testing.T) {
	loader := Loader{StoplistPath: "/nonexistent/stoplist.yaml"}

	if _, err := loader.Load(); err == nil {
		t.Error("Should error on nonexistent stoplist")
	}
}
