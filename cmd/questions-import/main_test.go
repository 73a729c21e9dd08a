package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestImportListDelete(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	for name, text := range map[string]string{"a.txt": "Alpha.", "b.txt": "Beta.", "c.md": "skipped"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(text), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	dbPath := filepath.Join(t.TempDir(), "corpus.db")

	var stdout, stderr bytes.Buffer
	if err := run(ctx, []string{"--db", dbPath, "--list", dir}, &stdout, &stderr); err != nil {
		t.Fatalf("import failed: %v (%s)", err, stderr.String())
	}
	if got := strings.Fields(stdout.String()); strings.Join(got, ",") != "a.txt,b.txt" {
		t.Errorf("listed %v", got)
	}

	stdout.Reset()
	if err := run(ctx, []string{"--db", dbPath, "--delete", "a.txt", "--list"}, &stdout, &stderr); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if got := strings.TrimSpace(stdout.String()); got != "b.txt" {
		t.Errorf("after delete listed %q", got)
	}
}

func TestImportRequiresDB(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{t.TempDir()}, &stdout, &stderr); err == nil {
		t.Error("run should fail without --db")
	}
}

func TestImportFeed(t *testing.T) {
	feed := filepath.Join(t.TempDir(), "feed.jsonl")
	data := `{"url":"https://example.com/1","title":"One","text":"First story."}
{broken
{"url":"https://example.com/2","title":"Two","text":"Second story."}
`
	if err := os.WriteFile(feed, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	dbPath := filepath.Join(t.TempDir(), "corpus.db")

	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"--db", dbPath, "--jsonl", feed, "--list"}, &stdout, &stderr); err != nil {
		t.Fatalf("import failed: %v (%s)", err, stderr.String())
	}
	if got := strings.Fields(stdout.String()); strings.Join(got, ",") != "https://example.com/1,https://example.com/2" {
		t.Errorf("listed %v", got)
	}
	if !strings.Contains(stderr.String(), "skipping feed item") {
		t.Errorf("malformed line was not reported: %s", stderr.String())
	}
}
