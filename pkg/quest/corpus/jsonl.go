package corpus

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Item is one line of a JSONL feed dump, as written by feed and news
// downloaders.
type Item struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Body  string `json:"text"`
}

// JSONL loads documents from a file holding one JSON item per line.
// Each item becomes a document named by its URL, or by its title when
// the URL is empty. The title, when present, is kept as the first
// passage of the document. Malformed lines and items without a name
// or text are skipped and reported to OnSkip if it is set. When two
// items share a name the later one wins.
type JSONL struct {
	Path   string
	OnSkip func(line int, err error)
}

// Load implements Loader.
func (j JSONL) Load(ctx context.Context) (map[string]string, error) {
	f, err := os.Open(j.Path)
	if err != nil {
		return nil, fmt.Errorf("open feed %s: %w", j.Path, err)
	}
	defer f.Close()

	docs := make(map[string]string)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}

		var item Item
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			j.skip(line, err)
			continue
		}
		name := strings.TrimSpace(item.URL)
		if name == "" {
			name = strings.TrimSpace(item.Title)
		}
		if name == "" || strings.TrimSpace(item.Body) == "" {
			j.skip(line, fmt.Errorf("item has no name or text"))
			continue
		}

		text := item.Body
		if title := strings.TrimSpace(item.Title); title != "" {
			text = title + "\n" + text
		}
		docs[name] = text
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read feed %s: %w", j.Path, err)
	}
	return docs, nil
}

func (j JSONL) skip(line int, err error) {
	if j.OnSkip != nil {
		j.OnSkip(line, err)
	}
}
