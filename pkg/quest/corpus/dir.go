package corpus

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultExtensions are the file extensions Dir reads when none are set.
var DefaultExtensions = []string{".txt"}

// Dir loads every regular file in one directory whose extension is
// listed in Extensions. Subdirectories are not visited. Documents are
// keyed by file name. Files ending in .html or .htm are reduced to
// their visible text.
type Dir struct {
	Path       string
	Extensions []string
}

// Load implements Loader.
func (d Dir) Load(ctx context.Context) (map[string]string, error) {
	entries, err := os.ReadDir(d.Path)
	if err != nil {
		return nil, fmt.Errorf("read corpus dir: %w", err)
	}

	exts := d.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}

	docs := make(map[string]string)
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if !hasExtension(exts, ext) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(d.Path, name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}

		text := string(data)
		if ext == ".html" || ext == ".htm" {
			text, err = HTMLText(text)
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", name, err)
			}
		}
		docs[name] = text
	}

	return docs, nil
}

func hasExtension(exts []string, ext string) bool {
	for _, e := range exts {
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}
