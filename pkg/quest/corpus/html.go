package corpus

import (
	"strings"

	"golang.org/x/net/html"
)

// blockElements end a passage: their text is followed by a newline so
// the sentence splitter never joins text across them.
var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "pre": true, "section": true, "article": true,
	"title": true, "td": true, "th": true, "dd": true, "dt": true,
}

var skippedElements = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true,
}

// HTMLText extracts the visible text of an HTML document, one passage
// per line.
func HTMLText(s string) (string, error) {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.ElementNode && skippedElements[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
		if n.Type == html.ElementNode && blockElements[n.Data] {
			buf.WriteByte('\n')
		}
	}
	extractText(doc)

	// Collapse runs of whitespace inside each line and drop blank lines.
	lines := strings.Split(buf.String(), "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n"), nil
}
