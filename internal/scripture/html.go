package scripture

import (
	"strings"

	"golang.org/x/net/html"
)

// passageText extracts readable text from a fetched passage page. It scopes
// extraction to the passage container when one is present and falls back to
// the whole document otherwise.
func passageText(doc *html.Node) string {
	root := findByClass(doc, "passage-text")
	if root == nil {
		root = doc
	}
	var sb strings.Builder
	collectText(root, &sb)
	return strings.TrimSpace(sb.String())
}

// extractText flattens an HTML fragment to plain text.
func extractText(src string) string {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return ""
	}
	var sb strings.Builder
	collectText(doc, &sb)
	return strings.TrimSpace(sb.String())
}

// collectText walks the tree appending text nodes, separating words with
// spaces and block elements with blank lines. Script, style and
// footnote/cross-reference apparatus are skipped.
func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "title":
			return
		}
		if cls := attrVal(n, "class"); strings.Contains(cls, "footnote") ||
			strings.Contains(cls, "crossreference") ||
			strings.Contains(cls, "crossrefs") {
			return
		}
	}

	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			sb.WriteString(t)
			sb.WriteString(" ")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}

	if n.Type == html.ElementNode {
		switch n.Data {
		case "p", "div", "h1", "h2", "h3", "h4", "br":
			sb.WriteString("\n")
		}
	}
}

// findByClass returns the first element whose class attribute contains the
// given token.
func findByClass(n *html.Node, class string) *html.Node {
	if n.Type == html.ElementNode && strings.Contains(attrVal(n, "class"), class) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByClass(c, class); found != nil {
			return found
		}
	}
	return nil
}

func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
