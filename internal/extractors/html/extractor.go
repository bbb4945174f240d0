package html

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/quirepress/quire/internal/core/ports/driven"
)

// Extractor derives a chapter title and body from raw HTML content.
//
// The title is resolved in order of preference: the text of the first
// <h1> element, then the document <title>, then the caller-supplied
// fallback. The body is the inner HTML of the <body> element, re-rendered
// so downstream writers receive well-formed markup. Malformed input is
// never rejected; the parser recovers and the extractor returns whatever
// structure it could salvage.
type Extractor struct{}

// Compile-time check that Extractor implements the ChapterExtractor port.
var _ driven.ChapterExtractor = (*Extractor)(nil)

// New creates a new HTML chapter extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract implements the driven.ChapterExtractor interface.
func (e *Extractor) Extract(raw []byte, fallbackTitle string) driven.ExtractResult {
	doc, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		// html.Parse only fails on reader errors, which a bytes.Reader
		// never produces. Fall back to passing the input through.
		return driven.ExtractResult{
			Title: fallbackTitle,
			Body:  strings.TrimSpace(string(raw)),
		}
	}

	title := headingText(doc)
	if title == "" {
		title = documentTitle(doc)
	}
	if title == "" {
		title = fallbackTitle
	}

	body, found := bodyContent(doc)
	if !found {
		body = strings.TrimSpace(string(raw))
	}

	return driven.ExtractResult{Title: title, Body: body}
}

// headingText returns the collapsed text of the first <h1> in the
// document, or "" when the document has none.
func headingText(doc *html.Node) string {
	h1 := findElement(doc, atom.H1)
	if h1 == nil {
		return ""
	}
	return nodeText(h1)
}

// documentTitle returns the collapsed text of the <title> element,
// or "" when the document has none.
func documentTitle(doc *html.Node) string {
	title := findElement(doc, atom.Title)
	if title == nil {
		return ""
	}
	return nodeText(title)
}

// bodyContent renders the children of the <body> element back to HTML.
// The second return value reports whether a body element was present.
func bodyContent(doc *html.Node) (string, bool) {
	body := findElement(doc, atom.Body)
	if body == nil {
		return "", false
	}

	var buf bytes.Buffer
	for child := body.FirstChild; child != nil; child = child.NextSibling {
		if err := html.Render(&buf, child); err != nil {
			return "", false
		}
	}
	return strings.TrimSpace(buf.String()), true
}

// findElement performs a depth-first search for the first element node
// matching the given atom.
func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findElement(child, a); found != nil {
			return found
		}
	}
	return nil
}

// nodeText gathers the text content of a node and its descendants,
// collapsing runs of whitespace into single spaces.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	collectText(n, &sb)
	return collapseWhitespace(sb.String())
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, sb)
	}
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
