package driven

// ChapterExtractor derives a chapter title and body from one HTML file.
type ChapterExtractor interface {
	// Extract parses raw HTML and returns the chapter title and the
	// inner HTML of the document body. The title is the text of the
	// first h1, then the document title, then fallbackTitle. Parsing
	// is permissive: extraction never fails, it degrades to the
	// fallback title and passes content through.
	Extract(raw []byte, fallbackTitle string) ExtractResult
}

// ExtractResult contains the output of chapter extraction.
type ExtractResult struct {
	// Title is the derived chapter title. Never empty.
	Title string

	// Body is the inner HTML of the document's <body>, rendered in
	// XHTML-safe form. When the input has no body element the whole
	// input is passed through.
	Body string
}
