package services

import (
	"fmt"
	"html"
	"os"
	"regexp"
	"strings"

	"github.com/vincent-petithory/dataurl"

	"github.com/quirepress/quire/internal/core/domain"
	"github.com/quirepress/quire/internal/logger"
)

// printCSS is appended after the book stylesheet: forced chapter
// breaks plus the page geometry matching the renderer's A4 margins.
const printCSS = ".pagebreak{ page-break-before: always; }\n" +
	"@page{ size: A4; margin: 12mm 12mm 15mm 12mm; }\n"

var (
	// firstHeadingRe matches an h1 element. Only the first match of a
	// chapter body is removed: its text already became the chapter
	// title, which the document repeats as the section heading.
	firstHeadingRe = regexp.MustCompile(`(?is)<h1[^>]*>.*?</h1>`)

	// externalSrcRe matches remote src attributes left behind when an
	// image could not be materialised. The renderer runs offline, so
	// they are neutralised rather than fetched.
	externalSrcRe = regexp.MustCompile(`src="https?://[^"]*"`)

	// linkTagRe matches link elements. The document carries its CSS
	// inline; external references would make the renderer stall or
	// fail on missing files.
	linkTagRe = regexp.MustCompile(`(?i)<link\b[^>]*/?>`)
)

// buildPDFDocument concatenates the book's chapters into one
// self-contained HTML document for the renderer. Each chapter becomes
// a section headed by its title, separated from the next by a forced
// page break. Materialised images are inlined as data URIs so the
// renderer needs no access to the working files.
func buildPDFDocument(book *domain.Book) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n")
	fmt.Fprintf(&b, "<html lang=\"%s\">\n", html.EscapeString(book.Metadata.Language))
	b.WriteString("<head>\n")
	b.WriteString("<meta charset=\"utf-8\"/>\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(book.Metadata.Title))
	b.WriteString("<style>\n")
	b.WriteString(book.Stylesheet)
	b.WriteString(printCSS)
	b.WriteString("</style>\n")
	b.WriteString("</head>\n<body>\n")

	inliner := newImageInliner(book.Images)
	for i, chapter := range book.Chapters {
		if i > 0 {
			b.WriteString("<div class=\"pagebreak\"></div>\n")
		}
		fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(chapter.Title))

		body := stripFirstHeading(chapter.Body)
		body = inliner.Replace(body)
		body = externalSrcRe.ReplaceAllString(body, `src="#"`)
		body = linkTagRe.ReplaceAllString(body, "")
		b.WriteString(body)
		b.WriteString("\n")
	}

	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// stripFirstHeading removes the first h1 element from a chapter body.
func stripFirstHeading(body string) string {
	loc := firstHeadingRe.FindStringIndex(body)
	if loc == nil {
		return body
	}
	return body[:loc[0]] + body[loc[1]:]
}

// newImageInliner builds a replacer that swaps packaged image
// references for data URIs. Assets that cannot be read are logged and
// left referenced; the renderer ignores them.
func newImageInliner(assets []domain.ImageAsset) *strings.Replacer {
	pairs := make([]string, 0, len(assets)*2)

	for _, asset := range assets {
		data, err := os.ReadFile(asset.SourcePath)
		if err != nil {
			logger.Warn("inline image %s: %v", asset.Name, err)
			continue
		}

		mediaType := asset.MediaType
		if mediaType == "" {
			mediaType = "application/octet-stream"
		}

		pairs = append(pairs,
			fmt.Sprintf("src=\"%s%s\"", domain.ImagePathPrefix, asset.Name),
			fmt.Sprintf("src=\"%s\"", dataurl.New(data, mediaType).String()),
		)
	}

	if len(pairs) > 0 {
		logger.Debug("Inlined %d images into the document", len(pairs)/2)
	}
	return strings.NewReplacer(pairs...)
}
