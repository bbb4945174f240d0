package services

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quirepress/quire/internal/core/domain"
)

// --- Test helpers ---

func testBookFor(chapters ...domain.Chapter) *domain.Book {
	book := domain.NewBook(testMetadata(), chapters)
	book.Stylesheet = "p{margin:1em;}"
	return &book
}

// --- Tests ---

func TestBuildPDFDocument_Structure(t *testing.T) {
	book := testBookFor(
		domain.Chapter{Title: "Dawn", Body: "<p>first</p>"},
		domain.Chapter{Title: "Dusk", Body: "<p>second</p>"},
	)

	doc := buildPDFDocument(book)

	assert.True(t, strings.HasPrefix(doc, "<!DOCTYPE html>"))
	assert.Contains(t, doc, `<html lang="en">`)
	assert.Contains(t, doc, `<meta charset="utf-8"/>`)
	assert.Contains(t, doc, "<title>Field Notes</title>")
	assert.Contains(t, doc, "p{margin:1em;}")
	assert.Contains(t, doc, ".pagebreak{ page-break-before: always; }")
	assert.Contains(t, doc, "@page{ size: A4;")
	assert.Contains(t, doc, "<p>first</p>")
	assert.Contains(t, doc, "<p>second</p>")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(doc), "</html>"))
}

func TestBuildPDFDocument_HeadingPerChapter(t *testing.T) {
	book := testBookFor(
		domain.Chapter{Title: "Dawn", Body: "<p>a</p>"},
		domain.Chapter{Title: "Q&A", Body: "<p>b</p>"},
	)

	doc := buildPDFDocument(book)

	assert.Contains(t, doc, "<h1>Dawn</h1>")
	assert.Contains(t, doc, "<h1>Q&amp;A</h1>")
}

func TestBuildPDFDocument_PagebreakBetweenChapters(t *testing.T) {
	book := testBookFor(
		domain.Chapter{Title: "One", Body: "<p>1</p>"},
		domain.Chapter{Title: "Two", Body: "<p>2</p>"},
		domain.Chapter{Title: "Three", Body: "<p>3</p>"},
	)

	doc := buildPDFDocument(book)

	assert.Equal(t, 2, strings.Count(doc, `<div class="pagebreak"></div>`))

	// No break before the first chapter.
	first := strings.Index(doc, "<h1>One</h1>")
	firstBreak := strings.Index(doc, `<div class="pagebreak"></div>`)
	assert.Less(t, first, firstBreak)
}

func TestBuildPDFDocument_BodyHeadingNotDuplicated(t *testing.T) {
	book := testBookFor(domain.Chapter{
		Title: "Dawn",
		Body:  `<h1 id="top">Dawn</h1><p>light</p><h2>Later</h2>`,
	})

	doc := buildPDFDocument(book)

	assert.Equal(t, 1, strings.Count(doc, "Dawn</h1>"))
	assert.Contains(t, doc, "<h1>Dawn</h1>")
	assert.Contains(t, doc, "<h2>Later</h2>")
	assert.NotContains(t, doc, `<h1 id="top">`)
}

func TestBuildPDFDocument_EscapesMetadata(t *testing.T) {
	book := testBookFor(domain.Chapter{Title: "One", Body: "<p>x</p>"})
	book.Metadata.Title = `Tips & <Tricks>`
	book.Metadata.Language = `en"`

	doc := buildPDFDocument(book)

	assert.Contains(t, doc, "<title>Tips &amp; &lt;Tricks&gt;</title>")
	assert.NotContains(t, doc, `lang="en""`)
}

func TestBuildPDFDocument_InlinesImages(t *testing.T) {
	imgPath := filepath.Join(t.TempDir(), "img_001.png")
	require.NoError(t, os.WriteFile(imgPath, coverBytes, 0600))

	book := testBookFor(domain.Chapter{
		Title: "One",
		Body:  `<p>x</p><img src="../images/img_001.png" alt="pic"/>`,
	})
	book.Images = []domain.ImageAsset{
		{Name: "img_001.png", SourcePath: imgPath, MediaType: "image/png"},
	}

	doc := buildPDFDocument(book)

	encoded := base64.StdEncoding.EncodeToString(coverBytes)
	assert.Contains(t, doc, "data:image/png;base64,"+encoded)
	assert.NotContains(t, doc, "../images/img_001.png")
}

func TestBuildPDFDocument_UnreadableImageLeftReferenced(t *testing.T) {
	book := testBookFor(domain.Chapter{
		Title: "One",
		Body:  `<img src="../images/img_001.png"/>`,
	})
	book.Images = []domain.ImageAsset{
		{Name: "img_001.png", SourcePath: "/nonexistent/img.png", MediaType: "image/png"},
	}

	doc := buildPDFDocument(book)

	assert.Contains(t, doc, `src="../images/img_001.png"`)
}

func TestBuildPDFDocument_NeutralisesRemoteImages(t *testing.T) {
	book := testBookFor(domain.Chapter{
		Title: "One",
		Body:  `<img src="https://example.com/far.png"/><p>x</p>`,
	})

	doc := buildPDFDocument(book)

	assert.NotContains(t, doc, "https://example.com/far.png")
	assert.Contains(t, doc, `<img src="#"/>`)
}

func TestBuildPDFDocument_StripsLinkTags(t *testing.T) {
	book := testBookFor(domain.Chapter{
		Title: "One",
		Body:  `<link rel="stylesheet" href="site.css"/><p>x</p>`,
	})

	doc := buildPDFDocument(book)

	assert.NotContains(t, doc, "<link")
	assert.Contains(t, doc, "<p>x</p>")
}

func TestStripFirstHeading(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "single heading removed",
			body: "<h1>Title</h1><p>x</p>",
			want: "<p>x</p>",
		},
		{
			name: "only first of two removed",
			body: "<h1>A</h1><p>x</p><h1>B</h1>",
			want: "<p>x</p><h1>B</h1>",
		},
		{
			name: "attributes and case tolerated",
			body: `<H1 class="t">A</H1><p>x</p>`,
			want: "<p>x</p>",
		},
		{
			name: "heading spanning lines",
			body: "<h1>\nLong\nTitle\n</h1><p>x</p>",
			want: "<p>x</p>",
		},
		{
			name: "no heading",
			body: "<p>x</p>",
			want: "<p>x</p>",
		},
		{
			name: "lower level headings kept",
			body: "<h2>Sub</h2><p>x</p>",
			want: "<h2>Sub</h2><p>x</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripFirstHeading(tt.body))
		})
	}
}
