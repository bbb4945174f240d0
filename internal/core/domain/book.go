package domain

import "fmt"

// SortMode defines the order in which chapter files are assembled.
type SortMode string

// Available sort modes.
const (
	// SortByName orders files lexicographically by base name.
	SortByName SortMode = "name"

	// SortByCTime orders files by change time, oldest first.
	// Ties break by base name.
	SortByCTime SortMode = "ctime"

	// SortNatural orders files the way a human reads them: digit runs
	// compare numerically, so "ch2.html" sorts before "ch10.html".
	SortNatural SortMode = "natural"
)

// IsValid returns true if the sort mode is recognised.
func (m SortMode) IsValid() bool {
	switch m {
	case SortByName, SortByCTime, SortNatural:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m SortMode) String() string {
	return string(m)
}

// Chapter represents one source HTML file as an atomic unit of content.
// It is immutable once extracted; ordering is positional.
type Chapter struct {
	// Path is the source file the chapter was read from.
	Path string

	// Title is the chapter heading, taken from the first <h1>,
	// then the document <title>, then the file's base name.
	Title string

	// Body is the inner HTML of the source document's <body>.
	Body string
}

// BookMetadata holds the book-level metadata embedded in the outputs.
// All fields are required for EPUB generation and are resolved once,
// before assembly.
type BookMetadata struct {
	// Title is the book title.
	Title string

	// Author is the author credited in the package metadata.
	Author string

	// Language is an IETF language tag (e.g. "en", "cs"). It is
	// passed through to the output without tag validation.
	Language string
}

// Validate returns an ErrConfig-classed error naming the first
// missing field, or nil when all fields are present.
func (m BookMetadata) Validate() error {
	switch {
	case m.Title == "":
		return fmt.Errorf("%w: book title is required", ErrConfig)
	case m.Author == "":
		return fmt.Errorf("%w: author is required", ErrConfig)
	case m.Language == "":
		return fmt.Errorf("%w: language is required", ErrConfig)
	default:
		return nil
	}
}

// TOCEntry is one navigation entry, pointing at a chapter by index.
type TOCEntry struct {
	// Title mirrors the chapter title.
	Title string

	// Chapter is the zero-based index into Book.Chapters.
	Chapter int
}

// ImagePathPrefix is the path prefix chapter bodies use to reference
// materialised images. It matches the EPUB package layout, where
// chapter documents and the images directory are siblings; the PDF
// assembly resolves the same references when inlining.
const ImagePathPrefix = "../images/"

// ImageAsset is an image reference materialised to a local file and
// scheduled for embedding under "images/" in the package.
type ImageAsset struct {
	// Name is the file name inside the package's images directory.
	Name string

	// SourcePath is the local file holding the image bytes.
	SourcePath string

	// MediaType is the MIME type (e.g. "image/jpeg").
	MediaType string
}

// Book is the assembled document model that both writers consume.
// It is constructed once per run, held in memory, and discarded
// after the outputs are written.
type Book struct {
	// Metadata is the resolved book metadata.
	Metadata BookMetadata

	// Chapters is the ordered chapter sequence.
	Chapters []Chapter

	// TOC mirrors Chapters one-to-one, in the same order.
	TOC []TOCEntry

	// Images are the materialised assets referenced by chapter bodies.
	Images []ImageAsset

	// Stylesheet is the CSS embedded in the EPUB and inlined into the
	// PDF document.
	Stylesheet string

	// CoverName names the entry in Images used as the cover image.
	// Empty when the book has no cover.
	CoverName string
}

// NewBook assembles a Book from resolved metadata and ordered chapters.
// The table of contents is derived from the chapter order, one entry
// per chapter.
func NewBook(meta BookMetadata, chapters []Chapter) Book {
	toc := make([]TOCEntry, len(chapters))
	for i, ch := range chapters {
		toc[i] = TOCEntry{Title: ch.Title, Chapter: i}
	}
	return Book{Metadata: meta, Chapters: chapters, TOC: toc}
}
