package driving

import (
	"context"

	"github.com/quirepress/quire/internal/core/domain"
)

// BuildService assembles a book from a directory of HTML chapters and
// writes the requested outputs.
type BuildService interface {
	// Build runs the whole pipeline: collect, extract, post-process,
	// materialise images, assemble, then write the EPUB and/or render
	// the PDF. At least one output must be requested.
	Build(ctx context.Context, req BuildRequest) (*BuildResult, error)
}

// BuildRequest describes one build run.
type BuildRequest struct {
	// InputDir is the directory scanned for chapter files.
	InputDir string

	// EPUBPath is the EPUB output path. Empty skips the EPUB.
	EPUBPath string

	// PDFPath is the PDF output path. Empty skips the PDF.
	PDFPath string

	// Metadata is the resolved book metadata.
	Metadata domain.BookMetadata

	// Sort is the chapter ordering mode.
	Sort domain.SortMode

	// StylesheetPath names a CSS file to embed. Empty selects the
	// built-in stylesheet.
	StylesheetPath string

	// CoverPath names an image file used as the cover. Empty lets the
	// first materialised image of the first chapter stand in.
	CoverPath string

	// DumpHTMLPath, when set, receives the intermediate PDF document
	// before the renderer runs.
	DumpHTMLPath string
}

// BuildResult reports what a build produced.
type BuildResult struct {
	// Chapters is the number of chapters written.
	Chapters int

	// Skipped is the number of source files dropped for having no
	// usable content.
	Skipped int

	// EPUBPath is the written EPUB, empty when not requested.
	EPUBPath string

	// PDFPath is the written PDF, empty when not requested.
	PDFPath string
}
