package epub

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	goepub "github.com/bmaupin/go-epub"
	"github.com/google/uuid"

	"github.com/quirepress/quire/internal/core/domain"
	"github.com/quirepress/quire/internal/core/ports/driven"
	"github.com/quirepress/quire/internal/logger"
)

// stylesheetName is the filename the stylesheet gets inside the package.
const stylesheetName = "book.css"

// Writer packages a book into an EPUB file. Every chapter becomes one
// section in reading order, so the package navigation mirrors the book's
// table of contents entry for entry.
type Writer struct{}

// Compile-time check that Writer implements the BookWriter port.
var _ driven.BookWriter = (*Writer)(nil)

// NewWriter creates a new EPUB writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write implements the driven.BookWriter interface.
func (w *Writer) Write(ctx context.Context, book *domain.Book, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if book == nil {
		return fmt.Errorf("%w: nil book", domain.ErrWrite)
	}

	pkg := goepub.NewEpub(book.Metadata.Title)
	pkg.SetAuthor(book.Metadata.Author)
	pkg.SetLang(book.Metadata.Language)
	pkg.SetIdentifier("urn:uuid:" + uuid.NewString())

	internalCSS, cleanup, err := addStylesheet(pkg, book.Stylesheet)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	addImages(pkg, book)

	for i, chapter := range book.Chapters {
		filename := fmt.Sprintf("ch_%03d.xhtml", i+1)
		if _, err := pkg.AddSection(chapter.Body, chapter.Title, filename, internalCSS); err != nil {
			return fmt.Errorf("%w: adding chapter %s: %v", domain.ErrWrite, chapter.Title, err)
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%w: creating output directory: %v", domain.ErrWrite, err)
		}
	}

	if err := pkg.Write(path); err != nil {
		return fmt.Errorf("%w: writing %s: %v", domain.ErrWrite, path, err)
	}

	logger.Debug("wrote EPUB with %d chapters to %s", len(book.Chapters), path)
	return nil
}

// addStylesheet stages the stylesheet text in a temporary file and adds
// it to the package. The returned cleanup removes the staging file and
// must run after the package has been written, since sources are only
// read at write time.
func addStylesheet(pkg *goepub.Epub, stylesheet string) (string, func(), error) {
	if stylesheet == "" {
		return "", nil, nil
	}

	staged, err := os.CreateTemp("", "quire-style-*.css")
	if err != nil {
		return "", nil, fmt.Errorf("%w: staging stylesheet: %v", domain.ErrWrite, err)
	}
	cleanup := func() { _ = os.Remove(staged.Name()) }

	if _, err := staged.WriteString(stylesheet); err != nil {
		staged.Close()
		return "", cleanup, fmt.Errorf("%w: staging stylesheet: %v", domain.ErrWrite, err)
	}
	if err := staged.Close(); err != nil {
		return "", cleanup, fmt.Errorf("%w: staging stylesheet: %v", domain.ErrWrite, err)
	}

	internal, err := pkg.AddCSS(staged.Name(), stylesheetName)
	if err != nil {
		return "", cleanup, fmt.Errorf("%w: adding stylesheet: %v", domain.ErrWrite, err)
	}
	return internal, cleanup, nil
}

// addImages registers the book's image assets with the package and sets
// the cover when one is named. An image that cannot be added is dropped
// with a warning; its references in chapter bodies stay as they are.
func addImages(pkg *goepub.Epub, book *domain.Book) {
	internal := make(map[string]string, len(book.Images))

	for _, img := range book.Images {
		path, err := pkg.AddImage(img.SourcePath, img.Name)
		if err != nil {
			logger.Warn("image %s: %v", img.Name, err)
			continue
		}
		internal[img.Name] = path
	}

	if book.CoverName == "" {
		return
	}
	coverPath, ok := internal[book.CoverName]
	if !ok {
		logger.Warn("cover image %s not packaged", book.CoverName)
		return
	}
	pkg.SetCover(coverPath, "")
}
