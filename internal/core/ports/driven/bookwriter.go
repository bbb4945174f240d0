package driven

import (
	"context"

	"github.com/quirepress/quire/internal/core/domain"
)

// BookWriter serialises an assembled Book into a packaged file.
type BookWriter interface {
	// Write packages the book and writes it to path, creating the
	// parent directory when absent. Failures are ErrWrite-classed.
	Write(ctx context.Context, book *domain.Book, path string) error
}
