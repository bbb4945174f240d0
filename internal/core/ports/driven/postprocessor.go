package driven

import (
	"context"

	"github.com/quirepress/quire/internal/core/domain"
)

// ChapterProcessor rewrites one extracted chapter before assembly.
// Processors are chained in a pipeline (e.g., sanitisation).
type ChapterProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process returns the rewritten chapter. A processor must not
	// change the chapter's Path.
	Process(ctx context.Context, chapter domain.Chapter) (domain.Chapter, error)
}

// ChapterPipeline chains multiple ChapterProcessors.
type ChapterPipeline interface {
	// Process runs every chapter through all processors in order.
	// The result preserves chapter count and order.
	Process(ctx context.Context, chapters []domain.Chapter) ([]domain.Chapter, error)
}
