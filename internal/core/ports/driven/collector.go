package driven

import (
	"context"

	"github.com/quirepress/quire/internal/core/domain"
)

// Collector lists chapter files from an input directory.
type Collector interface {
	// Collect returns the paths of all HTML chapter files in dir,
	// ordered by the given sort mode. It fails with an ErrInput-classed
	// error when the directory is missing, not a directory, or contains
	// no chapter files.
	Collect(ctx context.Context, dir string, mode domain.SortMode) ([]string, error)
}
