package driven

import (
	"context"

	"github.com/quirepress/quire/internal/core/domain"
)

// ImageMaterializer resolves image references in chapter bodies to
// local files so the writers can embed them.
type ImageMaterializer interface {
	// Materialize rewrites <img> references in the chapter bodies to
	// package-internal paths and returns the rewritten chapters plus
	// the assets to embed. Local references resolve against sourceDir.
	// A reference that cannot be materialised is logged as a warning
	// and left untouched; it never fails the run.
	Materialize(ctx context.Context, chapters []domain.Chapter, sourceDir string) ([]domain.Chapter, []domain.ImageAsset, error)
}
