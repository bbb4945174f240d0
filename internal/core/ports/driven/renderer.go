package driven

import "context"

// Renderer converts an HTML document into a PDF file.
type Renderer interface {
	// Render writes document to a temporary file and invokes the
	// external renderer synchronously, with no timeout, producing a
	// PDF at outputPath. Failures (renderer missing, non-zero exit)
	// are ErrRender-classed and carry the renderer's stderr.
	Render(ctx context.Context, document string, outputPath string) error
}
