// Package postprocessors provides chapter content processing implementations.
package postprocessors

import (
	"context"
	"fmt"

	"github.com/quirepress/quire/internal/core/domain"
	"github.com/quirepress/quire/internal/core/ports/driven"
)

// Pipeline chains multiple ChapterProcessors and runs them in order.
// It implements the ChapterPipeline interface.
type Pipeline struct {
	processors []driven.ChapterProcessor
}

// NewPipeline creates a new processing pipeline with the given processors.
// Processors are executed in the order provided.
func NewPipeline(processors ...driven.ChapterProcessor) *Pipeline {
	return &Pipeline{
		processors: processors,
	}
}

// Process runs every chapter through all processors in order. The
// returned slice has the same length and order as the input; the input
// slice is never modified.
func (p *Pipeline) Process(ctx context.Context, chapters []domain.Chapter) ([]domain.Chapter, error) {
	if len(chapters) == 0 || len(p.processors) == 0 {
		return chapters, nil
	}

	out := make([]domain.Chapter, len(chapters))
	copy(out, chapters)

	for _, processor := range p.processors {
		for i := range out {
			chapter, err := processor.Process(ctx, out[i])
			if err != nil {
				return nil, fmt.Errorf("processor %s: chapter %s: %w", processor.Name(), out[i].Path, err)
			}
			out[i] = chapter
		}
	}

	return out, nil
}

// Add appends a processor to the pipeline.
func (p *Pipeline) Add(processor driven.ChapterProcessor) {
	p.processors = append(p.processors, processor)
}

// Len returns the number of processors in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.processors)
}
