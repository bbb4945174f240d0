// Package sanitizer provides a chapter processor that removes unsafe
// markup from chapter bodies before packaging.
package sanitizer

import (
	"context"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/quirepress/quire/internal/core/domain"
)

// Processor filters chapter body markup through an HTML sanitisation
// policy. The default policy keeps common book markup such as headings,
// paragraphs, lists, tables and images while dropping scripts, event
// handler attributes and embedded frames. Images with data URIs are
// kept so inlined pictures survive sanitisation.
// It implements the ChapterProcessor interface.
type Processor struct {
	policy *bluemonday.Policy
	strict bool
}

// Option configures the sanitizer processor.
type Option func(*Processor)

// WithStrict switches to a policy that strips all markup, leaving only
// the text content of the chapter.
func WithStrict() Option {
	return func(p *Processor) {
		p.strict = true
	}
}

// New creates a new sanitizer processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{}

	for _, opt := range opts {
		opt(p)
	}

	if p.strict {
		p.policy = bluemonday.StrictPolicy()
	} else {
		policy := bluemonday.UGCPolicy()
		policy.AllowDataURIImages()
		p.policy = policy
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "sanitize"
}

// Process returns the chapter with its body sanitised. The path and
// title are left untouched.
func (p *Processor) Process(_ context.Context, chapter domain.Chapter) (domain.Chapter, error) {
	chapter.Body = strings.TrimSpace(p.policy.Sanitize(chapter.Body))
	return chapter, nil
}
