package postprocessors

import (
	"fmt"

	"github.com/quirepress/quire/internal/core/ports/driven"
)

// BuilderFunc constructs a ChapterProcessor from its configuration map.
// The map carries processor-specific keys parsed from the config file
// (e.g. "strict" for the sanitizer); a nil map selects the defaults.
type BuilderFunc func(cfg map[string]any) (driven.ChapterProcessor, error)

// Registry maps processor names to builders so a pipeline can be put
// together from configuration.
type Registry struct {
	builders map[string]BuilderFunc
}

// NewRegistry creates an empty processor registry.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[string]BuilderFunc),
	}
}

// Register adds a builder under the given name. The name must match
// the Name() of the processors the builder produces. Registering the
// same name twice replaces the earlier builder.
func (r *Registry) Register(name string, builder BuilderFunc) {
	r.builders[name] = builder
}

// Build constructs the named processor with the given configuration.
func (r *Registry) Build(name string, cfg map[string]any) (driven.ChapterProcessor, error) {
	builder, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown chapter processor %q", name)
	}

	processor, err := builder(cfg)
	if err != nil {
		return nil, fmt.Errorf("building processor %s: %w", name, err)
	}
	return processor, nil
}
