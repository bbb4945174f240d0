package postprocessors

import (
	"github.com/quirepress/quire/internal/core/ports/driven"
	"github.com/quirepress/quire/internal/postprocessors/sanitizer"
)

// RegisterDefaults registers all built-in processors with the registry.
// Call this during application initialisation to enable standard processors.
func RegisterDefaults(r *Registry) {
	r.Register("sanitize", buildSanitizer)
}

// buildSanitizer creates a sanitizer processor from generic config.
// Supported config keys:
//   - strict (bool): Strip all markup instead of filtering it (default: false)
func buildSanitizer(cfg map[string]any) (driven.ChapterProcessor, error) {
	var opts []sanitizer.Option

	if getBoolFromConfig(cfg, "strict") {
		opts = append(opts, sanitizer.WithStrict())
	}

	return sanitizer.New(opts...), nil
}

// getBoolFromConfig safely extracts a bool from generic config map.
// Handles bool and string types that may come from TOML parsing.
func getBoolFromConfig(cfg map[string]any, key string) bool {
	if cfg == nil {
		return false
	}

	val, ok := cfg[key]
	if !ok {
		return false
	}

	switch v := val.(type) {
	case bool:
		return v
	case string:
		return v == "true"
	default:
		return false
	}
}
