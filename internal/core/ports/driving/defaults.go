package driving

import "github.com/quirepress/quire/internal/core/domain"

// DefaultsService manages the persistent per-user build defaults.
type DefaultsService interface {
	// Get returns the stored defaults. Missing keys yield zero values.
	Get() (domain.Defaults, error)

	// Save persists the given defaults.
	Save(defaults domain.Defaults) error

	// Path returns the backing configuration file path.
	Path() string
}
