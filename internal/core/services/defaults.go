package services

import (
	"fmt"

	"github.com/quirepress/quire/internal/core/domain"
	"github.com/quirepress/quire/internal/core/ports/driven"
	"github.com/quirepress/quire/internal/core/ports/driving"
)

// Ensure DefaultsService implements the interface.
var _ driving.DefaultsService = (*DefaultsService)(nil)

// Config keys for the persistent build defaults.
const (
	keyDefaultAuthor   = "defaults.author"
	keyDefaultLanguage = "defaults.language"
	keyStylesheet      = "build.stylesheet"
	keySanitize        = "build.sanitize"
	keyRenderer        = "pdf.renderer"
)

// DefaultsService manages the persistent per-user build defaults.
type DefaultsService struct {
	configStore driven.ConfigStore
}

// NewDefaultsService creates a new defaults service.
func NewDefaultsService(configStore driven.ConfigStore) *DefaultsService {
	return &DefaultsService{configStore: configStore}
}

// Get retrieves the stored build defaults. Keys absent from the
// configuration yield zero values.
func (s *DefaultsService) Get() (domain.Defaults, error) {
	return domain.Defaults{
		Author:     s.configStore.GetString(keyDefaultAuthor),
		Language:   s.configStore.GetString(keyDefaultLanguage),
		Stylesheet: s.configStore.GetString(keyStylesheet),
		Renderer:   s.configStore.GetString(keyRenderer),
		Sanitize:   s.getBool(keySanitize, false),
	}, nil
}

// Save persists the given build defaults.
func (s *DefaultsService) Save(defaults domain.Defaults) error {
	if err := s.configStore.Set(keyDefaultAuthor, defaults.Author); err != nil {
		return fmt.Errorf("save default author: %w", err)
	}
	if err := s.configStore.Set(keyDefaultLanguage, defaults.Language); err != nil {
		return fmt.Errorf("save default language: %w", err)
	}
	if err := s.configStore.Set(keyStylesheet, defaults.Stylesheet); err != nil {
		return fmt.Errorf("save stylesheet path: %w", err)
	}
	if err := s.configStore.Set(keySanitize, defaults.Sanitize); err != nil {
		return fmt.Errorf("save sanitize flag: %w", err)
	}
	if err := s.configStore.Set(keyRenderer, defaults.Renderer); err != nil {
		return fmt.Errorf("save renderer path: %w", err)
	}
	return nil
}

// Path returns the backing configuration file path.
func (s *DefaultsService) Path() string {
	return s.configStore.Path()
}

// Helper methods for reading config with defaults.

func (s *DefaultsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}
