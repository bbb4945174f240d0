package memory

import (
	"sync"

	"github.com/quirepress/quire/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps configuration in process memory. It backs tests
// and ephemeral runs where nothing should touch the user's config
// file; Save and Load are deliberate no-ops and Path reports
// ":memory:".
type ConfigStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewConfigStore creates an empty in-memory store.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{values: make(map[string]any)}
}

// Get returns the raw value stored under key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	return value, ok
}

// GetString returns the string under key, or "" when the key is
// missing or holds another type.
func (s *ConfigStore) GetString(key string) string {
	value, ok := s.Get(key)
	if !ok {
		return ""
	}
	str, _ := value.(string)
	return str
}

// GetBool returns the bool under key, or false when the key is missing
// or holds another type.
func (s *ConfigStore) GetBool(key string) bool {
	value, ok := s.Get(key)
	if !ok {
		return false
	}
	b, _ := value.(bool)
	return b
}

// Set stores value under key.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}

// Save is a no-op; the store has no backing file.
func (s *ConfigStore) Save() error {
	return nil
}

// Load is a no-op; the store has no backing file.
func (s *ConfigStore) Load() error {
	return nil
}

// Path identifies the store in messages that print a config location.
func (s *ConfigStore) Path() string {
	return ":memory:"
}
