package file

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/quirepress/quire/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore persists configuration as a TOML file, by default
// ~/.quire/config.toml. Keys use dot notation ("defaults.author"); on
// disk each dotted prefix becomes a TOML table, so the file stays
// editable by hand.
type ConfigStore struct {
	mu     sync.RWMutex
	path   string
	values map[string]any
}

// NewConfigStore opens the store rooted at configDir, creating the
// directory when needed. An empty configDir selects ~/.quire.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".quire")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		path:   filepath.Join(configDir, "config.toml"),
		values: make(map[string]any),
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
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

// Set stores value under key and persists the file immediately.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return s.save()
}

// Save persists the current values.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// save writes the TOML file. Caller holds the write lock.
func (s *ConfigStore) save() error {
	data, err := toml.Marshal(expandKeys(s.values))
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

// Load re-reads the file. A store without a file yet is empty, not an
// error.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.values = make(map[string]any)
			return nil
		}
		return err
	}

	var nested map[string]any
	if err := toml.Unmarshal(data, &nested); err != nil {
		return err
	}

	s.values = flattenKeys(nested, "")
	return nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.path
}

// flattenKeys turns nested TOML tables into dot-notation keys:
// {"defaults": {"author": x}} becomes {"defaults.author": x}.
func flattenKeys(nested map[string]any, prefix string) map[string]any {
	flat := make(map[string]any)
	for key, value := range nested {
		if prefix != "" {
			key = prefix + "." + key
		}
		if table, ok := value.(map[string]any); ok {
			for k, v := range flattenKeys(table, key) {
				flat[k] = v
			}
			continue
		}
		flat[key] = value
	}
	return flat
}

// expandKeys is the inverse of flattenKeys: dotted keys become nested
// tables so the written TOML groups related settings under sections.
func expandKeys(flat map[string]any) map[string]any {
	nested := make(map[string]any)
	for key, value := range flat {
		parts := strings.Split(key, ".")
		node := nested
		for _, part := range parts[:len(parts)-1] {
			child, ok := node[part].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[part] = child
			}
			node = child
		}
		node[parts[len(parts)-1]] = value
	}
	return nested
}
