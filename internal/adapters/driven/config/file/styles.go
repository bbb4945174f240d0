package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/quirepress/quire/internal/core/domain"
	"github.com/quirepress/quire/internal/core/ports/driven"
)

// Ensure StylesheetStore implements the interface.
var _ driven.StylesheetStore = (*StylesheetStore)(nil)

// stylesheetFile is the user-editable stylesheet filename.
const stylesheetFile = "book.css"

// StylesheetStore loads the packaging stylesheet from a user-editable
// file on disk, falling back to the embedded default. The directory and
// default file are created on first Load, not in the constructor.
type StylesheetStore struct {
	mu       sync.RWMutex
	styleDir string
	cached   string
	initOnce sync.Once
	initErr  error
}

// NewStylesheetStore creates a new file-based stylesheet store.
// If styleDir is empty, defaults to ~/.quire/styles/.
func NewStylesheetStore(styleDir string) (*StylesheetStore, error) {
	if styleDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		styleDir = filepath.Join(home, ".quire", "styles")
	}

	return &StylesheetStore{
		styleDir: styleDir,
	}, nil
}

// Load returns the stylesheet text.
// On first call, initialises the style directory and creates the default
// file. Returns the cached value if available, otherwise loads from file.
// Falls back to the embedded default if the file cannot be read.
func (s *StylesheetStore) Load() (string, error) {
	// Ensure directory and default file exist (lazy init)
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		// Fall back to the embedded default if init failed
		return domain.DefaultStylesheet(), nil
	}

	// Check cache first (read lock)
	s.mu.RLock()
	if s.cached != "" {
		cached := s.cached
		s.mu.RUnlock()
		return cached, nil
	}
	s.mu.RUnlock()

	// Load from file (no lock held during I/O)
	data, err := os.ReadFile(filepath.Join(s.styleDir, stylesheetFile))
	if err != nil {
		// Fall back to the embedded default
		return domain.DefaultStylesheet(), nil
	}

	s.mu.Lock()
	s.cached = string(data)
	s.mu.Unlock()

	return string(data), nil
}

// Dir returns the style directory path.
func (s *StylesheetStore) Dir() string {
	return s.styleDir
}

// initialise creates the style directory and the default stylesheet.
// Called once via sync.Once on first Load().
func (s *StylesheetStore) initialise() {
	// Create directory
	if err := os.MkdirAll(s.styleDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create style directory: %w", err)
		return
	}

	// Create the default stylesheet (only if it doesn't exist)
	path := filepath.Join(s.styleDir, stylesheetFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte(domain.DefaultStylesheet()), 0600); err != nil {
			s.initErr = fmt.Errorf("create default stylesheet: %w", err)
			return
		}
	}

	// Create README
	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

// createReadme writes a README file explaining the styles directory.
func (s *StylesheetStore) createReadme() error {
	path := filepath.Join(s.styleDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil // Already exists or stat error (ignore)
	}

	content := `# Quire Styles

This directory contains the stylesheet Quire applies to assembled books.

## Files

- ` + "`book.css`" + `: applied to every chapter of the EPUB and to the PDF document

## Customisation

Edit book.css to change how packaged books look. Changes take effect on
the next build. Passing --css to the build command overrides this file
entirely.
`
	return os.WriteFile(path, []byte(content), 0600)
}
