package postprocessors

import (
	"context"
	"errors"
	"testing"

	"github.com/quirepress/quire/internal/core/domain"
	"github.com/quirepress/quire/internal/core/ports/driven"
)

// registryMockProcessor is a simple mock for testing registry functionality.
type registryMockProcessor struct {
	name string
}

func (m *registryMockProcessor) Name() string { return m.name }
func (m *registryMockProcessor) Process(_ context.Context, chapter domain.Chapter) (domain.Chapter, error) {
	return chapter, nil
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry returned nil")
	}
	if len(r.builders) != 0 {
		t.Errorf("expected empty builders, got %d", len(r.builders))
	}
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	builder := func(_ map[string]any) (driven.ChapterProcessor, error) {
		return &registryMockProcessor{name: "test"}, nil
	}

	r.Register("test", builder)

	proc, err := r.Build("test", nil)
	if err != nil {
		t.Fatalf("Build after Register failed: %v", err)
	}
	if proc.Name() != "test" {
		t.Errorf("expected name 'test', got %q", proc.Name())
	}
}

func TestRegistry_Build_Success(t *testing.T) {
	r := NewRegistry()

	builder := func(cfg map[string]any) (driven.ChapterProcessor, error) {
		name := "default"
		if n, ok := cfg["name"].(string); ok {
			name = n
		}
		return &registryMockProcessor{name: name}, nil
	}

	r.Register("test", builder)

	proc, err := r.Build("test", map[string]any{"name": "custom"})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if proc.Name() != "custom" {
		t.Errorf("expected name 'custom', got %q", proc.Name())
	}
}

func TestRegistry_Build_UnknownProcessor(t *testing.T) {
	r := NewRegistry()

	_, err := r.Build("unknown", nil)
	if err == nil {
		t.Fatal("expected error for unknown processor")
	}
	if got := err.Error(); got != `unknown chapter processor "unknown"` {
		t.Errorf("unexpected error message: %q", got)
	}
}

func TestRegistry_Build_BuilderErrorIsWrapped(t *testing.T) {
	r := NewRegistry()

	r.Register("broken", func(_ map[string]any) (driven.ChapterProcessor, error) {
		return nil, context.DeadlineExceeded
	})

	_, err := r.Build("broken", nil)
	if err == nil {
		t.Fatal("expected builder error to propagate")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected wrapped builder error, got %v", err)
	}
}

func TestRegisterDefaults(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	if _, err := r.Build("sanitize", nil); err != nil {
		t.Errorf("expected 'sanitize' to be registered after RegisterDefaults: %v", err)
	}
}

func TestBuildSanitizer_WithConfig(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	proc, err := r.Build("sanitize", map[string]any{"strict": true})
	if err != nil {
		t.Fatalf("Build sanitize failed: %v", err)
	}

	if proc.Name() != "sanitize" {
		t.Errorf("expected name 'sanitize', got %q", proc.Name())
	}

	chapter, err := proc.Process(context.Background(), domain.Chapter{Body: "<p>kept <b>text</b></p>"})
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if chapter.Body != "kept text" {
		t.Errorf("expected strict policy to strip markup, got %q", chapter.Body)
	}
}

func TestBuildSanitizer_WithNilConfig(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	proc, err := r.Build("sanitize", nil)
	if err != nil {
		t.Fatalf("Build sanitize with nil config failed: %v", err)
	}

	if proc.Name() != "sanitize" {
		t.Errorf("expected name 'sanitize', got %q", proc.Name())
	}
}

func TestGetBoolFromConfig(t *testing.T) {
	tests := []struct {
		name     string
		cfg      map[string]any
		key      string
		expected bool
	}{
		{"bool true", map[string]any{"strict": true}, "strict", true},
		{"bool false", map[string]any{"strict": false}, "strict", false},
		{"string true", map[string]any{"strict": "true"}, "strict", true},
		{"string other", map[string]any{"strict": "yes"}, "strict", false},
		{"int value", map[string]any{"strict": 1}, "strict", false},
		{"missing key", map[string]any{"other": true}, "strict", false},
		{"nil config", nil, "strict", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := getBoolFromConfig(tt.cfg, tt.key)
			if result != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}
