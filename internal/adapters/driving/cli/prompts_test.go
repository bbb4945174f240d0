package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quirepress/quire/internal/core/domain"
)

// --- Test helpers ---

func promptReader(input string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(input))
}

// --- Tests ---

func TestPromptField_InputOverridesCurrent(t *testing.T) {
	out := new(bytes.Buffer)

	got := promptField(out, promptReader("New Title\n"), "Title", "Old Title")

	assert.Equal(t, "New Title", got)
}

func TestPromptField_EmptyKeepsCurrent(t *testing.T) {
	out := new(bytes.Buffer)

	got := promptField(out, promptReader("\n"), "Title", "Old Title")

	assert.Equal(t, "Old Title", got)
}

func TestPromptField_ShowsBracketedDefault(t *testing.T) {
	out := new(bytes.Buffer)

	promptField(out, promptReader("\n"), "Author", "R. Calder")

	assert.Equal(t, "Author [R. Calder]: ", out.String())
}

func TestPromptField_NoBracketWhenUnset(t *testing.T) {
	out := new(bytes.Buffer)

	promptField(out, promptReader("x\n"), "Title", "")

	assert.Equal(t, "Title: ", out.String())
}

func TestPromptYesNo(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		current bool
		want    bool
	}{
		{"yes", "y\n", false, true},
		{"yes long", "yes\n", false, true},
		{"yes uppercase", "Y\n", false, true},
		{"no", "n\n", true, false},
		{"no long", "no\n", true, false},
		{"empty keeps false", "\n", false, false},
		{"empty keeps true", "\n", true, true},
		{"garbage keeps current", "maybe\n", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := new(bytes.Buffer)

			got := promptYesNo(out, promptReader(tt.input), "Sanitise chapter HTML", tt.current)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPromptYesNo_ShowsDefaultChoice(t *testing.T) {
	out := new(bytes.Buffer)
	promptYesNo(out, promptReader("\n"), "Sanitise chapter HTML", true)
	assert.Contains(t, out.String(), "[Y/n]")

	out.Reset()
	promptYesNo(out, promptReader("\n"), "Sanitise chapter HTML", false)
	assert.Contains(t, out.String(), "[y/N]")
}

func TestReadLine_TrimsWhitespace(t *testing.T) {
	got := readLine(promptReader("  spaced out  \n"))

	assert.Equal(t, "spaced out", got)
}

func TestReadLine_EmptyOnEOF(t *testing.T) {
	got := readLine(promptReader(""))

	assert.Equal(t, "", got)
}

func TestPromptMetadata_FillsAllFields(t *testing.T) {
	out := new(bytes.Buffer)

	got := promptMetadata(out, promptReader("Field Notes\nR. Calder\nen\n"), domain.BookMetadata{})

	assert.Equal(t, "Field Notes", got.Title)
	assert.Equal(t, "R. Calder", got.Author)
	assert.Equal(t, "en", got.Language)
	assert.Contains(t, out.String(), "Title: ")
	assert.Contains(t, out.String(), "Author: ")
	assert.Contains(t, out.String(), "Language")
}

func TestPromptMetadata_KeepsResolvedValues(t *testing.T) {
	out := new(bytes.Buffer)
	current := domain.BookMetadata{Title: "Field Notes", Language: "cs"}

	got := promptMetadata(out, promptReader("\nR. Calder\n\n"), current)

	assert.Equal(t, "Field Notes", got.Title)
	assert.Equal(t, "R. Calder", got.Author)
	assert.Equal(t, "cs", got.Language)
	assert.Contains(t, out.String(), "Title [Field Notes]: ")
}
