package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/quirepress/quire/internal/core/domain"
)

// promptMetadata asks for the three metadata fields in turn. Values
// already resolved are offered as bracketed defaults.
func promptMetadata(out io.Writer, reader *bufio.Reader, metadata domain.BookMetadata) domain.BookMetadata {
	fmt.Fprintln(out, "Enter book metadata. Empty input keeps the bracketed value.")
	metadata.Title = promptField(out, reader, "Title", metadata.Title)
	metadata.Author = promptField(out, reader, "Author", metadata.Author)
	metadata.Language = promptField(out, reader, "Language (e.g. en, cs)", metadata.Language)
	return metadata
}

// promptField reads one line for the labelled field. Empty input keeps
// the current value.
func promptField(out io.Writer, reader *bufio.Reader, label, current string) string {
	if current != "" {
		fmt.Fprintf(out, "%s [%s]: ", label, current)
	} else {
		fmt.Fprintf(out, "%s: ", label)
	}
	input := readLine(reader)
	if input == "" {
		return current
	}
	return input
}

// promptYesNo reads a yes/no answer. Anything other than a clear yes
// or no keeps the current value.
func promptYesNo(out io.Writer, reader *bufio.Reader, label string, current bool) bool {
	choices := "y/N"
	if current {
		choices = "Y/n"
	}
	fmt.Fprintf(out, "%s [%s]: ", label, choices)
	switch strings.ToLower(readLine(reader)) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return current
	}
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
