package domain

import "errors"

// Build failures fall into four classes. Call sites wrap these
// sentinels with fmt.Errorf("...: %w", ...) so errors.Is can recover
// the class from any failure.
var (
	// ErrInput indicates a missing or unusable input directory, or a
	// directory with no usable chapter files.
	ErrInput = errors.New("invalid input")

	// ErrConfig indicates missing required configuration, such as a
	// metadata field absent in a non-interactive run.
	ErrConfig = errors.New("missing configuration")

	// ErrWrite indicates an EPUB serialisation or filesystem failure.
	ErrWrite = errors.New("write failed")

	// ErrRender indicates the external renderer is missing or exited
	// with a non-zero status. The renderer's stderr is included in the
	// wrapping message.
	ErrRender = errors.New("render failed")
)

// Exit codes reported by the CLI, one per error class.
const (
	ExitOK     = 0
	ExitInput  = 1
	ExitConfig = 2
	ExitWrite  = 3
	ExitRender = 4
)

// ExitCode maps an error to the process exit code for its class.
// Unclassified errors report ExitInput.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrConfig):
		return ExitConfig
	case errors.Is(err, ErrWrite):
		return ExitWrite
	case errors.Is(err, ErrRender):
		return ExitRender
	default:
		return ExitInput
	}
}
