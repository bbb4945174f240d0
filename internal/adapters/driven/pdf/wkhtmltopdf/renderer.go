package wkhtmltopdf

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/quirepress/quire/internal/core/domain"
	"github.com/quirepress/quire/internal/core/ports/driven"
	"github.com/quirepress/quire/internal/logger"
)

// DefaultBinary is the renderer executable resolved from PATH when no
// explicit path is configured.
const DefaultBinary = "wkhtmltopdf"

// stderrExcerptLimit caps how much renderer output is carried into an
// error message. wkhtmltopdf reports the reason for a failure at the
// end of its stderr stream.
const stderrExcerptLimit = 512

// Renderer turns an HTML document into a PDF by running wkhtmltopdf
// as a subprocess. The invocation is synchronous and carries no
// deadline of its own; large books may legitimately render for minutes.
type Renderer struct {
	binary string
}

// Compile-time check that Renderer implements the Renderer port.
var _ driven.Renderer = (*Renderer)(nil)

// NewRenderer creates a renderer that invokes the given binary. An
// empty binary falls back to resolving wkhtmltopdf from PATH.
func NewRenderer(binary string) *Renderer {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Renderer{binary: binary}
}

// Render implements the driven.Renderer interface.
func (r *Renderer) Render(ctx context.Context, document string, outputPath string) error {
	bin, err := exec.LookPath(r.binary)
	if err != nil {
		return fmt.Errorf("%w: renderer %s not found: %v", domain.ErrRender, r.binary, err)
	}

	staged, err := stageDocument(document)
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(staged) }()

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%w: creating output directory: %v", domain.ErrRender, err)
		}
	}

	args := renderArgs(staged, outputPath)
	logger.Debug("running %s %s", bin, strings.Join(args, " "))

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// A failed run can leave a truncated PDF behind; it stays on
		// disk so the user can inspect it.
		return fmt.Errorf("%w: %s: %v: %s", domain.ErrRender, r.binary, err, stderrExcerpt(stderr.String()))
	}

	logger.Debug("rendered PDF to %s", outputPath)
	return nil
}

// stageDocument writes the document to a temporary .html file for the
// renderer to read. The extension tells wkhtmltopdf how to load it.
func stageDocument(document string) (string, error) {
	staged, err := os.CreateTemp("", "quire-pdf-*.html")
	if err != nil {
		return "", fmt.Errorf("%w: staging document: %v", domain.ErrRender, err)
	}

	if _, err := staged.WriteString(document); err != nil {
		staged.Close()
		_ = os.Remove(staged.Name())
		return "", fmt.Errorf("%w: staging document: %v", domain.ErrRender, err)
	}
	if err := staged.Close(); err != nil {
		_ = os.Remove(staged.Name())
		return "", fmt.Errorf("%w: staging document: %v", domain.ErrRender, err)
	}

	return staged.Name(), nil
}

// renderArgs builds the wkhtmltopdf argument list for one conversion.
// Resource loading errors are ignored so a single dead link cannot
// abort an otherwise healthy render.
func renderArgs(inputPath, outputPath string) []string {
	return []string{
		"--encoding", "UTF-8",
		"--page-size", "A4",
		"--orientation", "Portrait",
		"--margin-top", "12mm",
		"--margin-right", "12mm",
		"--margin-bottom", "15mm",
		"--margin-left", "12mm",
		"--dpi", "96",
		"--image-dpi", "300",
		"--image-quality", "94",
		"--title", "",
		"--no-outline",
		"--disable-smart-shrinking",
		"--disable-javascript",
		"--load-error-handling", "ignore",
		"--load-media-error-handling", "ignore",
		"--enable-local-file-access",
		inputPath,
		outputPath,
	}
}

// stderrExcerpt trims renderer output down to the tail that names the
// failure.
func stderrExcerpt(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > stderrExcerptLimit {
		s = "..." + s[len(s)-stderrExcerptLimit:]
	}
	if s == "" {
		return "no renderer output"
	}
	return s
}
