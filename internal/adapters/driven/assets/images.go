package assets

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/vincent-petithory/dataurl"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/time/rate"

	"github.com/quirepress/quire/internal/core/domain"
	"github.com/quirepress/quire/internal/core/ports/driven"
	"github.com/quirepress/quire/internal/logger"
)

// downloadTimeout bounds a single remote image fetch. Chapter sources
// routinely reference dead hosts; without a deadline one such link
// would stall the whole build.
const downloadTimeout = 20 * time.Second

// downloadsPerSecond rate-limits remote fetches so a book full of
// images from one host does not hammer it.
const downloadsPerSecond = 2

// Materializer resolves chapter images into local files.
//
// A failed image never fails the build: the reference is left as it
// was and a warning is logged. Images resolved more than once are
// materialised a single time and share one asset.
type Materializer struct {
	workDir string
	client  *http.Client
	limiter *rate.Limiter
}

// Compile-time check that Materializer implements the ImageMaterializer port.
var _ driven.ImageMaterializer = (*Materializer)(nil)

// NewMaterializer creates a materializer that stores downloaded and
// decoded images beneath workDir. When workDir is empty a temporary
// directory is created on first use.
func NewMaterializer(workDir string) *Materializer {
	return &Materializer{
		workDir: workDir,
		client:  &http.Client{Timeout: downloadTimeout},
		limiter: rate.NewLimiter(rate.Limit(downloadsPerSecond), 1),
	}
}

// collectState tracks assets across chapters so repeated references
// reuse the first materialisation.
type collectState struct {
	seen   map[string]string
	assets []domain.ImageAsset
	count  int
}

// Materialize implements the driven.ImageMaterializer interface.
func (m *Materializer) Materialize(ctx context.Context, chapters []domain.Chapter, sourceDir string) ([]domain.Chapter, []domain.ImageAsset, error) {
	out := make([]domain.Chapter, len(chapters))
	copy(out, chapters)

	state := &collectState{seen: make(map[string]string)}

	for i := range out {
		baseDir := sourceDir
		if out[i].Path != "" {
			baseDir = filepath.Dir(out[i].Path)
		}

		body, err := m.rewriteImages(ctx, out[i].Body, baseDir, state)
		if err != nil {
			return nil, nil, err
		}
		out[i].Body = body
	}

	return out, state.assets, nil
}

// rewriteImages parses a chapter body, materialises every image it
// references and rewrites the src attributes to the packaged location.
// Bodies without images are returned verbatim.
func (m *Materializer) rewriteImages(ctx context.Context, body, baseDir string, state *collectState) (string, error) {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return body, nil
	}

	images := findAll(doc, atom.Img)
	if len(images) == 0 {
		return body, nil
	}

	for _, img := range images {
		if err := m.rewriteNode(ctx, img, baseDir, state); err != nil {
			return "", err
		}
	}

	return renderBody(doc, body), nil
}

// rewriteNode resolves a single img element in place. Failures are
// logged and leave the reference untouched; only context errors abort
// the pass.
func (m *Materializer) rewriteNode(ctx context.Context, img *html.Node, baseDir string, state *collectState) error {
	src := attrValue(img, "src")
	if src == "" {
		logger.Warn("image without src attribute, leaving as is")
		return nil
	}

	// Responsive variants point at files that are not packaged.
	removeAttr(img, "srcset")

	if name, ok := state.seen[src]; ok {
		setAttr(img, "src", domain.ImagePathPrefix+name)
		return nil
	}

	asset, err := m.resolve(ctx, src, baseDir, state.count+1)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		logger.Warn("image %s: %v", displaySrc(src), err)
		return nil
	}

	state.count++
	state.seen[src] = asset.Name
	state.assets = append(state.assets, asset)
	setAttr(img, "src", domain.ImagePathPrefix+asset.Name)
	return nil
}

// resolve materialises one image reference into a local file.
func (m *Materializer) resolve(ctx context.Context, src, baseDir string, n int) (domain.ImageAsset, error) {
	switch {
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return m.download(ctx, src, n)
	case strings.HasPrefix(src, "data:"):
		return m.decode(src, n)
	default:
		return m.local(src, baseDir, n)
	}
}

// download fetches a remote image and stores it in the work directory.
func (m *Materializer) download(ctx context.Context, src string, n int) (domain.ImageAsset, error) {
	if err := m.limiter.Wait(ctx); err != nil {
		return domain.ImageAsset{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return domain.ImageAsset{}, fmt.Errorf("building request: %w", err)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return domain.ImageAsset{}, fmt.Errorf("downloading: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.ImageAsset{}, fmt.Errorf("downloading: status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.ImageAsset{}, fmt.Errorf("reading response: %w", err)
	}

	return m.store(data, n)
}

// decode writes an inline data URI out to a file in the work directory.
func (m *Materializer) decode(src string, n int) (domain.ImageAsset, error) {
	decoded, err := dataurl.DecodeString(src)
	if err != nil {
		return domain.ImageAsset{}, fmt.Errorf("decoding data URI: %w", err)
	}
	return m.store(decoded.Data, n)
}

// local resolves a relative or absolute path against the chapter
// directory and verifies the file exists.
func (m *Materializer) local(src, baseDir string, n int) (domain.ImageAsset, error) {
	path := src
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, src)
	}

	if _, err := os.Stat(path); err != nil {
		return domain.ImageAsset{}, fmt.Errorf("not found at %s", path)
	}

	mime, err := mimetype.DetectFile(path)
	if err != nil {
		return domain.ImageAsset{}, fmt.Errorf("detecting type: %w", err)
	}

	return domain.ImageAsset{
		Name:       fmt.Sprintf("img_%03d%s", n, mime.Extension()),
		SourcePath: path,
		MediaType:  mime.String(),
	}, nil
}

// store writes image bytes to the work directory and builds the asset.
func (m *Materializer) store(data []byte, n int) (domain.ImageAsset, error) {
	dir, err := m.ensureWorkDir()
	if err != nil {
		return domain.ImageAsset{}, err
	}

	mime := mimetype.Detect(data)
	name := fmt.Sprintf("img_%03d%s", n, mime.Extension())
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, data, 0600); err != nil {
		return domain.ImageAsset{}, fmt.Errorf("%w: storing image: %v", domain.ErrWrite, err)
	}

	return domain.ImageAsset{
		Name:       name,
		SourcePath: path,
		MediaType:  mime.String(),
	}, nil
}

func (m *Materializer) ensureWorkDir() (string, error) {
	if m.workDir != "" {
		return m.workDir, nil
	}
	dir, err := os.MkdirTemp("", "quire-assets-")
	if err != nil {
		return "", fmt.Errorf("%w: creating work directory: %v", domain.ErrWrite, err)
	}
	m.workDir = dir
	return dir, nil
}

// displaySrc shortens data URIs so warnings stay readable.
func displaySrc(src string) string {
	if strings.HasPrefix(src, "data:") && len(src) > 40 {
		return src[:40] + "..."
	}
	return src
}

// --- Node helpers ---

// findAll collects every element node matching the given atom in
// document order.
func findAll(n *html.Node, a atom.Atom) []*html.Node {
	var found []*html.Node
	if n.Type == html.ElementNode && n.DataAtom == a {
		found = append(found, n)
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		found = append(found, findAll(child, a)...)
	}
	return found
}

// renderBody renders the children of the parsed document's body back
// to HTML, falling back to the original text when no body exists.
func renderBody(doc *html.Node, original string) string {
	body := findFirst(doc, atom.Body)
	if body == nil {
		return original
	}

	var buf bytes.Buffer
	for child := body.FirstChild; child != nil; child = child.NextSibling {
		if err := html.Render(&buf, child); err != nil {
			return original
		}
	}
	return buf.String()
}

func findFirst(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findFirst(child, a); found != nil {
			return found
		}
	}
	return nil
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}
