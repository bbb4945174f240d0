package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/quirepress/quire/internal/core/domain"
	"github.com/quirepress/quire/internal/core/ports/driven"
	"github.com/quirepress/quire/internal/core/ports/driving"
	"github.com/quirepress/quire/internal/logger"
)

// Ensure BuildService implements the interface.
var _ driving.BuildService = (*BuildService)(nil)

// BuildService assembles a book from a directory of HTML chapter files
// and writes the requested outputs.
type BuildService struct {
	collector    driven.Collector
	extractor    driven.ChapterExtractor
	writer       driven.BookWriter
	renderer     driven.Renderer
	pipeline     driven.ChapterPipeline
	materializer driven.ImageMaterializer
	stylesheets  driven.StylesheetStore
}

// NewBuildService creates a new build service.
// The renderer parameter is optional (can be nil); builds that request
// a PDF fail when no renderer is configured.
func NewBuildService(
	collector driven.Collector,
	extractor driven.ChapterExtractor,
	writer driven.BookWriter,
	renderer driven.Renderer,
) *BuildService {
	return &BuildService{
		collector: collector,
		extractor: extractor,
		writer:    writer,
		renderer:  renderer,
	}
}

// SetPipeline sets the chapter post-processing pipeline.
func (s *BuildService) SetPipeline(pipeline driven.ChapterPipeline) {
	s.pipeline = pipeline
}

// SetMaterializer sets the image materializer.
func (s *BuildService) SetMaterializer(materializer driven.ImageMaterializer) {
	s.materializer = materializer
}

// SetStylesheetStore sets the store consulted when a build does not
// name a stylesheet explicitly.
func (s *BuildService) SetStylesheetStore(store driven.StylesheetStore) {
	s.stylesheets = store
}

// Build runs the whole pipeline: collect, extract, post-process,
// materialise images, assemble, then write the EPUB and/or render
// the PDF.
func (s *BuildService) Build(ctx context.Context, req driving.BuildRequest) (*driving.BuildResult, error) {
	logger.Section("Book Build")
	logger.Debug("Input: %s, sort: %s, epub: %q, pdf: %q",
		req.InputDir, req.Sort, req.EPUBPath, req.PDFPath)

	if err := s.validate(req); err != nil {
		return nil, err
	}

	paths, err := s.collector.Collect(ctx, req.InputDir, req.Sort)
	if err != nil {
		return nil, fmt.Errorf("collecting chapters: %w", err)
	}
	logger.Info("Found %d chapter files", len(paths))

	chapters, skipped, err := s.loadChapters(paths)
	if err != nil {
		return nil, err
	}
	if len(chapters) == 0 {
		return nil, fmt.Errorf("%w: no chapters with content in %s", domain.ErrInput, req.InputDir)
	}
	logger.Info("Extracted %d chapters (%d skipped)", len(chapters), skipped)

	if s.pipeline != nil {
		chapters, err = s.pipeline.Process(ctx, chapters)
		if err != nil {
			return nil, fmt.Errorf("%w: post-processing chapters: %v", domain.ErrInput, err)
		}
	}

	var images []domain.ImageAsset
	if s.materializer != nil {
		chapters, images, err = s.materializer.Materialize(ctx, chapters, req.InputDir)
		if err != nil {
			return nil, fmt.Errorf("materialising images: %w", err)
		}
		logger.Debug("Materialised %d images", len(images))
	}

	stylesheet, err := s.resolveStylesheet(req.StylesheetPath)
	if err != nil {
		return nil, err
	}

	book := domain.NewBook(req.Metadata, chapters)
	book.Images = images
	book.Stylesheet = stylesheet
	if err := s.attachCover(&book, req.CoverPath); err != nil {
		return nil, err
	}

	result := &driving.BuildResult{Chapters: len(chapters), Skipped: skipped}

	if req.EPUBPath != "" {
		if err := s.writer.Write(ctx, &book, req.EPUBPath); err != nil {
			return nil, err
		}
		logger.Info("EPUB written: %s", req.EPUBPath)
		result.EPUBPath = req.EPUBPath
	}

	if req.PDFPath != "" {
		if err := s.renderPDF(ctx, &book, req.PDFPath, req.DumpHTMLPath); err != nil {
			return nil, err
		}
		logger.Info("PDF written: %s", req.PDFPath)
		result.PDFPath = req.PDFPath
	}

	return result, nil
}

// validate rejects requests that cannot produce any output.
func (s *BuildService) validate(req driving.BuildRequest) error {
	if req.InputDir == "" {
		return fmt.Errorf("%w: input directory is required", domain.ErrInput)
	}
	if req.EPUBPath == "" && req.PDFPath == "" {
		return fmt.Errorf("%w: at least one output (EPUB or PDF) must be requested", domain.ErrConfig)
	}
	if req.PDFPath != "" && s.renderer == nil {
		return fmt.Errorf("%w: PDF output requested but no renderer is configured", domain.ErrConfig)
	}
	return req.Metadata.Validate()
}

// loadChapters reads and extracts every collected file, in order.
// Files whose extracted body is empty are skipped with a warning.
func (s *BuildService) loadChapters(paths []string) ([]domain.Chapter, int, error) {
	chapters := make([]domain.Chapter, 0, len(paths))
	skipped := 0

	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: reading chapter %s: %v", domain.ErrInput, path, err)
		}

		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		extracted := s.extractor.Extract(raw, stem)
		if strings.TrimSpace(extracted.Body) == "" {
			logger.Warn("Skipping %s: no content after extraction", filepath.Base(path))
			skipped++
			continue
		}

		chapters = append(chapters, domain.Chapter{
			Path:  path,
			Title: extracted.Title,
			Body:  extracted.Body,
		})
	}

	return chapters, skipped, nil
}

// resolveStylesheet returns the CSS for this build: the explicitly
// requested file, then the stylesheet store, then the built-in default.
func (s *BuildService) resolveStylesheet(path string) (string, error) {
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("%w: reading stylesheet %s: %v", domain.ErrConfig, path, err)
		}
		logger.Debug("Stylesheet: %s", path)
		return string(raw), nil
	}

	if s.stylesheets != nil {
		css, err := s.stylesheets.Load()
		if err != nil {
			logger.Warn("Stylesheet store failed: %v (using built-in stylesheet)", err)
		} else if css != "" {
			return css, nil
		}
	}

	return domain.DefaultStylesheet(), nil
}

// attachCover selects the book cover. An explicit cover path must
// exist; without one the first materialised image stands in, and a
// book without images simply has no cover.
func (s *BuildService) attachCover(book *domain.Book, coverPath string) error {
	if coverPath == "" {
		if len(book.Images) > 0 {
			book.CoverName = book.Images[0].Name
			logger.Debug("Cover: first materialised image %s", book.CoverName)
		}
		return nil
	}

	mtype, err := mimetype.DetectFile(coverPath)
	if err != nil {
		return fmt.Errorf("%w: reading cover image %s: %v", domain.ErrConfig, coverPath, err)
	}

	name := "cover" + mtype.Extension()
	book.Images = append(book.Images, domain.ImageAsset{
		Name:       name,
		SourcePath: coverPath,
		MediaType:  mtype.String(),
	})
	book.CoverName = name
	logger.Debug("Cover: %s (%s)", coverPath, mtype.String())
	return nil
}

// renderPDF assembles the single-document form of the book and hands
// it to the renderer, optionally dumping it for inspection first.
func (s *BuildService) renderPDF(ctx context.Context, book *domain.Book, outputPath, dumpPath string) error {
	document := buildPDFDocument(book)

	if dumpPath != "" {
		if dir := filepath.Dir(dumpPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("%w: creating dump directory %s: %v", domain.ErrWrite, dir, err)
			}
		}
		if err := os.WriteFile(dumpPath, []byte(document), 0o644); err != nil {
			return fmt.Errorf("%w: dumping intermediate document to %s: %v", domain.ErrWrite, dumpPath, err)
		}
		logger.Info("Intermediate document dumped: %s", dumpPath)
	}

	return s.renderer.Render(ctx, document, outputPath)
}
