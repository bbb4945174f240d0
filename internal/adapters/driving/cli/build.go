package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/quirepress/quire/internal/core/domain"
	"github.com/quirepress/quire/internal/core/ports/driving"
)

var (
	buildInput     string
	buildOutput    string
	buildPDFOutput string
	buildTitle     string
	buildAuthor    string
	buildLang      string
	buildCSS       string
	buildCover     string
	buildSort      string
	buildAsk       bool
	buildSanitize  bool
	buildRenderer  string
	buildDumpHTML  string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Assemble a directory of HTML chapters into a book",
	Long: `Collects the .html and .htm files of a directory, orders them, extracts
a title and body from each, and packages the result as an EPUB and/or a
PDF rendered through wkhtmltopdf.

At least one of --output and --pdf-output must be given. Metadata falls
back to the stored defaults (see "quire config"); --ask-metadata prompts
for anything still missing.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildInput, "input", "i", "", "directory containing the HTML chapter files")
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "EPUB output path")
	buildCmd.Flags().StringVar(&buildPDFOutput, "pdf-output", "", "PDF output path")
	buildCmd.Flags().StringVarP(&buildTitle, "title", "t", "", "book title")
	buildCmd.Flags().StringVarP(&buildAuthor, "author", "a", "", "book author")
	buildCmd.Flags().StringVarP(&buildLang, "lang", "l", "", "book language tag (e.g. en, cs)")
	buildCmd.Flags().StringVar(&buildCSS, "css", "", "stylesheet embedded in the book")
	buildCmd.Flags().StringVar(&buildCover, "cover", "", "cover image path")
	buildCmd.Flags().StringVar(&buildSort, "sort", "name", "chapter order: name, ctime or natural")
	buildCmd.Flags().BoolVar(&buildAsk, "ask-metadata", false, "prompt for missing metadata")
	buildCmd.Flags().BoolVar(&buildSanitize, "sanitize", false, "sanitise chapter HTML before packaging")
	buildCmd.Flags().StringVar(&buildRenderer, "wkhtmltopdf", "", "path to the wkhtmltopdf executable")
	buildCmd.Flags().StringVar(&buildDumpHTML, "dump-pdf-html", "", "write the intermediate PDF document to this path")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	if buildInput == "" {
		return fmt.Errorf("%w: --input directory is required", domain.ErrInput)
	}
	if buildOutput == "" && buildPDFOutput == "" {
		return fmt.Errorf("%w: at least one of --output and --pdf-output is required", domain.ErrConfig)
	}
	sort := domain.SortMode(buildSort)
	if !sort.IsValid() {
		return fmt.Errorf("%w: unknown sort mode %q (expected name, ctime or natural)", domain.ErrInput, buildSort)
	}

	defaults := loadDefaults()

	metadata, err := resolveMetadata(cmd, defaults)
	if err != nil {
		return err
	}

	stylesheet := buildCSS
	if stylesheet == "" {
		stylesheet = defaults.Stylesheet
	}

	service := buildService
	if service == nil {
		sanitize := defaults.Sanitize
		if cmd.Flags().Changed("sanitize") {
			sanitize = buildSanitize
		}
		renderer := buildRenderer
		if renderer == "" {
			renderer = defaults.Renderer
		}
		service = wireBuildService(renderer, sanitize)
	}

	ctx := context.Background()
	result, err := service.Build(ctx, driving.BuildRequest{
		InputDir:       buildInput,
		EPUBPath:       buildOutput,
		PDFPath:        buildPDFOutput,
		Metadata:       metadata,
		Sort:           sort,
		StylesheetPath: stylesheet,
		CoverPath:      buildCover,
		DumpHTMLPath:   buildDumpHTML,
	})
	if err != nil {
		return err
	}

	cmd.Printf("Assembled %d chapters", result.Chapters)
	if result.Skipped > 0 {
		cmd.Printf(" (%d files skipped)", result.Skipped)
	}
	cmd.Println()
	if result.EPUBPath != "" {
		cmd.Printf("EPUB: %s\n", result.EPUBPath)
	}
	if result.PDFPath != "" {
		cmd.Printf("PDF:  %s\n", result.PDFPath)
	}
	return nil
}

// resolveMetadata fills metadata from flags, then stored defaults, then
// the interactive prompt when --ask-metadata is set. Completeness is
// checked by the build service, not here.
func resolveMetadata(cmd *cobra.Command, defaults domain.Defaults) (domain.BookMetadata, error) {
	metadata := domain.BookMetadata{
		Title:    buildTitle,
		Author:   buildAuthor,
		Language: buildLang,
	}
	if metadata.Author == "" {
		metadata.Author = defaults.Author
	}
	if metadata.Language == "" {
		metadata.Language = defaults.Language
	}

	if buildAsk {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return domain.BookMetadata{}, fmt.Errorf("%w: --ask-metadata requires an interactive terminal", domain.ErrConfig)
		}
		metadata = promptMetadata(cmd.OutOrStdout(), bufio.NewReader(cmd.InOrStdin()), metadata)
	}

	return metadata, nil
}
