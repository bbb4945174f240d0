package cli

import (
	"github.com/spf13/cobra"

	"github.com/quirepress/quire/internal/adapters/driven/assets"
	collectorfs "github.com/quirepress/quire/internal/adapters/driven/collector/fs"
	configfile "github.com/quirepress/quire/internal/adapters/driven/config/file"
	"github.com/quirepress/quire/internal/adapters/driven/epub"
	"github.com/quirepress/quire/internal/adapters/driven/pdf/wkhtmltopdf"
	"github.com/quirepress/quire/internal/core/domain"
	"github.com/quirepress/quire/internal/core/ports/driving"
	"github.com/quirepress/quire/internal/core/services"
	htmlextractor "github.com/quirepress/quire/internal/extractors/html"
	"github.com/quirepress/quire/internal/logger"
	"github.com/quirepress/quire/internal/postprocessors"
)

// version is set at build time via ldflags.
var version = "dev"

var verbose bool

// Services consumed by the commands. Wired lazily in Execute so tests
// can swap them for mocks.
var (
	buildService    driving.BuildService
	defaultsService driving.DefaultsService
)

var rootCmd = &cobra.Command{
	Use:   "quire",
	Short: "Assemble HTML chapters into EPUB and PDF books",
	Long: `Quire turns a directory of HTML chapter files into a finished book.

Chapters are collected and ordered, a title is extracted from each, and
the result is packaged as an EPUB and optionally rendered to PDF through
wkhtmltopdf.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// Execute wires the production services and runs the root command.
func Execute() error {
	initServices()
	return rootCmd.Execute()
}

func initServices() {
	if defaultsService == nil {
		configStore, err := configfile.NewConfigStore("")
		if err != nil {
			logger.Warn("Configuration unavailable: %v", err)
		} else {
			defaultsService = services.NewDefaultsService(configStore)
		}
	}
}

// loadDefaults reads the stored defaults. A missing or unreadable
// config is not fatal; builds then run on flags alone.
func loadDefaults() domain.Defaults {
	if defaultsService == nil {
		return domain.Defaults{}
	}
	defaults, err := defaultsService.Get()
	if err != nil {
		logger.Warn("Reading defaults: %v", err)
		return domain.Defaults{}
	}
	return defaults
}

// wireBuildService assembles the production build service around the
// chosen renderer binary and sanitisation setting.
func wireBuildService(rendererPath string, sanitize bool) driving.BuildService {
	service := services.NewBuildService(
		collectorfs.NewCollector(),
		htmlextractor.New(),
		epub.NewWriter(),
		wkhtmltopdf.NewRenderer(rendererPath),
	)

	if sanitize {
		registry := postprocessors.NewRegistry()
		postprocessors.RegisterDefaults(registry)
		processor, err := registry.Build("sanitize", nil)
		if err != nil {
			logger.Warn("Sanitizer unavailable: %v", err)
		} else {
			service.SetPipeline(postprocessors.NewPipeline(processor))
		}
	}

	service.SetMaterializer(assets.NewMaterializer(""))

	stylesheetStore, err := configfile.NewStylesheetStore("")
	if err != nil {
		logger.Warn("Stylesheet store unavailable: %v", err)
	} else {
		service.SetStylesheetStore(stylesheetStore)
	}

	return service
}
