package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/quirepress/quire/internal/logger"
)

var configShow bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the stored build defaults",
	Long: `View and edit the defaults applied when a build flag is not given:
author, language, stylesheet path, PDF renderer path and sanitisation.

Without flags an interactive wizard walks through each value; --show
prints the current defaults and exits.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configShow, "show", false, "print the current defaults without prompting")
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	if defaultsService == nil {
		return errors.New("defaults service not configured")
	}
	if configShow {
		return runConfigShow(cmd)
	}
	return runConfigWizard(cmd)
}

func runConfigShow(cmd *cobra.Command) error {
	defaults, err := defaultsService.Get()
	if err != nil {
		return fmt.Errorf("failed to read defaults: %w", err)
	}

	cmd.Println("Build Defaults")
	cmd.Println("==============")
	cmd.Println()
	cmd.Printf("  Author:     %s\n", orUnset(defaults.Author))
	cmd.Printf("  Language:   %s\n", orUnset(defaults.Language))
	cmd.Printf("  Stylesheet: %s\n", orUnset(defaults.Stylesheet))
	cmd.Printf("  Renderer:   %s\n", orUnset(defaults.Renderer))
	cmd.Printf("  Sanitize:   %t\n", defaults.Sanitize)
	cmd.Println()
	cmd.Printf("Config file: %s\n", defaultsService.Path())
	return nil
}

func runConfigWizard(cmd *cobra.Command) error {
	defaults, err := defaultsService.Get()
	if err != nil {
		return fmt.Errorf("failed to read defaults: %w", err)
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		logger.Warn("stdin is not a terminal; reading wizard answers from piped input")
	}

	out := cmd.OutOrStdout()
	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Quire Defaults")
	cmd.Println("==============")
	cmd.Println()
	cmd.Println("Empty input keeps the bracketed value.")
	cmd.Println()

	defaults.Author = promptField(out, reader, "Default author", defaults.Author)
	defaults.Language = promptField(out, reader, "Default language (e.g. en, cs)", defaults.Language)
	defaults.Stylesheet = promptField(out, reader, "Stylesheet path (empty for built-in)", defaults.Stylesheet)
	defaults.Renderer = promptField(out, reader, "wkhtmltopdf path", defaults.Renderer)
	defaults.Sanitize = promptYesNo(out, reader, "Sanitise chapter HTML", defaults.Sanitize)

	if err := defaultsService.Save(defaults); err != nil {
		return fmt.Errorf("failed to save defaults: %w", err)
	}

	cmd.Println()
	cmd.Printf("Defaults saved to %s\n", defaultsService.Path())
	return nil
}

func orUnset(value string) string {
	if value == "" {
		return "(not set)"
	}
	return value
}
