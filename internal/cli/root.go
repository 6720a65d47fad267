package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/headinthebox/async-await/internal/canon"
	"github.com/headinthebox/async-await/internal/frontend"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the a2c CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "a2c",
		Short:         "a2c - async/await to CPS front end",
		Long:          "A compiler front end that canonicalizes a restricted async/await language\ninto the tagged trees consumed by CPS conversion.",
		SilenceUsage:  true, // Don't print usage on errors - Execute handles error output
		SilenceErrors: true, // Don't print errors - Execute handles error output
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if opts.Verbose {
				if err := enableDebugLogging(); err != nil {
					return fmt.Errorf("configuring logging: %w", err)
				}
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	// Add subcommands
	cmd.AddCommand(NewCompileCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))

	return cmd
}

// Execute runs the root command and reports the process exit code. Commands
// print their own diagnostics before returning an ExitError, so only errors
// from outside that path (flag parsing, format validation) are printed here.
func Execute() int {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		var exitErr *ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return ExitCommandError
		}
		return GetExitCode(err)
	}
	return ExitSuccess
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// enableDebugLogging routes the library debug logs to stderr.
func enableDebugLogging() error {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	canon.SetLogger(logger)
	frontend.SetLogger(logger)
	return nil
}
