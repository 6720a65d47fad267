package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/headinthebox/async-await/internal/cps"
	"github.com/headinthebox/async-await/internal/sexp"
)

// ValidateResult holds CPS program validation results.
type ValidateResult struct {
	Valid       bool     `json:"valid"`
	Functions   int      `json:"functions"`
	Diagnostics []string `json:"diagnostics,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file.sexp>",
		Short: "Validate a serialized CPS program",
		Long: `Validate a serialized CPS program without executing anything.

Reads S-expression text, decodes it into the CPS IR, and checks the
well-formedness rules: every body must end in a terminal call and every
identifier must be non-empty. Construction never checks these, so this is
the place where a generated program gets vetted.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return outputValidateError(formatter, ErrCodeNotFound, fmt.Sprintf("reading %s: %v", path, err))
	}

	v, err := sexp.Parse(string(data))
	if err != nil {
		result := &ValidateResult{Diagnostics: []string{err.Error()}}
		return outputValidateFindings(formatter, ErrCodeBadSExpr, result)
	}

	prog, err := cps.DecodeProgram(v)
	if err != nil {
		result := &ValidateResult{Diagnostics: []string{err.Error()}}
		return outputValidateFindings(formatter, ErrCodeBadProgram, result)
	}

	formatter.VerboseLog("Decoded %d function declaration(s) from %s", len(prog), path)

	if errs := cps.Validate(prog); len(errs) > 0 {
		result := &ValidateResult{Functions: len(prog)}
		for _, e := range errs {
			result.Diagnostics = append(result.Diagnostics, e.Error())
		}
		return outputValidateFindings(formatter, ErrCodeInvalidCPS, result)
	}

	return outputValidateSuccess(formatter, &ValidateResult{Valid: true, Functions: len(prog)})
}

// outputValidateSuccess outputs a well-formed program result.
func outputValidateSuccess(formatter *OutputFormatter, result *ValidateResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ CPS program is well formed (%d function(s))\n", result.Functions)
	return nil
}

// outputValidateFindings outputs decode or validation diagnostics.
func outputValidateFindings(formatter *OutputFormatter, code string, result *ValidateResult) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    code,
				Message: result.Diagnostics[0],
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		// Validation failures = exit code 1 (input failure)
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d diagnostic(s)", len(result.Diagnostics)))
	}

	// Text format
	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, diag := range result.Diagnostics {
		fmt.Fprintf(formatter.Writer, "  %s: %s\n", code, diag)
	}
	fmt.Fprintln(formatter.Writer)

	// Validation failures = exit code 1 (input failure)
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d diagnostic(s)", len(result.Diagnostics)))
}

// outputValidateError outputs a single command-level error.
func outputValidateError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	// Load errors are command-level errors (exit code 2)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}
