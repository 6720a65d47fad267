package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/headinthebox/async-await/internal/canon"
	"github.com/headinthebox/async-await/internal/frontend"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	DesugarTry bool // split try/catch/finally before canonicalizing
}

// CheckResult holds per-declaration diagnostics.
type CheckResult struct {
	Declarations int      `json:"declarations"`
	Diagnostics  []string `json:"diagnostics,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <file.js>",
		Short: "Check a source file against the restricted grammar",
		Long: `Check every function declaration of a source file against the restricted
grammar without printing trees.

Unlike compile, which stops at the first unsupported construct, check
canonicalizes each declaration independently and reports one diagnostic
per failing declaration.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.DesugarTry, "desugar-try", false, "split try/catch/finally statements before checking")

	return cmd
}

func runCheck(opts *CheckOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return outputCheckError(formatter, ErrCodeNotFound, fmt.Sprintf("reading %s: %v", path, err))
	}

	prog, err := frontend.Parse(path, src)
	if err != nil {
		return outputCheckError(formatter, ErrCodeParseFailed, err.Error())
	}

	if opts.DesugarTry {
		frontend.DesugarTry(prog)
	}

	decls, err := canon.Declarations(prog)
	if err != nil {
		// The unit shape itself is rejected, nothing left to check per
		// declaration.
		return outputCheckFindings(formatter, &CheckResult{Diagnostics: []string{err.Error()}})
	}

	result := &CheckResult{Declarations: len(decls)}
	for _, decl := range decls {
		name := "(unnamed)"
		if decl.Name != nil {
			name = decl.Name.Name
		}
		formatter.VerboseLog("Checking declaration: %s", name)

		if _, err := canon.Function(decl); err != nil {
			result.Diagnostics = append(result.Diagnostics, err.Error())
		}
	}

	if len(result.Diagnostics) > 0 {
		return outputCheckFindings(formatter, result)
	}

	return outputCheckSuccess(formatter, result)
}

// outputCheckSuccess outputs a clean check run.
func outputCheckSuccess(formatter *OutputFormatter, result *CheckResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ %d declaration(s) canonicalize cleanly\n", result.Declarations)
	return nil
}

// outputCheckFindings outputs per-declaration diagnostics.
func outputCheckFindings(formatter *OutputFormatter, result *CheckResult) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    ErrCodeUnsupported,
				Message: result.Diagnostics[0],
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		// Rejected declarations = exit code 1 (input failure)
		return NewExitError(ExitFailure, fmt.Sprintf("check failed with %d diagnostic(s)", len(result.Diagnostics)))
	}

	// Text format
	fmt.Fprintln(formatter.Writer, "✗ Check failed")
	fmt.Fprintln(formatter.Writer)

	for _, diag := range result.Diagnostics {
		fmt.Fprintf(formatter.Writer, "  %s: %s\n", ErrCodeUnsupported, diag)
	}
	fmt.Fprintln(formatter.Writer)

	// Rejected declarations = exit code 1 (input failure)
	return NewExitError(ExitFailure, fmt.Sprintf("check failed with %d diagnostic(s)", len(result.Diagnostics)))
}

// outputCheckError outputs a single command-level error.
func outputCheckError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	// Load errors are command-level errors (exit code 2)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}
