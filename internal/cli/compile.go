package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/headinthebox/async-await/internal/canon"
	"github.com/headinthebox/async-await/internal/frontend"
	"github.com/headinthebox/async-await/internal/sexp"
	"github.com/headinthebox/async-await/internal/store"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output     string // output file path
	Width      int    // layout width for the printed tree
	CachePath  string // tree cache database, empty disables caching
	DesugarTry bool   // split try/catch/finally before canonicalizing
	DumpAST    bool   // dump the parsed AST to stderr
}

// CompileResult holds the canonicalized unit.
type CompileResult struct {
	Functions int    `json:"functions"`
	Cached    bool   `json:"cached"`
	Hash      string `json:"hash"`
	Tree      string `json:"tree"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <file.js>",
		Short: "Canonicalize a source file into a tagged tree",
		Long: `Canonicalize a source file into the tagged tree consumed by the CPS
converter.

The compiler parses the source, checks it against the restricted grammar,
and prints the unit as an S-expression. With --cache, previously compiled
sources are looked up by content hash instead of being recompiled.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")
	cmd.Flags().IntVar(&opts.Width, "width", sexp.DefaultWidth, "maximum width of a flat S-expression line")
	cmd.Flags().StringVar(&opts.CachePath, "cache", "", "path to a tree cache database")
	cmd.Flags().BoolVar(&opts.DesugarTry, "desugar-try", false, "split try/catch/finally statements before canonicalizing")
	cmd.Flags().BoolVar(&opts.DumpAST, "dump-ast", false, "dump the parsed AST to stderr")

	return cmd
}

func runCompile(opts *CompileOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return outputCompileError(formatter, ErrCodeNotFound, fmt.Sprintf("reading %s: %v", path, err))
	}

	hash := store.SourceHash(string(src))
	formatter.VerboseLog("Source %s hashes to %s", path, hash)

	var st *store.Store
	if opts.CachePath != "" {
		st, err = store.Open(opts.CachePath)
		if err != nil {
			return outputCompileError(formatter, ErrCodeCacheFailed, fmt.Sprintf("opening cache: %v", err))
		}
		defer st.Close()

		cached, ok, readErr := st.ReadTree(cmd.Context(), hash)
		if readErr != nil {
			return outputCompileError(formatter, ErrCodeCacheFailed, fmt.Sprintf("reading cache: %v", readErr))
		}
		if ok {
			formatter.VerboseLog("Cache hit for %s", hash)
			return outputCompileResult(formatter, opts, &CompileResult{
				Functions: countFunctions(cached),
				Cached:    true,
				Hash:      hash,
				Tree:      cached,
			})
		}
	}

	prog, err := frontend.Parse(path, src)
	if err != nil {
		return outputCompileError(formatter, ErrCodeParseFailed, err.Error())
	}

	if opts.DumpAST {
		if err := frontend.DumpAST(formatter.GetErrWriter(), prog); err != nil {
			return outputCompileError(formatter, ErrCodeGeneric, fmt.Sprintf("dumping AST: %v", err))
		}
	}

	if opts.DesugarTry {
		frontend.DesugarTry(prog)
	}

	tree, err := canon.Unit(prog)
	if err != nil {
		if canon.IsUnsupportedSyntax(err) {
			// Rejected input, not a command error
			_ = formatter.Error(ErrCodeUnsupported, err.Error(), nil)
			return NewExitError(ExitFailure, fmt.Sprintf("%s: %s", ErrCodeUnsupported, err.Error()))
		}
		return outputCompileError(formatter, ErrCodeGeneric, err.Error())
	}

	rendered := sexp.Print(tree, opts.Width)

	if st != nil {
		runID, runErr := st.NewRun(cmd.Context())
		if runErr != nil {
			return outputCompileError(formatter, ErrCodeCacheFailed, fmt.Sprintf("recording run: %v", runErr))
		}
		if writeErr := st.WriteTree(cmd.Context(), hash, filepath.Base(path), rendered, runID); writeErr != nil {
			return outputCompileError(formatter, ErrCodeCacheFailed, fmt.Sprintf("writing cache: %v", writeErr))
		}
		formatter.VerboseLog("Cached tree as %s", hash)
	}

	unit, _ := tree.(sexp.List)
	return outputCompileResult(formatter, opts, &CompileResult{
		Functions: len(unit),
		Cached:    false,
		Hash:      hash,
		Tree:      rendered,
	})
}

// countFunctions reparses a cached tree to recover the declaration count.
func countFunctions(rendered string) int {
	v, err := sexp.Parse(rendered)
	if err != nil {
		return 0
	}
	unit, ok := v.(sexp.List)
	if !ok {
		return 0
	}
	return len(unit)
}

// outputCompileResult writes the canonical tree to the requested destination.
func outputCompileResult(formatter *OutputFormatter, opts *CompileOptions, result *CompileResult) error {
	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(result.Tree+"\n"), 0644); err != nil {
			return outputCompileError(formatter, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err))
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	// Human-readable text output: the tree itself goes to stdout unless an
	// output file was requested.
	if opts.Output != "" {
		fmt.Fprintf(formatter.Writer, "✓ Compiled %d function(s)\n", result.Functions)
		fmt.Fprintf(formatter.Writer, "Wrote canonical tree to %s\n", opts.Output)
		return nil
	}
	fmt.Fprintln(formatter.Writer, result.Tree)
	return nil
}

// outputCompileError outputs a single command-level error.
func outputCompileError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	// Load and cache errors are command-level errors (exit code 2)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}
