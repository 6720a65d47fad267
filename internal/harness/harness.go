package harness

import (
	"fmt"
	"strings"

	"github.com/headinthebox/async-await/internal/canon"
	"github.com/headinthebox/async-await/internal/frontend"
	"github.com/headinthebox/async-await/internal/sexp"
)

// Result is the outcome of running one scenario.
type Result struct {
	// Pass reports whether the outcome matched the scenario's expectation:
	// a clean compile for output scenarios, a matching diagnostic for
	// rejection scenarios.
	Pass bool

	// Output is the rendered canonical S-expression with a trailing
	// newline. Empty when the source was rejected.
	Output string

	// Errors contains the diagnostics produced by the run, plus an
	// explanation when the outcome did not match the expectation.
	Errors []string
}

// Run executes the pipeline for one scenario: parse, optionally rewrite
// try/catch/finally, canonicalize, print. Unsupported-syntax diagnostics
// are part of the result; anything else (unreadable source, parse failure)
// is returned as an error since scenarios are expected to parse.
func Run(scenario *Scenario) (*Result, error) {
	prog, err := frontend.Parse(scenario.Name+".js", scenario.Source)
	if err != nil {
		return nil, err
	}
	if scenario.DesugarTry {
		frontend.DesugarTry(prog)
	}

	result := &Result{}
	tree, err := canon.Unit(prog)
	switch {
	case err == nil:
		result.Output = sexp.Print(tree, scenario.Width) + "\n"
	case canon.IsUnsupportedSyntax(err):
		result.Errors = append(result.Errors, err.Error())
	default:
		return nil, err
	}

	if ok, reason := matchesExpectation(scenario, result); ok {
		result.Pass = true
	} else {
		result.Errors = append(result.Errors, reason)
	}
	return result, nil
}

// matchesExpectation checks the run outcome against the scenario: rejection
// scenarios need a diagnostic containing WantError, output scenarios need a
// clean compile.
func matchesExpectation(scenario *Scenario, r *Result) (bool, string) {
	if scenario.WantError == "" {
		if len(r.Errors) > 0 {
			return false, "expected a canonical tree, got diagnostics"
		}
		return true, ""
	}
	for _, diag := range r.Errors {
		if strings.Contains(diag, scenario.WantError) {
			return true, ""
		}
	}
	return false, fmt.Sprintf("expected a diagnostic containing %q", scenario.WantError)
}
