package cli

import (
	"errors"
	"fmt"
)

// Exit codes. Findings about the input (rejected syntax, an ill-formed CPS
// program) exit 1; problems running the command itself (unreadable files,
// cache failures) exit 2.
const (
	ExitSuccess      = 0
	ExitFailure      = 1
	ExitCommandError = 2
)

// Diagnostic codes shared by every command.
const (
	ErrCodeGeneric     = "E001" // unclassified failure
	ErrCodeNotFound    = "E002" // input file missing or unreadable
	ErrCodeParseFailed = "E003" // source text did not parse
	ErrCodeWriteFailed = "E004" // output file could not be written
	ErrCodeCacheFailed = "E005" // tree cache database failure

	// Canonicalization
	ErrCodeUnsupported = "E101" // construct outside the restricted grammar

	// CPS validation
	ErrCodeBadSExpr   = "E111" // S-expression text did not parse
	ErrCodeBadProgram = "E112" // S-expression does not encode a CPS program
	ErrCodeInvalidCPS = "E113" // decoded program is not well formed
)

// ExitError carries the process exit code a command failure should map to.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError builds an ExitError from a code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError attaches an exit code and message to an underlying error.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode maps an error to its process exit code. Errors that do not
// carry one default to ExitFailure.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}
