package canon

import (
	"errors"
	"fmt"
)

// UnsupportedSyntaxError reports an input shape outside the supported
// grammar. It is the only error kind the canonicalizer produces; rejection
// is total - no partial tree accompanies it.
type UnsupportedSyntaxError struct {
	Fn     string // enclosing function declaration name, "" when unnamed
	Reason string
}

func (e *UnsupportedSyntaxError) Error() string {
	if e.Fn == "" {
		return fmt.Sprintf("unsupported syntax: %s", e.Reason)
	}
	return fmt.Sprintf("unsupported syntax in %s: %s", e.Fn, e.Reason)
}

// IsUnsupportedSyntax reports whether err is (or wraps) an
// UnsupportedSyntaxError.
func IsUnsupportedSyntax(err error) bool {
	var target *UnsupportedSyntaxError
	return errors.As(err, &target)
}
