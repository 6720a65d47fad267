package frontend

import (
	"fmt"

	"github.com/robertkrimen/otto/ast"
	"github.com/robertkrimen/otto/parser"
	"go.uber.org/zap"
)

// Parse parses src as one source unit. The filename labels parser
// diagnostics; src may be a string, []byte, or io.Reader, or nil to read
// the named file from disk.
func Parse(filename string, src any) (*ast.Program, error) {
	prog, err := parser.ParseFile(nil, filename, src, 0)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	Logger().Debug("parsed source unit",
		zap.String("file", filename),
		zap.Int("statements", len(prog.Body)),
	)
	return prog, nil
}
