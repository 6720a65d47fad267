package frontend

import (
	"fmt"
	"io"

	"github.com/kr/pretty"
	"github.com/robertkrimen/otto/ast"
)

// DumpAST writes a readable rendering of the parsed program to w, one node
// per line with field names. Intended for debugging the raw parse before
// canonicalization.
func DumpAST(w io.Writer, prog *ast.Program) error {
	_, err := fmt.Fprintf(w, "%# v\n", pretty.Formatter(prog))
	return err
}
