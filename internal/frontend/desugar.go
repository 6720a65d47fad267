package frontend

import (
	"github.com/robertkrimen/otto/ast"
	"go.uber.org/zap"
)

// DesugarTry rewrites every try/catch/finally statement in prog into a
// try/finally whose body is a single try/catch, so later passes only ever
// see the two simple forms:
//
//	try A catch (e) B finally C   =>   try { try A catch (e) B } finally C
//
// The rewrite is applied innermost-first. Statements outside the restricted
// grammar are left untouched; rejecting them is the canonicalizer's job.
func DesugarTry(prog *ast.Program) {
	d := &desugarer{}
	for i, stmt := range prog.Body {
		prog.Body[i] = d.statement(stmt)
	}
	if d.rewrites > 0 {
		Logger().Debug("desugared try statements", zap.Int("rewrites", d.rewrites))
	}
}

type desugarer struct {
	rewrites int
}

func (d *desugarer) statement(stmt ast.Statement) ast.Statement {
	switch s := stmt.(type) {
	case *ast.BlockStatement:
		for i, inner := range s.List {
			s.List[i] = d.statement(inner)
		}

	case *ast.FunctionStatement:
		s.Function.Body = d.statement(s.Function.Body)

	case *ast.IfStatement:
		s.Consequent = d.statement(s.Consequent)
		if s.Alternate != nil {
			s.Alternate = d.statement(s.Alternate)
		}

	case *ast.LabelledStatement:
		s.Statement = d.statement(s.Statement)

	case *ast.WhileStatement:
		s.Body = d.statement(s.Body)

	case *ast.TryStatement:
		s.Body = d.statement(s.Body)
		if s.Catch != nil {
			s.Catch.Body = d.statement(s.Catch.Body)
		}
		if s.Finally != nil {
			s.Finally = d.statement(s.Finally)
		}
		if s.Catch != nil && s.Finally != nil {
			d.rewrites++
			inner := &ast.TryStatement{Body: s.Body, Catch: s.Catch}
			return &ast.TryStatement{
				Body:    &ast.BlockStatement{List: []ast.Statement{inner}},
				Finally: s.Finally,
			}
		}
	}
	return stmt
}
