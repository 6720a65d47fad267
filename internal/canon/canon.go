package canon

import (
	"fmt"
	"strings"

	"github.com/robertkrimen/otto/ast"
	"github.com/robertkrimen/otto/token"
	"go.uber.org/zap"

	"github.com/headinthebox/async-await/internal/sexp"
)

// Unit canonicalizes every top-level function declaration of prog in source
// order and returns them as one list. The first unsupported construct stops
// the whole unit: the error is returned and no partial list is produced.
func Unit(prog *ast.Program) (sexp.Value, error) {
	decls, err := Declarations(prog)
	if err != nil {
		return nil, err
	}
	unit := sexp.List{}
	for _, decl := range decls {
		tree, err := Function(decl)
		if err != nil {
			return nil, err
		}
		unit = append(unit, tree)
	}
	return unit, nil
}

// Declarations extracts the top-level function declarations of prog in
// source order. Any other top-level statement is unsupported.
func Declarations(prog *ast.Program) ([]*ast.FunctionLiteral, error) {
	var decls []*ast.FunctionLiteral
	for _, stmt := range prog.Body {
		fn, ok := stmt.(*ast.FunctionStatement)
		if !ok {
			c := &canonicalizer{}
			return nil, c.unsupported("top-level statement %T is not a function declaration", stmt)
		}
		decls = append(decls, fn.Function)
	}
	return decls, nil
}

// Function canonicalizes a single function declaration. Callers that want
// one diagnostic per declaration (rather than unit-level failure) invoke
// this directly for each declaration.
func Function(fn *ast.FunctionLiteral) (sexp.Value, error) {
	c := &canonicalizer{}
	if fn.Name == nil || fn.Name.Name == "" {
		return nil, c.unsupported("function declaration has no name")
	}
	c.fn = fn.Name.Name
	tag := Classify(c.fn)

	params := sexp.List{}
	for _, p := range fn.ParameterList.List {
		params = append(params, sexp.Atom(p.Name))
	}

	stmts, ok := blockStatements(fn.Body)
	if !ok {
		return nil, c.unsupported("function body is not a block")
	}

	locals, rest, err := c.hoistLocals(stmts)
	if err != nil {
		return nil, err
	}
	body, err := c.blockOf(rest)
	if err != nil {
		return nil, err
	}

	Logger().Debug("canonicalized declaration",
		zap.String("function", c.fn),
		zap.String("kind", tag),
		zap.Int("params", len(params)),
		zap.Int("locals", len(locals)),
	)

	return sexp.Tagged(tag, sexp.Atom(c.fn), params, locals, body), nil
}

// Classify selects the root tag from the declaration name. The substring
// convention stands in for real modifier information from the source
// language; it is isolated here so a caller-supplied tag could replace it.
func Classify(name string) string {
	switch {
	case strings.Contains(name, "_async"):
		return TagAsync
	case strings.Contains(name, "_syncStar"):
		return TagSyncStar
	default:
		return TagSync
	}
}

// canonicalizer carries the enclosing declaration name for diagnostics.
type canonicalizer struct {
	fn string
}

func (c *canonicalizer) unsupported(format string, args ...any) error {
	return &UnsupportedSyntaxError{Fn: c.fn, Reason: fmt.Sprintf(format, args...)}
}

// hoistLocals applies the hoisted-locals convention: when the first statement
// of a body declares variables, all declarators must be uninitialized, their
// names become the locals list, and the statement is dropped from the body.
func (c *canonicalizer) hoistLocals(stmts []ast.Statement) (sexp.List, []ast.Statement, error) {
	locals := sexp.List{}
	if len(stmts) == 0 {
		return locals, stmts, nil
	}
	decl, ok := stmts[0].(*ast.VariableStatement)
	if !ok {
		return locals, stmts, nil
	}
	for _, item := range decl.List {
		v, ok := item.(*ast.VariableExpression)
		if !ok {
			return nil, nil, c.unsupported("unsupported declarator %T in hoisted variable declaration", item)
		}
		if v.Initializer != nil {
			return nil, nil, c.unsupported("hoisted variable %s must not have an initializer", v.Name)
		}
		locals = append(locals, sexp.Atom(v.Name))
	}
	return locals, stmts[1:], nil
}

func (c *canonicalizer) statement(stmt ast.Statement) (sexp.Value, error) {
	switch s := stmt.(type) {
	case *ast.BlockStatement:
		return c.blockOf(s.List)

	case *ast.ExpressionStatement:
		expr, err := c.expression(s.Expression)
		if err != nil {
			return nil, err
		}
		// Yield is a statement-level construct despite its call syntax:
		// an expression statement canonicalizing to Yield or YieldStar is
		// emitted as that node directly, not wrapped in Expression.
		if tag := sexp.Tag(expr); tag == TagYield || tag == TagYieldStar {
			return expr, nil
		}
		return sexp.Tagged(TagExpression, expr), nil

	case *ast.ReturnStatement:
		if s.Argument == nil {
			return sexp.Tagged(TagYieldBreak), nil
		}
		value, err := c.expression(s.Argument)
		if err != nil {
			return nil, err
		}
		return sexp.Tagged(TagReturn, value), nil

	case *ast.IfStatement:
		if s.Alternate == nil {
			return nil, c.unsupported("if statement without an else branch")
		}
		cond, err := c.expression(s.Test)
		if err != nil {
			return nil, err
		}
		then, err := c.statement(s.Consequent)
		if err != nil {
			return nil, err
		}
		alt, err := c.statement(s.Alternate)
		if err != nil {
			return nil, err
		}
		return sexp.Tagged(TagIf, cond, then, alt), nil

	case *ast.LabelledStatement:
		return c.labelled(s)

	case *ast.WhileStatement:
		return c.while(NoLabel, s)

	case *ast.BranchStatement:
		return c.branch(s)

	case *ast.ThrowStatement:
		value, err := c.expression(s.Argument)
		if err != nil {
			return nil, err
		}
		return sexp.Tagged(TagThrow, value), nil

	case *ast.TryStatement:
		return c.try(s)

	case *ast.VariableStatement:
		return nil, c.unsupported("variable declaration outside the leading hoisted position")

	default:
		return nil, c.unsupported("statement %T", stmt)
	}
}

// labelled attaches a single label. A labeled while receives the label in
// its own label slot; anything else is wrapped in a Label node. The label is
// threaded down into construction - nodes are never patched afterwards.
func (c *canonicalizer) labelled(s *ast.LabelledStatement) (sexp.Value, error) {
	if _, double := s.Statement.(*ast.LabelledStatement); double {
		return nil, c.unsupported("statement with more than one label")
	}
	label := s.Label.Name
	if loop, ok := s.Statement.(*ast.WhileStatement); ok {
		return c.while(label, loop)
	}
	body, err := c.statement(s.Statement)
	if err != nil {
		return nil, err
	}
	return sexp.Tagged(TagLabel, sexp.Atom(label), body), nil
}

func (c *canonicalizer) while(label string, s *ast.WhileStatement) (sexp.Value, error) {
	cond, err := c.expression(s.Test)
	if err != nil {
		return nil, err
	}
	body, err := c.statement(s.Body)
	if err != nil {
		return nil, err
	}
	return sexp.Tagged(TagWhile, sexp.Atom(label), cond, body), nil
}

// branch handles break and continue. The canonical tree has no notion of a
// nearest enclosing loop, so an explicit label is required.
func (c *canonicalizer) branch(s *ast.BranchStatement) (sexp.Value, error) {
	var tag string
	switch s.Token {
	case token.BREAK:
		tag = TagBreak
	case token.CONTINUE:
		tag = TagContinue
	default:
		return nil, c.unsupported("branch statement %s", s.Token)
	}
	if s.Label == nil {
		return nil, c.unsupported("%s without a label", strings.ToLower(tag))
	}
	return sexp.Tagged(tag, sexp.Atom(s.Label.Name)), nil
}

// try accepts exactly try/finally or try/catch with a named exception. The
// three-part form is rejected; see frontend.DesugarTry for the opt-in
// rewrite into nested try statements.
func (c *canonicalizer) try(s *ast.TryStatement) (sexp.Value, error) {
	hasCatch := s.Catch != nil
	hasFinally := s.Finally != nil
	switch {
	case hasCatch && hasFinally:
		return nil, c.unsupported("try statement with both catch and finally clauses")
	case hasFinally:
		tryBlock, err := c.block(s.Body)
		if err != nil {
			return nil, err
		}
		finallyBlock, err := c.block(s.Finally)
		if err != nil {
			return nil, err
		}
		return sexp.Tagged(TagTryFinally, tryBlock, finallyBlock), nil
	case hasCatch:
		if s.Catch.Parameter == nil {
			return nil, c.unsupported("catch clause without an exception name")
		}
		tryBlock, err := c.block(s.Body)
		if err != nil {
			return nil, err
		}
		catchBlock, err := c.block(s.Catch.Body)
		if err != nil {
			return nil, err
		}
		return sexp.Tagged(TagTryCatch, tryBlock, sexp.Atom(s.Catch.Parameter.Name), catchBlock), nil
	default:
		return nil, c.unsupported("try statement with neither catch nor finally")
	}
}

func (c *canonicalizer) expression(expr ast.Expression) (sexp.Value, error) {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		if !isDecimalDigits(e.Literal) {
			return nil, c.unsupported("non-integer numeric literal %s", e.Literal)
		}
		return sexp.Tagged(TagConstant, sexp.Atom(e.Literal)), nil

	case *ast.Identifier:
		return sexp.Tagged(TagVariable, sexp.Atom(e.Name)), nil

	case *ast.AssignExpression:
		if e.Operator != token.ASSIGN {
			return nil, c.unsupported("compound assignment operator %s", e.Operator)
		}
		target, ok := e.Left.(*ast.Identifier)
		if !ok {
			return nil, c.unsupported("assignment target %T is not a plain identifier", e.Left)
		}
		value, err := c.expression(e.Right)
		if err != nil {
			return nil, err
		}
		return sexp.Tagged(TagAssignment, sexp.Atom(target.Name), value), nil

	case *ast.CallExpression:
		return c.call(e)

	default:
		return nil, c.unsupported("expression %T", expr)
	}
}

// call canonicalizes a receiver-less call. The callee names await, yield,
// and yieldStar are reinterpreted as unary control operators.
func (c *canonicalizer) call(e *ast.CallExpression) (sexp.Value, error) {
	callee, ok := e.Callee.(*ast.Identifier)
	if !ok {
		if _, isDot := e.Callee.(*ast.DotExpression); isDot {
			return nil, c.unsupported("method call with a receiver")
		}
		return nil, c.unsupported("call whose callee %T is not a plain identifier", e.Callee)
	}

	switch callee.Name {
	case "await", "yield", "yieldStar":
		if len(e.ArgumentList) != 1 {
			return nil, c.unsupported("%s takes exactly one argument, got %d", callee.Name, len(e.ArgumentList))
		}
		arg, err := c.expression(e.ArgumentList[0])
		if err != nil {
			return nil, err
		}
		return sexp.Tagged(controlTag(callee.Name), arg), nil
	}

	out := sexp.Tagged(TagCall, sexp.Atom(callee.Name))
	for _, arg := range e.ArgumentList {
		v, err := c.expression(arg)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func controlTag(name string) string {
	switch name {
	case "await":
		return TagAwait
	case "yield":
		return TagYield
	default:
		return TagYieldStar
	}
}

// block canonicalizes a statement that must be a block (try bodies, catch
// and finally clauses).
func (c *canonicalizer) block(stmt ast.Statement) (sexp.Value, error) {
	stmts, ok := blockStatements(stmt)
	if !ok {
		return nil, c.unsupported("expected a block statement, got %T", stmt)
	}
	return c.blockOf(stmts)
}

func (c *canonicalizer) blockOf(stmts []ast.Statement) (sexp.Value, error) {
	out := sexp.Tagged(TagBlock)
	for _, s := range stmts {
		v, err := c.statement(s)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func blockStatements(stmt ast.Statement) ([]ast.Statement, bool) {
	block, ok := stmt.(*ast.BlockStatement)
	if !ok {
		return nil, false
	}
	return block.List, true
}

func isDecimalDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
