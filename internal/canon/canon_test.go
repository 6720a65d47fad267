package canon

import (
	"testing"

	"github.com/robertkrimen/otto/ast"
	"github.com/robertkrimen/otto/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/headinthebox/async-await/internal/sexp"
)

// parseFunction parses src and returns its first top-level declaration.
func parseFunction(t *testing.T, src string) *ast.FunctionLiteral {
	t.Helper()
	prog, err := parser.ParseFile(nil, "test.js", src, 0)
	require.NoError(t, err)
	require.NotEmpty(t, prog.Body)
	fn, ok := prog.Body[0].(*ast.FunctionStatement)
	require.True(t, ok, "first statement is %T, want function declaration", prog.Body[0])
	return fn.Function
}

// canonText canonicalizes the first declaration of src and renders it flat.
func canonText(t *testing.T, src string) string {
	t.Helper()
	tree, err := Function(parseFunction(t, src))
	require.NoError(t, err)
	return sexp.Print(tree, 1000)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, TagAsync, Classify("foo_async"))
	assert.Equal(t, TagSyncStar, Classify("bar_syncStar"))
	assert.Equal(t, TagSync, Classify("baz"))
	assert.Equal(t, TagAsync, Classify("get_async_helper")) // substring anywhere
}

func TestFunction_Classification(t *testing.T) {
	tests := []struct {
		name string
		src  string
		tag  string
	}{
		{"async suffix", "function foo_async() { return 1; }", TagAsync},
		{"syncStar suffix", "function bar_syncStar() { return 1; }", TagSyncStar},
		{"plain name", "function baz() { return 1; }", TagSync},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Function(parseFunction(t, tt.src))
			require.NoError(t, err)
			assert.Equal(t, tt.tag, sexp.Tag(tree))
		})
	}
}

func TestFunction_Parameters(t *testing.T) {
	out := canonText(t, "function add(a, b) { return a; }")
	assert.Equal(t, "(Sync add (a b) () (Block (Return (Variable a))))", out)
}

func TestFunction_HoistedLocals(t *testing.T) {
	out := canonText(t, `
function f() {
  var x, y;
  x = 1;
  return x;
}`)
	assert.Equal(t,
		"(Sync f () (x y) (Block (Expression (Assignment x (Constant 1))) (Return (Variable x))))",
		out)
}

func TestFunction_NoLeadingDeclarationMeansNoLocals(t *testing.T) {
	out := canonText(t, "function f() { g(); h(); }")
	assert.Equal(t,
		"(Sync f () () (Block (Expression (Call g)) (Expression (Call h))))",
		out)
}

func TestFunction_EmptyBody(t *testing.T) {
	out := canonText(t, "function f() {}")
	assert.Equal(t, "(Sync f () () (Block))", out)
}

func TestFunction_HoistedInitializerRejected(t *testing.T) {
	_, err := Function(parseFunction(t, "function f() { var x = 1; return x; }"))
	require.Error(t, err)
	assert.True(t, IsUnsupportedSyntax(err))
	assert.Contains(t, err.Error(), "initializer")
}

func TestFunction_UnnamedDeclarationRejected(t *testing.T) {
	_, err := Function(&ast.FunctionLiteral{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no name")
}

func TestFunction_NonBlockBodyRejected(t *testing.T) {
	fn := &ast.FunctionLiteral{
		Name:          &ast.Identifier{Name: "f"},
		ParameterList: &ast.ParameterList{},
		Body:          &ast.ExpressionStatement{Expression: &ast.NumberLiteral{Literal: "1"}},
	}
	_, err := Function(fn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a block")
}

func TestStatement_Shapes(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			"if with else",
			"function f(c) { if (c) { g(); } else { h(); } }",
			"(Sync f (c) () (Block (If (Variable c) (Block (Expression (Call g))) (Block (Expression (Call h))))))",
		},
		{
			"return with value",
			"function f() { return 42; }",
			"(Sync f () () (Block (Return (Constant 42))))",
		},
		{
			"bare return becomes YieldBreak",
			"function f_syncStar() { return; }",
			"(SyncStar f_syncStar () () (Block (YieldBreak)))",
		},
		{
			"unlabeled while carries null label",
			"function f(c) { while (c) { g(); } }",
			"(Sync f (c) () (Block (While null (Variable c) (Block (Expression (Call g))))))",
		},
		{
			"throw",
			"function f(e) { throw e; }",
			"(Sync f (e) () (Block (Throw (Variable e))))",
		},
		{
			"try finally",
			"function f() { try { g(); } finally { h(); } }",
			"(Sync f () () (Block (TryFinally (Block (Expression (Call g))) (Block (Expression (Call h))))))",
		},
		{
			"try catch",
			"function f() { try { g(); } catch (e) { h(); } }",
			"(Sync f () () (Block (TryCatch (Block (Expression (Call g))) e (Block (Expression (Call h))))))",
		},
		{
			"nested block",
			"function f() { { g(); } }",
			"(Sync f () () (Block (Block (Expression (Call g)))))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, canonText(t, tt.src))
		})
	}
}

func TestExpression_Shapes(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			"assignment",
			"function f() { var x; x = 1; }",
			"(Sync f () (x) (Block (Expression (Assignment x (Constant 1)))))",
		},
		{
			"call with arguments",
			"function f(a, b) { g(a, b, 3); }",
			"(Sync f (a b) () (Block (Expression (Call g (Variable a) (Variable b) (Constant 3)))))",
		},
		{
			"await stays inside its expression",
			"function f_async() { var x; x = await(g()); return x; }",
			"(Async f_async () (x) (Block (Expression (Assignment x (Await (Call g)))) (Return (Variable x))))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, canonText(t, tt.src))
		})
	}
}

func TestYieldReclassification(t *testing.T) {
	// A statement-position yield call becomes the Yield node directly,
	// not (Expression (Yield ...)).
	out := canonText(t, "function g_syncStar() { yield(1); }")
	assert.Equal(t, "(SyncStar g_syncStar () () (Block (Yield (Constant 1))))", out)

	out = canonText(t, "function g_syncStar(it) { yieldStar(it); }")
	assert.Equal(t, "(SyncStar g_syncStar (it) () (Block (YieldStar (Variable it))))", out)
}

func TestLabeledLoopAttachment(t *testing.T) {
	// The label lands in the loop's label slot, not in a Label wrapper.
	out := canonText(t, "function f(c) { loop: while (c) { break loop; } }")
	assert.Equal(t, "(Sync f (c) () (Block (While loop (Variable c) (Block (Break loop)))))", out)
}

func TestLabeledNonLoopWrapsInLabelNode(t *testing.T) {
	out := canonText(t, "function f() { l: { g(); } }")
	assert.Equal(t, "(Sync f () () (Block (Label l (Block (Expression (Call g))))))", out)
}

func TestLabeledContinue(t *testing.T) {
	out := canonText(t, "function f(c) { loop: while (c) { continue loop; } }")
	assert.Equal(t, "(Sync f (c) () (Block (While loop (Variable c) (Block (Continue loop)))))", out)
}

func TestRejections(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		reason string
	}{
		{
			"if without else",
			"function f(c) { if (c) { g(); } }",
			"else",
		},
		{
			"unlabeled break",
			"function f(c) { while (c) { break; } }",
			"break without a label",
		},
		{
			"unlabeled continue",
			"function f(c) { while (c) { continue; } }",
			"continue without a label",
		},
		{
			"try catch finally",
			"function f() { try { g(); } catch (e) { h(); } finally { k(); } }",
			"catch and finally",
		},
		{
			"method call with receiver",
			"function f(o) { o.m(); }",
			"receiver",
		},
		{
			"compound assignment",
			"function f() { var x; x += 1; }",
			"compound assignment",
		},
		{
			"assignment to property",
			"function f(o) { o.x = 1; }",
			"assignment target",
		},
		{
			"float literal",
			"function f() { return 4.5; }",
			"non-integer numeric literal",
		},
		{
			"hex literal",
			"function f() { return 0x10; }",
			"non-integer numeric literal",
		},
		{
			"string literal",
			"function f() { return 's'; }",
			"expression",
		},
		{
			"for loop",
			"function f() { for (;;) { g(); } }",
			"statement",
		},
		{
			"variable declaration mid-body",
			"function f() { g(); var x; }",
			"hoisted",
		},
		{
			"await arity",
			"function f_async() { await(a, b); }",
			"exactly one argument",
		},
		{
			"yield arity",
			"function f_syncStar() { yield(); }",
			"exactly one argument",
		},
		{
			"more than one label",
			"function f(c) { a: b: while (c) { break a; } }",
			"more than one label",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Function(parseFunction(t, tt.src))
			require.Error(t, err)
			assert.Nil(t, tree, "rejection must not produce a partial tree")
			assert.True(t, IsUnsupportedSyntax(err))
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}

func TestUnit_SourceOrder(t *testing.T) {
	prog, err := parser.ParseFile(nil, "test.js", `
function first() { return 1; }
function second_async() { return 2; }
`, 0)
	require.NoError(t, err)

	unit, err := Unit(prog)
	require.NoError(t, err)
	assert.Equal(t,
		"((Sync first () () (Block (Return (Constant 1)))) (Async second_async () () (Block (Return (Constant 2)))))",
		sexp.Print(unit, 1000))
}

func TestUnit_FirstErrorStopsUnit(t *testing.T) {
	prog, err := parser.ParseFile(nil, "test.js", `
function good() { return 1; }
function bad(c) { if (c) { g(); } }
function alsoGood() { return 2; }
`, 0)
	require.NoError(t, err)

	unit, err := Unit(prog)
	require.Error(t, err)
	assert.Nil(t, unit)

	var unsupported *UnsupportedSyntaxError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "bad", unsupported.Fn)
}

func TestUnit_NonFunctionTopLevelRejected(t *testing.T) {
	prog, err := parser.ParseFile(nil, "test.js", "var x;", 0)
	require.NoError(t, err)

	_, err = Unit(prog)
	require.Error(t, err)
	assert.True(t, IsUnsupportedSyntax(err))
}

func TestUnsupportedSyntaxError_Message(t *testing.T) {
	withFn := &UnsupportedSyntaxError{Fn: "f", Reason: "if statement without an else branch"}
	assert.Equal(t, "unsupported syntax in f: if statement without an else branch", withFn.Error())

	anonymous := &UnsupportedSyntaxError{Reason: "function declaration has no name"}
	assert.Equal(t, "unsupported syntax: function declaration has no name", anonymous.Error())
}
