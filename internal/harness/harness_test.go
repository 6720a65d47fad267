package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ProducesOutput(t *testing.T) {
	sc := &Scenario{
		Name:        "inline",
		Description: "clean compile",
		Source:      "function main() { return 42; }",
		Width:       120,
	}

	result, err := Run(sc)
	require.NoError(t, err)
	assert.True(t, result.Pass)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "((Sync main () () (Block (Return (Constant 42)))))\n", result.Output)
}

func TestRun_RejectionMatchesWantError(t *testing.T) {
	sc := &Scenario{
		Name:        "inline",
		Description: "if without else",
		Source:      "function f(c) { if (c) { return 1; } }",
		Width:       120,
		WantError:   "else",
	}

	result, err := Run(sc)
	require.NoError(t, err)
	assert.True(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "else")
	assert.Empty(t, result.Output)
}

func TestRun_UnexpectedDiagnosticFails(t *testing.T) {
	sc := &Scenario{
		Name:        "inline",
		Description: "no want_error, but source is rejected",
		Source:      "function f(c) { if (c) { return 1; } }",
		Width:       120,
	}

	result, err := Run(sc)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Contains(t, result.Errors[len(result.Errors)-1], "expected a canonical tree")
}

func TestRun_MissingDiagnosticFails(t *testing.T) {
	sc := &Scenario{
		Name:        "inline",
		Description: "want_error on a clean source",
		Source:      "function f() { return 1; }",
		Width:       120,
		WantError:   "else",
	}

	result, err := Run(sc)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], `expected a diagnostic containing "else"`)
}

func TestRun_ParseFailureIsAnError(t *testing.T) {
	sc := &Scenario{
		Name:        "inline",
		Description: "malformed source",
		Source:      "function f( {",
		Width:       120,
	}

	result, err := Run(sc)
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestRun_DesugarTryFlag(t *testing.T) {
	source := "function f() { try { a(); } catch (e) { b(); } finally { c(); } }"

	rejected, err := Run(&Scenario{
		Name:        "inline",
		Description: "three-part try without the rewrite",
		Source:      source,
		Width:       200,
		WantError:   "catch and finally",
	})
	require.NoError(t, err)
	assert.True(t, rejected.Pass)

	accepted, err := Run(&Scenario{
		Name:        "inline",
		Description: "three-part try with the rewrite",
		Source:      source,
		Width:       200,
		DesugarTry:  true,
	})
	require.NoError(t, err)
	assert.True(t, accepted.Pass)
	assert.Contains(t, accepted.Output, "(TryFinally (Block (TryCatch")
}

func TestRun_WidthControlsLayout(t *testing.T) {
	sc := &Scenario{
		Name:        "inline",
		Description: "narrow width breaks the function tree",
		Source:      "function main() { return answer(); }",
		Width:       40,
	}

	result, err := Run(sc)
	require.NoError(t, err)
	require.True(t, result.Pass)
	assert.Equal(t,
		"((Sync\n   main\n   ()\n   ()\n   (Block (Return (Call answer)))))\n",
		result.Output)
}
