package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/headinthebox/async-await/internal/cps"
	"github.com/headinthebox/async-await/internal/sexp"
)

func writeProgram(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "program.sexp")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateWellFormed(t *testing.T) {
	path := writeProgram(t, "((FunDecl main () k h (LetVal x (Constant 42) (CallCont k (x)))))\n")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "✓ CPS program is well formed (1 function(s))")
}

func TestValidateWellFormedJSON(t *testing.T) {
	path := writeProgram(t, "((FunDecl main () k h (CallCont k ())))\n")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, data["valid"])
	assert.Equal(t, float64(1), data["functions"])
}

func TestValidateRoundTrip(t *testing.T) {
	prog := cps.Program{
		{
			Name:       "dispatch",
			Parameters: []string{"x"},
			ReturnCont: "k",
			ThrowCont:  "h",
			Body: cps.LetCont{
				Name:       "j",
				Parameters: []string{"v"},
				Body:       cps.CallCont{Callee: "k", Arguments: []string{"v"}},
				Rest: cps.If{
					Condition: "x",
					Then:      cps.CallCont{Callee: "j", Arguments: []string{"x"}},
					Else:      cps.CallFun{Callee: "f", Arguments: []string{"x"}, ReturnCont: "j", ThrowCont: "h"},
				},
			},
		},
	}
	path := writeProgram(t, sexp.Print(prog.SExpr(), sexp.DefaultWidth)+"\n")

	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "well formed")
}

func TestValidateBadSExpr(t *testing.T) {
	path := writeProgram(t, "((FunDecl main")

	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "✗ Validation failed")
	assert.Contains(t, buf.String(), "E111")
	assert.Contains(t, buf.String(), "unterminated list")
}

func TestValidateBadProgram(t *testing.T) {
	path := writeProgram(t, "((FunDecl main () k h (Constant 1)))")

	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "E112")
	assert.Contains(t, buf.String(), `unknown expression tag "Constant"`)
}

func TestValidateBadProgramJSON(t *testing.T) {
	path := writeProgram(t, "(FunDecl main () k h (CallCont k ()))")

	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E112", resp.Error.Code)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, data["valid"])
}

func TestValidateNonExistentFile(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"/nonexistent/path/program.sexp"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "E002")
}
