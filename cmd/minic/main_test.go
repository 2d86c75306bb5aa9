package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const addProgram = `# adds two numbers
func int add(int a, int b) {
	return a + b;
}
`

func newTestFS(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}
	return fs
}

// runCmd runs the CLI and returns the exit code, stdout and stderr.
func runCmd(t *testing.T, fs afero.Fs, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(args, fs, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestCheck(t *testing.T) {
	fs := newTestFS(t, map[string]string{
		"add.mc": addProgram,
		"bad.mc": "func int f() {\n  return 1\n}\n",
		"lex.mc": "var int x = @;",
	})

	code, out, errOut := runCmd(t, fs, "check", "add.mc")
	assert.Equal(t, 0, code, errOut)
	assert.Equal(t, "ok\n", out)
	assert.Empty(t, errOut)

	code, out, errOut = runCmd(t, fs, "check", "bad.mc")
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
	assert.Equal(t, "Line 1: Invalid function declaration\n"+
		"Line 2: Invalid return statement\n"+
		"Line 3: Expected ';': Unmatched token: }\n", errOut)

	code, _, errOut = runCmd(t, fs, "check", "lex.mc")
	assert.Equal(t, 1, code)
	assert.Equal(t, "Line 1: Invalid character: '@'\n", errOut)
}

func TestTokens(t *testing.T) {
	fs := newTestFS(t, map[string]string{"t.mc": "x = 1;\ny"})
	code, out, errOut := runCmd(t, fs, "tokens", "t.mc")
	require.Equal(t, 0, code, errOut)

	want := `LINE   KIND       LITERAL
------ ---------- ----------
1      NAME       "x"
1      OPERATOR   "="
1      LITERAL    "1"
1      SPECIAL    ";"
1      NEWLINE    "\n"
2      NAME       "y"
2      EOF        ""
`
	assert.Equal(t, want, out)
}

func TestAST(t *testing.T) {
	fs := newTestFS(t, map[string]string{
		"add.mc":     addProgram,
		"json.toml":  "[ast]\nformat = \"json\"\n",
		"bad.yaml":   "ast:\n  format: xml\n",
		"tabs.yml":   "ast:\n  indent: \"\\t\"\n",
		"var.mc":     "var int x;",
		"broken.mc":  "var int x",
		"other.c":    "var int x;",
		"minic.conf": "",
	})

	t.Run("tree", func(t *testing.T) {
		code, out, errOut := runCmd(t, fs, "ast", "add.mc")
		require.Equal(t, 0, code, errOut)
		want := `Program
   FunctionDeclaration
      TypeSpecifier
      Parameter
         TypeSpecifier
      Parameter
         TypeSpecifier
      CompoundStatement
         returnStatement
            ConditionalExpression
               +
                  identifier
                  identifier
`
		assert.Equal(t, want, out)
	})

	t.Run("literals", func(t *testing.T) {
		code, out, errOut := runCmd(t, fs, "ast", "--literals", "var.mc")
		require.Equal(t, 0, code, errOut)
		assert.Equal(t, "Program\n   VariableDeclaration identifier=\"x\"\n"+
			"      TypeSpecifier name=\"int\" structName=\"\" pointer=false\n", out)
	})

	t.Run("json_flag", func(t *testing.T) {
		code, out, errOut := runCmd(t, fs, "ast", "--format", "json", "var.mc")
		require.Equal(t, 0, code, errOut)
		assert.True(t, strings.HasPrefix(out, "{\n  \"tag\": \"Program\",\n  \"line\": 1,"), out)
	})

	t.Run("json_config", func(t *testing.T) {
		code, out, errOut := runCmd(t, fs, "--config", "json.toml", "ast", "var.mc")
		require.Equal(t, 0, code, errOut)
		assert.Contains(t, out, `"identifier": "x"`)
	})

	t.Run("flag_overrides_config", func(t *testing.T) {
		code, out, errOut := runCmd(t, fs, "--config", "json.toml", "ast", "-f", "tree", "var.mc")
		require.Equal(t, 0, code, errOut)
		assert.True(t, strings.HasPrefix(out, "Program\n"), out)
	})

	t.Run("indent_config", func(t *testing.T) {
		code, out, errOut := runCmd(t, fs, "--config", "tabs.yml", "ast", "var.mc")
		require.Equal(t, 0, code, errOut)
		assert.Equal(t, "Program\n\tVariableDeclaration\n\t\tTypeSpecifier\n", out)
	})

	t.Run("bad_format_flag", func(t *testing.T) {
		code, out, errOut := runCmd(t, fs, "ast", "--format", "xml", "var.mc")
		assert.Equal(t, 1, code)
		assert.Empty(t, out)
		assert.Contains(t, errOut, "error: invalid flags: ast.format")
	})

	t.Run("bad_config", func(t *testing.T) {
		code, _, errOut := runCmd(t, fs, "--config", "bad.yaml", "ast", "var.mc")
		assert.Equal(t, 1, code)
		assert.Contains(t, errOut, "ast.format")
	})

	t.Run("unknown_config_extension", func(t *testing.T) {
		code, _, errOut := runCmd(t, fs, "--config", "minic.conf", "ast", "var.mc")
		assert.Equal(t, 1, code)
		assert.Contains(t, errOut, "unknown extension")
	})

	t.Run("syntax_error", func(t *testing.T) {
		code, out, errOut := runCmd(t, fs, "ast", "broken.mc")
		assert.Equal(t, 1, code)
		assert.Empty(t, out)
		assert.Equal(t, "Line 1: Invalid variable declaration\nLine 1: Expected ';': Unmatched token: EOF\n", errOut)
	})

	t.Run("wrong_extension", func(t *testing.T) {
		code, _, errOut := runCmd(t, fs, "ast", "other.c")
		assert.Equal(t, 1, code)
		assert.Equal(t, "error: other.c: source must have extension .mc\n", errOut)
	})
}

func TestVerboseLogsToStderr(t *testing.T) {
	fs := newTestFS(t, map[string]string{"add.mc": addProgram})

	code, out, errOut := runCmd(t, fs, "--verbose", "check", "add.mc")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "ok\n", out)
	assert.Contains(t, errOut, "DEBUG")
	assert.Contains(t, errOut, "source read")
	assert.Contains(t, errOut, "parser")

	code, _, errOut = runCmd(t, fs, "check", "add.mc")
	require.Equal(t, 0, code)
	assert.Empty(t, errOut)
}

func TestUsageErrors(t *testing.T) {
	fs := newTestFS(t, nil)

	code, _, errOut := runCmd(t, fs, "check")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "accepts 1 arg(s), received 0")

	code, _, errOut = runCmd(t, fs, "compile", "x.mc")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, `unknown command "compile"`)

	code, _, errOut = runCmd(t, fs, "check", "missing.mc")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "error: failed to read source")
}

func TestVersion(t *testing.T) {
	code, out, _ := runCmd(t, newTestFS(t, nil), "version")
	assert.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(out, "minic version "+Version+"\n"), out)
}

func TestVersionIgnoresConfig(t *testing.T) {
	fs := newTestFS(t, map[string]string{
		"bad.yaml":   "ast:\n  format: xml\n",
		"minic.conf": "",
	})
	for _, cfg := range []string{"bad.yaml", "minic.conf", "missing.toml"} {
		t.Run(cfg, func(t *testing.T) {
			code, out, errOut := runCmd(t, fs, "--config", cfg, "version")
			assert.Equal(t, 0, code, errOut)
			assert.True(t, strings.HasPrefix(out, "minic version "+Version+"\n"), out)
			assert.Empty(t, errOut)
		})
	}
}

func TestFormatLiteral(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", `""`},
		{"x", `"x"`},
		{"\n", `"\n"`},
		{`a"b`, `"a\"b"`},
		{`\`, `"\\"`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatLiteral(tt.in))
	}
}
