package driver

import (
	"bytes"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/you-not-fish/minic/internal/config"
	"github.com/you-not-fish/minic/internal/syntax"
)

func newFS(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}
	return fs
}

func TestReadSource(t *testing.T) {
	fs := newFS(t, map[string]string{
		"prog.mc": "var int x;",
		"prog.c":  "var int x;",
	})
	d := New(fs, nil, nil)

	src, err := d.ReadSource("prog.mc")
	require.NoError(t, err)
	assert.Equal(t, "var int x;", string(src))

	_, err = d.ReadSource("prog.c")
	assert.EqualError(t, err, "prog.c: source must have extension .mc")

	_, err = d.ReadSource("missing.mc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read source")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadSourceCustomExtensions(t *testing.T) {
	cfg := config.Default()
	cfg.Source.Extensions = []string{".mc", ".minic"}
	d := New(newFS(t, map[string]string{"a.minic": ""}), cfg, nil)

	_, err := d.ReadSource("a.minic")
	require.NoError(t, err)
	_, err = d.ReadSource("a.txt")
	assert.EqualError(t, err, "a.txt: source must have extension .mc or .minic")
}

func TestTokens(t *testing.T) {
	d := New(newFS(t, map[string]string{"t.mc": "x = 1;\n"}), nil, nil)
	toks, err := d.Tokens("t.mc")
	require.NoError(t, err)

	var lits []string
	for _, tok := range toks {
		lits = append(lits, tok.String())
	}
	assert.Equal(t, []string{"x", "=", "1", ";", `\n`, "EOF"}, lits)
}

func TestParse(t *testing.T) {
	fs := newFS(t, map[string]string{
		"ok.mc":   "func int add(int a, int b) { return a + b; }\n",
		"lex.mc":  "var int x = 1;\nvar int y = @;\n",
		"stx.mc":  "var int x",
		"none.mc": "",
	})
	d := New(fs, nil, nil)

	prog, err := d.Parse("ok.mc")
	require.NoError(t, err)
	require.Len(t, prog.Decls, 1)
	assert.Equal(t, "add", prog.Decls[0].(*syntax.FunctionDeclaration).Name)

	prog, err = d.Parse("none.mc")
	require.NoError(t, err)
	assert.Empty(t, prog.Decls)

	_, err = d.Parse("lex.mc")
	require.Error(t, err)
	msgs, ok := Diagnostics(err)
	require.True(t, ok)
	assert.Equal(t, []string{"Line 2: Invalid character: '@'"}, msgs)
	assert.Contains(t, err.Error(), "lex.mc")

	_, err = d.Parse("stx.mc")
	require.Error(t, err)
	msgs, ok = Diagnostics(err)
	require.True(t, ok)
	assert.Equal(t, []string{
		"Line 1: Invalid variable declaration",
		"Line 1: Expected ';': Unmatched token: EOF",
	}, msgs)
}

func TestDiagnosticsIgnoresOtherErrors(t *testing.T) {
	d := New(afero.NewMemMapFs(), nil, nil)
	_, err := d.Parse("missing.mc")
	require.Error(t, err)
	msgs, ok := Diagnostics(err)
	assert.False(t, ok)
	assert.Nil(t, msgs)
}

func TestPrintAST(t *testing.T) {
	fs := newFS(t, map[string]string{"p.mc": "var int x = 1;"})

	tests := []struct {
		name string
		ast  config.AST
		want string
	}{
		{
			"tree",
			config.AST{Format: config.OutputTree},
			"Program\n   VariableDeclaration\n      TypeSpecifier\n      ConditionalExpression\n         numericLiteral\n",
		},
		{
			"tree_indent_literals",
			config.AST{Format: config.OutputTree, Indent: "  ", Literals: true},
			"Program\n  VariableDeclaration identifier=\"x\"\n    TypeSpecifier name=\"int\" structName=\"\" pointer=false\n" +
				"    ConditionalExpression\n      numericLiteral value=\"1\"\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.AST = tt.ast
			d := New(fs, cfg, nil)
			prog, err := d.Parse("p.mc")
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, d.PrintAST(&buf, prog))
			assert.Equal(t, tt.want, buf.String())
		})
	}

	cfg := config.Default()
	cfg.AST.Format = config.OutputJSON
	d := New(fs, cfg, nil)
	prog, err := d.Parse("p.mc")
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, d.PrintAST(&buf, prog))
	assert.Contains(t, buf.String(), `"tag": "Program"`)
}

func TestLogging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	d := New(newFS(t, map[string]string{"p.mc": "func void f() { x = 1; }"}), nil, zap.New(core))

	_, err := d.Parse("p.mc")
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("source read").Len())
	assert.Equal(t, 1, logs.FilterMessage("scan finished").Len())
	assert.Equal(t, 2, logs.FilterMessage("parse finished").Len())
	assert.NotZero(t, logs.FilterLoggerName("parser").Len())
}
