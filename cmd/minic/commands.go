package main

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/you-not-fish/minic/internal/config"
	"github.com/you-not-fish/minic/internal/syntax"
)

func newTokensCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream of a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			toks, err := a.drv.Tokens(args[0])
			if err != nil {
				return err
			}
			return writeTokens(cmd.OutOrStdout(), toks)
		},
	}
}

// writeTokens prints one token per line with its line number and kind.
func writeTokens(w io.Writer, toks []syntax.Token) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%-6s %-10s %s\n", "LINE", "KIND", "LITERAL")
	fmt.Fprintf(&b, "%-6s %-10s %s\n", strings.Repeat("-", 6), strings.Repeat("-", 10), strings.Repeat("-", 10))
	for _, tok := range toks {
		fmt.Fprintf(&b, "%-6d %-10s %s\n", tok.Line, tok.Kind, formatLiteral(tok.Lit))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// formatLiteral quotes a literal for display, escaping special characters.
func formatLiteral(lit string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range lit {
		switch r {
		case '\n':
			b.WriteString(`\n`)
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func newASTCmd(a *app) *cobra.Command {
	var (
		format   string
		literals bool
	)
	cmd := &cobra.Command{
		Use:   "ast <file>",
		Short: "Print the syntax tree of a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("format") {
				a.cfg.AST.Format = format
			}
			if cmd.Flags().Changed("literals") {
				a.cfg.AST.Literals = literals
			}
			if err := a.cfg.Validate(); err != nil {
				return errors.Wrap(err, "invalid flags")
			}
			prog, err := a.drv.Parse(args[0])
			if err != nil {
				return err
			}
			return a.drv.PrintAST(cmd.OutOrStdout(), prog)
		},
	}
	addASTFlags(cmd.Flags(), &format, &literals)
	return cmd
}

// addASTFlags registers the tree output flags. Their defaults mirror
// config.Default; a flag only overrides the config file when set.
func addASTFlags(fs *pflag.FlagSet, format *string, literals *bool) {
	fs.StringVarP(format, "format", "f", config.OutputTree, "output format (tree or json)")
	fs.BoolVar(literals, "literals", false, "print scalar attributes in tree output")
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Report whether a source file parses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.drv.Parse(args[0]); err != nil {
				return err
			}
			_, err := io.WriteString(cmd.OutOrStdout(), "ok\n")
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// version needs no configuration or logger.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "minic version %s\ngo version %s\n", Version, runtime.Version())
			return err
		},
	}
}
