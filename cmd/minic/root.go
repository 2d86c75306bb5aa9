package main

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/you-not-fish/minic/internal/config"
	"github.com/you-not-fish/minic/internal/driver"
)

// app is the state shared by all subcommands of one invocation.
type app struct {
	fs afero.Fs

	cfgFile string
	verbose bool

	cfg *config.Config
	log *zap.Logger
	drv *driver.Driver
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "minic",
		Short: "minic - front end for a small C-like language",
		Long: `minic scans and parses programs written in a small C-like language
and prints their tokens or syntax trees.

Commands:
  tokens   Print the token stream of a source file
  ast      Print the syntax tree of a source file
  check    Report whether a source file parses
`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (.toml, .yaml or .yml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug information")

	root.AddCommand(newTokensCmd(a), newASTCmd(a), newCheckCmd(a), newVersionCmd())
	return root
}

// setup loads the configuration and builds the logger and driver.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.fs, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	al := zap.NewAtomicLevelAt(level)
	if a.verbose {
		al.SetLevel(zap.DebugLevel)
	}
	ec := zap.NewDevelopmentEncoderConfig()
	a.log = zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(zapcore.AddSync(cmd.ErrOrStderr())), al))
	a.log.Debug("configuration loaded", zap.String("path", a.cfgFile), zap.Stringer("level", al.Level()))

	a.drv = driver.New(a.fs, cfg, a.log)
	return nil
}
