// Package driver runs the minic front end over source files.
package driver

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/you-not-fish/minic/internal/config"
	"github.com/you-not-fish/minic/internal/syntax"
)

// Driver reads sources from a filesystem and feeds them through the
// scanner and parser.
type Driver struct {
	fs  afero.Fs
	cfg *config.Config
	log *zap.Logger
}

// New returns a Driver. A nil cfg means config.Default(), a nil log
// disables logging.
func New(fs afero.Fs, cfg *config.Config, log *zap.Logger) *Driver {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Driver{fs: fs, cfg: cfg, log: log}
}

// ReadSource checks the file extension and returns the file contents.
func (d *Driver) ReadSource(path string) ([]byte, error) {
	if !d.cfg.AcceptsFile(path) {
		return nil, errors.Errorf("%s: source must have extension %s", path, strings.Join(d.cfg.Source.Extensions, " or "))
	}
	src, err := afero.ReadFile(d.fs, path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read source")
	}
	d.log.Debug("source read", zap.String("path", path), zap.Int("bytes", len(src)))
	return src, nil
}

// Tokens scans the file at path.
func (d *Driver) Tokens(path string) ([]syntax.Token, error) {
	src, err := d.ReadSource(path)
	if err != nil {
		return nil, err
	}
	toks, err := syntax.Scan(src)
	if err != nil {
		d.log.Debug("scan failed", zap.String("path", path), zap.Error(err))
		return nil, errors.Wrap(err, path)
	}
	d.log.Debug("scan finished", zap.String("path", path), zap.Int("tokens", len(toks)))
	return toks, nil
}

// Parse scans and parses the file at path. Syntax errors are returned
// wrapped; use Diagnostics to recover them.
func (d *Driver) Parse(path string) (*syntax.Program, error) {
	toks, err := d.Tokens(path)
	if err != nil {
		return nil, err
	}
	prog, err := syntax.Parse(toks, syntax.WithLogger(d.log.Named("parser")))
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	d.log.Debug("parse finished", zap.String("path", path), zap.Int("declarations", len(prog.Decls)))
	return prog, nil
}

// PrintAST writes prog to w in the configured format.
func (d *Driver) PrintAST(w io.Writer, prog *syntax.Program) error {
	switch d.cfg.AST.Format {
	case config.OutputJSON:
		return errors.Wrap(syntax.FprintJSON(w, prog), "failed to write AST")
	default:
		p := syntax.Printer{Indent: d.cfg.AST.Indent, Literals: d.cfg.AST.Literals}
		return errors.Wrap(p.Fprint(w, prog), "failed to write AST")
	}
}

// Diagnostics returns the line-tagged messages carried by err if it was
// caused by a lexical or syntax error.
func Diagnostics(err error) ([]string, bool) {
	switch cause := errors.Cause(err).(type) {
	case *syntax.LexError:
		return []string{cause.Error()}, true
	case syntax.ErrorList:
		msgs := make([]string, len(cause))
		for i, e := range cause {
			msgs[i] = e.Error()
		}
		return msgs, true
	}
	return nil, false
}
