// Package config loads minic settings from TOML or YAML files.
package config

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a configuration file.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// AST output formats.
const (
	OutputTree = "tree"
	OutputJSON = "json"
)

// Config holds all settings. The zero value is not valid; start from Default.
type Config struct {
	Source Source `toml:"source" yaml:"source"`
	AST    AST    `toml:"ast" yaml:"ast"`
	Log    Log    `toml:"log" yaml:"log"`
}

// Source controls which files are accepted as input.
type Source struct {
	Extensions []string `toml:"extensions" yaml:"extensions"`
}

// AST controls how syntax trees are printed.
type AST struct {
	Format   string `toml:"format" yaml:"format"`
	Indent   string `toml:"indent" yaml:"indent"`
	Literals bool   `toml:"literals" yaml:"literals"`
}

// Log controls the logger.
type Log struct {
	Level string `toml:"level" yaml:"level"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Source: Source{Extensions: []string{".mc"}},
		AST:    AST{Format: OutputTree, Indent: "   "},
		Log:    Log{Level: "info"},
	}
}

// Load reads the configuration file at path from fs. Keys missing from the
// file keep their default values. An empty path yields Default().
func Load(fs afero.Fs, path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	format, err := detectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid config file %s", path)
	}
	return cfg, nil
}

// Parse decodes data on top of Default() and validates the result.
// Unknown keys are rejected.
func Parse(data []byte, format Format) (*Config, error) {
	cfg := Default()
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, errors.Wrap(err, "failed to decode TOML")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, errors.Errorf("unknown keys: %s", strings.Join(keys, ", "))
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && err != io.EOF {
			return nil, errors.Wrap(err, "failed to decode YAML")
		}
	default:
		return nil, errors.Errorf("unsupported config format %s", format)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func detectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return 0, errors.Errorf("config file %s: unknown extension, want .toml, .yaml or .yml", path)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if len(c.Source.Extensions) == 0 {
		return errors.New("source.extensions must not be empty")
	}
	for _, ext := range c.Source.Extensions {
		if len(ext) < 2 || ext[0] != '.' || strings.ContainsAny(ext[1:], "./\\") {
			return errors.Errorf("source.extensions: invalid extension %q", ext)
		}
	}
	switch c.AST.Format {
	case OutputTree, OutputJSON:
	default:
		return errors.Errorf("ast.format: unknown format %q, want %q or %q", c.AST.Format, OutputTree, OutputJSON)
	}
	if strings.Trim(c.AST.Indent, " \t") != "" {
		return errors.Errorf("ast.indent: %q contains characters other than spaces and tabs", c.AST.Indent)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel returns the configured log level.
func (c *Config) LogLevel() (zapcore.Level, error) {
	var l zapcore.Level
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
		if err := l.UnmarshalText([]byte(c.Log.Level)); err != nil {
			return l, errors.Wrap(err, "log.level")
		}
		return l, nil
	}
	return l, errors.Errorf("log.level: unknown level %q, want debug, info, warn or error", c.Log.Level)
}

// AcceptsFile reports whether path has one of the configured source
// extensions.
func (c *Config) AcceptsFile(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range c.Source.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
