// Package config loads odbcenv settings from YAML and the environment.
package config

import (
	"errors"
	"io"
	"os"
	"strconv"

	"go.yaml.in/yaml/v3"

	"github.com/koustreak/odbcenv/internal/errs"
	"github.com/koustreak/odbcenv/internal/logger"
)

// Environment variables read by ApplyEnv.
const (
	EnvLibrary   = "ODBCENV_LIBRARY"
	EnvPooling   = "ODBCENV_POOLING"
	EnvLocale    = "ODBCENV_LOCALE"
	EnvLogLevel  = "ODBCENV_LOG_LEVEL"
	EnvLogFormat = "ODBCENV_LOG_FORMAT"
)

// Config holds the process-wide settings.
type Config struct {
	// Library is the driver manager to load. Empty searches the usual
	// names for the platform (libodbc.so.2, odbc32.dll, ...).
	Library string `yaml:"library"`

	// Pooling enables driver-manager connection pooling. It only takes
	// effect if set before the environment handle is allocated.
	Pooling bool `yaml:"pooling"`

	// Locale overrides the host locale used for numeric characters, as a
	// BCP 47 tag ("de-DE") or POSIX name ("de_DE.UTF-8"). Empty reads
	// LC_ALL, LC_NUMERIC and LANG.
	Locale string `yaml:"locale"`

	// Lowercase asks result consumers to lowercase column names.
	Lowercase bool `yaml:"lowercase"`

	Log Log `yaml:"log"`
}

// Log configures the logger.
type Log struct {
	Level  string `yaml:"level"`  // debug, info, warn, error, disabled
	Format string `yaml:"format"` // json, console
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		Pooling: true,
		Log: Log{
			Level:  "warn",
			Format: "json",
		},
	}
}

// Load reads a YAML file over the defaults. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.KindArgument, "opening config "+path, err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads YAML from r over the defaults and validates the result.
func Decode(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errs.Wrap(errs.KindArgument, "invalid config", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides settings from ODBCENV_* variables. lookup defaults to
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	if v, ok := lookup(EnvLibrary); ok {
		c.Library = v
	}
	if v, ok := lookup(EnvPooling); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errs.Wrap(errs.KindArgument, EnvPooling+" must be a boolean", err)
		}
		c.Pooling = b
	}
	if v, ok := lookup(EnvLocale); ok {
		c.Locale = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvLogFormat); ok {
		c.Log.Format = v
	}
	return c.Validate()
}

// Validate checks the log settings.
func (c *Config) Validate() error {
	if !logger.ValidLevel(c.Log.Level) {
		return errs.Newf(errs.KindArgument, "unknown log level %q", c.Log.Level)
	}
	if !logger.ValidFormat(c.Log.Format) {
		return errs.Newf(errs.KindArgument, "unknown log format %q", c.Log.Format)
	}
	return nil
}

// NewLogger builds the logger described by c, writing to out (stderr when
// nil).
func (c *Config) NewLogger(out io.Writer) *logger.Logger {
	lc := logger.DefaultConfig()
	lc.Level = c.Log.Level
	lc.Format = c.Log.Format
	if out != nil {
		lc.Output = out
	}
	return logger.New(lc)
}
