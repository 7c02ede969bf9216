package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	minaerror "github.com/msto63/mina/foundation/core/error"
	minalog "github.com/msto63/mina/foundation/core/log"
	"github.com/msto63/mina/foundation/mina/lexer"
)

// Config holds the complete application configuration
type Config struct {
	General  GeneralConfig  `toml:"general" yaml:"general"`
	Frontend FrontendConfig `toml:"frontend" yaml:"frontend"`
	Store    StoreConfig    `toml:"store" yaml:"store"`
	Cache    CacheConfig    `toml:"cache" yaml:"cache"`
	Repl     ReplConfig     `toml:"repl" yaml:"repl"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
}

// FrontendConfig holds lexer and parser settings
type FrontendConfig struct {
	LexPolicy      string `toml:"lex_policy" yaml:"lex_policy"`
	MaxInputLength int    `toml:"max_input_length" yaml:"max_input_length"`
	MaxErrors      int    `toml:"max_errors" yaml:"max_errors"`
}

// StoreConfig holds the artifact store settings
type StoreConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Path    string `toml:"path" yaml:"path"`
}

// CacheConfig holds the artifact cache settings
type CacheConfig struct {
	MaxItems int      `toml:"max_items" yaml:"max_items"`
	TTL      Duration `toml:"ttl" yaml:"ttl"`
}

// ReplConfig holds the interactive shell settings
type ReplConfig struct {
	Prompt      string `toml:"prompt" yaml:"prompt"`
	HistorySize int    `toml:"history_size" yaml:"history_size"`
}

// Duration wraps time.Duration for text based config formats
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", value.Line)
	}
	return d.UnmarshalText([]byte(value.Value))
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// DefaultConfig returns the configuration used when no file is given
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a TOML or YAML configuration file, chosen by extension.
// Environment variables in path and in the store path are expanded.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		code := minaerror.CodeConfigError
		if os.IsNotExist(err) {
			code = minaerror.CodeMissingConfig
		}
		return nil, minaerror.Wrap(err, "failed to read config file").
			WithCode(code).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	cfg, err := Parse(data, formatOf(path))
	if err != nil {
		return nil, minaerror.Wrap(err, "failed to load config").
			WithOperation("config.Load").
			WithDetail("path", path)
	}
	return cfg, nil
}

// Parse decodes configuration data in the given format ("toml" or "yaml"),
// applies defaults and validates the result
func Parse(data []byte, format string) (*Config, error) {
	cfg := &Config{}

	switch format {
	case "toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(cfg); err != nil {
			return nil, decodeError(err, format)
		}
	case "yaml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && err != io.EOF {
			return nil, decodeError(err, format)
		}
	default:
		return nil, minaerror.Newf("unsupported config format %q", format).
			WithCode(minaerror.CodeConfigError).
			WithOperation("config.Parse")
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeError(err error, format string) error {
	return minaerror.Wrap(err, "failed to decode config").
		WithCode(minaerror.CodeConfigError).
		WithOperation("config.Parse").
		WithDetail("format", format)
}

// formatOf maps a file extension to a config format. Unknown extensions
// are read as TOML.
func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "toml"
	}
}

// Encode writes the configuration in the given format
func (c *Config) Encode(w io.Writer, format string) error {
	switch format {
	case "toml":
		return toml.NewEncoder(w).Encode(c)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		return enc.Close()
	default:
		return minaerror.Newf("unsupported config format %q", format).
			WithCode(minaerror.CodeInvalidInput).
			WithOperation("config.Encode")
	}
}

// Validate checks every value that has a closed set of options or a range
func (c *Config) Validate() error {
	var problems []string

	if _, err := minalog.ParseLevel(c.General.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("general.log_level: %v", err))
	}
	if _, err := minalog.ParseFormat(c.General.LogFormat); err != nil {
		problems = append(problems, fmt.Sprintf("general.log_format: %v", err))
	}
	if _, err := lexer.ParsePolicy(c.Frontend.LexPolicy); err != nil {
		problems = append(problems, fmt.Sprintf("frontend.lex_policy: %v", err))
	}
	if c.Frontend.MaxErrors < 0 {
		problems = append(problems, "frontend.max_errors must not be negative")
	}
	if c.Store.Enabled && c.Store.Path == "" {
		problems = append(problems, "store.path is required when the store is enabled")
	}
	if c.Cache.MaxItems < 0 {
		problems = append(problems, "cache.max_items must not be negative")
	}
	if c.Cache.TTL.Duration < 0 {
		problems = append(problems, "cache.ttl must not be negative")
	}
	if c.Repl.HistorySize < 0 {
		problems = append(problems, "repl.history_size must not be negative")
	}

	if len(problems) == 0 {
		return nil
	}
	return minaerror.New("invalid configuration: " + strings.Join(problems, "; ")).
		WithCode(minaerror.CodeInvalidConfig).
		WithOperation("config.Validate").
		WithDetail("problems", problems)
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.LogLevel == "" {
		c.General.LogLevel = "warn"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	// Frontend
	if c.Frontend.LexPolicy == "" {
		c.Frontend.LexPolicy = "skip"
	}

	// Store
	if c.Store.Path == "" {
		c.Store.Path = "./data/artifacts.db"
	}

	// Cache
	if c.Cache.MaxItems == 0 {
		c.Cache.MaxItems = 256
	}
	if c.Cache.TTL.Duration == 0 {
		c.Cache.TTL.Duration = 10 * time.Minute
	}

	// Repl
	if c.Repl.Prompt == "" {
		c.Repl.Prompt = "mina> "
	}
	if c.Repl.HistorySize == 0 {
		c.Repl.HistorySize = 200
	}
}

// expandEnvVars expands environment variables in configuration values
func (c *Config) expandEnvVars() {
	c.Store.Path = os.ExpandEnv(c.Store.Path)
}
