package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	minaerror "github.com/msto63/mina/foundation/core/error"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"seconds", "30s", 30 * time.Second, false},
		{"minutes", "5m", 5 * time.Minute, false},
		{"hours", "2h", 2 * time.Hour, false},
		{"complex", "1h30m", 90 * time.Minute, false},
		{"milliseconds", "100ms", 100 * time.Millisecond, false},
		{"invalid", "invalid", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && d.Duration != tt.expected {
				t.Errorf("UnmarshalText() = %v, want %v", d.Duration, tt.expected)
			}
		})
	}
}

func TestDuration_MarshalText(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{"seconds", 30 * time.Second, "30s"},
		{"minutes", 5 * time.Minute, "5m0s"},
		{"hours", 2 * time.Hour, "2h0m0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Duration{tt.duration}
			result, err := d.MarshalText()

			if err != nil {
				t.Errorf("MarshalText() error = %v", err)
				return
			}

			if string(result) != tt.expected {
				t.Errorf("MarshalText() = %v, want %v", string(result), tt.expected)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.General.LogLevel != "warn" {
		t.Errorf("General.LogLevel = %v, want warn", cfg.General.LogLevel)
	}
	if cfg.General.LogFormat != "text" {
		t.Errorf("General.LogFormat = %v, want text", cfg.General.LogFormat)
	}
	if cfg.Frontend.LexPolicy != "skip" {
		t.Errorf("Frontend.LexPolicy = %v, want skip", cfg.Frontend.LexPolicy)
	}
	if cfg.Frontend.MaxInputLength != 0 {
		t.Errorf("Frontend.MaxInputLength = %v, want 0", cfg.Frontend.MaxInputLength)
	}
	if cfg.Store.Enabled {
		t.Error("Store.Enabled = true, want false")
	}
	if cfg.Store.Path != "./data/artifacts.db" {
		t.Errorf("Store.Path = %v, want ./data/artifacts.db", cfg.Store.Path)
	}
	if cfg.Cache.MaxItems != 256 {
		t.Errorf("Cache.MaxItems = %v, want 256", cfg.Cache.MaxItems)
	}
	if cfg.Cache.TTL.Duration != 10*time.Minute {
		t.Errorf("Cache.TTL = %v, want 10m", cfg.Cache.TTL.Duration)
	}
	if cfg.Repl.Prompt != "mina> " {
		t.Errorf("Repl.Prompt = %q, want %q", cfg.Repl.Prompt, "mina> ")
	}
	if cfg.Repl.HistorySize != 200 {
		t.Errorf("Repl.HistorySize = %v, want 200", cfg.Repl.HistorySize)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults error = %v", err)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.toml")
	if err == nil {
		t.Fatal("Load() expected error for non-existent file")
	}
	if !minaerror.HasCode(err, minaerror.CodeMissingConfig) {
		t.Errorf("Expected code %s, got %s", minaerror.CodeMissingConfig, minaerror.GetCode(err))
	}
}

func TestLoad_TOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	configContent := `
[general]
log_level = "debug"

[frontend]
lex_policy = "halt"
max_errors = 5

[store]
enabled = true
path = "/tmp/mina.db"

[cache]
ttl = "30s"
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.General.LogLevel != "debug" {
		t.Errorf("General.LogLevel = %v, want debug", cfg.General.LogLevel)
	}
	if cfg.Frontend.LexPolicy != "halt" {
		t.Errorf("Frontend.LexPolicy = %v, want halt", cfg.Frontend.LexPolicy)
	}
	if cfg.Frontend.MaxErrors != 5 {
		t.Errorf("Frontend.MaxErrors = %v, want 5", cfg.Frontend.MaxErrors)
	}
	if !cfg.Store.Enabled || cfg.Store.Path != "/tmp/mina.db" {
		t.Errorf("Store = %+v, want enabled at /tmp/mina.db", cfg.Store)
	}
	if cfg.Cache.TTL.Duration != 30*time.Second {
		t.Errorf("Cache.TTL = %v, want 30s", cfg.Cache.TTL.Duration)
	}

	// Check defaults were applied for missing values
	if cfg.Cache.MaxItems != 256 {
		t.Errorf("Cache.MaxItems = %v, want 256 (default)", cfg.Cache.MaxItems)
	}
	if cfg.General.LogFormat != "text" {
		t.Errorf("General.LogFormat = %v, want text (default)", cfg.General.LogFormat)
	}
}

func TestLoad_YAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yml")

	configContent := `
general:
  log_format: json
frontend:
  max_input_length: 4096
cache:
  max_items: 16
  ttl: 1h30m
repl:
  prompt: "> "
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.General.LogFormat != "json" {
		t.Errorf("General.LogFormat = %v, want json", cfg.General.LogFormat)
	}
	if cfg.Frontend.MaxInputLength != 4096 {
		t.Errorf("Frontend.MaxInputLength = %v, want 4096", cfg.Frontend.MaxInputLength)
	}
	if cfg.Cache.MaxItems != 16 {
		t.Errorf("Cache.MaxItems = %v, want 16", cfg.Cache.MaxItems)
	}
	if cfg.Cache.TTL.Duration != 90*time.Minute {
		t.Errorf("Cache.TTL = %v, want 1h30m", cfg.Cache.TTL.Duration)
	}
	if cfg.Repl.Prompt != "> " {
		t.Errorf("Repl.Prompt = %q, want %q", cfg.Repl.Prompt, "> ")
	}
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("MINA_TEST_DIR", tmpDir)

	configContent := "[store]\nenabled = true\npath = \"$MINA_TEST_DIR/store.db\"\n"
	if err := os.WriteFile(filepath.Join(tmpDir, "mina.toml"), []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load("$MINA_TEST_DIR/mina.toml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := filepath.Join(tmpDir, "store.db")
	if cfg.Store.Path != want {
		t.Errorf("Store.Path = %v, want %v", cfg.Store.Path, want)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format string
		code   minaerror.Code
	}{
		{"malformed toml", "[general\n", "toml", minaerror.CodeConfigError},
		{"malformed yaml", "general: [\n", "yaml", minaerror.CodeConfigError},
		{"unknown yaml field", "general:\n  colour: red\n", "yaml", minaerror.CodeConfigError},
		{"bad duration", "[cache]\nttl = \"soon\"\n", "toml", minaerror.CodeConfigError},
		{"unknown format", "", "ini", minaerror.CodeConfigError},
		{"bad level", "[general]\nlog_level = \"loud\"\n", "toml", minaerror.CodeInvalidConfig},
		{"bad format", "general:\n  log_format: xml\n", "yaml", minaerror.CodeInvalidConfig},
		{"bad policy", "[frontend]\nlex_policy = \"retry\"\n", "toml", minaerror.CodeInvalidConfig},
		{"negative errors", "[frontend]\nmax_errors = -1\n", "toml", minaerror.CodeInvalidConfig},
		{"negative history", "repl:\n  history_size: -4\n", "yaml", minaerror.CodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if got := minaerror.GetCode(err); got != tt.code {
				t.Errorf("Expected code %s, got %s (%v)", tt.code, got, err)
			}
		})
	}
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	cfg := DefaultConfig()
	cfg.General.LogLevel = "loud"
	cfg.Store.Enabled = true
	cfg.Store.Path = ""
	cfg.Cache.TTL.Duration = -time.Second

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Expected error, got nil")
	}

	for _, want := range []string{"general.log_level", "store.path", "cache.ttl"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected %q in %q", want, err.Error())
		}
	}
}

func TestConfig_EncodeRoundTrip(t *testing.T) {
	original := DefaultConfig()
	original.Frontend.LexPolicy = "halt"
	original.Cache.TTL.Duration = 45 * time.Second

	for _, format := range []string{"toml", "yaml"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := original.Encode(&buf, format); err != nil {
				t.Fatalf("Encode() error = %v", err)
			}

			decoded, err := Parse(buf.Bytes(), format)
			if err != nil {
				t.Fatalf("Parse() error = %v\n%s", err, buf.String())
			}
			if *decoded != *original {
				t.Errorf("Expected %+v, got %+v", *original, *decoded)
			}
		})
	}

	if err := original.Encode(&bytes.Buffer{}, "ini"); !minaerror.HasCode(err, minaerror.CodeInvalidInput) {
		t.Errorf("Expected %s for unknown format, got %v", minaerror.CodeInvalidInput, err)
	}
}
