package version

import (
	"regexp"
	"strings"
	"testing"
)

// semverRegex validates semantic versioning format
var semverRegex = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

func TestVersionConstants(t *testing.T) {
	tests := []struct {
		name    string
		version string
	}{
		{"Platform", Platform},
		{"Lexer", Lexer},
		{"Grammar", Grammar},
		{"Parser", Parser},
		{"AST", AST},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.version == "" {
				t.Errorf("%s version is empty", tt.name)
			}
			if !semverRegex.MatchString(tt.version) {
				t.Errorf("%s version %q does not match semver format (x.y.z)", tt.name, tt.version)
			}
		})
	}
}

func TestComponentVersion(t *testing.T) {
	tests := []struct {
		name      string
		component string
		expected  string
	}{
		{"lexer component", "lexer", Lexer},
		{"grammar component", "grammar", Grammar},
		{"parser component", "parser", Parser},
		{"ast component", "ast", AST},
		{"unknown component", "unknown", Platform},
		{"empty component", "", Platform},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ComponentVersion(tt.component)
			if result != tt.expected {
				t.Errorf("ComponentVersion(%q) = %q, want %q", tt.component, result, tt.expected)
			}
		})
	}
}

func TestCurrent(t *testing.T) {
	info := Current()

	if info.Version != Platform {
		t.Errorf("Expected version %s, got %s", Platform, info.Version)
	}
	if info.Schema != ASTSchema || info.Schema == 0 {
		t.Errorf("Expected schema %d, got %d", ASTSchema, info.Schema)
	}
	if !strings.HasPrefix(info.GoVersion, "go") {
		t.Errorf("Expected a Go version, got %q", info.GoVersion)
	}
	if !strings.Contains(info.Platform, "/") {
		t.Errorf("Expected os/arch, got %q", info.Platform)
	}
	for name, v := range info.Modules {
		if v != ComponentVersion(name) {
			t.Errorf("Expected %s version %s, got %s", name, ComponentVersion(name), v)
		}
	}
}
