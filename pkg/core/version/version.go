// ============================================================================
// Mina - Language Front-End
// ============================================================================
//
// Package:     version
// Description: Central version management for the front-end components
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package version

import (
	"runtime"

	"github.com/msto63/mina/foundation/mina/astpb"
)

// Version constants for the Mina front-end
const (
	// Release version of the mina binary
	Platform = "0.1.0"

	// Component versions
	Lexer   = "0.1.0"
	Grammar = "0.1.0"
	Parser  = "0.1.0"
	AST     = "0.1.0"
)

// ASTSchema is the serialization schema version written by astpb
const ASTSchema = astpb.SchemaVersion

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "lexer":
		return Lexer
	case "grammar":
		return Grammar
	case "parser":
		return Parser
	case "ast":
		return AST
	default:
		return Platform
	}
}

// Info describes the running binary
type Info struct {
	Version   string            `json:"version" yaml:"version"`
	Schema    uint32            `json:"ast_schema" yaml:"ast_schema"`
	GoVersion string            `json:"go_version" yaml:"go_version"`
	Platform  string            `json:"platform" yaml:"platform"`
	Modules   map[string]string `json:"components" yaml:"components"`
}

// Current returns the version info of this build
func Current() Info {
	return Info{
		Version:   Platform,
		Schema:    ASTSchema,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		Modules: map[string]string{
			"lexer":   Lexer,
			"grammar": Grammar,
			"parser":  Parser,
			"ast":     AST,
		},
	}
}
