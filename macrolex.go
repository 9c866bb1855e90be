// Package macrolex provides location-aware scanning of macro source text.
//
// Every token and comment it returns carries its 0-based line, column and
// byte offset in the original buffer.
//
// # Basic Usage
//
// Create a scanner with the default syntax ("#" / ";") and scan content:
//
//	scanner, err := macrolex.NewScanner()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, tok := range scanner.TokensString("#define MAX 10;") {
//	    fmt.Printf("%s\n", tok)
//	}
//
// # Custom Syntax
//
// Change the macro terminator, or load the syntax from a YAML file:
//
//	scanner, err := macrolex.NewScanner(macrolex.WithEndIdent("=>"))
//
//	settings, err := macrolex.LoadSyntaxFile("syntax.yaml")
//	scanner, err := macrolex.NewScanner(macrolex.WithSyntax(settings))
package macrolex

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/praetorian-inc/macrolex/pkg/scanner"
	"github.com/praetorian-inc/macrolex/pkg/syntax"
	"github.com/praetorian-inc/macrolex/pkg/types"
)

// Re-export commonly used types for convenience.
// Users can import just "github.com/praetorian-inc/macrolex" without subpackages.
type (
	// TextLocation is a 0-based line, column and byte offset.
	TextLocation = types.TextLocation

	// LocatedStr is a slice of source text that knows where it starts.
	LocatedStr = types.LocatedStr

	// Token is one item of the macro token stream.
	Token = types.Token

	// TokenKind classifies a Token.
	TokenKind = types.TokenKind

	// Settings names the macro markers.
	Settings = syntax.Settings

	// Result holds the comments and tokens of one source.
	Result = scanner.Result
)

// Re-export token kinds.
const (
	AlphanumericRun = types.AlphanumericRun
	Symbol          = types.Symbol
	Terminator      = types.Terminator
)

// Scanner scans macro source with a fixed syntax.
// It holds no per-scan state and is safe for concurrent use.
type Scanner struct {
	config *scannerConfig
}

// scannerConfig holds scanner configuration.
type scannerConfig struct {
	settings syntax.Settings
}

// Option configures a Scanner.
type Option func(*scannerConfig)

// WithSyntax replaces both markers.
func WithSyntax(settings Settings) Option {
	return func(c *scannerConfig) {
		c.settings = settings
	}
}

// WithEndIdent sets the macro terminator, keeping the start marker.
func WithEndIdent(endIdent string) Option {
	return func(c *scannerConfig) {
		c.settings.MacroEndIdent = endIdent
	}
}

// NewScanner creates a new Scanner with the given options.
//
// By default, the scanner uses "#" as the macro start marker and ";" as the
// macro terminator. An empty terminator is rejected.
func NewScanner(opts ...Option) (*Scanner, error) {
	config := &scannerConfig{
		settings: syntax.Default(),
	}

	for _, opt := range opts {
		opt(config)
	}

	if err := config.settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid syntax: %w", err)
	}

	return &Scanner{config: config}, nil
}

// Settings returns the syntax the scanner uses.
func (s *Scanner) Settings() Settings {
	return s.config.settings
}

// ScanString runs both the comment and the token scanner over content.
// Invalid UTF-8 is replaced with U+FFFD before scanning; use ScanBytes to reject it instead.
func (s *Scanner) ScanString(content string) Result {
	return scanner.Scan(content, s.config.settings)
}

// ScanBytes scans raw bytes. Content must be valid UTF-8.
func (s *Scanner) ScanBytes(content []byte) (Result, error) {
	if !utf8.Valid(content) {
		return Result{}, fmt.Errorf("content is not valid UTF-8")
	}
	return s.ScanString(string(content)), nil
}

// ScanFile reads and scans a file.
func (s *Scanner) ScanFile(path string) (Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("reading file: %w", err)
	}
	return s.ScanBytes(content)
}

// TokensString returns the macro tokens of content.
// Invalid UTF-8 is replaced with U+FFFD before scanning.
func (s *Scanner) TokensString(content string) []Token {
	it := scanner.NewTokenIterWithSyntax(types.NewLocatedStr(scanner.ValidText(content)), s.config.settings)
	return scanner.Tokens(it)
}

// CommentsString returns the leading "//" comment bodies of content.
// Invalid UTF-8 is replaced with U+FFFD before scanning.
func (s *Scanner) CommentsString(content string) []LocatedStr {
	it := scanner.NewCommentIterWithSyntax(types.NewLocatedStr(scanner.ValidText(content)), s.config.settings)
	return scanner.Comments(it)
}

// Locate returns the location of byte offset within content.
// Offsets past the end resolve to the end of content.
func Locate(content string, offset int) TextLocation {
	return types.ComputeLocation(types.TextLocation{}, content, offset)
}

// LoadSyntaxFile loads syntax settings from a YAML file.
// Use this with WithSyntax to create a scanner with a custom syntax.
//
// Example:
//
//	settings, err := macrolex.LoadSyntaxFile("/path/to/syntax.yaml")
//	if err != nil {
//	    return err
//	}
//	scanner, err := macrolex.NewScanner(macrolex.WithSyntax(settings))
func LoadSyntaxFile(path string) (Settings, error) {
	return syntax.Load(path)
}
