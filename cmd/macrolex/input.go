package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/praetorian-inc/macrolex/pkg/syntax"
	"github.com/praetorian-inc/macrolex/pkg/types"
)

// stdinName is the display name of content read from "-".
const stdinName = "<stdin>"

// Flags shared by the commands that read a single source.
var (
	syntaxPath   string
	endIdent     string
	outputFormat string
	colorMode    string
)

func addSyntaxFlags(c *cobra.Command) {
	c.Flags().StringVar(&syntaxPath, "syntax", "", "Path to syntax settings YAML file")
	c.Flags().StringVar(&endIdent, "end-ident", "", "Macro terminator (overrides --syntax)")
}

func addOutputFlags(c *cobra.Command) {
	c.Flags().StringVar(&outputFormat, "format", "human", "Output format: human, json")
	c.Flags().StringVar(&colorMode, "color", "auto", "Color output: auto, always, never")
}

// loadSettings builds syntax settings from --syntax and --end-ident.
func loadSettings() (syntax.Settings, error) {
	settings := syntax.Default()
	if syntaxPath != "" {
		var err error
		settings, err = syntax.Load(syntaxPath)
		if err != nil {
			return syntax.Settings{}, err
		}
	}
	if endIdent != "" {
		settings.MacroEndIdent = endIdent
	}
	if err := settings.Validate(); err != nil {
		return syntax.Settings{}, err
	}
	return settings, nil
}

// readSource reads path, or stdin when path is "-". The content must be UTF-8 text.
func readSource(cmd *cobra.Command, path string) (string, types.Provenance, error) {
	var (
		data []byte
		prov types.Provenance
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", nil, fmt.Errorf("reading stdin: %w", err)
		}
		prov = types.InlineProvenance{Name: stdinName}
	} else {
		data, err = os.ReadFile(path)
		if err != nil {
			return "", nil, fmt.Errorf("reading %s: %w", path, err)
		}
		prov = types.FileProvenance{FilePath: path}
	}

	if !utf8.Valid(data) {
		return "", nil, fmt.Errorf("%s is not valid UTF-8 text", prov.Path())
	}
	return string(data), prov, nil
}

// styles holds color formatters for human output
type styles struct {
	heading      *color.Color
	id           *color.Color
	location     *color.Color
	metadata     *color.Color
	alphanumeric *color.Color
	symbol       *color.Color
	terminator   *color.Color
	text         *color.Color
}

// newStyles creates color formatters.
// enabled=false respects --color=never and the NO_COLOR env var
func newStyles(enabled bool) *styles {
	s := &styles{
		heading:      color.New(color.Bold),
		id:           color.New(color.FgHiGreen),
		location:     color.New(color.FgHiBlue),
		metadata:     color.New(color.FgHiBlue),
		alphanumeric: color.New(color.FgHiWhite),
		symbol:       color.New(color.FgYellow),
		terminator:   color.New(color.Bold, color.FgHiRed),
		text:         color.New(color.FgGreen),
	}

	if !enabled {
		for _, c := range []*color.Color{s.heading, s.id, s.location, s.metadata, s.alphanumeric, s.symbol, s.terminator, s.text} {
			c.DisableColor()
		}
	}

	return s
}

// kind returns the formatter for a token kind.
func (s *styles) kind(k types.TokenKind) *color.Color {
	switch k {
	case types.Symbol:
		return s.symbol
	case types.Terminator:
		return s.terminator
	default:
		return s.alphanumeric
	}
}

// stylesFor applies a --color mode and returns matching formatters.
func stylesFor(mode string) (*styles, error) {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	case "auto", "":
		// Check if stdout is a TTY and NO_COLOR is not set
		color.NoColor = !term.IsTerminal(int(os.Stdout.Fd())) || os.Getenv("NO_COLOR") != ""
	default:
		return nil, fmt.Errorf("unknown color mode: %s", mode)
	}
	return newStyles(!color.NoColor), nil
}

func writeJSON(cmd *cobra.Command, v interface{}) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
