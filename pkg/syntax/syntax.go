// Package syntax holds the markers that delimit macros in scanned source.
package syntax

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultMacroStartMarker opens a macro.
	DefaultMacroStartMarker = "#"
	// DefaultMacroEndIdent closes a macro token stream.
	DefaultMacroEndIdent = ";"
)

// ErrEmptyEndIdent is returned by Validate when no terminator is configured.
var ErrEmptyEndIdent = errors.New("macro_end_ident must not be empty")

// Settings names the macro start marker and the macro terminator.
//
// MacroStartMarker is configuration surface only; the scanners never consult it.
type Settings struct {
	MacroStartMarker string `yaml:"macro_start_marker" json:"macro_start_marker"`
	MacroEndIdent    string `yaml:"macro_end_ident" json:"macro_end_ident"`
}

// Default returns "#" / ";".
func Default() Settings {
	return Settings{
		MacroStartMarker: DefaultMacroStartMarker,
		MacroEndIdent:    DefaultMacroEndIdent,
	}
}

// Validate checks that the settings can drive a scanner.
func (s Settings) Validate() error {
	if s.MacroEndIdent == "" {
		return ErrEmptyEndIdent
	}
	return nil
}

// Parse decodes YAML settings. Keys that are absent keep their defaults.
func Parse(data []byte) (Settings, error) {
	settings := Default()
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("parsing syntax settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// Load reads YAML settings from path.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("reading syntax file: %w", err)
	}
	return Parse(data)
}
