package types

import "fmt"

// TokenKind classifies a macro token.
type TokenKind int

const (
	// AlphanumericRun is a maximal run of letters and digits.
	AlphanumericRun TokenKind = iota
	// Symbol is a single non-alphanumeric rune.
	Symbol
	// Terminator is the configured macro end marker.
	Terminator
)

var tokenKindNames = map[TokenKind]string{
	AlphanumericRun: "alphanumeric",
	Symbol:          "symbol",
	Terminator:      "terminator",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k TokenKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *TokenKind) UnmarshalText(data []byte) error {
	kind, err := ParseTokenKind(string(data))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// ParseTokenKind is the inverse of TokenKind.String.
func ParseTokenKind(name string) (TokenKind, error) {
	for kind, n := range tokenKindNames {
		if n == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown token kind: %q", name)
}

// Token is one item produced by the macro token scanner.
//
// For AlphanumericRun and Symbol, Text holds the token and Location equals Text.Start.
// For Terminator, Text is the zero value and Location is where the marker began;
// the zero Text is left out of JSON.
type Token struct {
	Kind     TokenKind    `json:"kind"`
	Text     LocatedStr   `json:"text,omitzero"`
	Location TextLocation `json:"location"`
}

// NewAlphanumericRun wraps s as an alphanumeric token.
func NewAlphanumericRun(s LocatedStr) Token {
	return Token{Kind: AlphanumericRun, Text: s, Location: s.Start}
}

// NewSymbol wraps s as a symbol token.
func NewSymbol(s LocatedStr) Token {
	return Token{Kind: Symbol, Text: s, Location: s.Start}
}

// NewTerminator builds a terminator token at loc.
func NewTerminator(loc TextLocation) Token {
	return Token{Kind: Terminator, Location: loc}
}

// String renders the token for diagnostics, e.g. `symbol "+" at 1:9@8`.
func (t Token) String() string {
	if t.Kind == Terminator {
		return fmt.Sprintf("%s at %s", t.Kind, t.Location)
	}
	return fmt.Sprintf("%s %q at %s", t.Kind, t.Text.Text, t.Location)
}
