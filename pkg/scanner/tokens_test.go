package scanner

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praetorian-inc/macrolex/pkg/syntax"
	"github.com/praetorian-inc/macrolex/pkg/types"
)

func run(text string, line, col, byteOffset uint64) types.Token {
	return types.NewAlphanumericRun(located(text, line, col, byteOffset))
}

func sym(text string, line, col, byteOffset uint64) types.Token {
	return types.NewSymbol(located(text, line, col, byteOffset))
}

func term(line, col, byteOffset uint64) types.Token {
	return types.NewTerminator(types.NewTextLocation(line, col, byteOffset))
}

func TestTokenIter(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		settings syntax.Settings
		output   []types.Token
	}{
		{
			name:  "alphanumeric and symbol tokens",
			input: "hi! Test+\nLine2 2Line;",
			output: []types.Token{
				run("hi", 0, 0, 0),
				sym("!", 0, 2, 2),
				run("Test", 0, 4, 4),
				sym("+", 0, 8, 8),
				run("Line2", 1, 0, 10),
				run("2Line", 1, 6, 16),
				term(1, 11, 21),
			},
		},
		{
			name:   "terminator at start",
			input:  ";",
			output: []types.Token{term(0, 0, 0)},
		},
		{
			name:  "multi-byte symbols",
			input: "+§&\n-😀_;",
			output: []types.Token{
				sym("+", 0, 0, 0),
				sym("§", 0, 1, 1),
				sym("&", 0, 2, 3),
				sym("-", 1, 0, 5),
				sym("😀", 1, 1, 6),
				sym("_", 1, 2, 10),
				term(1, 3, 11),
			},
		},
		{
			name:  "multi-byte letters and digits",
			input: "héllo wörld٣ 日本;",
			output: []types.Token{
				run("héllo", 0, 0, 0),
				run("wörld٣", 0, 6, 7),
				run("日本", 0, 13, 16),
				term(0, 15, 22),
			},
		},
		{
			name:  "combining vowel sign stays in run",
			input: "का;",
			output: []types.Token{
				run("का", 0, 0, 0),
				term(0, 2, 6),
			},
		},
		{
			name:  "leading other-alphabetic mark starts a run",
			input: "\u0345x;",
			output: []types.Token{
				run("\u0345x", 0, 0, 0),
				term(0, 2, 3),
			},
		},
		{
			name:  "crlf between tokens",
			input: "a\r\nb\r\n;",
			output: []types.Token{
				run("a", 0, 0, 0),
				run("b", 1, 0, 3),
				term(2, 0, 6),
			},
		},
		{
			name:  "unterminated tail",
			input: "foo bar",
			output: []types.Token{
				run("foo", 0, 0, 0),
				run("bar", 0, 4, 4),
			},
		},
		{
			name:     "alphanumeric terminator interrupts run",
			input:    "abcEND xEND",
			settings: syntax.Settings{MacroStartMarker: "#", MacroEndIdent: "END"},
			output: []types.Token{
				run("abc", 0, 0, 0),
				term(0, 3, 3),
				run("x", 0, 7, 7),
				term(0, 8, 8),
			},
		},
		{
			name:     "multi-character symbol terminator",
			input:    "a::b:c",
			settings: syntax.Settings{MacroStartMarker: "#", MacroEndIdent: "::"},
			output: []types.Token{
				run("a", 0, 0, 0),
				term(0, 1, 1),
				run("b", 0, 3, 3),
				sym(":", 0, 4, 4),
				run("c", 0, 5, 5),
			},
		},
		{
			name:     "empty terminator never matches",
			input:    "a;b",
			settings: syntax.Settings{MacroStartMarker: "#"},
			output: []types.Token{
				run("a", 0, 0, 0),
				sym(";", 0, 1, 1),
				run("b", 0, 2, 2),
			},
		},
		{
			name:  "comment markers are symbols",
			input: "// x",
			output: []types.Token{
				sym("/", 0, 0, 0),
				sym("/", 0, 1, 1),
				run("x", 0, 3, 3),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := tt.settings
			if settings == (syntax.Settings{}) {
				settings = syntax.Default()
			}
			got := Tokens(NewTokenIterWithSyntax(types.NewLocatedStr(tt.input), settings))
			if diff := cmp.Diff(tt.output, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTokenIter_EmptySource(t *testing.T) {
	for _, input := range []string{"", " ", "\n", "\r\n"} {
		_, ok := NewTokenIter(types.NewLocatedStr(input)).Next()
		assert.False(t, ok, "input %q", input)
	}
}

func TestTokenIter_ExhaustionIsIdempotent(t *testing.T) {
	it := NewTokenIter(types.NewLocatedStr(";"))

	tok, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, term(0, 0, 0), tok)

	for i := 0; i < 3; i++ {
		_, ok = it.Next()
		assert.False(t, ok, "call %d after exhaustion", i)
	}
}

func TestTokenIter_UnterminatedTailEndsSequence(t *testing.T) {
	it := NewTokenIter(types.NewLocatedStr("tail"))

	tok, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, run("tail", 0, 0, 0), tok)

	_, ok = it.Next()
	assert.False(t, ok)
	assert.Equal(t, located("", 0, 4, 4), it.Remaining())
}

func TestTokenIter_LocationsAreMonotonic(t *testing.T) {
	sources := []string{
		"hi! Test+\nLine2 2Line;",
		"+§&\n-😀_;",
		"#define X(a, b) a ## b;\r\n#x 1;\n\n  ;;;",
		"日本語\n한국어\r\nEnglish 123 ٣٤;",
	}

	for _, src := range sources {
		var prevEnd uint64
		for tok := range NewTokenIter(types.NewLocatedStr(src)).All() {
			require.GreaterOrEqual(t, tok.Location.Byte, prevEnd, "source %q token %s", src, tok)

			width := uint64(tok.Text.Len())
			if tok.Kind == types.Terminator {
				width = uint64(len(syntax.DefaultMacroEndIdent))
			}
			prevEnd = tok.Location.Byte + width
		}
	}
}

func TestTokenIter_TokensMatchSource(t *testing.T) {
	src := "#define X(a, b) a ## b;\r\n#x 1;\n\n  ;€ 😀z"
	origin := types.TextLocation{}

	for tok := range NewTokenIter(types.NewLocatedStr(src)).All() {
		offset := int(tok.Location.Byte)
		require.Equal(t, types.ComputeLocation(origin, src, offset), tok.Location, "token %s", tok)
		if tok.Kind == types.Terminator {
			require.Equal(t, ";", src[offset:offset+1])
			continue
		}
		require.Equal(t, tok.Text.Text, src[offset:offset+tok.Text.Len()])
		if tok.Kind == types.Symbol {
			require.Equal(t, 1, len([]rune(tok.Text.Text)), "symbol %q must be one rune", tok.Text.Text)
		}
	}
}

func TestTokenIter_RemainingAdvances(t *testing.T) {
	it := NewTokenIter(types.NewLocatedStr("ab cd;"))

	_, ok := it.Next()
	require.True(t, ok)

	assert.Equal(t, located(" cd;", 0, 2, 2), it.Remaining())
	assert.Equal(t, syntax.Default(), it.Settings())
}
