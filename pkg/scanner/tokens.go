package scanner

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/praetorian-inc/macrolex/pkg/syntax"
	"github.com/praetorian-inc/macrolex/pkg/types"
)

// TokenIter splits source into alphanumeric runs, single-rune symbols and terminators.
//
// Only MacroEndIdent from the settings is consulted. An empty MacroEndIdent never
// matches, so no Terminator tokens are produced.
type TokenIter struct {
	remaining types.LocatedStr
	settings  syntax.Settings
	done      bool
}

// NewTokenIter scans src with the default syntax.
// src must be valid UTF-8; see ValidText.
func NewTokenIter(src types.LocatedStr) *TokenIter {
	return NewTokenIterWithSyntax(src, syntax.Default())
}

// NewTokenIterWithSyntax scans src with the given syntax settings.
func NewTokenIterWithSyntax(src types.LocatedStr, settings syntax.Settings) *TokenIter {
	return &TokenIter{remaining: src, settings: settings}
}

// Next returns the next token. The boolean is false once the source is used up,
// and stays false on every later call.
func (it *TokenIter) Next() (types.Token, bool) {
	if it.done {
		return types.Token{}, false
	}

	it.remaining = it.remaining.TrimStart()
	if it.remaining.IsEmpty() {
		it.done = true
		return types.Token{}, false
	}

	end := it.settings.MacroEndIdent
	if it.remaining.HasPrefix(end) {
		loc := it.remaining.Start
		it.remaining = it.remaining.SliceFrom(len(end))
		return types.NewTerminator(loc), true
	}

	text := it.remaining.Text
	first, size := utf8.DecodeRuneInString(text)
	if !isAlphanumeric(first) {
		return it.emit(types.NewSymbol(it.remaining.Slice(0, size)), size), true
	}

	for i := size; i < len(text); {
		r, n := utf8.DecodeRuneInString(text[i:])
		if !isAlphanumeric(r) || (end != "" && strings.HasPrefix(text[i:], end)) {
			return it.emit(types.NewAlphanumericRun(it.remaining.Slice(0, i)), i), true
		}
		i += n
	}

	// The run reached end of input; an unterminated tail is accepted as is.
	return it.emit(types.NewAlphanumericRun(it.remaining), len(text)), true
}

// emit advances the cursor past consumed bytes and returns tok.
func (it *TokenIter) emit(tok types.Token, consumed int) types.Token {
	it.remaining = it.remaining.SliceFrom(consumed)
	return tok
}

// Remaining returns the unconsumed source.
func (it *TokenIter) Remaining() types.LocatedStr {
	return it.remaining
}

// Settings returns the syntax the iterator was built with.
func (it *TokenIter) Settings() syntax.Settings {
	return it.settings
}

// All adapts the iterator for range-over-func.
func (it *TokenIter) All() iter.Seq[types.Token] {
	return func(yield func(types.Token) bool) {
		for {
			tok, ok := it.Next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

// isAlphanumeric reports whether r is Alphabetic or Numeric in the Unicode sense.
// Alphabetic includes Other_Alphabetic, so combining vowel signs stay inside a run.
func isAlphanumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.Is(unicode.Other_Alphabetic, r)
}
