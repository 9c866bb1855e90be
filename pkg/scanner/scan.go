// Package scanner provides pull-based scanners over located source text: one for
// runs of "//" line comments and one for macro tokens.
//
// Scanners are cursors. Each call to Next consumes source left to right and never
// revisits it. A scanner is not safe for concurrent use, but any number of scanners
// may read the same source string at once.
package scanner

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/praetorian-inc/macrolex/pkg/syntax"
	"github.com/praetorian-inc/macrolex/pkg/types"
)

// Result holds everything both scanners produce for one source.
type Result struct {
	Comments []types.LocatedStr `json:"comments"`
	Tokens   []types.Token      `json:"tokens"`
}

// ValidText returns src with every invalid UTF-8 sequence replaced by U+FFFD.
// Valid input is returned unchanged.
func ValidText(src string) string {
	if utf8.ValidString(src) {
		return src
	}
	return strings.ToValidUTF8(src, string(utf8.RuneError))
}

// Scan wraps src at (0,0,0) and runs the comment and token scanners over their
// own copies of it. Invalid UTF-8 is repaired with ValidText first, so byte
// offsets then refer to the repaired text.
func Scan(src string, settings syntax.Settings) Result {
	located := types.NewLocatedStr(ValidText(src))
	return Result{
		Comments: Comments(NewCommentIterWithSyntax(located, settings)),
		Tokens:   Tokens(NewTokenIterWithSyntax(located, settings)),
	}
}

// Comments drains it.
func Comments(it *CommentIter) []types.LocatedStr {
	return slices.Collect(it.All())
}

// Tokens drains it.
func Tokens(it *TokenIter) []types.Token {
	return slices.Collect(it.All())
}
