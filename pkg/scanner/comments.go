package scanner

import (
	"iter"

	"github.com/praetorian-inc/macrolex/pkg/syntax"
	"github.com/praetorian-inc/macrolex/pkg/types"
)

const commentPrefix = "//"

// lineBreaks is ordered so "\r\n" wins over the "\n" it ends with.
var lineBreaks = []string{"\r\n", "\n"}

// CommentIter yields the bodies of consecutive "//" lines.
//
// It stops at the first line that is not a line comment, or at end of input, and
// stays exhausted from then on. Leading whitespace (blank lines included) before
// each comment is skipped.
type CommentIter struct {
	remaining types.LocatedStr
	settings  syntax.Settings
	done      bool
}

// NewCommentIter scans src with the default syntax.
// src must be valid UTF-8; see ValidText.
func NewCommentIter(src types.LocatedStr) *CommentIter {
	return NewCommentIterWithSyntax(src, syntax.Default())
}

// NewCommentIterWithSyntax scans src with the given syntax settings.
func NewCommentIterWithSyntax(src types.LocatedStr, settings syntax.Settings) *CommentIter {
	return &CommentIter{remaining: src, settings: settings}
}

// Next returns the next comment body, without the "//" prefix and line break.
// The boolean is false once the comment run has ended.
func (it *CommentIter) Next() (types.LocatedStr, bool) {
	if it.done {
		return types.LocatedStr{}, false
	}

	it.remaining = it.remaining.TrimStart()
	if !it.remaining.HasPrefix(commentPrefix) {
		it.done = true
		return types.LocatedStr{}, false
	}
	it.remaining = it.remaining.SliceFrom(len(commentPrefix))

	bodyEnd, nextLine := it.remaining.Len(), it.remaining.Len()
	if m, ok := it.remaining.FindAnySubstr(lineBreaks); ok {
		bodyEnd = m.Offset
		nextLine = m.Offset + len(lineBreaks[m.Needle])
	}

	body := it.remaining.Slice(0, bodyEnd)
	it.remaining = it.remaining.SliceFrom(nextLine)
	return body, true
}

// Remaining returns the unconsumed source. After exhaustion it starts at the
// first non-comment line.
func (it *CommentIter) Remaining() types.LocatedStr {
	return it.remaining
}

// Settings returns the syntax the iterator was built with.
func (it *CommentIter) Settings() syntax.Settings {
	return it.settings
}

// All adapts the iterator for range-over-func.
func (it *CommentIter) All() iter.Seq[types.LocatedStr] {
	return func(yield func(types.LocatedStr) bool) {
		for {
			body, ok := it.Next()
			if !ok || !yield(body) {
				return
			}
		}
	}
}
