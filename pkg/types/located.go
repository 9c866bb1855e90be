package types

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/praetorian-inc/macrolex/pkg/search"
)

// LocatedStr is a view into source text together with the location of its first byte.
//
// Derived slices share the original string's backing array; nothing is copied.
// Start must always equal the location reached by walking the original source
// from (0,0,0) through every rune that precedes Text.
type LocatedStr struct {
	Text  string       `json:"text"`
	Start TextLocation `json:"start"`
}

// SubstrMatch describes where FindAnySubstr found a needle.
type SubstrMatch struct {
	Location TextLocation // absolute location of the match
	Offset   int          // byte offset relative to the slice
	Needle   int          // index of the matching needle
}

// NewLocatedStr anchors text at the start of a buffer.
func NewLocatedStr(text string) LocatedStr {
	return LocatedStr{Text: text}
}

// NewLocatedStrAt anchors text at an explicit location.
func NewLocatedStrAt(text string, start TextLocation) LocatedStr {
	return LocatedStr{Text: text, Start: start}
}

// Len returns the length of the slice in bytes.
func (s LocatedStr) Len() int {
	return len(s.Text)
}

// IsEmpty reports whether the slice holds no text.
func (s LocatedStr) IsEmpty() bool {
	return len(s.Text) == 0
}

// HasPrefix reports whether the slice begins with prefix.
// An empty prefix never matches.
func (s LocatedStr) HasPrefix(prefix string) bool {
	return prefix != "" && strings.HasPrefix(s.Text, prefix)
}

// String returns the text of the slice.
func (s LocatedStr) String() string {
	return s.Text
}

// End returns the location just past the last rune of the slice.
func (s LocatedStr) End() TextLocation {
	return ComputeLocation(s.Start, s.Text, len(s.Text))
}

// Slice returns the sub-slice Text[start:end] with its start location recomputed.
//
// The location is derived from a single backward pass over Text[:start]: runes back to
// the nearest '\n' give the column, and every '\n' before that adds a line.
//
// Slice panics if the range is out of bounds or does not fall on rune boundaries.
// Callers are expected to derive ranges from offsets returned by this type.
func (s LocatedStr) Slice(start, end int) LocatedStr {
	if start < 0 || end > len(s.Text) || start > end {
		panic(fmt.Sprintf("types: slice bounds [%d:%d] out of range with length %d", start, end, len(s.Text)))
	}
	if !onRuneBoundary(s.Text, start) || !onRuneBoundary(s.Text, end) {
		panic(fmt.Sprintf("types: slice bounds [%d:%d] split a UTF-8 sequence", start, end))
	}

	loc := s.Start
	loc.Byte += uint64(start)

	before := s.Text[:start]
	var columns uint64
	i := len(before)
	for i > 0 {
		r, size := utf8.DecodeLastRuneInString(before[:i])
		i -= size
		if r == '\n' {
			loc.Line++
			loc.Column = 0
			break
		}
		columns++
	}
	loc.Column += columns
	loc.Line += uint64(strings.Count(before[:i], "\n"))

	return LocatedStr{Text: s.Text[start:end], Start: loc}
}

// SliceFrom returns the sub-slice Text[start:].
func (s LocatedStr) SliceFrom(start int) LocatedStr {
	return s.Slice(start, len(s.Text))
}

// TrimStart drops leading whitespace, advancing the start location over each rune.
// A slice that is all whitespace becomes empty and is anchored at its end.
func (s LocatedStr) TrimStart() LocatedStr {
	for i := 0; i < len(s.Text); {
		r, size := utf8.DecodeRuneInString(s.Text[i:])
		if !unicode.IsSpace(r) {
			s.Text = s.Text[i:]
			return s
		}
		s.Start = s.Start.advance(r, size)
		i += size
	}
	s.Text = s.Text[len(s.Text):]
	return s
}

// FindAnySubstr returns the earliest position where any needle matches.
// When several needles match at the same position the one listed first wins.
// Empty needles never match.
func (s LocatedStr) FindAnySubstr(needles []string) (SubstrMatch, bool) {
	offset, needle, ok := search.FindAnySubstring(s.Text, needles)
	if !ok {
		return SubstrMatch{}, false
	}
	return SubstrMatch{
		Location: ComputeLocation(s.Start, s.Text, offset),
		Offset:   offset,
		Needle:   needle,
	}, true
}

// FindAll returns every non-overlapping needle match, left to right.
// After a match the search resumes just past the matched needle.
func (s LocatedStr) FindAll(needles []string) []SubstrMatch {
	var matches []SubstrMatch
	rest := s
	base := 0
	for {
		m, ok := rest.FindAnySubstr(needles)
		if !ok {
			return matches
		}
		m.Offset += base
		matches = append(matches, m)

		skip := m.Offset - base + len(needles[m.Needle])
		rest = rest.SliceFrom(skip)
		base += skip
	}
}

// FindFunc returns the location and relative byte offset of the first rune
// satisfying pred.
func (s LocatedStr) FindFunc(pred func(rune) bool) (TextLocation, int, bool) {
	loc := s.Start
	for i := 0; i < len(s.Text); {
		r, size := utf8.DecodeRuneInString(s.Text[i:])
		if pred(r) {
			return loc, i, true
		}
		loc = loc.advance(r, size)
		i += size
	}
	return TextLocation{}, 0, false
}

func onRuneBoundary(text string, i int) bool {
	return i == len(text) || utf8.RuneStart(text[i])
}
