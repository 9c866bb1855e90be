package types

import "fmt"

// TextLocation is a line:column:byte position in source text (all 0-based).
//
// Line counts '\n' characters seen so far (a "\r\n" pair counts once).
// Column counts Unicode scalar values since the last '\n'.
// Byte is the absolute UTF-8 byte offset into the original source.
//
// The zero value is the start of a buffer.
type TextLocation struct {
	Line   uint64 `json:"line"`
	Column uint64 `json:"column"`
	Byte   uint64 `json:"byte"`
}

// NewTextLocation builds a TextLocation from its parts.
func NewTextLocation(line, column, byteOffset uint64) TextLocation {
	return TextLocation{Line: line, Column: column, Byte: byteOffset}
}

// Compare orders locations by (Line, Column, Byte).
// Returns -1, 0 or +1.
func (l TextLocation) Compare(other TextLocation) int {
	switch {
	case l.Line != other.Line:
		return cmpUint(l.Line, other.Line)
	case l.Column != other.Column:
		return cmpUint(l.Column, other.Column)
	default:
		return cmpUint(l.Byte, other.Byte)
	}
}

// Less reports whether l sorts before other.
func (l TextLocation) Less(other TextLocation) bool {
	return l.Compare(other) < 0
}

// String renders the location 1-based for humans, e.g. "2:7@16".
// The byte offset stays 0-based.
func (l TextLocation) String() string {
	return fmt.Sprintf("%d:%d@%d", l.Line+1, l.Column+1, l.Byte)
}

// advance moves the location over a single rune of width size bytes.
func (l TextLocation) advance(r rune, size int) TextLocation {
	if r == '\n' {
		l.Line++
		l.Column = 0
	} else {
		l.Column++
	}
	l.Byte += uint64(size)
	return l
}

func cmpUint(a, b uint64) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
