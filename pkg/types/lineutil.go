package types

import "unicode/utf8"

// ComputeLocation walks text forward from origin, one rune at a time, and returns the
// location of byteOffset. Offsets past the end of text are clamped to the end.
//
// An offset that falls inside a multi-byte rune resolves to the start of that rune.
func ComputeLocation(origin TextLocation, text string, byteOffset int) TextLocation {
	loc := origin
	for i := 0; i < byteOffset && i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if i+size > byteOffset {
			break
		}
		loc = loc.advance(r, size)
		i += size
	}
	return loc
}
