// Package search finds the earliest occurrence of any of several prioritized needles.
package search

import (
	"strings"
	"unicode/utf8"

	"github.com/praetorian-inc/macrolex/pkg/prefilter"
)

// FindAnySubstring scans haystack rune by rune and, at each rune start, tests the
// needles in order for a literal match. It returns the byte position of the first
// match and the index of the needle that matched there.
//
// Needles earlier in the list win ties at the same position. An empty needle never
// matches, and a needle longer than the rest of the haystack simply fails.
func FindAnySubstring(haystack string, needles []string) (pos, needle int, ok bool) {
	if len(needles) == 0 {
		return 0, 0, false
	}

	for i := 0; i < len(haystack); {
		rest := haystack[i:]
		for j, n := range needles {
			if n != "" && strings.HasPrefix(rest, n) {
				return i, j, true
			}
		}
		_, size := utf8.DecodeRuneInString(rest)
		i += size
	}

	return 0, 0, false
}

// Searcher runs FindAnySubstring over a fixed needle list, skipping needles that an
// Aho-Corasick prefilter shows are absent from the haystack.
// A Searcher is safe for concurrent use.
type Searcher struct {
	needles []string
	filter  *prefilter.Prefilter
}

// NewSearcher prepares a searcher for needles, in priority order.
func NewSearcher(needles ...string) *Searcher {
	return &Searcher{
		needles: append([]string(nil), needles...),
		filter:  prefilter.New(needles),
	}
}

// Needles returns the needle list in priority order.
func (s *Searcher) Needles() []string {
	return append([]string(nil), s.needles...)
}

// Find returns the same result as FindAnySubstring(haystack, s.Needles()).
func (s *Searcher) Find(haystack string) (pos, needle int, ok bool) {
	candidates := s.Narrow(haystack)
	if candidates == nil {
		return 0, 0, false
	}
	return FindAnySubstring(haystack, candidates)
}

// Narrow returns the needle list with every needle absent from haystack blanked out,
// or nil when none is present. Indices keep their meaning, so the result can be reused
// for repeated searches over sub-slices of the same haystack.
func (s *Searcher) Narrow(haystack string) []string {
	present := s.filter.Present([]byte(haystack))
	if len(present) == 0 {
		return nil
	}

	candidates := make([]string, len(s.needles))
	for _, i := range present {
		candidates[i] = s.needles[i]
	}
	return candidates
}
