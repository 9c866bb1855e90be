package prefilter

import (
	"sort"
	"sync"

	"github.com/cloudflare/ahocorasick"
)

// Prefilter uses Aho-Corasick to find which needles occur anywhere in a haystack.
type Prefilter struct {
	mu            sync.Mutex // ahocorasick.Matcher.Match is not safe for concurrent use
	matcher       *ahocorasick.Matcher
	keywords      []string         // unique non-empty needle at each dictionary index
	keywordNeedle map[string][]int // keyword -> original needle indices
}

// New creates a prefilter over needles. Empty needles are never reported.
func New(needles []string) *Prefilter {
	pf := &Prefilter{
		keywordNeedle: make(map[string][]int),
	}

	for i, needle := range needles {
		if needle == "" {
			continue
		}
		if _, seen := pf.keywordNeedle[needle]; !seen {
			pf.keywords = append(pf.keywords, needle)
		}
		pf.keywordNeedle[needle] = append(pf.keywordNeedle[needle], i)
	}

	if len(pf.keywords) > 0 {
		pf.matcher = ahocorasick.NewStringMatcher(pf.keywords)
	}

	return pf
}

// Present returns the sorted indices of needles found in haystack.
func (pf *Prefilter) Present(haystack []byte) []int {
	if pf.matcher == nil || len(haystack) == 0 {
		return nil
	}

	pf.mu.Lock()
	hits := pf.matcher.Match(haystack)
	pf.mu.Unlock()

	var result []int
	for _, hit := range hits {
		result = append(result, pf.keywordNeedle[pf.keywords[hit]]...)
	}
	sort.Ints(result)
	return result
}

// Any reports whether at least one needle occurs in haystack.
func (pf *Prefilter) Any(haystack []byte) bool {
	return len(pf.Present(haystack)) > 0
}
