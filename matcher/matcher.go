// Package matcher provides exact substring search and approximate string
// similarity over nucleotide strings, grounded on
// original_source/src/crass/PatternMatcher.cpp's bmpSearch and
// getStringSimilarity.
package matcher

import "github.com/antzucaro/matchr"

// BMPSearch returns the starting offsets of every non-overlapping occurrence
// of pattern in text, scanning left to right with a Boyer-Moore-Horspool bad
// character table. Grounded on
// original_source/src/crass/PatternMatcher.cpp's bmpSearch, which the finder
// calls to locate a repeated k-mer's next occurrence. Unlike the original's
// "first match only" mode, this always returns every match, leaving
// single-match callers to take index 0.
func BMPSearch(text, pattern string) []int {
	n, m := len(text), len(pattern)
	if m == 0 || m > n {
		return nil
	}

	var badChar [256]int
	for i := range badChar {
		badChar[i] = m
	}
	for i := 0; i < m-1; i++ {
		badChar[pattern[i]] = m - 1 - i
	}

	var matches []int
	pos := 0
	for pos <= n-m {
		i := m - 1
		for i >= 0 && pattern[i] == text[pos+i] {
			i--
		}
		if i < 0 {
			matches = append(matches, pos)
			pos += m
			continue
		}
		pos += badChar[text[pos+m-1]]
	}
	return matches
}

// FindFirst returns the offset of the first occurrence of pattern in text
// and whether one was found, for callers that only need a single hit (the
// finder's seed-extension step, which asks "does this k-mer recur at all").
func FindFirst(text, pattern string) (int, bool) {
	idx := BMPSearch(text, pattern)
	if len(idx) == 0 {
		return -1, false
	}
	return idx[0], true
}

// Similarity returns a normalized similarity ratio in [0, 1] between two
// strings, where 1 means identical and 0 means completely dissimilar.
// Grounded on original_source/src/crass/PatternMatcher.cpp's
// getStringSimilarity (1 - editDistance/maxLen), with the edit distance
// itself computed by github.com/antzucaro/matchr.Levenshtein, the same
// library grailbio-bio/util/distance_test.go cross-checks its own
// hand-rolled Levenshtein against.
func Similarity(s1, s2 string) float64 {
	maxLen := len(s1)
	if len(s2) > maxLen {
		maxLen = len(s2)
	}
	if maxLen == 0 {
		return 1
	}
	dist := matchr.Levenshtein(s1, s2)
	return 1 - float64(dist)/float64(maxLen)
}
