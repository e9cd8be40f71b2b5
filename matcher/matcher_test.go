package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBMPSearchFindsAllNonOverlapping(t *testing.T) {
	matches := BMPSearch("ABABAB", "AB")
	assert.Equal(t, []int{0, 2, 4}, matches)
}

func TestBMPSearchNoMatch(t *testing.T) {
	assert.Nil(t, BMPSearch("ACGTACGT", "TTTT"))
}

func TestBMPSearchPatternLongerThanText(t *testing.T) {
	assert.Nil(t, BMPSearch("AC", "ACGT"))
}

func TestFindFirst(t *testing.T) {
	idx, ok := FindFirst("GGGACGTGGG", "ACGT")
	assert.True(t, ok)
	assert.Equal(t, 3, idx)

	_, ok = FindFirst("GGGGGGGGGG", "ACGT")
	assert.False(t, ok)
}

func TestSimilarityIdentical(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("ACGTACGT", "ACGTACGT"))
}

func TestSimilarityEmpty(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("", ""))
}

func TestSimilarityPartial(t *testing.T) {
	s := Similarity("ACGTACGT", "ACGTACGA")
	assert.InDelta(t, 0.875, s, 0.001)
}

func TestSimilarityMonotonicWithEdits(t *testing.T) {
	base := "ACGTACGTACGT"
	oneEdit := "ACGTACGTACGA"
	twoEdits := "ACGTACGAACGA"
	assert.Greater(t, Similarity(base, oneEdit), Similarity(base, twoEdits))
}
