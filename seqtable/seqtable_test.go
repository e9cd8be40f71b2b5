package seqtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddStringAssignsDenseTokens(t *testing.T) {
	tbl := New()
	t1 := tbl.AddString("ACGTACGT")
	t2 := tbl.AddString("TTTTGGGG")
	assert.NotEqual(t, t1, t2)
	assert.Equal(t, 2, tbl.Len())
}

func TestAddStringIsIdempotent(t *testing.T) {
	tbl := New()
	t1 := tbl.AddString("ACGTACGT")
	t2 := tbl.AddString("ACGTACGT")
	assert.Equal(t, t1, t2)
	assert.Equal(t, 1, tbl.Len())
}

func TestGetTokenUnknownString(t *testing.T) {
	tbl := New()
	_, ok := tbl.GetToken("ACGTACGT")
	assert.False(t, ok)
}

func TestGetTokenKnownString(t *testing.T) {
	tbl := New()
	want := tbl.AddString("ACGTACGT")
	got, ok := tbl.GetToken("ACGTACGT")
	assert.True(t, ok)
	assert.Equal(t, want, got)
}

func TestStringOfRoundTrip(t *testing.T) {
	tbl := New()
	tok := tbl.AddString("GATTACA")
	assert.Equal(t, "GATTACA", tbl.StringOf(tok))
}

func TestHashCollisionDoesNotMergeDistinctStrings(t *testing.T) {
	tbl := New()
	strs := []string{"A", "C", "G", "T", "AC", "GT", "ACGT", "TGCA", "AAAA", "CCCC"}
	toks := make(map[Token]string, len(strs))
	for _, s := range strs {
		tok := tbl.AddString(s)
		if existing, ok := toks[tok]; ok {
			t.Fatalf("token collision between %q and %q", existing, s)
		}
		toks[tok] = s
	}
	assert.Equal(t, len(strs), tbl.Len())
}
