package reads

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildCleanCRISPRRead() *Read {
	dr := "GTTTCAATCGATAGCTACGTATCG"
	spacer := "CGATCGATCGATCGATCGATCGATCGATCG"
	bases := "AAAAA" + dr + spacer + dr + spacer + dr + spacer + dr + "TTTTT"
	r := New("r1", "", bases, "")
	pos := 5
	for i := 0; i < 4; i++ {
		r.AppendInterval(Interval{pos, pos + len(dr)})
		pos += len(dr)
		if i < 3 {
			pos += len(spacer)
		}
	}
	return r
}

func TestCleanCRISPRReadScenario(t *testing.T) {
	r := buildCleanCRISPRRead()
	require.Equal(t, 4, r.NumRepeats())
	require.Equal(t, 3, r.NumSpacers())
	for i := 0; i < r.NumRepeats(); i++ {
		assert.Equal(t, "GTTTCAATCGATAGCTACGTATCG", r.RepeatAt(i))
	}
	for i := 0; i < r.NumSpacers(); i++ {
		assert.Equal(t, 30, len(r.SpacerAt(i)))
	}
	assert.True(t, r.WellFormed())
}

func TestAppendIntervalRejectsOutOfOrder(t *testing.T) {
	r := New("r1", "", "ACGTACGTACGT", "")
	r.AppendInterval(Interval{4, 8})
	assert.Panics(t, func() { r.AppendInterval(Interval{0, 4}) })
}

func TestAppendIntervalRejectsOverlap(t *testing.T) {
	r := New("r1", "", "ACGTACGTACGT", "")
	r.AppendInterval(Interval{0, 4})
	assert.Panics(t, func() { r.AppendInterval(Interval{2, 6}) })
}

func TestAppendIntervalRejectsOutOfBounds(t *testing.T) {
	r := New("r1", "", "ACGT", "")
	assert.Panics(t, func() { r.AppendInterval(Interval{2, 10}) })
}

func TestFreezeBlocksMutation(t *testing.T) {
	r := New("r1", "", "ACGTACGTACGT", "")
	r.AppendInterval(Interval{0, 4})
	r.Freeze()
	assert.Panics(t, func() { r.AppendInterval(Interval{8, 12}) })
	assert.Panics(t, func() { r.Reset() })
}

func TestResetClearsIntervals(t *testing.T) {
	r := New("r1", "", "ACGTACGTACGT", "")
	r.AppendInterval(Interval{0, 4})
	r.Reset()
	assert.Equal(t, 0, r.NumRepeats())
}

func TestCanonicalDR(t *testing.T) {
	r := New("r1", "", "TTTTACGTACGTACGT", "")
	r.AppendInterval(Interval{4, 12})
	got := r.CanonicalDR()
	assert.LessOrEqual(t, got, sequtilRevComp(got))
}

func sequtilRevComp(s string) string {
	// local helper to avoid importing sequtil twice in the test; mirrors
	// sequtil.ReverseComplement for the assertion above.
	comp := map[byte]byte{'A': 'T', 'T': 'A', 'C': 'G', 'G': 'C'}
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		out[len(s)-1-i] = comp[s[i]]
	}
	return string(out)
}

func TestRunLengthRoundTripOnRead(t *testing.T) {
	orig := "AAACCGGGGTACGT"
	r := New("r1", "", orig, "")
	r.Encode()
	assert.Less(t, len(r.Bases), len(orig))
	r.Decode()
	assert.Equal(t, orig, r.Bases)
	assert.Nil(t, r.RLEMultiplicities)
}

func TestWellFormedRejectsTooFewIntervals(t *testing.T) {
	r := New("r1", "", "ACGTACGTACGT", "")
	r.AppendInterval(Interval{0, 4})
	assert.False(t, r.WellFormed())
}
