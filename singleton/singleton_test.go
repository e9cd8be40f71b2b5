package singleton

import (
	"testing"

	"github.com/HealthVivo/crass/registry"
	"github.com/HealthVivo/crass/seqtable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutomatonScanFindsAllPatterns(t *testing.T) {
	a := Build([]string{"ACGT", "GGGG"})
	matches := a.Scan("TTACGTTTGGGGAA")
	require.Len(t, matches, 2)
	assert.Equal(t, 5, matches[0].Pos) // "ACGT" ends at index 5
	assert.Equal(t, 0, matches[0].PatternIndex)
	assert.Equal(t, 11, matches[1].Pos) // "GGGG" ends at index 11
	assert.Equal(t, 1, matches[1].PatternIndex)
}

func TestAutomatonScanOverlappingSuffixPatterns(t *testing.T) {
	// "GT" is a suffix of "ACGT"; both should be reported ending at the
	// same position via the output/dictionary link.
	a := Build([]string{"ACGT", "GT"})
	matches := a.Scan("TTACGTTT")
	require.Len(t, matches, 2)
	for _, m := range matches {
		assert.Equal(t, 5, m.Pos)
	}
}

func TestAutomatonScanFirstNoMatch(t *testing.T) {
	a := Build([]string{"TTTTTT"})
	_, found := a.ScanFirst("ACGTACGTACGT")
	assert.False(t, found)
}

func TestSingletonRecruitmentScenario(t *testing.T) {
	dr := "GTTTCAATCGATAGCTACGTATCG"
	reg := registry.New()
	tbl := seqtable.New()
	tok := tbl.AddString(dr)
	rec := NewRecruiter(tbl, []seqtable.Token{tok})

	bases := "TTTTT" + dr + "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
	recruited := rec.Recruit("r2", "", bases, "", reg)
	assert.True(t, recruited)

	group := reg.Group(tok)
	require.Len(t, group, 1)
	assert.Equal(t, dr, group[0].RepeatAt(0))
	assert.Equal(t, 1, group[0].NumRepeats())
}

func TestSingletonRecruitmentSkipsAlreadyFoundReads(t *testing.T) {
	dr := "GTTTCAATCGATAGCTACGTATCG"
	reg := registry.New()
	tbl := seqtable.New()
	tok := tbl.AddString(dr)
	rec := NewRecruiter(tbl, []seqtable.Token{tok})

	bases := "TTTTT" + dr + "AAAA"
	rec.Recruit("r2", "", bases, "", reg)
	recruitedAgain := rec.Recruit("r2", "", bases, "", reg)
	assert.False(t, recruitedAgain)
	assert.Len(t, reg.Group(tok), 1)
}

func TestSingletonRecruitmentNoMatch(t *testing.T) {
	dr := "GTTTCAATCGATAGCTACGTATCG"
	reg := registry.New()
	tbl := seqtable.New()
	tok := tbl.AddString(dr)
	rec := NewRecruiter(tbl, []seqtable.Token{tok})

	recruited := rec.Recruit("r3", "", "AAAAAAAAAAAAAAAAAAAA", "", reg)
	assert.False(t, recruited)
}
