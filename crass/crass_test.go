package crass

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HealthVivo/crass/sequtil"
)

// See finder_test.go's spacer1/spacer2/spacer3 doc comment: these spacers
// share the same boundary-distinctness design so extendPreRepeat's majority
// vote halts exactly on testDR rather than walking into the spacers.
const testDR = "GTTTCAATCGATAGCTACGTATCG"
const testSpacer1 = "AACCGGTTAACCGGTTAACCGGTTAACCGC"
const testSpacer2 = "CTTGGCCAATTGGCCAATTGGCCAATTGCG"
const testSpacer3 = "GGAATTCCGGAATTCCGGAATTCCGGAATT"

func cleanCRISPRRead() string {
	return "AAAAA" + testDR + testSpacer1 + testDR + testSpacer2 + testDR + testSpacer3 + testDR + "TTTTT"
}

func reader(s string) func() (io.Reader, error) {
	return func() (io.Reader, error) { return strings.NewReader(s), nil }
}

func TestRunRegistersCleanCRISPRRead(t *testing.T) {
	fasta := ">r1\n" + cleanCRISPRRead() + "\n"
	result, err := Run(reader(fasta), reader(fasta), DefaultOpts)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.ReadsProcessed)
	assert.Equal(t, 1, result.Stats.LongReadsFound)
	assert.True(t, result.Registry.Found("r1"))

	tok, ok := result.Table.GetToken(sequtil.LexicographicallySmaller(testDR))
	require.True(t, ok)
	assert.Len(t, result.Registry.Group(tok), 1)
}

func TestRunSingletonRecruitment(t *testing.T) {
	r1 := cleanCRISPRRead()
	// The recruiter's automaton is built over pass 1's canonical (not raw)
	// DR strings, so the singleton read must carry the canonical form.
	r2 := "TTTTT" + sequtil.LexicographicallySmaller(testDR) + "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
	pass1FASTA := ">r1\n" + r1 + "\n"
	pass2FASTA := ">r1\n" + r1 + "\n>r2\n" + r2 + "\n"

	result, err := Run(reader(pass1FASTA), reader(pass2FASTA), DefaultOpts)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.SingletonsRecruited)
	tok, ok := result.Table.GetToken(sequtil.LexicographicallySmaller(testDR))
	require.True(t, ok)
	assert.Len(t, result.Registry.Group(tok), 2)
}

func TestRunNoGroupsBelowCovCutoffProducesNilGroup(t *testing.T) {
	fasta := ">r1\n" + cleanCRISPRRead() + "\n"
	opts := DefaultOpts
	opts.CovCutoff = 5
	result, err := Run(reader(fasta), reader(fasta), opts)
	require.NoError(t, err)
	assert.Nil(t, result.Group)
	assert.Equal(t, 1, result.Stats.GroupsBelowCovCutoff)
}

func TestRunTooShortReadIsNotRegistered(t *testing.T) {
	fasta := ">short\nACGTACGTACGTACGT\n"
	result, err := Run(reader(fasta), reader(fasta), DefaultOpts)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Stats.LongReadsFound)
	assert.False(t, result.Registry.Found("short"))
}
