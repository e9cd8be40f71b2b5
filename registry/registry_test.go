package registry

import (
	"testing"

	"github.com/HealthVivo/crass/reads"
	"github.com/HealthVivo/crass/seqtable"
	"github.com/stretchr/testify/assert"
)

func TestRegisterPreservesInsertionOrder(t *testing.T) {
	reg := New()
	tbl := seqtable.New()
	tok := tbl.AddString("GTTTCAATCGATAGCTACGTATCG")

	r1 := reads.New("r1", "", "ACGTACGTACGT", "")
	r1.AppendInterval(reads.Interval{0, 4})
	r1.AppendInterval(reads.Interval{8, 12})
	r2 := reads.New("r2", "", "ACGTACGTACGT", "")
	r2.AppendInterval(reads.Interval{0, 4})
	r2.AppendInterval(reads.Interval{8, 12})

	reg.Register(tok, r1)
	reg.Register(tok, r2)

	group := reg.Group(tok)
	assert.Equal(t, []*reads.Read{r1, r2}, group)
	assert.Equal(t, 2, reg.Len())
}

func TestRegisterFreezesRead(t *testing.T) {
	reg := New()
	tbl := seqtable.New()
	tok := tbl.AddString("ACGT")
	r := reads.New("r1", "", "ACGTACGT", "")
	r.AppendInterval(reads.Interval{0, 4})
	reg.Register(tok, r)
	assert.Panics(t, func() { r.AppendInterval(reads.Interval{4, 8}) })
}

func TestFoundTracksRegisteredHeaders(t *testing.T) {
	reg := New()
	tbl := seqtable.New()
	tok := tbl.AddString("ACGT")
	assert.False(t, reg.Found("r1"))
	r := reads.New("r1", "", "ACGTACGT", "")
	r.AppendInterval(reads.Interval{0, 4})
	reg.Register(tok, r)
	assert.True(t, reg.Found("r1"))
}

func TestGroupUnknownTokenIsEmpty(t *testing.T) {
	reg := New()
	assert.Nil(t, reg.Group(seqtable.Token(99)))
}
