package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeAddsCounters(t *testing.T) {
	a := Stats{ReadsProcessed: 10, LongReadsFound: 2}
	b := Stats{ReadsProcessed: 5, LongReadsFound: 1, SingletonsRecruited: 3}

	merged := a.Merge(b)
	assert.Equal(t, 15, merged.ReadsProcessed)
	assert.Equal(t, 3, merged.LongReadsFound)
	assert.Equal(t, 3, merged.SingletonsRecruited)
}

func TestMergeIsNotDestructive(t *testing.T) {
	a := Stats{ReadsProcessed: 10}
	b := Stats{ReadsProcessed: 5}
	_ = a.Merge(b)
	assert.Equal(t, 10, a.ReadsProcessed)
}
