// Package align implements the Aligner: a banded, affine-gap local alignment
// of slave direct repeats against a master direct repeat, plus consensus and
// coverage tracking over a registered group's reads. Grounded on
// soniakeys-bio/align.go's AlignLocal (Smith-Waterman local alignment,
// backtrack-to-max-interior-cell) and soniakeys-bio/align_affine.go's
// three-level (gap-in-s1/match-mismatch/gap-in-s2) affine-gap DP, combined
// into one banded local+affine aligner; the gap and score constants and the
// three-outcome-flag model (reversed/failed/score_equal) come from
// original_source/src/crass/Aligner.h.
package align

import (
	"blainsmith.com/go/seahash"

	"github.com/HealthVivo/crass/sequtil"
	"github.com/HealthVivo/crass/seqtable"
)

// Opts configures the aligner's scoring and banding. Defaults match
// Aligner.h's constructor parameters (gapo=5, gape=2) and its scoring matrix
// (sa=1, sb=-3, ambiguous=0); min_score and the band width are this repo's
// own choices since a banded aligner is an original addition over Aligner.h's
// unbanded ksw_* call.
type Opts struct {
	GapOpen, GapExtend int
	Match, Mismatch    int
	MinScore           int
	// BandWidth bounds how far the alignment's diagonal may drift from the
	// zero-offset diagonal. Master and slave DRs are always close in
	// length (direct repeats span at most a few dozen bases), so a corridor
	// of this width covers every biologically plausible offset without
	// computing the full O(n*m) matrix.
	BandWidth int
}

// DefaultOpts holds the documented scoring constants for the aligner.
var DefaultOpts = Opts{
	GapOpen:    5,
	GapExtend:  2,
	Match:      1,
	Mismatch:   -3,
	MinScore:   5,
	BandWidth:  12,
}

func score(a, b byte, opts Opts) int {
	if a == 4 || b == 4 {
		return 0 // ambiguous
	}
	if a == b {
		return opts.Match
	}
	return opts.Mismatch
}

// alignResult is the outcome of one banded local affine-gap alignment.
type alignResult struct {
	score              int
	queryStart         int // 0-based start of the aligned segment in the query (master)
	targetStart        int // 0-based start of the aligned segment in the target (slave)
}

const negInf = -1 << 30

// bandedLocalAffine computes the best local alignment of query against
// target restricted to the diagonal corridor |i-j| <= band. Grounded on
// align_affine.go's sg1/smm/sg2 three-matrix recurrence, floored at zero the
// way soniakeys-bio/align.go's AlignLocal floors its single match/mismatch
// matrix for local (rather than global) alignment.
func bandedLocalAffine(query, target []byte, opts Opts) alignResult {
	n, m := len(query), len(target)
	stride := m + 1

	h := make([]int, (n+1)*stride) // best score ending here, any state, floored at 0
	e := make([]int, (n+1)*stride) // best score ending here with a gap in query (consumes a target base)
	f := make([]int, (n+1)*stride) // best score ending here with a gap in target (consumes a query base)
	for i := range e {
		e[i] = negInf
		f[i] = negInf
	}

	type cell struct{ i, j int }
	var best cell
	bestScore := 0

	for i := 1; i <= n; i++ {
		jLo := i - opts.BandWidth
		if jLo < 1 {
			jLo = 1
		}
		jHi := i + opts.BandWidth
		if jHi > m {
			jHi = m
		}
		for j := jLo; j <= jHi; j++ {
			x := i*stride + j

			eOpen := h[i*stride+j-1] - opts.GapOpen
			eExt := e[i*stride+j-1] - opts.GapExtend
			if eExt > eOpen {
				e[x] = eExt
			} else {
				e[x] = eOpen
			}

			fOpen := h[(i-1)*stride+j] - opts.GapOpen
			fExt := f[(i-1)*stride+j] - opts.GapExtend
			if fExt > fOpen {
				f[x] = fExt
			} else {
				f[x] = fOpen
			}

			diag := h[(i-1)*stride+j-1] + score(query[i-1], target[j-1], opts)

			best4 := 0
			if diag > best4 {
				best4 = diag
			}
			if e[x] > best4 {
				best4 = e[x]
			}
			if f[x] > best4 {
				best4 = f[x]
			}
			h[x] = best4

			if best4 > bestScore {
				bestScore = best4
				best = cell{i, j}
			}
		}
	}

	if bestScore == 0 {
		return alignResult{score: 0}
	}

	// Traceback to the alignment's start: walk the diagonal backward through
	// h until a zero is hit, the standard Smith-Waterman local stopping rule.
	i, j := best.i, best.j
	for i > 0 && j > 0 && h[i*stride+j] > 0 {
		x := i*stride + j
		switch {
		case h[x] == h[(i-1)*stride+j-1]+score(query[i-1], target[j-1], opts) && h[(i-1)*stride+j-1] > 0:
			i--
			j--
		case h[x] == e[x]:
			j--
		case h[x] == f[x]:
			i--
		default:
			i--
			j--
		}
	}

	return alignResult{score: bestScore, queryStart: i, targetStart: j}
}

// Result records one slave DR's alignment outcome against the current
// master, matching Aligner.h's AlignerFlag_t (reversed/failed/score_equal)
// turned into a tagged-variant struct of named bools rather than raw bit
// flags.
type Result struct {
	Failed     bool
	Reversed   bool
	ScoreEqual bool
	Offset     int
}

// Aligner holds the current master DR, the per-token offsets computed by
// successive AlignSlave calls (the Go analogue of the C++ Aligner object's
// AL_Offsets map), and a cache from a slave DR's seahash digest to its
// already-computed Result, keyed together with the master's own digest since
// an offset cache is only valid for the master it was computed against.
type Aligner struct {
	opts        Opts
	master      []byte
	masterLen   int
	masterHash  uint64
	results     map[seqtable.Token]Result
	offsetCache map[uint64]Result
}

// New returns an Aligner configured with opts.
func New(opts Opts) *Aligner {
	return &Aligner{opts: opts, results: map[seqtable.Token]Result{}, offsetCache: map[uint64]Result{}}
}

// SetMaster encodes dr as the alignment target for subsequent AlignSlave
// calls. Grounded on Aligner.h's setMasterDR. Switching masters invalidates
// offsetCache, since a cached offset is only meaningful relative to the
// master it was aligned against.
func (al *Aligner) SetMaster(dr string) {
	al.master = encode(dr)
	al.masterLen = len(dr)
	al.masterHash = seahash.Sum64([]byte(dr))
	al.offsetCache = map[uint64]Result{}
}

// AlignSlave aligns dr (the slave DR for tok) against the current master in
// both forward and reverse-complement orientation, records the winning
// orientation's offset, and returns the outcome. Grounded on Aligner.h's
// alignSlave. Identical slave DR strings recur often within a group (many
// reads share the exact same DR token), so the combined master/slave seahash
// digest is checked against offsetCache before the full banded alignment
// runs.
func (al *Aligner) AlignSlave(tok seqtable.Token, dr string) Result {
	key := al.masterHash ^ seahash.Sum64([]byte(dr))
	if res, ok := al.offsetCache[key]; ok {
		al.results[tok] = res
		return res
	}

	forward := bandedLocalAffine(al.master, encode(dr), al.opts)
	reverse := bandedLocalAffine(al.master, encode(sequtil.ReverseComplement(dr)), al.opts)

	fwdOK := forward.score >= al.opts.MinScore
	revOK := reverse.score >= al.opts.MinScore
	if !fwdOK && !revOK {
		res := Result{Failed: true}
		al.offsetCache[key] = res
		return res
	}

	var res Result
	switch {
	case forward.score > reverse.score || (fwdOK && !revOK):
		res = Result{Offset: forward.queryStart - forward.targetStart}
	case reverse.score > forward.score || (revOK && !fwdOK):
		res = Result{Reversed: true, Offset: reverse.queryStart - reverse.targetStart}
	default:
		// Equal scores, tie-break policy: prefer forward.
		res = Result{ScoreEqual: true, Offset: forward.queryStart - forward.targetStart}
	}

	al.offsetCache[key] = res
	al.results[tok] = res
	return res
}

// Results returns the per-token alignment outcomes accumulated by AlignSlave
// calls, including the orientation (Reversed) that GenerateConsensus needs
// to place each group's reads in a shared coordinate frame.
func (al *Aligner) Results() map[seqtable.Token]Result {
	return al.results
}
