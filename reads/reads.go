// Package reads implements the Read Record: one read's bases, metadata, and
// its list of repeat intervals, plus the derived views (repeat_at, spacer_at,
// canonical_DR) and homopolymer run-length encoding. Grounded on
// grailbio-bio/fusion/fragment.go's Fragment/SubSeq and
// grailbio-bio/fusion/position.go's PosRange interval-arithmetic style,
// generalized to the StartStop list semantics of
// original_source/src/crass/ReadHolder (its start-stop vector).
package reads

import (
	"fmt"

	"github.com/HealthVivo/crass/sequtil"
)

// Interval is a half-open-by-convention [Start, End) span of read-local base
// positions naming one DR occurrence. End is exclusive, so the occurrence's
// substring is Bases[Start:End].
type Interval struct {
	Start, End int
}

// Len returns the interval's length in bases.
func (iv Interval) Len() int { return iv.End - iv.Start }

// Read holds one sequenced read and the repeat intervals discovered in it.
//
// Mutation protocol: Header, Comment, Bases, and Quality are set at
// construction and never modified thereafter. StartStops is built
// incrementally during discovery (AppendInterval), extended by the
// repeat-extension phase, then frozen by Freeze() when the record is
// registered.
type Read struct {
	Header  string
	Comment string
	Bases   string
	Quality string // empty if the source had none (FASTA)

	StartStops []Interval

	// RLEMultiplicities holds the per-position multiplicities if this read's
	// Bases were collapsed by Encode (RunLengthEncode); nil otherwise. Kept so a
	// registered record's interval coordinates can be mapped back to the
	// original un-collapsed read if a caller needs to.
	RLEMultiplicities []int

	frozen bool
}

// New constructs an unregistered Read with no intervals yet.
func New(header, comment, bases, quality string) *Read {
	return &Read{Header: header, Comment: comment, Bases: bases, Quality: quality}
}

// AppendInterval appends iv to the StartStop list. It panics if doing so
// would violate the list's ordering invariant (strictly increasing starts,
// non-overlapping) or Freeze has already been called — these are programmer
// errors in the caller's coordinate arithmetic: substring/boundary bugs are
// panics, not recoverable per-read failures.
func (r *Read) AppendInterval(iv Interval) {
	if r.frozen {
		panic("reads: AppendInterval on a frozen Read")
	}
	if iv.Start < 0 || iv.End > len(r.Bases) || iv.Start >= iv.End {
		panic(fmt.Sprintf("reads: invalid interval %+v for read of length %d", iv, len(r.Bases)))
	}
	if n := len(r.StartStops); n > 0 {
		prev := r.StartStops[n-1]
		if iv.Start <= prev.Start || iv.Start < prev.End {
			panic(fmt.Sprintf("reads: interval %+v does not follow %+v in order", iv, prev))
		}
	}
	r.StartStops = append(r.StartStops, iv)
}

// Reset clears the StartStop list, the way the finder's seed loop discards a
// failed candidate and resumes scanning.
func (r *Read) Reset() {
	if r.frozen {
		panic("reads: Reset on a frozen Read")
	}
	r.StartStops = r.StartStops[:0]
}

// Freeze marks the record as registered; further mutation of StartStops
// panics. Mirrors the original ReadHolder's handoff from discovery to the
// read map.
func (r *Read) Freeze() { r.frozen = true }

// NumRepeats returns the number of DR occurrences recorded so far.
func (r *Read) NumRepeats() int { return len(r.StartStops) }

// RepeatAt returns the substring of the k-th interval.
func (r *Read) RepeatAt(k int) string {
	iv := r.StartStops[k]
	return r.Bases[iv.Start:iv.End]
}

// SpacerAt returns the substring strictly between intervals k and k+1.
func (r *Read) SpacerAt(k int) string {
	a, b := r.StartStops[k], r.StartStops[k+1]
	return r.Bases[a.End:b.Start]
}

// NumSpacers returns the number of spacers implied by the current interval
// count (one fewer than the interval count, or zero if there are none).
func (r *Read) NumSpacers() int {
	if n := len(r.StartStops); n > 1 {
		return n - 1
	}
	return 0
}

// CanonicalDR returns the lexicographically smaller of RepeatAt(0) and its
// reverse complement.
func (r *Read) CanonicalDR() string {
	return sequtil.LexicographicallySmaller(r.RepeatAt(0))
}

// WellFormed reports whether the StartStop list satisfies the interval
// well-formedness invariant: at least two intervals for a CRISPR-bearing
// record, strictly increasing and non-overlapping starts, every interval
// inside the base string, and all intervals the same length.
func (r *Read) WellFormed() bool {
	if len(r.StartStops) < 2 {
		return false
	}
	length := r.StartStops[0].Len()
	prevEnd := -1
	for _, iv := range r.StartStops {
		if iv.Len() != length {
			return false
		}
		if iv.Start < 0 || iv.End > len(r.Bases) {
			return false
		}
		if iv.Start < prevEnd {
			return false
		}
		prevEnd = iv.End
	}
	return true
}

// Encode run-length-collapses Bases in place, storing the per-position
// multiplicities needed to invert the transform. It is a no-op if Bases is
// already collapsed (RLEMultiplicities already set). Grounded on
// sequtil.RunLengthEncode.
func (r *Read) Encode() {
	if r.RLEMultiplicities != nil {
		return
	}
	encoded, mult := sequtil.RunLengthEncode(r.Bases)
	r.Bases = encoded
	r.RLEMultiplicities = mult
}

// Decode restores Bases to its original, un-collapsed length using the
// multiplicities recorded by Encode. It is a no-op if Encode was never
// called. The restored bases equal the original input bases. StartStops is
// left unchanged: intervals computed over the collapsed form are not
// re-expanded and stay in collapsed coordinates.
func (r *Read) Decode() {
	if r.RLEMultiplicities == nil {
		return
	}
	r.Bases = sequtil.RunLengthDecode(r.Bases, r.RLEMultiplicities)
	r.RLEMultiplicities = nil
}
