// Package finder implements the Long-Read Finder: the seed-and-extend scan
// that discovers tandem CRISPR direct repeats in a single read. Grounded on
// original_source/src/crass/libcrispr.cpp's longReadSearch, scanRight,
// extendPreRepeat, and qcFoundRepeats for algorithm semantics; the Go idiom
// (incremental scan state, tight tally loops) follows
// grailbio-bio/fusion/kmer.go's kmerizer and
// grailbio-bio/fusion/stitcher.go's tryStitch.
package finder

import (
	"github.com/HealthVivo/crass/matcher"
	"github.com/HealthVivo/crass/reads"
	"github.com/HealthVivo/crass/registry"
	"github.com/HealthVivo/crass/sequtil"
	"github.com/HealthVivo/crass/seqtable"
)

// Opts configures the finder's search bounds. The field-documented-struct-
// plus-package-default pattern follows grailbio-bio/fusion.Opts/fusion.DefaultOpts.
type Opts struct {
	MinDR, MaxDR         int
	MinSpacer, MaxSpacer int
	// Window is the seed k-mer length. Valid range 6-9.
	Window int
	// MinRepeats is the minimum number of tandem repeats required to accept
	// a candidate.
	MinRepeats int
}

// DefaultOpts holds the documented defaults for direct-repeat and spacer
// length bounds, seed window, and minimum repeat count.
var DefaultOpts = Opts{
	MinDR:      23,
	MaxDR:      47,
	MinSpacer:  26,
	MaxSpacer:  50,
	Window:     8,
	MinRepeats: 2,
}

const scanRange = 24

// Find runs the seed phase over r's bases, attempting scan_right,
// extend_pre_repeat, and QC at every candidate seed position. On success it
// leaves r's StartStop list populated with the discovered (and extended)
// repeat intervals and returns true; the caller is then responsible for
// calling Register. On exhausting every seed position without a QC pass, it
// leaves r's StartStop list empty and returns false.
func Find(r *reads.Read, opts Opts) bool {
	bases := r.Bases
	n := len(bases)

	skip := opts.MinDR - 2*opts.Window + 1
	if skip < 1 {
		skip = 1
	}
	limit := n - opts.MinDR - opts.MinSpacer - opts.Window - 1

	for j := 0; j <= limit; {
		pattern := bases[j : j+opts.Window]
		textStart := j + opts.MinDR + opts.MinSpacer
		textEnd := j + opts.MaxDR + opts.MaxSpacer + opts.Window
		if textEnd > n-1 {
			textEnd = n - 1
		}
		if textStart >= textEnd {
			j += skip
			continue
		}
		text := bases[textStart:textEnd]

		p, found := matcher.FindFirst(text, pattern)
		if !found {
			j += skip
			continue
		}

		r.Reset()
		r.AppendInterval(reads.Interval{j, j + opts.Window})
		second := textStart + p
		r.AppendInterval(reads.Interval{second, second + opts.Window})

		scanRight(r, bases, pattern, opts)

		if r.NumRepeats() >= opts.MinRepeats {
			repeatLen := extendPreRepeat(r, opts)
			if repeatLen >= opts.MinDR && repeatLen <= opts.MaxDR && qcFoundRepeats(r, opts) {
				return true
			}
		}

		lastEnd := r.StartStops[r.NumRepeats()-1].End
		r.Reset()
		if lastEnd-1 > j {
			j = lastEnd - 1
		} else {
			j += skip
		}
	}
	return false
}

// scanRight greedily extends r's StartStop list rightward by repeatedly
// predicting the next occurrence of pattern from the two most recent
// interval starts and searching a bounded window around the prediction.
// Grounded on libcrispr.cpp's scanRight.
func scanRight(r *reads.Read, bases, pattern string, opts Opts) {
	window := opts.Window
	for {
		n := r.NumRepeats()
		if n < 2 {
			return
		}
		last := r.StartStops[n-1].Start
		secondLast := r.StartStops[n-2].Start
		spacing := last - secondLast
		if spacing < opts.MinSpacer+window {
			return
		}

		candidate := last + spacing
		begin := candidate - scanRange
		if minBegin := last + window + opts.MinSpacer; begin < minBegin {
			begin = minBegin
		}
		end := candidate + window + scanRange
		if end > len(bases) {
			end = len(bases)
		}
		if begin >= end {
			return
		}

		p, found := matcher.FindFirst(bases[begin:end], pattern)
		if !found {
			return
		}
		pos := begin + p
		r.AppendInterval(reads.Interval{pos, pos + window})
	}
}

// baseTally counts A/C/G/T occurrences; index order matches acgtIndex.
type baseTally [4]int

func acgtIndex(b byte) (int, bool) {
	switch b {
	case 'A', 'a':
		return 0, true
	case 'C', 'c':
		return 1, true
	case 'G', 'g':
		return 2, true
	case 'T', 't':
		return 3, true
	}
	return 0, false
}

// extendPreRepeat widens every interval in r's StartStop list rightward and
// then leftward by majority-base consensus, the core biological-inference
// step of the finder, and returns the resulting repeat length so the caller
// can check it against MinDR/MaxDR before running QC. Grounded on
// libcrispr.cpp's extendPreRepeat, which returns actual_repeat_length for
// exactly this purpose.
func extendPreRepeat(r *reads.Read, opts Opts) int {
	bases := r.Bases
	n := len(bases)
	numRepeats := r.NumRepeats()

	cutoff := (numRepeats + 1) / 2
	if cutoff < 2 {
		cutoff = 2
	}

	shortestSpacing := -1
	for i := 1; i < numRepeats; i++ {
		spacing := r.StartStops[i].Start - r.StartStops[i-1].Start
		if shortestSpacing == -1 || spacing < shortestSpacing {
			shortestSpacing = spacing
		}
	}

	rightExtended := 0
	for shortestSpacing-opts.MinSpacer-rightExtended > 0 {
		var tally baseTally
		any := false
		for _, iv := range r.StartStops {
			pos := iv.End + rightExtended
			if pos >= n {
				continue
			}
			any = true
			if idx, ok := acgtIndex(bases[pos]); ok {
				tally[idx]++
			}
		}
		if !any || !tally.hasMajority(cutoff) {
			break
		}
		rightExtended++
	}

	currentRepeatLength := opts.Window + rightExtended
	leftExtended := 0
	for shortestSpacing-currentRepeatLength > 0 {
		var tally baseTally
		any := false
		for _, iv := range r.StartStops {
			pos := iv.Start - leftExtended - 1
			if pos < 0 {
				continue
			}
			any = true
			if idx, ok := acgtIndex(bases[pos]); ok {
				tally[idx]++
			}
		}
		if !any || !tally.hasMajority(cutoff) {
			break
		}
		leftExtended++
		currentRepeatLength++
	}

	for i, iv := range r.StartStops {
		newStart := iv.Start - leftExtended
		if newStart < 0 {
			newStart = 0
		}
		newEnd := iv.End + rightExtended
		if newEnd > n {
			newEnd = n
		}
		r.StartStops[i] = reads.Interval{Start: newStart, End: newEnd}
	}
	return opts.Window + leftExtended + rightExtended
}

func (t baseTally) hasMajority(cutoff int) bool {
	for _, c := range t {
		if c >= cutoff {
			return true
		}
	}
	return false
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

// qcFoundRepeats runs the repeat/spacer quality checks (complexity,
// abundant-kmer content, spacer length, spacer-to-spacer similarity,
// spacer-length variance, and repeat-to-spacer similarity and length
// difference), returning false as soon as any test rejects the candidate.
// Grounded on libcrispr.cpp's qcFoundRepeats and drHasHighlyAbundantKmers.
func qcFoundRepeats(r *reads.Read, opts Opts) bool {
	dr := r.RepeatAt(0)
	if sequtil.IsLowComplexity(dr, 0.75) {
		return false
	}
	if sequtil.HasAbundantKmer(dr, 3, 0.23) {
		return false
	}

	numSpacers := r.NumSpacers()
	if numSpacers == 0 {
		return false
	}
	spacers := make([]string, numSpacers)
	for i := 0; i < numSpacers; i++ {
		s := r.SpacerAt(i)
		if len(s) < opts.MinSpacer || len(s) > opts.MaxSpacer {
			return false
		}
		spacers[i] = s
	}

	const maxSimilarity = 0.82
	const maxSpacerLenDiff = 12.0
	const maxRepeatSpacerLenDiff = 30.0

	if numSpacers == 1 {
		if matcher.Similarity(dr, spacers[0]) > maxSimilarity {
			return false
		}
		return float64(absDiff(len(dr), len(spacers[0]))) <= maxRepeatSpacerLenDiff
	}

	simSum := 0.0
	lenDiffSum := 0
	for i := 0; i < numSpacers-1; i++ {
		simSum += matcher.Similarity(spacers[i], spacers[i+1])
		lenDiffSum += absDiff(len(spacers[i]), len(spacers[i+1]))
	}
	if simSum/float64(numSpacers-1) > maxSimilarity {
		return false
	}
	if float64(lenDiffSum)/float64(numSpacers-1) > maxSpacerLenDiff {
		return false
	}

	rsSimSum, rsLenSum := 0.0, 0
	for _, s := range spacers {
		rsSimSum += matcher.Similarity(dr, s)
		rsLenSum += absDiff(len(dr), len(s))
	}
	if rsSimSum/float64(numSpacers) > maxSimilarity {
		return false
	}
	if float64(rsLenSum)/float64(numSpacers) > maxRepeatSpacerLenDiff {
		return false
	}

	return true
}

// Register computes r's canonical DR, interns it into tbl (inserting if
// necessary), and appends r to reg's list for that token.
func Register(r *reads.Read, tbl *seqtable.Table, reg *registry.Registry) seqtable.Token {
	tok := tbl.AddString(r.CanonicalDR())
	reg.Register(tok, r)
	return tok
}
