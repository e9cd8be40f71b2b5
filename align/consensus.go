package align

import (
	"github.com/HealthVivo/crass/registry"
	"github.com/HealthVivo/crass/sequtil"
	"github.com/HealthVivo/crass/seqtable"
)

// baseIdx returns the consensus-column base index (0=A,1=C,2=G,3=T) for b,
// or -1 for anything else (ambiguity codes are tolerated and treated as
// unobserved for alignment purposes).
func baseIdx(b byte) int {
	switch b {
	case 'A', 'a':
		return 0
	case 'C', 'c':
		return 1
	case 'G', 'g':
		return 2
	case 'T', 't':
		return 3
	}
	return -1
}

var baseLetters = [4]byte{'A', 'C', 'G', 'T'}

// Consensus holds the per-column coverage, consensus call, and conservation
// fraction produced by GenerateConsensus.
type Consensus struct {
	Coverage     [][4]int
	ConsensusSeq []byte
	Conservation []float64
	// ColumnOffset is the smallest column index seen, so callers can map a
	// column index back to a read-local position if needed.
	ColumnOffset int
}

// GenerateConsensus tallies every registered read under every token present
// in results into a single shared coordinate frame anchored at each read's
// own first repeat interval, shifted by that token's alignment offset. Reads
// registered under a Reversed token are reverse-complemented before
// placement, so that every contributing read's bases land in the master's
// own orientation. Grounded on Aligner.h's generate_consensus /
// AL_consensus / AL_coverage.
//
// The per-base column is computed as offset + (i − StartStop[0].start),
// where i is the read-local base position being placed; see DESIGN.md's
// Open Question decisions for the reasoning behind this formula.
func GenerateConsensus(reg *registry.Registry, tokens []seqtable.Token, results map[seqtable.Token]Result) *Consensus {
	minCol, maxCol := 0, 0
	first := true

	type placement struct {
		bases  string
		anchor int
		offset int
	}
	var placements []placement
	for _, tok := range tokens {
		res, ok := results[tok]
		if !ok || res.Failed {
			continue
		}
		for _, r := range reg.Group(tok) {
			if r.NumRepeats() == 0 {
				continue
			}
			bases, anchor := r.Bases, r.StartStops[0].Start
			if res.Reversed {
				bases = sequtil.ReverseComplement(bases)
				anchor = len(r.Bases) - r.StartStops[0].End
			}
			placements = append(placements, placement{bases: bases, anchor: anchor, offset: res.Offset})
			for i := 0; i < len(bases); i++ {
				c := res.Offset + (i - anchor)
				if first {
					minCol, maxCol = c, c
					first = false
					continue
				}
				if c < minCol {
					minCol = c
				}
				if c > maxCol {
					maxCol = c
				}
			}
		}
	}
	if first {
		return &Consensus{}
	}

	width := maxCol - minCol + 1
	coverage := make([][4]int, width)
	for _, p := range placements {
		for i := 0; i < len(p.bases); i++ {
			idx := baseIdx(p.bases[i])
			if idx < 0 {
				continue
			}
			c := p.offset + (i - p.anchor) - minCol
			coverage[c][idx]++
		}
	}

	consensusSeq := make([]byte, width)
	conservation := make([]float64, width)
	for c := 0; c < width; c++ {
		total := 0
		maxCount, maxIdx, ties := -1, -1, 0
		for idx, cnt := range coverage[c] {
			total += cnt
			if cnt > maxCount {
				maxCount, maxIdx, ties = cnt, idx, 1
			} else if cnt == maxCount {
				ties++
			}
		}
		if total == 0 {
			consensusSeq[c] = 'N'
			conservation[c] = 0
			continue
		}
		if ties > 1 || maxCount == 0 {
			consensusSeq[c] = 'N'
		} else {
			consensusSeq[c] = baseLetters[maxIdx]
		}
		conservation[c] = float64(maxCount) / float64(total)
	}

	return &Consensus{
		Coverage:     coverage,
		ConsensusSeq: consensusSeq,
		Conservation: conservation,
		ColumnOffset: minCol,
	}
}

// Zone is the contiguous high-confidence region located by CalculateDRZone.
type Zone struct {
	Start, End int // half-open, in Consensus column-index space (0-based within Coverage/ConsensusSeq)
	Found      bool
}

// CalculateDRZone scans cons for the (first) contiguous run of columns whose
// conservation is at least conservationCutoff and whose total coverage is at
// least minReadDepth (conservation >= 0.55, coverage >= 2 by default).
// Grounded on Aligner.h's calculate_DR_zone.
func CalculateDRZone(cons *Consensus, conservationCutoff float64, minReadDepth int) Zone {
	inZone := false
	start := 0
	for c := range cons.Conservation {
		cov := 0
		for _, n := range cons.Coverage[c] {
			cov += n
		}
		qualifies := cons.Conservation[c] >= conservationCutoff && cov >= minReadDepth
		if qualifies && !inZone {
			inZone = true
			start = c
		} else if !qualifies && inZone {
			return Zone{Start: start, End: c, Found: true}
		}
	}
	if inZone {
		return Zone{Start: start, End: len(cons.Conservation), Found: true}
	}
	return Zone{}
}
