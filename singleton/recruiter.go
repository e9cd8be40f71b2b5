package singleton

import (
	"github.com/HealthVivo/crass/reads"
	"github.com/HealthVivo/crass/registry"
	"github.com/HealthVivo/crass/seqtable"
)

// Recruiter scans reads that pass 1 did not register, looking for a single
// occurrence of one of pass 1's confirmed DR patterns. Grounded on
// libcrispr.cpp's findSingletons2: build the automaton once over pass 1's
// canonical DR strings, then stream every read through it.
type Recruiter struct {
	automaton *Automaton
	tokens    []seqtable.Token // tokens[i] is the token for automaton pattern i
}

// NewRecruiter builds an automaton over the tokens already present in tbl
// (the confirmed DR patterns accumulated by pass 1).
func NewRecruiter(tbl *seqtable.Table, toks []seqtable.Token) *Recruiter {
	patterns := make([]string, len(toks))
	for i, tok := range toks {
		patterns[i] = tbl.StringOf(tok)
	}
	return &Recruiter{automaton: Build(patterns), tokens: toks}
}

// Recruit scans r for a single occurrence of any confirmed DR pattern. If
// r's header is already registered (reg.Found), it is skipped entirely. On
// the first match, it builds a Read Record for r with a single StartStop
// interval at the match position, registers it under the matched pattern's
// token, and returns true. Multiple matches in the same read are
// irrelevant: only the first is used, and any later ones are suppressed.
func (rec *Recruiter) Recruit(header, comment, bases, quality string, reg *registry.Registry) bool {
	if reg.Found(header) {
		return false
	}
	m, found := rec.automaton.ScanFirst(bases)
	if !found {
		return false
	}

	pattern := rec.automaton.Pattern(m.PatternIndex)
	start := m.Pos - len(pattern) + 1
	if start < 0 {
		start = 0
	}
	end := m.Pos + 1
	if end > len(bases) {
		end = len(bases)
	}

	r := reads.New(header, comment, bases, quality)
	r.AppendInterval(reads.Interval{Start: start, End: end})

	tok := rec.tokens[m.PatternIndex]
	reg.Register(tok, r)
	return true
}
