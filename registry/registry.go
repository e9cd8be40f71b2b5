// Package registry implements the Read Registry: a mapping from String
// Table token to the ordered list of Read Records sharing that canonical
// DR. Grounded on original_source/src/crass/ReadMap
// (map<StringToken, ReadList*>) via grailbio-bio/fusion/gene_db.go's
// map-of-slice idiom, applied to *reads.Read instead of *GeneInfo.
package registry

import (
	"github.com/HealthVivo/crass/reads"
	"github.com/HealthVivo/crass/seqtable"
)

// Registry owns the Read Records registered under each token. The String
// Table owns the strings; the Registry only ever stores tokens.
type Registry struct {
	byToken map[seqtable.Token][]*reads.Read
	found   map[string]bool // header -> seen, the original's "reads_found"
}

// New returns an empty Read Registry.
func New() *Registry {
	return &Registry{
		byToken: map[seqtable.Token][]*reads.Read{},
		found:   map[string]bool{},
	}
}

// Register appends r to tok's list, in insertion order, and marks r's header
// as found. It freezes r's StartStop list: once registered, a Read Record's
// intervals are immutable.
func (reg *Registry) Register(tok seqtable.Token, r *reads.Read) {
	r.Freeze()
	reg.byToken[tok] = append(reg.byToken[tok], r)
	reg.found[r.Header] = true
}

// Group returns the Read Records registered under tok, in insertion order.
// The returned slice must not be mutated by callers.
func (reg *Registry) Group(tok seqtable.Token) []*reads.Read {
	return reg.byToken[tok]
}

// Tokens returns every token that has at least one registered read. Order is
// unspecified.
func (reg *Registry) Tokens() []seqtable.Token {
	toks := make([]seqtable.Token, 0, len(reg.byToken))
	for tok := range reg.byToken {
		toks = append(toks, tok)
	}
	return toks
}

// Found reports whether a read with the given header has already been
// registered, the way the original's reads_found set prevents a read from
// being recruited twice across passes.
func (reg *Registry) Found(header string) bool {
	return reg.found[header]
}

// Len returns the total number of registered reads across all tokens.
func (reg *Registry) Len() int {
	n := 0
	for _, rs := range reg.byToken {
		n += len(rs)
	}
	return n
}
