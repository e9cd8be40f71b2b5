// Package seqtable implements the String Table: a bijection between
// canonical direct-repeat strings and dense integer tokens, grounded on
// grailbio-bio/fusion/gene_db.go's names map[string]GeneID / internGene
// dense-ID-assignment pattern, generalized from gene names to canonical DR
// strings.
package seqtable

import (
	"github.com/dgryski/go-farm"
)

// Token is a dense sequence number (1, 2, 3, ...) assigned to a canonical DR
// string the first time it is seen. Token 0 is never assigned and means
// "no token" the way GeneID 0 means invalidGeneID in gene_db.go.
type Token int32

const invalidToken = Token(0)

// entry pairs a string with the hash bucket chain it lives on.
type entry struct {
	str  string
	hash uint64
}

// Table is a String Table: get_token/add_string/string_of over canonical DR
// strings. Not safe for concurrent use without external locking, matching
// GeneDB's "thread compatible" contract.
type Table struct {
	index   map[uint64][]Token // hash -> candidate tokens, for fast duplicate lookup
	entries []entry            // dense token -> (string, hash); entries[0] is the invalid placeholder
}

// New returns an empty String Table.
func New() *Table {
	return &Table{
		index:   map[uint64][]Token{},
		entries: []entry{{str: ""}}, // index 0 reserved for invalidToken
	}
}

// hash computes the table's bucket key for s, the way fusion/kmer_index.go's
// hashKmer keys its sharded hash table with github.com/dgryski/go-farm.
func hash(s string) uint64 {
	return farm.Hash64([]byte(s))
}

// GetToken returns the token for s if it has already been interned, and
// false otherwise. It never assigns a new token, unlike AddString.
func (t *Table) GetToken(s string) (Token, bool) {
	h := hash(s)
	for _, tok := range t.index[h] {
		if t.entries[tok].str == s {
			return tok, true
		}
	}
	return invalidToken, false
}

// AddString interns s, returning its existing token if already present or a
// newly assigned dense token otherwise. Grounded on internGene.
func (t *Table) AddString(s string) Token {
	h := hash(s)
	for _, tok := range t.index[h] {
		if t.entries[tok].str == s {
			return tok
		}
	}
	tok := Token(len(t.entries))
	t.entries = append(t.entries, entry{str: s, hash: h})
	t.index[h] = append(t.index[h], tok)
	return tok
}

// StringOf returns the string interned under tok. It panics if tok is out of
// range, matching gene_db.go's treatment of GeneID misuse (GeneInfo panics
// on out-of-range IDs via a slice index) as a programmer error rather than a
// recoverable one.
func (t *Table) StringOf(tok Token) string {
	return t.entries[tok].str
}

// Len returns the number of distinct strings interned so far.
func (t *Table) Len() int {
	return len(t.entries) - 1
}
