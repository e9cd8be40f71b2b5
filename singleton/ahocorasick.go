// Package singleton implements the Singleton Recruiter: an Aho-Corasick
// multi-pattern automaton over pass 1's confirmed DR patterns, used to find
// reads that carry exactly one DR occurrence and recruit them into the
// existing group. Adapted (not copied) from
// other_examples/8bebb1c4_itgcl-ahocorasick__ahocorasick.go.go's trie +
// fail-link + suffix-link construction: that reference's public API
// (Match/MatchString) only reports which pattern matched, not where, because
// its callers only need membership; this recruiter needs the text position
// to place the StartStop interval, so the automaton here emits (pos,
// patternIndex) match events instead. Also grounded on
// original_source/src/crass/libcrispr.cpp's findSingletons2/on_match
// (acism-based) for the scan-and-recruit semantics.
package singleton

// node is one state in the trie.
type node struct {
	children map[byte]*node
	fail     *node
	output   *node // nearest proper suffix of this node's path that is itself a pattern end (dictionary link)
	pattern  int   // index into Automaton.patterns if this node ends a pattern, else -1
}

func newNode() *node {
	return &node{children: map[byte]*node{}, pattern: -1}
}

// Automaton is a built Aho-Corasick automaton over a fixed set of patterns.
type Automaton struct {
	root     *node
	patterns []string
}

// Build constructs an automaton over patterns. Grounded on buildTrie in the
// reference implementation: insert every pattern into the trie, then
// breadth-first compute fail links and dictionary (output) links.
func Build(patterns []string) *Automaton {
	a := &Automaton{root: newNode(), patterns: patterns}
	for i, p := range patterns {
		n := a.root
		for j := 0; j < len(p); j++ {
			c := p[j]
			child, ok := n.children[c]
			if !ok {
				child = newNode()
				n.children[c] = child
			}
			n = child
		}
		n.pattern = i
	}

	queue := make([]*node, 0, len(a.root.children))
	for _, child := range a.root.children {
		child.fail = a.root
		queue = append(queue, child)
	}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for c, child := range n.children {
			queue = append(queue, child)

			f := n.fail
			for f != nil && f.children[c] == nil {
				f = f.fail
			}
			if f == nil {
				child.fail = a.root
			} else {
				child.fail = f.children[c]
			}

			if child.fail.pattern >= 0 {
				child.output = child.fail
			} else {
				child.output = child.fail.output
			}
		}
	}
	return a
}

// Match is one pattern occurrence found by Scan: the pattern ending at the
// inclusive text position Pos.
type Match struct {
	Pos          int
	PatternIndex int
}

// Scan finds every occurrence of every automaton pattern within text,
// scanning once left to right. Grounded on the reference's Match, extended
// to report position.
func (a *Automaton) Scan(text string) []Match {
	var matches []Match
	n := a.root
	for i := 0; i < len(text); i++ {
		c := text[i]
		for n != a.root && n.children[c] == nil {
			n = n.fail
		}
		if child, ok := n.children[c]; ok {
			n = child
		}
		if n.pattern >= 0 {
			matches = append(matches, Match{Pos: i, PatternIndex: n.pattern})
		}
		for out := n.output; out != nil; out = out.output {
			matches = append(matches, Match{Pos: i, PatternIndex: out.pattern})
		}
	}
	return matches
}

// ScanFirst returns only the first match found, for callers (the recruiter)
// that only need to know whether and where a read first hits the pattern
// set.
func (a *Automaton) ScanFirst(text string) (Match, bool) {
	n := a.root
	for i := 0; i < len(text); i++ {
		c := text[i]
		for n != a.root && n.children[c] == nil {
			n = n.fail
		}
		if child, ok := n.children[c]; ok {
			n = child
		}
		if n.pattern >= 0 {
			return Match{Pos: i, PatternIndex: n.pattern}, true
		}
		if n.output != nil {
			return Match{Pos: i, PatternIndex: n.output.pattern}, true
		}
	}
	return Match{}, false
}

// Pattern returns the pattern string at idx.
func (a *Automaton) Pattern(idx int) string {
	return a.patterns[idx]
}
