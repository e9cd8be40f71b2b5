// Package sequtil provides small, allocation-light helpers for working with
// IUPAC nucleotide strings: reverse complement, canonical-form selection, and
// low-complexity detection.
package sequtil

import "strings"

// complementTable maps every byte to its IUPAC complement. Ambiguous and gap
// characters that have no defined complement map to 'N'. Built once in
// init(), the way fusion/util.go builds acgtnIndex.
var complementTable [256]byte

func init() {
	for i := range complementTable {
		complementTable[i] = 'N'
	}
	pairs := []struct{ a, b byte }{
		{'A', 'T'},
		{'C', 'G'},
		{'M', 'K'},
		{'R', 'Y'},
		{'S', 'S'},
		{'W', 'W'},
		{'V', 'B'},
		{'H', 'D'},
		{'N', 'N'},
	}
	for _, p := range pairs {
		complementTable[p.a] = p.b
		complementTable[p.b] = p.a
		complementTable[p.a+32] = p.b // lowercase
		complementTable[p.b+32] = p.a
	}
	// RNA uracil complements to A, like T; A itself still complements to T.
	complementTable['U'] = 'A'
	complementTable['u'] = 'A'
}

// ReverseComplement returns the reverse complement of seq, upper-cased.
// Characters with no IUPAC complement become 'N', matching
// original_source/src/SeqUtils.cpp's reverseComplement.
func ReverseComplement(seq string) string {
	out := make([]byte, len(seq))
	n := len(seq)
	for i := 0; i < n; i++ {
		out[n-1-i] = complementTable[seq[i]]
	}
	return string(out)
}

// Canonical returns the canonicalize-to-uppercase form of a base string: the
// entire alphabet collapses to {A,C,G,T,N}. Ambiguity and gap codes become N.
func Canonical(seq string) string {
	out := make([]byte, len(seq))
	for i := 0; i < len(seq); i++ {
		switch seq[i] {
		case 'A', 'a':
			out[i] = 'A'
		case 'C', 'c':
			out[i] = 'C'
		case 'G', 'g':
			out[i] = 'G'
		case 'T', 't', 'U', 'u':
			out[i] = 'T'
		default:
			out[i] = 'N'
		}
	}
	return string(out)
}

// LexicographicallySmaller returns seq, upper-cased, if it sorts at or before
// its reverse complement, else the reverse complement. This is the
// "canonical DR" / "laurenize" operation from
// original_source/src/SeqUtils.cpp's laurenize.
func LexicographicallySmaller(seq string) string {
	seq = strings.ToUpper(seq)
	rc := ReverseComplement(seq)
	if seq <= rc {
		return seq
	}
	return rc
}

// IsLowComplexity reports whether a single base accounts for more than frac
// of seq's characters. Grounded on
// original_source/src/crass/libcrispr.cpp's isRepeatLowComplexity, which
// uses a single-base (not top-two, unlike fusion/util.go's IsLowComplexity)
// threshold of CRASS_DEF_LOW_COMPLEXITY_THRESHHOLD (0.75).
func IsLowComplexity(seq string, frac float64) bool {
	if len(seq) == 0 {
		return true
	}
	var counts [256]int
	for i := 0; i < len(seq); i++ {
		counts[seq[i]]++
	}
	cutoff := frac * float64(len(seq))
	for _, c := range counts {
		if float64(c) > cutoff {
			return true
		}
	}
	return false
}

// HasAbundantKmer reports whether any kmer-length substring of seq occurs in
// more than maxFraction of the windows, i.e. whether seq is dominated by one
// repeated short motif. Grounded on
// original_source/src/crass/libcrispr.cpp's drHasHighlyAbundantKmers
// (kmer_length=3, CRASS_DEF_KMER_MAX_ABUNDANCE_CUTOFF=0.23), run as a
// supplemental filter alongside the original's low-complexity test.
func HasAbundantKmer(seq string, kmerLength int, maxFraction float64) bool {
	if len(seq) <= kmerLength {
		return false
	}
	counts := map[string]int{}
	total := 0
	for i := 0; i+kmerLength <= len(seq); i++ {
		counts[seq[i:i+kmerLength]]++
		total++
	}
	if total == 0 {
		return false
	}
	max := 0
	for _, c := range counts {
		if c > max {
			max = c
		}
	}
	return float64(max)/float64(total) > maxFraction
}

// RunLengthEncode collapses each maximal run of identical bases in seq to a
// single base, returning the collapsed string and the multiplicity of each
// output position. Grounded on the original tool's ReadHolder::encode.
func RunLengthEncode(seq string) (encoded string, multiplicities []int) {
	if len(seq) == 0 {
		return "", nil
	}
	var b strings.Builder
	b.Grow(len(seq))
	multiplicities = make([]int, 0, len(seq))
	run := 1
	for i := 1; i <= len(seq); i++ {
		if i < len(seq) && seq[i] == seq[i-1] {
			run++
			continue
		}
		b.WriteByte(seq[i-1])
		multiplicities = append(multiplicities, run)
		run = 1
	}
	return b.String(), multiplicities
}

// RunLengthDecode re-expands a string produced by RunLengthEncode with its
// accompanying multiplicities back to the original length. It is the
// inverse of RunLengthEncode on the base string alone.
func RunLengthDecode(encoded string, multiplicities []int) string {
	var b strings.Builder
	for i := 0; i < len(encoded); i++ {
		n := 1
		if i < len(multiplicities) {
			n = multiplicities[i]
		}
		for j := 0; j < n; j++ {
			b.WriteByte(encoded[i])
		}
	}
	return b.String()
}
