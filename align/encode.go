package align

// code4 maps a base byte to its 4-bit alignment code: A=0, C=1, G=2, T=3,
// anything else (ambiguity codes, N, gaps) = 4 ("ambiguous"). Grounded on
// original_source/src/crass/Aligner.h's scoring matrix setup (sa/sb/ambiguous
// constants keyed the same way).
var code4 [256]byte

func init() {
	for i := range code4 {
		code4[i] = 4
	}
	pairs := []struct {
		b    byte
		code byte
	}{
		{'A', 0}, {'C', 1}, {'G', 2}, {'T', 3},
	}
	for _, p := range pairs {
		code4[p.b] = p.code
		code4[p.b+32] = p.code // lowercase
	}
}

// encode returns the 4-bit-coded byte vector for seq.
func encode(seq string) []byte {
	out := make([]byte, len(seq))
	for i := 0; i < len(seq); i++ {
		out[i] = code4[seq[i]]
	}
	return out
}
