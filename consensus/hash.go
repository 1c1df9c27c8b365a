package consensus

import "golang.org/x/crypto/sha3"

func sha3_256(b []byte) [32]byte {
	return sha3.Sum256(b)
}

// Hash256 is the double SHA3-256 over the concatenation of parts.
// Concatenation order is significant: Hash256(a, b) != Hash256(b, a).
func Hash256(parts ...[]byte) [32]byte {
	h := sha3.New256()
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	var first [32]byte
	h.Sum(first[:0])
	return sha3.Sum256(first[:])
}
