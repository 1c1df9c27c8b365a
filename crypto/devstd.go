package crypto

import "golang.org/x/crypto/sha3"

// DevStdProvider is a development provider on the pure-Go SHA3
// implementation. It makes no certification claims.
type DevStdProvider struct{}

func (p DevStdProvider) SHA3_256(input []byte) [32]byte {
	h := sha3.New256()
	_, _ = h.Write(input)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
