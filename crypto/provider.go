package crypto

// Provider is the narrow hash interface used outside the consensus
// package, mainly for chain-id derivation. Implementations may be backed
// by hardware or vendored crypto; the dev provider is pure Go.
type Provider interface {
	SHA3_256(input []byte) [32]byte
}
