package consensus

// Params are the per-network consensus parameters.
type Params struct {
	Network string

	// ChallengeSizeLimit bounds the total serialized size, in bytes, of
	// the synthetic transaction set a block producer must commit to.
	ChallengeSizeLimit uint64
}

func DevnetParams() Params {
	return Params{
		Network:            "devnet",
		ChallengeSizeLimit: 8192,
	}
}

func MainnetParams() Params {
	return Params{
		Network:            "mainnet",
		ChallengeSizeLimit: 65536,
	}
}
