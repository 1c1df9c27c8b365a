package node

import (
	"obol.dev/node/consensus"
	"obol.dev/node/crypto"
)

// The genesis block is fixed per network: a lone coinbase with a tagged
// marker output, zero prev hash, and no challenge commitment.
const genesisTimestamp = 1735689600 // 2025-01-01T00:00:00Z

func genesisCoinbase(network string) *consensus.Tx {
	script := []byte{consensus.OP_RETURN}
	script = append(script, byte(len(network)))
	script = append(script, network...)
	return &consensus.Tx{
		Version: 1,
		Inputs: []consensus.TxInput{{
			PrevVout: ^uint32(0),
			Sequence: consensus.SEQUENCE_FINAL,
		}},
		Outputs:  []consensus.TxOutput{{Value: 0, ScriptPubKey: script}},
		Locktime: 0,
	}
}

// GenesisBlockBytes builds the canonical genesis block for params.
func GenesisBlockBytes(params consensus.Params) ([]byte, error) {
	coinbase := genesisCoinbase(params.Network)
	root, err := consensus.BlockMerkleRoot([]*consensus.Tx{coinbase})
	if err != nil {
		return nil, err
	}
	block := &consensus.Block{
		Header: consensus.BlockHeader{
			Version:    1,
			MerkleRoot: root,
			Timestamp:  genesisTimestamp,
			Nonce:      0,
		},
		Txs: []*consensus.Tx{coinbase},
	}
	return consensus.BlockBytes(block), nil
}

// ChainID identifies a network as the provider hash of its genesis bytes.
func ChainID(provider crypto.Provider, params consensus.Params) ([32]byte, error) {
	raw, err := GenesisBlockBytes(params)
	if err != nil {
		return [32]byte{}, err
	}
	return provider.SHA3_256(raw), nil
}
