package node

import (
	"context"
	"errors"
	"time"

	"obol.dev/node/consensus"
)

var unixNowU64 = func() uint64 { return uint64(time.Now().Unix()) }

type MinerConfig struct {
	TimestampSource func() uint64
	MaxTxPerBlock   int
}

type MinedBlock struct {
	Height  uint64
	Hash    [32]byte
	TxCount uint64
}

// Miner assembles blocks on top of the chain tip. Each block's coinbase
// carries the challenge commitment over the parent hash and the block's
// real transaction set.
type Miner struct {
	chainState *ChainState
	cfg        MinerConfig
}

func DefaultMinerConfig() MinerConfig {
	return MinerConfig{
		TimestampSource: unixNowU64,
		MaxTxPerBlock:   1024,
	}
}

func NewMiner(chainState *ChainState, cfg MinerConfig) (*Miner, error) {
	if chainState == nil {
		return nil, errors.New("nil chainstate")
	}
	if cfg.TimestampSource == nil {
		cfg.TimestampSource = unixNowU64
	}
	if cfg.MaxTxPerBlock <= 0 {
		cfg.MaxTxPerBlock = 1024
	}
	return &Miner{chainState: chainState, cfg: cfg}, nil
}

func buildCoinbaseTx(height uint64) *consensus.Tx {
	var sig []byte
	// Block height in the scriptSig keeps every coinbase txid unique.
	sig = appendHeightPush(sig, height)
	return &consensus.Tx{
		Version: 1,
		Inputs: []consensus.TxInput{{
			PrevVout:  ^uint32(0),
			ScriptSig: sig,
			Sequence:  consensus.SEQUENCE_FINAL,
		}},
		Outputs:  []consensus.TxOutput{{Value: 0, ScriptPubKey: []byte{consensus.OP_RETURN}}},
		Locktime: 0,
	}
}

func appendHeightPush(script []byte, height uint64) []byte {
	var buf []byte
	for height > 0 {
		buf = append(buf, byte(height))
		height >>= 8
	}
	if len(buf) > 0 && buf[len(buf)-1]&0x80 != 0 {
		buf = append(buf, 0x00)
	}
	script = append(script, byte(len(buf)))
	return append(script, buf...)
}

// MineOne builds, validates, and connects one block containing txs (already
// parsed, coinbase excluded).
func (m *Miner) MineOne(ctx context.Context, txs []*consensus.Tx) (*MinedBlock, error) {
	if m == nil || m.chainState == nil {
		return nil, errors.New("miner is not initialized")
	}
	if ctx != nil {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
	}

	prevHash, prevHeight, ok := m.chainState.Tip()
	if !ok {
		return nil, errors.New("chain has no tip; init genesis first")
	}
	nextHeight := prevHeight + 1

	if len(txs) > m.cfg.MaxTxPerBlock {
		txs = txs[:m.cfg.MaxTxPerBlock]
	}

	coinbase := buildCoinbaseTx(nextHeight)

	// Provisional sequence: the block as it would look with no commitment.
	// Its merkle root seeds the challenge, so the commitment must be
	// computed before the final root.
	provisional := make([]*consensus.Tx, 0, 1+len(txs))
	provisional = append(provisional, coinbase)
	provisional = append(provisional, txs...)
	realRoot, err := consensus.BlockMerkleRoot(provisional)
	if err != nil {
		return nil, err
	}

	proof := consensus.ComputeChallengeProof(prevHash, realRoot, m.chainState.Params())
	coinbase.Outputs = append(coinbase.Outputs, consensus.TxOutput{
		Value:        0,
		ScriptPubKey: consensus.EncodeChallengeCommitment(proof),
	})

	final := make([]*consensus.Tx, 0, 1+len(txs))
	final = append(final, coinbase)
	final = append(final, txs...)
	merkleRoot, err := consensus.BlockMerkleRoot(final)
	if err != nil {
		return nil, err
	}

	block := &consensus.Block{
		Header: consensus.BlockHeader{
			Version:       1,
			PrevBlockHash: prevHash,
			MerkleRoot:    merkleRoot,
			Timestamp:     m.cfg.TimestampSource(),
			Nonce:         0,
		},
		Txs: final,
	}

	summary, err := m.chainState.ConnectBlock(consensus.BlockBytes(block))
	if err != nil {
		return nil, err
	}
	return &MinedBlock{
		Height:  summary.Height,
		Hash:    summary.BlockHash,
		TxCount: summary.TxCount,
	}, nil
}

// MineN mines the given number of empty blocks in sequence.
func (m *Miner) MineN(ctx context.Context, blocks int) ([]MinedBlock, error) {
	if blocks < 0 {
		return nil, errors.New("blocks must be >= 0")
	}
	out := make([]MinedBlock, 0, blocks)
	for i := 0; i < blocks; i++ {
		mb, err := m.MineOne(ctx, nil)
		if err != nil {
			return nil, err
		}
		out = append(out, *mb)
	}
	return out, nil
}
