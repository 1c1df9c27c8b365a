package consensus

import "encoding/binary"

// lcg is the deterministic generator behind the challenge set. Every
// validator must derive the identical synthetic transaction sequence from
// the same seed, so the recurrence and the draw order are consensus-fixed.
type lcg struct {
	state uint64
}

// newLCG seeds the generator from the first 8 seed bytes, little-endian.
// Only 64 of the 256 seed bits are consumed; the remaining entropy is
// deliberately unused in this version of the scheme.
func newLCG(seed [32]byte) *lcg {
	return &lcg{state: binary.LittleEndian.Uint64(seed[:8])}
}

func (g *lcg) next() uint32 {
	g.state = 1664525*g.state + 1013904223
	return uint32(g.state >> 32)
}

// next32Bytes lays out eight successive draws little-endian into 32 bytes.
func (g *lcg) next32Bytes() [32]byte {
	var out [32]byte
	for i := 0; i < 32; i += 4 {
		binary.LittleEndian.PutUint32(out[i:i+4], g.next())
	}
	return out
}

// challengeSeed combines the parent block hash and the real merkle root
// into the seed driving all downstream generation.
func challengeSeed(prevBlockHash [32]byte, realRoot [32]byte) [32]byte {
	return Hash256(prevBlockHash[:], realRoot[:])
}

// syntheticTx draws one fixed-shape synthetic transaction. The draw order
// is part of consensus: prev_txid (8 draws), prev_vout, two script_sig
// integers, then 32 single-byte payload draws.
func syntheticTx(prng *lcg) *Tx {
	in := TxInput{
		PrevTxid: prng.next32Bytes(),
		PrevVout: prng.next() % 100,
		Sequence: SEQUENCE_FINAL,
	}
	var sig []byte
	sig = appendPushNum(sig, uint64(prng.next()))
	sig = appendPushNum(sig, uint64(prng.next()))
	in.ScriptSig = sig

	payload := make([]byte, 32)
	for i := range payload {
		payload[i] = byte(prng.next())
	}
	script := []byte{OP_RETURN}
	script = appendPushData(script, payload)

	return &Tx{
		Version:  1,
		Inputs:   []TxInput{in},
		Outputs:  []TxOutput{{Value: 0, ScriptPubKey: script}},
		Locktime: 0,
	}
}

// generateChallenge builds the ordered synthetic transaction set for seed,
// stopping before the cumulative serialized size would exceed maxSize. A
// transaction that does not fit is discarded whole, never truncated. An
// empty result is a legal degenerate outcome, not an error.
func generateChallenge(seed [32]byte, maxSize uint64) []*Tx {
	prng := newLCG(seed)
	var txs []*Tx
	var currentSize uint64
	for {
		tx := syntheticTx(prng)
		txSize := uint64(TxTotalSize(tx))
		if currentSize+txSize > maxSize {
			break
		}
		txs = append(txs, tx)
		currentSize += txSize
	}
	return txs
}

// ComputeChallengeProof derives the proof a block producer must commit to:
// the merkle root over the challenge set's txids, in generation order. An
// empty challenge set yields the all-zero proof.
//
// The proof is a pure function of its inputs; concurrent calls are safe.
func ComputeChallengeProof(prevBlockHash [32]byte, realRoot [32]byte, params Params) [32]byte {
	seed := challengeSeed(prevBlockHash, realRoot)
	txs := generateChallenge(seed, params.ChallengeSizeLimit)
	if len(txs) == 0 {
		return [32]byte{}
	}
	leaves := make([][32]byte, 0, len(txs))
	for _, tx := range txs {
		leaves = append(leaves, TxID(tx))
	}
	root, err := MerkleRoot(leaves)
	if err != nil {
		return [32]byte{}
	}
	return root
}
