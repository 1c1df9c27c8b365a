package consensus

import "bytes"

// Challenge commitment script layout:
// OP_RETURN(1) | push_len=0x24(1) | magic(4) | proof(32)
const (
	CHALLENGE_COMMITMENT_SCRIPT_BYTES = 38
	CHALLENGE_COMMITMENT_PUSH_LEN     = 0x24
)

var CHALLENGE_MAGIC_BYTES = [4]byte{0x4f, 0x42, 0x43, 0x50} // "OBCP"

// EncodeChallengeCommitment builds the 38-byte coinbase output script
// embedding proof. This is the sole wire artifact the scheme defines.
func EncodeChallengeCommitment(proof [32]byte) []byte {
	script := make([]byte, 0, CHALLENGE_COMMITMENT_SCRIPT_BYTES)
	script = append(script, OP_RETURN, CHALLENGE_COMMITMENT_PUSH_LEN)
	script = append(script, CHALLENGE_MAGIC_BYTES[:]...)
	return append(script, proof[:]...)
}

// parseChallengeCommitment reports whether script is a commitment output
// and returns the embedded proof. A script that does not match the exact
// layout is simply not a commitment; that is never an error.
func parseChallengeCommitment(script []byte) ([32]byte, bool) {
	var proof [32]byte
	if len(script) != CHALLENGE_COMMITMENT_SCRIPT_BYTES {
		return proof, false
	}
	if script[0] != OP_RETURN || script[1] != CHALLENGE_COMMITMENT_PUSH_LEN {
		return proof, false
	}
	if !bytes.Equal(script[2:6], CHALLENGE_MAGIC_BYTES[:]) {
		return proof, false
	}
	copy(proof[:], script[6:])
	return proof, true
}

// VerifyChallengeCommitment checks the challenge commitment of a block
// against its parent. prevBlockHash is nil only for the genesis block,
// which carries no commitment and always passes.
//
// The block's coinbase must contain exactly one commitment output. The
// submitted proof is compared against a full recomputation from the parent
// hash and the merkle root the block would have had without the commitment.
// The caller's block is never modified; the reconstruction works on copies.
func VerifyChallengeCommitment(block *Block, prevBlockHash *[32]byte, params Params) bool {
	if prevBlockHash == nil {
		return true
	}
	if block == nil || len(block.Txs) == 0 || block.Txs[0] == nil {
		return false
	}
	coinbase := block.Txs[0]

	var submitted [32]byte
	matches := 0
	matchIndex := -1
	for i, out := range coinbase.Outputs {
		proof, ok := parseChallengeCommitment(out.ScriptPubKey)
		if !ok {
			continue
		}
		matches++
		matchIndex = i
		submitted = proof
	}
	if matches != 1 {
		return false
	}

	stripped := &Tx{
		Version:  coinbase.Version,
		Inputs:   append([]TxInput(nil), coinbase.Inputs...),
		Outputs:  make([]TxOutput, 0, len(coinbase.Outputs)-1),
		Locktime: coinbase.Locktime,
	}
	for i, out := range coinbase.Outputs {
		if i == matchIndex {
			continue
		}
		stripped.Outputs = append(stripped.Outputs, out)
	}

	txs := make([]*Tx, len(block.Txs))
	copy(txs, block.Txs)
	txs[0] = stripped

	realRoot, err := BlockMerkleRoot(txs)
	if err != nil {
		return false
	}

	expected := ComputeChallengeProof(*prevBlockHash, realRoot, params)
	return submitted == expected
}
