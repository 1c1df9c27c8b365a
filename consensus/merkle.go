package consensus

// MerkleRoot folds an ordered leaf sequence with pairwise Hash256 combines.
// An odd node at the end of a level is paired with itself. Callers that can
// see an empty sequence must guard for it; here it is an error.
func MerkleRoot(leaves [][32]byte) ([32]byte, error) {
	var zero [32]byte
	if len(leaves) == 0 {
		return zero, txerr(BLOCK_ERR_MERKLE_INVALID, "merkle: empty leaf list")
	}

	level := append(make([][32]byte, 0, len(leaves)), leaves...)
	for len(level) > 1 {
		next := make([][32]byte, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			left := level[i]
			right := left
			if i+1 < len(level) {
				right = level[i+1]
			}
			next = append(next, Hash256(left[:], right[:]))
		}
		level = next
	}
	return level[0], nil
}

// BlockMerkleRoot computes the merkle root over a full ordered transaction
// sequence, txids as leaves.
func BlockMerkleRoot(txs []*Tx) ([32]byte, error) {
	var zero [32]byte
	if len(txs) == 0 {
		return zero, txerr(BLOCK_ERR_MERKLE_INVALID, "merkle: empty tx list")
	}
	leaves := make([][32]byte, 0, len(txs))
	for _, tx := range txs {
		if tx == nil {
			return zero, txerr(BLOCK_ERR_MERKLE_INVALID, "merkle: nil tx")
		}
		leaves = append(leaves, TxID(tx))
	}
	return MerkleRoot(leaves)
}
