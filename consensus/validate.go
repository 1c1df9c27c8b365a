package consensus

type BlockSummary struct {
	TxCount   uint64
	BlockHash [32]byte
}

func isCoinbasePrevout(in TxInput) bool {
	var zero [32]byte
	return in.PrevTxid == zero && in.PrevVout == ^uint32(0)
}

func isCoinbaseTx(tx *Tx) bool {
	if tx == nil {
		return false
	}
	if len(tx.Inputs) != 1 {
		return false
	}
	in := tx.Inputs[0]
	return isCoinbasePrevout(in) && in.Sequence == SEQUENCE_FINAL
}

// ValidateBlock runs the structural block checks: parse, canonical coinbase
// at index 0 and nowhere else, header merkle root, linkage against the
// expected parent, and the challenge commitment gate. expectedPrevHash is
// nil only for the genesis block.
func ValidateBlock(blockBytes []byte, expectedPrevHash *[32]byte, params Params) (*BlockSummary, error) {
	pb, err := ParseBlockBytes(blockBytes)
	if err != nil {
		return nil, err
	}
	return validateParsedBlock(pb, expectedPrevHash, params)
}

func validateParsedBlock(pb *ParsedBlock, expectedPrevHash *[32]byte, params Params) (*BlockSummary, error) {
	if pb == nil || pb.Block == nil {
		return nil, txerr(BLOCK_ERR_PARSE, "nil parsed block")
	}
	block := pb.Block

	if expectedPrevHash != nil && block.Header.PrevBlockHash != *expectedPrevHash {
		return nil, txerr(BLOCK_ERR_LINKAGE_INVALID, "prev_block_hash mismatch")
	}
	if expectedPrevHash == nil {
		var zero [32]byte
		if block.Header.PrevBlockHash != zero {
			return nil, txerr(BLOCK_ERR_LINKAGE_INVALID, "genesis prev_block_hash must be zero")
		}
	}

	if len(block.Txs) == 0 || !isCoinbaseTx(block.Txs[0]) {
		return nil, txerr(BLOCK_ERR_COINBASE_INVALID, "first tx must be canonical coinbase")
	}
	for i, tx := range block.Txs {
		if i > 0 && isCoinbaseTx(tx) {
			return nil, txerr(BLOCK_ERR_COINBASE_INVALID, "coinbase-like tx is only allowed at index 0")
		}
		if i > 0 && len(tx.Inputs) == 0 {
			return nil, txerr(TX_ERR_PARSE, "non-coinbase must have at least one input")
		}
	}

	root, err := MerkleRoot(pb.Txids)
	if err != nil {
		return nil, txerr(BLOCK_ERR_MERKLE_INVALID, "failed to compute merkle root")
	}
	if root != block.Header.MerkleRoot {
		return nil, txerr(BLOCK_ERR_MERKLE_INVALID, "merkle_root mismatch")
	}

	if !VerifyChallengeCommitment(block, expectedPrevHash, params) {
		return nil, txerr(BLOCK_ERR_CHALLENGE_INVALID, "challenge commitment missing, duplicated, or wrong")
	}

	blockHash, err := BlockHash(pb.HeaderBytes)
	if err != nil {
		return nil, txerr(BLOCK_ERR_PARSE, "failed to hash block header")
	}

	return &BlockSummary{
		TxCount:   uint64(len(block.Txs)),
		BlockHash: blockHash,
	}, nil
}
