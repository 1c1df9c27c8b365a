package consensus

// Canonical header layout:
// version(4) | prev_block_hash(32) | merkle_root(32) | timestamp(8) | nonce(8)
const BLOCK_HEADER_BYTES = 84

const MAX_BLOCK_BYTES = 4_000_000

type BlockHeader struct {
	Version       uint32
	PrevBlockHash [32]byte
	MerkleRoot    [32]byte
	Timestamp     uint64
	Nonce         uint64
}

type Block struct {
	Header BlockHeader
	Txs    []*Tx
}

// ParsedBlock carries the decoded block together with the artifacts block
// validation needs again: header bytes for hashing, txids for the merkle check.
type ParsedBlock struct {
	Block       *Block
	HeaderBytes []byte
	Txids       [][32]byte
}

// BlockHash is the hash of the canonical header bytes.
func BlockHash(headerBytes []byte) ([32]byte, error) {
	var zero [32]byte
	if len(headerBytes) != BLOCK_HEADER_BYTES {
		return zero, txerr(BLOCK_ERR_PARSE, "header must be exactly 84 bytes")
	}
	return sha3_256(headerBytes), nil
}

func parseBlockHeader(cur *cursor) (BlockHeader, error) {
	var h BlockHeader
	var err error
	if h.Version, err = cur.readU32LE(); err != nil {
		return BlockHeader{}, err
	}
	prev, err := cur.readExact(32)
	if err != nil {
		return BlockHeader{}, err
	}
	copy(h.PrevBlockHash[:], prev)
	root, err := cur.readExact(32)
	if err != nil {
		return BlockHeader{}, err
	}
	copy(h.MerkleRoot[:], root)
	if h.Timestamp, err = cur.readU64LE(); err != nil {
		return BlockHeader{}, err
	}
	if h.Nonce, err = cur.readU64LE(); err != nil {
		return BlockHeader{}, err
	}
	return h, nil
}

// ParseBlockHeaderBytes parses exactly one canonical header and rejects
// trailing bytes.
func ParseBlockHeaderBytes(b []byte) (BlockHeader, error) {
	cur := newCursor(b)
	h, err := parseBlockHeader(cur)
	if err != nil {
		return BlockHeader{}, txerr(BLOCK_ERR_PARSE, "invalid block header")
	}
	if cur.pos != len(b) {
		return BlockHeader{}, txerr(BLOCK_ERR_PARSE, "trailing bytes after header")
	}
	return h, nil
}

func ParseBlockBytes(b []byte) (*ParsedBlock, error) {
	if len(b) > MAX_BLOCK_BYTES {
		return nil, txerr(BLOCK_ERR_PARSE, "block exceeds size cap")
	}
	if len(b) < BLOCK_HEADER_BYTES+1 {
		return nil, txerr(BLOCK_ERR_PARSE, "block too short")
	}

	headerBytes := append([]byte(nil), b[:BLOCK_HEADER_BYTES]...)
	header, err := ParseBlockHeaderBytes(headerBytes)
	if err != nil {
		return nil, err
	}

	cur := newCursor(b)
	cur.pos = BLOCK_HEADER_BYTES
	txCount, err := cur.readCompactSize()
	if err != nil {
		return nil, txerr(BLOCK_ERR_PARSE, "invalid tx_count")
	}
	if txCount == 0 {
		return nil, txerr(BLOCK_ERR_COINBASE_INVALID, "empty block tx list")
	}
	if txCount > uint64(cur.remaining()) {
		return nil, txerr(BLOCK_ERR_PARSE, "tx_count exceeds remaining bytes")
	}

	txs := make([]*Tx, 0, txCount)
	txids := make([][32]byte, 0, txCount)
	for i := uint64(0); i < txCount; i++ {
		start := cur.pos
		tx, err := parseTx(cur)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
		txids = append(txids, Hash256(b[start:cur.pos]))
	}

	if cur.pos != len(b) {
		return nil, txerr(BLOCK_ERR_PARSE, "trailing bytes after tx list")
	}

	return &ParsedBlock{
		Block:       &Block{Header: header, Txs: txs},
		HeaderBytes: headerBytes,
		Txids:       txids,
	}, nil
}
