package consensus

import "encoding/binary"

func TxOutputBytes(o TxOutput) []byte {
	out := make([]byte, 0, 8+9+len(o.ScriptPubKey))
	var tmp8 [8]byte
	binary.LittleEndian.PutUint64(tmp8[:], o.Value)
	out = append(out, tmp8[:]...)
	out = append(out, CompactSize(len(o.ScriptPubKey)).Encode()...)
	out = append(out, o.ScriptPubKey...)
	return out
}

// TxBytes serialises a transaction into its canonical wire form, the exact
// inverse of ParseTx.
func TxBytes(tx *Tx) []byte {
	if tx == nil {
		return nil
	}
	out := make([]byte, 0, 64)
	var tmp4 [4]byte

	binary.LittleEndian.PutUint32(tmp4[:], tx.Version)
	out = append(out, tmp4[:]...)

	out = append(out, CompactSize(len(tx.Inputs)).Encode()...)
	for _, in := range tx.Inputs {
		out = append(out, in.PrevTxid[:]...)
		binary.LittleEndian.PutUint32(tmp4[:], in.PrevVout)
		out = append(out, tmp4[:]...)
		out = append(out, CompactSize(len(in.ScriptSig)).Encode()...)
		out = append(out, in.ScriptSig...)
		binary.LittleEndian.PutUint32(tmp4[:], in.Sequence)
		out = append(out, tmp4[:]...)
	}

	out = append(out, CompactSize(len(tx.Outputs)).Encode()...)
	for _, o := range tx.Outputs {
		out = append(out, TxOutputBytes(o)...)
	}

	binary.LittleEndian.PutUint32(tmp4[:], tx.Locktime)
	out = append(out, tmp4[:]...)
	return out
}

// TxID is the content hash of a transaction's canonical bytes.
func TxID(tx *Tx) [32]byte {
	return Hash256(TxBytes(tx))
}

// TxTotalSize is the canonical serialized size in bytes.
func TxTotalSize(tx *Tx) int {
	return len(TxBytes(tx))
}

func BlockHeaderBytes(header BlockHeader) []byte {
	out := make([]byte, 0, BLOCK_HEADER_BYTES)
	var tmp4 [4]byte
	var tmp8 [8]byte

	binary.LittleEndian.PutUint32(tmp4[:], header.Version)
	out = append(out, tmp4[:]...)
	out = append(out, header.PrevBlockHash[:]...)
	out = append(out, header.MerkleRoot[:]...)
	binary.LittleEndian.PutUint64(tmp8[:], header.Timestamp)
	out = append(out, tmp8[:]...)
	binary.LittleEndian.PutUint64(tmp8[:], header.Nonce)
	out = append(out, tmp8[:]...)
	return out
}

func BlockBytes(block *Block) []byte {
	if block == nil {
		return nil
	}
	out := make([]byte, 0, 256)
	out = append(out, BlockHeaderBytes(block.Header)...)
	out = append(out, CompactSize(len(block.Txs)).Encode()...)
	for _, tx := range block.Txs {
		out = append(out, TxBytes(tx)...)
	}
	return out
}
