package consensus

import (
	"encoding/binary"
	"fmt"
)

const (
	SEQUENCE_FINAL uint32 = 0xffffffff

	MAX_SCRIPT_BYTES = 10_000
	MAX_TX_BYTES     = 1_000_000
)

type Tx struct {
	Version  uint32
	Inputs   []TxInput
	Outputs  []TxOutput
	Locktime uint32
}

type TxInput struct {
	PrevTxid  [32]byte
	PrevVout  uint32
	ScriptSig []byte
	Sequence  uint32
}

type TxOutput struct {
	Value        uint64
	ScriptPubKey []byte
}

type cursor struct {
	b   []byte
	pos int
}

func newCursor(b []byte) *cursor {
	return &cursor{b: b, pos: 0}
}

func (c *cursor) remaining() int {
	if c.pos >= len(c.b) {
		return 0
	}
	return len(c.b) - c.pos
}

func (c *cursor) readExact(n int) ([]byte, error) {
	if n < 0 || c.remaining() < n {
		return nil, fmt.Errorf("parse: truncated")
	}
	start := c.pos
	c.pos += n
	return c.b[start:c.pos], nil
}

func (c *cursor) readU32LE() (uint32, error) {
	b, err := c.readExact(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *cursor) readU64LE() (uint64, error) {
	b, err := c.readExact(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (c *cursor) readCompactSize() (uint64, error) {
	cs, used, err := DecodeCompactSize(c.b[c.pos:])
	if err != nil {
		return 0, err
	}
	c.pos += used
	return uint64(cs), nil
}

// readVarBytes reads a CompactSize length followed by that many bytes,
// copied out of the cursor's backing slice.
func (c *cursor) readVarBytes(max int, name string) ([]byte, error) {
	n, err := c.readCompactSize()
	if err != nil {
		return nil, err
	}
	if n > uint64(max) {
		return nil, fmt.Errorf("parse: %s exceeds %d bytes", name, max)
	}
	raw, err := c.readExact(int(n))
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), raw...), nil
}

func parseTx(cur *cursor) (*Tx, error) {
	version, err := cur.readU32LE()
	if err != nil {
		return nil, txerr(TX_ERR_PARSE, "missing version")
	}

	inputCount, err := cur.readCompactSize()
	if err != nil {
		return nil, txerr(TX_ERR_PARSE, "invalid input_count")
	}
	if inputCount > uint64(cur.remaining()) {
		return nil, txerr(TX_ERR_PARSE, "input_count exceeds remaining bytes")
	}
	inputs := make([]TxInput, 0, inputCount)
	for i := uint64(0); i < inputCount; i++ {
		var in TxInput
		prevTxid, err := cur.readExact(32)
		if err != nil {
			return nil, txerr(TX_ERR_PARSE, "truncated prev_txid")
		}
		copy(in.PrevTxid[:], prevTxid)
		if in.PrevVout, err = cur.readU32LE(); err != nil {
			return nil, txerr(TX_ERR_PARSE, "truncated prev_vout")
		}
		if in.ScriptSig, err = cur.readVarBytes(MAX_SCRIPT_BYTES, "script_sig"); err != nil {
			return nil, txerr(TX_ERR_PARSE, "invalid script_sig")
		}
		if in.Sequence, err = cur.readU32LE(); err != nil {
			return nil, txerr(TX_ERR_PARSE, "truncated sequence")
		}
		inputs = append(inputs, in)
	}

	outputCount, err := cur.readCompactSize()
	if err != nil {
		return nil, txerr(TX_ERR_PARSE, "invalid output_count")
	}
	if outputCount > uint64(cur.remaining()) {
		return nil, txerr(TX_ERR_PARSE, "output_count exceeds remaining bytes")
	}
	outputs := make([]TxOutput, 0, outputCount)
	for i := uint64(0); i < outputCount; i++ {
		var out TxOutput
		if out.Value, err = cur.readU64LE(); err != nil {
			return nil, txerr(TX_ERR_PARSE, "truncated value")
		}
		if out.ScriptPubKey, err = cur.readVarBytes(MAX_SCRIPT_BYTES, "script_pubkey"); err != nil {
			return nil, txerr(TX_ERR_PARSE, "invalid script_pubkey")
		}
		outputs = append(outputs, out)
	}

	locktime, err := cur.readU32LE()
	if err != nil {
		return nil, txerr(TX_ERR_PARSE, "truncated locktime")
	}

	return &Tx{
		Version:  version,
		Inputs:   inputs,
		Outputs:  outputs,
		Locktime: locktime,
	}, nil
}

// ParseTx decodes one transaction from the front of b and returns it, its
// txid, and the number of bytes consumed.
func ParseTx(b []byte) (*Tx, [32]byte, int, error) {
	var zero [32]byte
	if len(b) > MAX_TX_BYTES {
		return nil, zero, 0, txerr(TX_ERR_PARSE, "tx exceeds size cap")
	}
	cur := newCursor(b)
	tx, err := parseTx(cur)
	if err != nil {
		return nil, zero, 0, err
	}
	return tx, Hash256(b[:cur.pos]), cur.pos, nil
}

// ParseTxBytes decodes a transaction and rejects trailing bytes.
func ParseTxBytes(b []byte) (*Tx, [32]byte, error) {
	var zero [32]byte
	tx, txid, n, err := ParseTx(b)
	if err != nil {
		return nil, zero, err
	}
	if n != len(b) {
		return nil, zero, txerr(TX_ERR_PARSE, "trailing bytes after tx")
	}
	return tx, txid, nil
}
