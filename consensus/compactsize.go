package consensus

import (
	"encoding/binary"
	"fmt"
)

// CompactSize is the variable-length count prefix used throughout the wire
// format. Decoding enforces minimal encodings.
type CompactSize uint64

func (c CompactSize) Encode() []byte {
	n := uint64(c)
	switch {
	case n < 253:
		return []byte{byte(n)}
	case n <= 0xffff:
		out := make([]byte, 3)
		out[0] = 0xfd
		binary.LittleEndian.PutUint16(out[1:], uint16(n))
		return out
	case n <= 0xffffffff:
		out := make([]byte, 5)
		out[0] = 0xfe
		binary.LittleEndian.PutUint32(out[1:], uint32(n))
		return out
	default:
		out := make([]byte, 9)
		out[0] = 0xff
		binary.LittleEndian.PutUint64(out[1:], n)
		return out
	}
}

func DecodeCompactSize(b []byte) (CompactSize, int, error) {
	if len(b) < 1 {
		return 0, 0, fmt.Errorf("compactsize: empty")
	}
	tag := b[0]
	switch {
	case tag < 0xfd:
		return CompactSize(tag), 1, nil
	case tag == 0xfd:
		if len(b) < 3 {
			return 0, 0, fmt.Errorf("compactsize: truncated u16")
		}
		n := uint64(binary.LittleEndian.Uint16(b[1:3]))
		if n < 253 {
			return 0, 0, fmt.Errorf("compactsize: non-minimal u16")
		}
		return CompactSize(n), 3, nil
	case tag == 0xfe:
		if len(b) < 5 {
			return 0, 0, fmt.Errorf("compactsize: truncated u32")
		}
		n := uint64(binary.LittleEndian.Uint32(b[1:5]))
		if n < 0x1_0000 {
			return 0, 0, fmt.Errorf("compactsize: non-minimal u32")
		}
		return CompactSize(n), 5, nil
	default: // 0xff
		if len(b) < 9 {
			return 0, 0, fmt.Errorf("compactsize: truncated u64")
		}
		n := binary.LittleEndian.Uint64(b[1:9])
		if n < 0x1_0000_0000 {
			return 0, 0, fmt.Errorf("compactsize: non-minimal u64")
		}
		return CompactSize(n), 9, nil
	}
}
