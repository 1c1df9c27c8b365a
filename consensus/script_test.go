package consensus

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestAppendPushNumMinimal(t *testing.T) {
	cases := []struct {
		name string
		val  uint64
		hex  string
	}{
		{"zero_is_empty_push", 0, "00"},
		{"one_byte", 1, "0101"},
		{"sign_bit_padded", 0x80, "028000"},
		{"two_bytes", 0x1234, "023412"},
		{"u32_with_sign_pad", 0xffffffff, "05ffffffff00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := appendPushNum(nil, tc.val)
			if hex.EncodeToString(got) != tc.hex {
				t.Fatalf("push mismatch: got %x want %s", got, tc.hex)
			}
		})
	}
}

func TestAppendPushData(t *testing.T) {
	data := bytes.Repeat([]byte{0xab}, 32)
	got := appendPushData([]byte{OP_RETURN}, data)
	if len(got) != 34 {
		t.Fatalf("want 34 bytes, got %d", len(got))
	}
	if got[0] != OP_RETURN || got[1] != 32 {
		t.Fatalf("bad prefix: %x", got[:2])
	}
	if !bytes.Equal(got[2:], data) {
		t.Fatalf("payload mismatch")
	}
}
