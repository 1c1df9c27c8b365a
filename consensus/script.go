package consensus

// The consensus layer emits and inspects scripts but never executes them.
// Only the opcodes below are produced by this code.
const (
	OP_RETURN byte = 0x6a

	// Largest direct-push opcode: a single length byte followed by the data.
	MAX_DIRECT_PUSH = 0x4b
)

// appendPushData appends a direct push of data. Callers only push short
// vectors (at most 33 bytes), so the single-byte length form always fits.
func appendPushData(script []byte, data []byte) []byte {
	if len(data) > MAX_DIRECT_PUSH {
		panic("script: push too large for direct push")
	}
	script = append(script, byte(len(data)))
	return append(script, data...)
}

// appendPushNum appends the minimal script-number push of v: little-endian
// magnitude bytes with a trailing 0x00 if the top bit would read as a sign,
// and the empty vector for zero.
func appendPushNum(script []byte, v uint64) []byte {
	var buf []byte
	for v > 0 {
		buf = append(buf, byte(v))
		v >>= 8
	}
	if len(buf) > 0 && buf[len(buf)-1]&0x80 != 0 {
		buf = append(buf, 0x00)
	}
	return appendPushData(script, buf)
}
