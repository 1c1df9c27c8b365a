package consensus

import "testing"

func leaf(b byte) [32]byte {
	var out [32]byte
	out[0] = b
	return out
}

func TestMerkleRootEmptyIsError(t *testing.T) {
	if _, err := MerkleRoot(nil); err == nil {
		t.Fatalf("expected error for empty leaf list")
	}
}

func TestMerkleRootSingleLeaf(t *testing.T) {
	l := leaf(1)
	root, err := MerkleRoot([][32]byte{l})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root != l {
		t.Fatalf("single-leaf root must be the leaf itself")
	}
}

func TestMerkleRootTwoLeaves(t *testing.T) {
	l1, l2 := leaf(1), leaf(2)
	root, err := MerkleRoot([][32]byte{l1, l2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Hash256(l1[:], l2[:])
	if root != want {
		t.Fatalf("root mismatch")
	}
}

func TestMerkleRootOddDuplicatesLast(t *testing.T) {
	l1, l2, l3 := leaf(1), leaf(2), leaf(3)
	root, err := MerkleRoot([][32]byte{l1, l2, l3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	left := Hash256(l1[:], l2[:])
	right := Hash256(l3[:], l3[:])
	want := Hash256(left[:], right[:])
	if root != want {
		t.Fatalf("odd leaf must be paired with itself")
	}
}

func TestMerkleRootOrderSensitive(t *testing.T) {
	a, err := MerkleRoot([][32]byte{leaf(1), leaf(2)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := MerkleRoot([][32]byte{leaf(2), leaf(1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == b {
		t.Fatalf("leaf order must matter")
	}
}

func TestBlockMerkleRootUsesTxids(t *testing.T) {
	tx := sampleTx()
	root, err := BlockMerkleRoot([]*Tx{tx})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root != TxID(tx) {
		t.Fatalf("single-tx block root must equal its txid")
	}
}
