package node

import (
	"context"
	"testing"

	"obol.dev/node/consensus"
)

func testMinerConfig() MinerConfig {
	cfg := DefaultMinerConfig()
	cfg.TimestampSource = func() uint64 { return 1735689700 }
	return cfg
}

func TestMineNAdvancesChain(t *testing.T) {
	s, db := newTestChain(t)
	if _, err := s.InitGenesis(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m, err := NewMiner(s, testMinerConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mined, err := m.MineN(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mined) != 3 {
		t.Fatalf("want 3 blocks, got %d", len(mined))
	}
	for i, mb := range mined {
		if mb.Height != uint64(i+1) {
			t.Fatalf("block %d at height %d", i, mb.Height)
		}
	}

	_, height, ok := s.Tip()
	if !ok || height != 3 {
		t.Fatalf("tip at height %d, want 3", height)
	}

	// Every stored block must re-validate against its recorded parent.
	hash, _, _ := s.Tip()
	for {
		entry, found, err := db.GetIndexEntry(hash)
		if err != nil || !found {
			t.Fatalf("index entry missing: found=%v err=%v", found, err)
		}
		raw, found, err := db.GetBlock(hash)
		if err != nil || !found {
			t.Fatalf("block missing: found=%v err=%v", found, err)
		}
		var expectedPrev *[32]byte
		if entry.Height > 0 {
			prev := entry.PrevHash
			expectedPrev = &prev
		}
		if _, err := consensus.ValidateBlock(raw, expectedPrev, s.Params()); err != nil {
			t.Fatalf("stored block at height %d fails revalidation: %v", entry.Height, err)
		}
		if entry.Height == 0 {
			break
		}
		hash = entry.PrevHash
	}
}

func TestMineOneIncludesTransactions(t *testing.T) {
	s, _ := newTestChain(t)
	if _, err := s.InitGenesis(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var prev [32]byte
	prev[0] = 0x55
	spend := &consensus.Tx{
		Version: 1,
		Inputs: []consensus.TxInput{{
			PrevTxid: prev,
			PrevVout: 0,
			Sequence: consensus.SEQUENCE_FINAL,
		}},
		Outputs:  []consensus.TxOutput{{Value: 100, ScriptPubKey: []byte{consensus.OP_RETURN}}},
		Locktime: 0,
	}

	m, err := NewMiner(s, testMinerConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mb, err := m.MineOne(context.Background(), []*consensus.Tx{spend})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mb.TxCount != 2 {
		t.Fatalf("want coinbase + 1 tx, got %d", mb.TxCount)
	}
}

func TestMineOneRequiresTip(t *testing.T) {
	s, _ := newTestChain(t)
	m, err := NewMiner(s, testMinerConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.MineOne(context.Background(), nil); err == nil {
		t.Fatalf("mining without a tip must fail")
	}
}

func TestMineOneHonorsContextCancel(t *testing.T) {
	s, _ := newTestChain(t)
	if _, err := s.InitGenesis(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, err := NewMiner(s, testMinerConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := m.MineOne(ctx, nil); err == nil {
		t.Fatalf("cancelled context must abort mining")
	}
}
