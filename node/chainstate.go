package node

import (
	"errors"
	"fmt"

	"obol.dev/node/consensus"
	"obol.dev/node/node/store"
)

// ChainState tracks the active tip and gates every connected block through
// full structural validation, including the challenge commitment check.
type ChainState struct {
	params consensus.Params
	db     *store.DB

	hasTip  bool
	height  uint64
	tipHash [32]byte
}

type ConnectSummary struct {
	Height    uint64
	BlockHash [32]byte
	TxCount   uint64
}

func NewChainState(params consensus.Params, db *store.DB) (*ChainState, error) {
	if db == nil {
		return nil, errors.New("nil store")
	}
	s := &ChainState{params: params, db: db}
	tip, found, err := db.GetTip()
	if err != nil {
		return nil, fmt.Errorf("load tip: %w", err)
	}
	if found {
		s.hasTip = true
		s.height = tip.Height
		s.tipHash = tip.Hash
	}
	return s, nil
}

func (s *ChainState) HasTip() bool {
	return s.hasTip
}

func (s *ChainState) Tip() (hash [32]byte, height uint64, ok bool) {
	if !s.hasTip {
		return [32]byte{}, 0, false
	}
	return s.tipHash, s.height, true
}

func (s *ChainState) Params() consensus.Params {
	return s.params
}

// ConnectBlock validates raw against the current tip and, on success,
// persists it and advances the tip. The first connected block is the
// genesis block and is validated with no parent.
func (s *ChainState) ConnectBlock(raw []byte) (*ConnectSummary, error) {
	var expectedPrev *[32]byte
	var nextHeight uint64
	if s.hasTip {
		prev := s.tipHash
		expectedPrev = &prev
		nextHeight = s.height + 1
	}

	summary, err := consensus.ValidateBlock(raw, expectedPrev, s.params)
	if err != nil {
		return nil, err
	}

	entry := store.BlockIndexEntry{
		Height: nextHeight,
		Status: store.BlockStatusValid,
	}
	if expectedPrev != nil {
		entry.PrevHash = *expectedPrev
	}
	if err := s.db.PutBlock(summary.BlockHash, raw, entry); err != nil {
		return nil, fmt.Errorf("persist block: %w", err)
	}
	if err := s.db.SetTip(store.Tip{Hash: summary.BlockHash, Height: nextHeight}); err != nil {
		return nil, fmt.Errorf("persist tip: %w", err)
	}

	s.hasTip = true
	s.height = nextHeight
	s.tipHash = summary.BlockHash

	return &ConnectSummary{
		Height:    nextHeight,
		BlockHash: summary.BlockHash,
		TxCount:   summary.TxCount,
	}, nil
}

// InitGenesis connects the canonical genesis block on a fresh chain. It is
// a no-op when a tip already exists.
func (s *ChainState) InitGenesis() (*ConnectSummary, error) {
	if s.hasTip {
		return nil, nil
	}
	raw, err := GenesisBlockBytes(s.params)
	if err != nil {
		return nil, err
	}
	return s.ConnectBlock(raw)
}
