package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"obol.dev/node/crypto"
	"obol.dev/node/node"
	"obol.dev/node/node/store"
)

func run() error {
	cfg := node.DefaultConfig()
	var mineBlocks int

	flag.StringVar(&cfg.Network, "network", cfg.Network, "network name (devnet|mainnet)")
	flag.StringVar(&cfg.DataDir, "datadir", cfg.DataDir, "data directory")
	flag.StringVar(&cfg.LogLevel, "loglevel", cfg.LogLevel, "log level (debug|info|warn|error)")
	flag.Uint64Var(&cfg.ChallengeSizeLimit, "challenge-size-limit", 0, "override the network challenge size limit (bytes)")
	flag.IntVar(&mineBlocks, "mine", 0, "mine this many blocks, then exit")
	flag.Parse()

	if err := node.ValidateConfig(cfg); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	params, err := cfg.Params()
	if err != nil {
		return err
	}

	chainID, err := node.ChainID(crypto.DevStdProvider{}, params)
	if err != nil {
		return fmt.Errorf("derive chain id: %w", err)
	}
	chainDir := filepath.Join(cfg.DataDir, hex.EncodeToString(chainID[:8]))

	db, err := store.Open(chainDir)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = db.Close() }()

	chainState, err := node.NewChainState(params, db)
	if err != nil {
		return err
	}
	if summary, err := chainState.InitGenesis(); err != nil {
		return fmt.Errorf("init genesis: %w", err)
	} else if summary != nil {
		fmt.Fprintf(os.Stderr, "initialized %s genesis %x\n", params.Network, summary.BlockHash)
	}

	if mineBlocks > 0 {
		miner, err := node.NewMiner(chainState, node.DefaultMinerConfig())
		if err != nil {
			return err
		}
		mined, err := miner.MineN(context.Background(), mineBlocks)
		if err != nil {
			return fmt.Errorf("mine: %w", err)
		}
		for _, mb := range mined {
			fmt.Printf("height=%d hash=%x txs=%d\n", mb.Height, mb.Hash, mb.TxCount)
		}
	}

	if hash, height, ok := chainState.Tip(); ok {
		fmt.Printf("tip height=%d hash=%x limit=%d\n", height, hash, params.ChallengeSizeLimit)
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "obol-node: %v\n", err)
		os.Exit(1)
	}
}
