package node

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"obol.dev/node/consensus"
)

type Config struct {
	Network  string `json:"network"`
	DataDir  string `json:"data_dir"`
	LogLevel string `json:"log_level"`

	// ChallengeSizeLimit overrides the network default when non-zero.
	ChallengeSizeLimit uint64 `json:"challenge_size_limit,omitempty"`
}

var allowedLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".obol"
	}
	return filepath.Join(home, ".obol")
}

func DefaultConfig() Config {
	return Config{
		Network:  "devnet",
		DataDir:  DefaultDataDir(),
		LogLevel: "info",
	}
}

func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.Network) == "" {
		return errors.New("network is required")
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		return errors.New("data_dir is required")
	}
	if _, ok := allowedLogLevels[cfg.LogLevel]; !ok {
		return fmt.Errorf("log_level must be one of debug|info|warn|error, got %q", cfg.LogLevel)
	}
	if _, err := paramsForNetwork(cfg.Network); err != nil {
		return err
	}
	return nil
}

func paramsForNetwork(network string) (consensus.Params, error) {
	switch network {
	case "devnet":
		return consensus.DevnetParams(), nil
	case "mainnet":
		return consensus.MainnetParams(), nil
	default:
		return consensus.Params{}, fmt.Errorf("unknown network %q", network)
	}
}

// Params resolves the consensus parameters for cfg, applying the
// challenge-size override when set.
func (cfg Config) Params() (consensus.Params, error) {
	params, err := paramsForNetwork(cfg.Network)
	if err != nil {
		return consensus.Params{}, err
	}
	if cfg.ChallengeSizeLimit != 0 {
		params.ChallengeSizeLimit = cfg.ChallengeSizeLimit
	}
	return params, nil
}
