package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and adapters and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot  string
	ArtifactsDir string
	ScriptsDir   string

	// Network selection
	Network *Network

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool
	Timeout        time.Duration
	PollInterval   time.Duration

	// Known contract addresses from bountydeploy.toml and the local config,
	// keyed by contract name
	Addresses map[string]string

	// Config source tracking
	ConfigSource string // "bountydeploy.toml" or "defaults"

	// Resolved project file, nil when running on defaults
	ProjectConfig *ProjectConfig
}

// Network represents a resolved network
type Network struct {
	Name     string   `json:"name"`
	RPCURL   string   `json:"rpcUrl"`
	ChainID  uint64   `json:"chainId,omitempty"` // 0 means "accept whatever the node reports"
	Accounts []string `json:"-"`                 // private keys, hex
}

// ProjectConfig is the parsed bountydeploy.toml
type ProjectConfig struct {
	DefaultNetwork string                   `toml:"default_network"`
	Artifacts      string                   `toml:"artifacts"`
	Scripts        string                   `toml:"scripts"`
	Networks       map[string]NetworkConfig `toml:"networks"`
	Addresses      map[string]string        `toml:"addresses"`
}

// NetworkConfig is one [networks.<name>] table
type NetworkConfig struct {
	URL      string   `toml:"url"`
	ChainID  uint64   `toml:"chain_id"`
	Accounts []string `toml:"accounts"`
}
