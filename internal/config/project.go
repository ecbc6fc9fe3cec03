package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/zkbugbounty/bountydeploy/internal/domain/config"
)

const (
	// ProjectFile is the name of the project configuration file
	ProjectFile = "bountydeploy.toml"

	DefaultNetwork      = "localhost"
	DefaultLocalRPCURL  = "http://127.0.0.1:8545"
	DefaultArtifactsDir = "artifacts"
	DefaultScriptsDir   = "scripts"
)

// projectMarkers identify a project root, in order of preference
var projectMarkers = []string{
	ProjectFile,
	"hardhat.config.js",
	"hardhat.config.ts",
	"foundry.toml",
}

// ProjectRootEnv overrides project root discovery
const ProjectRootEnv = "BOUNTYDEPLOY_PROJECT_ROOT"

// FindProjectRoot returns $BOUNTYDEPLOY_PROJECT_ROOT when set, otherwise it
// walks up from the current directory to the first directory holding a
// project marker
func FindProjectRoot() (string, error) {
	if root := os.Getenv(ProjectRootEnv); root != "" {
		return filepath.Abs(root)
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		for _, marker := range projectMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a contracts project (%s not found)", ProjectFile)
		}
		dir = parent
	}
}

// LoadProjectConfig loads .env files and parses bountydeploy.toml.
// A missing file is not an error; nil is returned and defaults apply.
func LoadProjectConfig(projectRoot string) (*config.ProjectConfig, error) {
	loadEnvFiles(projectRoot)

	path := filepath.Join(projectRoot, ProjectFile)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	var cfg config.ProjectConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ProjectFile, err)
	}
	if cfg.Networks == nil {
		cfg.Networks = make(map[string]config.NetworkConfig)
	}

	return &cfg, nil
}
