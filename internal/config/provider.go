package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/zkbugbounty/bountydeploy/internal/domain/config"
)

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	project, err := LoadProjectConfig(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load project config: %w", err)
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		ArtifactsDir:   filepath.Join(projectRoot, DefaultArtifactsDir),
		ScriptsDir:     filepath.Join(projectRoot, DefaultScriptsDir),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive") || v.GetBool("yes"),
		JSON:           v.GetBool("json"),
		Timeout:        v.GetDuration("timeout"),
		PollInterval:   v.GetDuration("poll_interval"),
		ConfigSource:   "defaults",
		ProjectConfig:  project,
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}

	var projectAddresses map[string]string
	networkName := v.GetString("network")
	if project != nil {
		projectAddresses = project.Addresses
		cfg.ConfigSource = ProjectFile
		if project.Artifacts != "" {
			cfg.ArtifactsDir = resolvePath(projectRoot, project.Artifacts)
		}
		if project.Scripts != "" {
			cfg.ScriptsDir = resolvePath(projectRoot, project.Scripts)
		}
		if networkName == "" {
			networkName = project.DefaultNetwork
		}
	}
	if networkName == "" {
		networkName = DefaultNetwork
	}
	cfg.Addresses = MergeAddresses(projectAddresses, v.GetStringMapString("address"))

	network, err := NewNetworkResolver(project).Resolve(networkName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve network %s: %w", networkName, err)
	}
	cfg.Network = network

	return cfg, nil
}

func resolvePath(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Local overrides, not committed
	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, ".bountydeploy"))

	v.SetEnvPrefix("BOUNTYDEPLOY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	v.SetDefault("timeout", "0s")
	v.SetDefault("poll_interval", "1s")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err := v.BindPFlag(key, f); err != nil {
			panic(err)
		}
	})

	return v
}

// ProvideNetworkResolver creates a NetworkResolver for Wire dependency injection
func ProvideNetworkResolver(cfg *config.RuntimeConfig) *NetworkResolver {
	return NewNetworkResolver(cfg.ProjectConfig)
}
