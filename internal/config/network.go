package config

import (
	"fmt"
	"sort"

	"github.com/zkbugbounty/bountydeploy/internal/domain"
	"github.com/zkbugbounty/bountydeploy/internal/domain/config"
)

// NetworkResolver resolves network names against the project configuration
type NetworkResolver struct {
	project *config.ProjectConfig
}

// NewNetworkResolver creates a new network resolver. project may be nil.
func NewNetworkResolver(project *config.ProjectConfig) *NetworkResolver {
	return &NetworkResolver{project: project}
}

// Names returns all configured network names, sorted. The implicit
// localhost network is always present.
func (r *NetworkResolver) Names() []string {
	names := []string{DefaultNetwork}
	if r.project != nil {
		for name := range r.project.Networks {
			if name != DefaultNetwork {
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// Resolve resolves a network name to its configuration, expanding ${VAR}
// references in the URL and accounts
func (r *NetworkResolver) Resolve(name string) (*config.Network, error) {
	var (
		netCfg config.NetworkConfig
		found  bool
	)
	if r.project != nil {
		netCfg, found = r.project.Networks[name]
	}
	if !found {
		if name != DefaultNetwork {
			return nil, fmt.Errorf("%w: '%s' is not configured in %s [networks]", domain.ErrNetworkNotFound, name, ProjectFile)
		}
		netCfg = config.NetworkConfig{URL: DefaultLocalRPCURL}
	}

	rpcURL, err := expandValue(netCfg.URL)
	if err != nil {
		return nil, fmt.Errorf("network %s url: %w", name, err)
	}
	if rpcURL == "" {
		return nil, fmt.Errorf("network %s has no url (e.g. url = \"${%s}\")", name, GenerateEnvVarName(name))
	}

	accounts := make([]string, 0, len(netCfg.Accounts))
	for i, raw := range netCfg.Accounts {
		key, err := expandValue(raw)
		if err != nil {
			return nil, fmt.Errorf("network %s account %d: %w", name, i, err)
		}
		if key == "" {
			return nil, fmt.Errorf("network %s account %d is empty", name, i)
		}
		accounts = append(accounts, key)
	}

	return &config.Network{
		Name:     name,
		RPCURL:   rpcURL,
		ChainID:  netCfg.ChainID,
		Accounts: accounts,
	}, nil
}
