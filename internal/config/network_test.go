package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zkbugbounty/bountydeploy/internal/domain"
	"github.com/zkbugbounty/bountydeploy/internal/domain/config"
)

func testProject() *config.ProjectConfig {
	return &config.ProjectConfig{
		Networks: map[string]config.NetworkConfig{
			"sepolia": {
				URL:      "${BOUNTYDEPLOY_TEST_SEPOLIA_URL}",
				ChainID:  11155111,
				Accounts: []string{"${BOUNTYDEPLOY_TEST_DEPLOYER_KEY}"},
			},
			"hardhat": {
				URL: "http://127.0.0.1:8545",
			},
			"broken": {},
		},
	}
}

func TestNetworkResolverNames(t *testing.T) {
	assert.Equal(t, []string{"localhost"}, NewNetworkResolver(nil).Names())
	assert.Equal(t, []string{"broken", "hardhat", "localhost", "sepolia"}, NewNetworkResolver(testProject()).Names())
}

func TestNetworkResolverResolve(t *testing.T) {
	resolver := NewNetworkResolver(testProject())

	t.Run("expands environment references", func(t *testing.T) {
		t.Setenv("BOUNTYDEPLOY_TEST_SEPOLIA_URL", "https://sepolia.example.com")
		t.Setenv("BOUNTYDEPLOY_TEST_DEPLOYER_KEY", "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")

		network, err := resolver.Resolve("sepolia")
		require.NoError(t, err)

		assert.Equal(t, "sepolia", network.Name)
		assert.Equal(t, "https://sepolia.example.com", network.RPCURL)
		assert.Equal(t, uint64(11155111), network.ChainID)
		assert.Equal(t, []string{"0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"}, network.Accounts)
	})

	t.Run("missing url variable", func(t *testing.T) {
		_, err := resolver.Resolve("sepolia")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "environment variable BOUNTYDEPLOY_TEST_SEPOLIA_URL is not set")
	})

	t.Run("missing account variable", func(t *testing.T) {
		t.Setenv("BOUNTYDEPLOY_TEST_SEPOLIA_URL", "https://sepolia.example.com")

		_, err := resolver.Resolve("sepolia")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "network sepolia account 0")
	})

	t.Run("no url", func(t *testing.T) {
		_, err := resolver.Resolve("broken")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "BROKEN_RPC_URL")
	})

	t.Run("node accounts when no keys are configured", func(t *testing.T) {
		network, err := resolver.Resolve("hardhat")
		require.NoError(t, err)
		assert.Empty(t, network.Accounts)
	})

	t.Run("implicit localhost", func(t *testing.T) {
		network, err := resolver.Resolve("localhost")
		require.NoError(t, err)
		assert.Equal(t, DefaultLocalRPCURL, network.RPCURL)
		assert.Zero(t, network.ChainID)
	})

	t.Run("unknown network", func(t *testing.T) {
		_, err := resolver.Resolve("mainnet")
		assert.ErrorIs(t, err, domain.ErrNetworkNotFound)
	})
}
