package artifacts

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zkbugbounty/bountydeploy/internal/domain"
	"github.com/zkbugbounty/bountydeploy/internal/domain/config"
)

const hardhatHello = `{
  "_format": "hh-sol-artifact-1",
  "contractName": "Hello",
  "sourceName": "contracts/Hello.sol",
  "abi": [],
  "bytecode": "0x600a600c600039600a6000f3602a60005260206000f3",
  "deployedBytecode": "0x602a60005260206000f3",
  "linkReferences": {},
  "deployedLinkReferences": {}
}`

const hardhatBounty = `{
  "_format": "hh-sol-artifact-1",
  "contractName": "ZkBugBounty",
  "sourceName": "contracts/ZkBugBounty.sol",
  "abi": [
    {
      "inputs": [
        {"internalType": "address", "name": "owner", "type": "address"},
        {"internalType": "contract Hello", "name": "hello", "type": "address"},
        {"internalType": "contract Hello", "name": "verifier", "type": "address"}
      ],
      "stateMutability": "nonpayable",
      "type": "constructor"
    }
  ],
  "bytecode": "0x6080604052"
}`

const foundryHello = `{
  "abi": [],
  "bytecode": {"object": "0x600a600c600039600a6000f3602a60005260206000f3", "linkReferences": {}},
  "deployedBytecode": {"object": "0x602a60005260206000f3"}
}`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newTestRepository(dir string) *Repository {
	cfg := &config.RuntimeConfig{ArtifactsDir: dir}
	return NewRepository(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestGetFactoryHardhat(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "contracts", "Hello.sol", "Hello.json"), hardhatHello)
	writeFile(t, filepath.Join(dir, "contracts", "Hello.sol", "Hello.dbg.json"), `{"buildInfo": "../../build-info/abc.json"}`)
	writeFile(t, filepath.Join(dir, "contracts", "ZkBugBounty.sol", "ZkBugBounty.json"), hardhatBounty)
	writeFile(t, filepath.Join(dir, "build-info", "abc.json"), `{"id": "abc"}`)

	repo := newTestRepository(dir)
	ctx := context.Background()

	hello, err := repo.GetFactory(ctx, "Hello")
	require.NoError(t, err)
	assert.Equal(t, "Hello", hello.Name)
	assert.Len(t, hello.Bytecode, 22)
	assert.Empty(t, hello.ConstructorInputs())

	bounty, err := repo.GetFactory(ctx, "ZkBugBounty")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x60, 0x80, 0x60, 0x40, 0x52}, bounty.Bytecode)
	require.Len(t, bounty.ConstructorInputs(), 3)
	assert.Equal(t, "owner", bounty.ConstructorInputs()[0].Name)
	assert.Equal(t, filepath.Join(dir, "contracts", "ZkBugBounty.sol", "ZkBugBounty.json"), bounty.ArtifactPath)
}

func TestGetFactoryFoundry(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Hello.sol", "Hello.json"), foundryHello)

	factory, err := newTestRepository(dir).GetFactory(context.Background(), "Hello")
	require.NoError(t, err)

	assert.Equal(t, "Hello", factory.Name)
	assert.Len(t, factory.Bytecode, 22)
}

func TestGetFactoryNotFound(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "contracts", "Hello.sol", "Hello.json"), hardhatHello)
	writeFile(t, filepath.Join(dir, "contracts", "ZkBugBounty.sol", "ZkBugBounty.json"), hardhatBounty)

	repo := newTestRepository(dir)

	tests := []struct {
		name        string
		contract    string
		suggestions []string
	}{
		{"typo", "Helo", []string{"Hello"}},
		{"wrong case", "hello", []string{"Hello"}},
		{"abbreviation", "ZkBB", []string{"ZkBugBounty"}},
		{"unrelated", "Token", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.GetFactory(context.Background(), tt.contract)

			assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
			var notFound domain.ArtifactNotFoundError
			require.ErrorAs(t, err, &notFound)
			assert.Equal(t, tt.contract, notFound.Name)
			assert.Equal(t, tt.suggestions, notFound.Suggestions)
		})
	}
}

func TestGetFactoryMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "artifacts")

	_, err := newTestRepository(dir).GetFactory(context.Background(), "Hello")

	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
	assert.Contains(t, err.Error(), "compile the contracts first")
}

func TestGetFactoryAmbiguous(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "contracts", "Hello.sol", "Hello.json"), hardhatHello)
	writeFile(t, filepath.Join(dir, "contracts", "legacy", "Hello.sol", "Hello.json"), hardhatHello)

	_, err := newTestRepository(dir).GetFactory(context.Background(), "Hello")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "multiple artifacts found for Hello")
}

func TestLoadFactoryErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name:    "interface",
			content: `{"contractName": "IHello", "abi": [], "bytecode": "0x"}`,
			errMsg:  "has no creation bytecode",
		},
		{
			name:    "unlinked library",
			content: `{"contractName": "Hello", "abi": [], "bytecode": "0x73__$abc$__"}`,
			errMsg:  "unlinked library references",
		},
		{
			name:    "invalid json",
			content: `{"contractName": `,
			errMsg:  "failed to parse artifact",
		},
		{
			name:    "invalid abi",
			content: `{"contractName": "Hello", "abi": {"type": 1}, "bytecode": "0x6000"}`,
			errMsg:  "failed to parse ABI",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "Artifact.json")
			writeFile(t, path, tt.content)

			_, err := LoadFactory(path, "Artifact")

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
