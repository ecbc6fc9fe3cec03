package artifacts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sahilm/fuzzy"
	"github.com/zkbugbounty/bountydeploy/internal/domain"
	"github.com/zkbugbounty/bountydeploy/internal/domain/config"
	"github.com/zkbugbounty/bountydeploy/internal/usecase"
)

const maxSuggestions = 3

// artifactFile covers both Hardhat artifacts (bytecode is a hex string) and
// Foundry artifacts (bytecode is an object with an "object" field)
type artifactFile struct {
	ContractName string          `json:"contractName"`
	SourceName   string          `json:"sourceName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     json.RawMessage `json:"bytecode"`
}

type bytecodeObject struct {
	Object string `json:"object"`
}

// Repository indexes compiled artifacts below the artifacts directory
type Repository struct {
	dir     string
	log     *slog.Logger
	mu      sync.Mutex
	indexed bool
	paths   map[string][]string // contract name -> artifact paths
}

// NewRepository creates a new artifact repository
func NewRepository(cfg *config.RuntimeConfig, log *slog.Logger) *Repository {
	return &Repository{
		dir:   cfg.ArtifactsDir,
		log:   log.With("component", "artifacts"),
		paths: make(map[string][]string),
	}
}

// GetFactory resolves a contract name to a factory
func (r *Repository) GetFactory(ctx context.Context, contractName string) (*domain.ContractFactory, error) {
	if err := r.index(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	paths := r.paths[contractName]
	r.mu.Unlock()

	switch len(paths) {
	case 0:
		notFound := domain.ArtifactNotFoundError{Name: contractName, Suggestions: r.suggest(contractName)}
		if _, err := os.Stat(r.dir); errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w (artifacts directory %s does not exist, compile the contracts first)", notFound, r.dir)
		}
		return nil, notFound
	case 1:
		return LoadFactory(paths[0], contractName)
	default:
		return nil, fmt.Errorf("multiple artifacts found for %s:\n  - %s", contractName, strings.Join(paths, "\n  - "))
	}
}

func (r *Repository) index() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexed {
		return nil
	}

	if _, err := os.Stat(r.dir); errors.Is(err, os.ErrNotExist) {
		r.log.Warn("artifacts directory not found", "dir", r.dir)
		r.indexed = true
		return nil
	}

	err := filepath.WalkDir(r.dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "build-info" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".json" || strings.HasSuffix(path, ".dbg.json") {
			return nil
		}

		name := strings.TrimSuffix(d.Name(), ".json")
		r.paths[name] = append(r.paths[name], path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to index artifacts: %w", err)
	}

	r.log.Debug("indexed artifacts", "dir", r.dir, "contracts", len(r.paths))
	r.indexed = true
	return nil
}

func (r *Repository) suggest(name string) []string {
	r.mu.Lock()
	names := make([]string, 0, len(r.paths))
	for n := range r.paths {
		names = append(names, n)
	}
	r.mu.Unlock()
	sort.Strings(names)

	var suggestions []string
	for _, n := range names {
		if strings.EqualFold(n, name) {
			suggestions = append(suggestions, n)
		}
	}
	for _, match := range fuzzy.Find(name, names) {
		if len(suggestions) >= maxSuggestions {
			break
		}
		if !strings.EqualFold(match.Str, name) {
			suggestions = append(suggestions, match.Str)
		}
	}
	return suggestions
}

// LoadFactory parses an artifact file into a contract factory
func LoadFactory(path, contractName string) (*domain.ContractFactory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}

	var file artifactFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse artifact %s: %w", path, err)
	}
	if file.ContractName != "" {
		contractName = file.ContractName
	}

	parsedABI, err := abi.JSON(bytes.NewReader(file.ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI of %s: %w", contractName, err)
	}

	code, err := decodeBytecode(file.Bytecode)
	if err != nil {
		return nil, fmt.Errorf("invalid bytecode for %s: %w", contractName, err)
	}
	if len(code) == 0 {
		return nil, fmt.Errorf("contract %s has no creation bytecode (abstract contract or interface?)", contractName)
	}

	return &domain.ContractFactory{
		Name:         contractName,
		ArtifactPath: path,
		ABI:          parsedABI,
		Bytecode:     code,
	}, nil
}

func decodeBytecode(raw json.RawMessage) ([]byte, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var hexCode string
	if err := json.Unmarshal(raw, &hexCode); err != nil {
		var obj bytecodeObject
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, fmt.Errorf("unexpected bytecode format")
		}
		hexCode = obj.Object
	}

	if strings.Contains(hexCode, "__") {
		return nil, fmt.Errorf("bytecode has unlinked library references")
	}
	if hexCode == "" || hexCode == "0x" {
		return nil, nil
	}
	if !strings.HasPrefix(hexCode, "0x") {
		hexCode = "0x" + hexCode
	}
	return hexutil.Decode(hexCode)
}

var _ usecase.ArtifactRepository = (*Repository)(nil)
