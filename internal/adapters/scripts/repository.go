package scripts

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zkbugbounty/bountydeploy/internal/domain"
	"github.com/zkbugbounty/bountydeploy/internal/domain/config"
	"github.com/zkbugbounty/bountydeploy/internal/usecase"
	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtin embed.FS

// Repository loads deployment scripts. Project scripts in the scripts
// directory shadow built-in scripts of the same name.
type Repository struct {
	scriptsDir string
	builtin    fs.FS
}

// NewRepository creates a new script repository
func NewRepository(cfg *config.RuntimeConfig) *Repository {
	sub, err := fs.Sub(builtin, "builtin")
	if err != nil {
		panic(err)
	}
	return &Repository{
		scriptsDir: cfg.ScriptsDir,
		builtin:    sub,
	}
}

// Get returns the script with the given name
func (r *Repository) Get(ctx context.Context, name string) (*domain.Script, error) {
	if r.scriptsDir != "" {
		for _, ext := range []string{".yaml", ".yml"} {
			path := filepath.Join(r.scriptsDir, name+ext)
			if _, err := os.Stat(path); err == nil {
				return r.Load(ctx, path)
			}
		}
	}

	data, err := fs.ReadFile(r.builtin, name+".yaml")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s (available: %s)", domain.ErrScriptNotFound, name, strings.Join(r.List(ctx), ", "))
		}
		return nil, err
	}
	return parseScript(data, name)
}

// Load parses a script file
func (r *Repository) Load(ctx context.Context, path string) (*domain.Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrScriptNotFound, path)
		}
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return parseScript(data, name)
}

// List returns the names of all available scripts, sorted
func (r *Repository) List(ctx context.Context) []string {
	seen := make(map[string]bool)

	entries, _ := fs.ReadDir(r.builtin, ".")
	for _, entry := range entries {
		seen[strings.TrimSuffix(entry.Name(), ".yaml")] = true
	}

	if r.scriptsDir != "" {
		if entries, err := os.ReadDir(r.scriptsDir); err == nil {
			for _, entry := range entries {
				ext := filepath.Ext(entry.Name())
				if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
					continue
				}
				seen[strings.TrimSuffix(entry.Name(), ext)] = true
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func parseScript(data []byte, fallbackName string) (*domain.Script, error) {
	var script domain.Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if script.Name == "" {
		script.Name = fallbackName
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("script %s has no steps", script.Name)
	}
	for i, step := range script.Steps {
		if strings.TrimSpace(step.Contract) == "" {
			return nil, fmt.Errorf("script %s step %d has no contract", script.Name, i+1)
		}
	}
	return &script, nil
}

var _ usecase.ScriptRepository = (*Repository)(nil)
