package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
)

// envVarPattern matches ${VAR_NAME} values in bountydeploy.toml
var envVarPattern = regexp.MustCompile(`^\$\{([A-Za-z_][A-Za-z0-9_]*)\}$`)

// DetectEnvVar checks if a raw TOML value is a simple ${VAR_NAME} reference.
// Returns the variable name and true if the value is a pure env var reference.
func DetectEnvVar(rawValue string) (string, bool) {
	matches := envVarPattern.FindStringSubmatch(rawValue)
	if len(matches) == 2 {
		return matches[1], true
	}
	return "", false
}

// GenerateEnvVarName generates a conventional env var name for a network's RPC URL.
// Examples: sepolia -> SEPOLIA_RPC_URL, base-sepolia -> BASE_SEPOLIA_RPC_URL
func GenerateEnvVarName(networkName string) string {
	name := strings.ToUpper(networkName)
	name = strings.NewReplacer("-", "_", ".", "_").Replace(name)
	return name + "_RPC_URL"
}

// expandValue expands ${VAR} references and reports which variable was
// missing when a pure reference expands to nothing
func expandValue(raw string) (string, error) {
	value := strings.TrimSpace(os.ExpandEnv(raw))
	if value == "" {
		if name, ok := DetectEnvVar(strings.TrimSpace(raw)); ok {
			return "", fmt.Errorf("environment variable %s is not set", name)
		}
	}
	return value, nil
}

// loadEnvFiles loads .env files from the project root. Variables already set
// in the environment win.
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}
