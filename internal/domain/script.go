package domain

import "strings"

// DeployerRef is the script argument that resolves to the first signer's address
const DeployerRef = "$deployer"

// Script is an ordered list of contract deployments
type Script struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description,omitempty"`
	Steps       []ScriptStep `yaml:"steps"`
}

// ScriptStep deploys one contract with the given constructor arguments.
// Arguments starting with "$" are references resolved at run time.
type ScriptStep struct {
	Contract string   `yaml:"contract"`
	Args     []string `yaml:"args,omitempty"`
}

// IsReference reports whether a script argument is a "$name" reference
func IsReference(arg string) bool {
	return strings.HasPrefix(arg, "$") && len(arg) > 1
}

// ReferenceName strips the leading "$" of a reference
func ReferenceName(arg string) string {
	return strings.TrimPrefix(arg, "$")
}
