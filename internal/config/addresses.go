package config

import "strings"

// MergeAddresses overlays address maps in order, later maps winning.
// Contract names compare case-insensitively since viper lowercases the keys
// it reads from config files; the spelling of the winning entry is kept.
func MergeAddresses(layers ...map[string]string) map[string]string {
	merged := make(map[string]string)
	for _, layer := range layers {
		for name, addr := range layer {
			for existing := range merged {
				if strings.EqualFold(existing, name) {
					delete(merged, existing)
				}
			}
			merged[name] = addr
		}
	}
	return merged
}
