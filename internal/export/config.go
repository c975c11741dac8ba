package export

import (
	"os"
	"strings"
)

// DuplicatePolicy controls how the registry responds to duplicate implementation names.
type DuplicatePolicy string

const (
	// PolicyStrict rejects a second implementation with an already registered name.
	PolicyStrict DuplicatePolicy = "strict"
	// PolicyGraceful keeps the first declaration, drops the later one, and logs a warning.
	PolicyGraceful DuplicatePolicy = "graceful"
)

// RegistryConfig configures registry validation policies.
type RegistryConfig struct {
	DuplicatePolicy DuplicatePolicy
}

// DefaultConfig returns environment-aware defaults for the registry configuration.
func DefaultConfig() *RegistryConfig {
	if isCIEnvironment() {
		return &RegistryConfig{DuplicatePolicy: PolicyStrict}
	}
	return &RegistryConfig{DuplicatePolicy: PolicyGraceful}
}

func isCIEnvironment() bool {
	ciEnvVars := []string{
		"CI",
		"CONTINUOUS_INTEGRATION",
		"GITHUB_ACTIONS",
		"GITLAB_CI",
		"JENKINS_HOME",
	}

	for _, key := range ciEnvVars {
		value := strings.TrimSpace(os.Getenv(key))
		if value != "" && strings.ToLower(value) != "false" && value != "0" {
			return true
		}
	}

	return false
}
