// Package config loads and validates the case.yml configuration file.
package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// MaxCaseNameLength is the maximum length for a case name. Case names are
// embedded in every Redis key, so they follow DNS-style naming rules.
const MaxCaseNameLength = 63

// caseNamePattern is the regex pattern for valid case names: lowercase
// alphanumeric with hyphens, not at start or end.
var caseNamePattern = regexp.MustCompile(`^[a-z0-9]([-a-z0-9]*[a-z0-9])?$`)

// CaseConfig represents the top-level case.yml configuration
type CaseConfig struct {
	Version string                  `yaml:"version"`
	Case    CaseSection             `yaml:"case"`
	Redis   RedisConfig             `yaml:"redis"`
	Modules map[string]ModuleConfig `yaml:"modules,omitempty"`
}

// CaseSection identifies the case all keys and channels are scoped to
type CaseSection struct {
	Name string `yaml:"name"`
}

// RedisConfig specifies how to reach the Redis server backing the case
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db,omitempty"`
}

// ModuleConfig declares an analysis module known to the case.
// The map key under modules: is the module name used when posting.
type ModuleConfig struct {
	DisplayName string `yaml:"display_name"`
}

// Load reads and validates a case.yml file.
func Load(path string) (*CaseConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg CaseConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate performs strict validation on the configuration
func (c *CaseConfig) Validate() error {
	// Required: version
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected: 1.0)", c.Version)
	}

	if err := ValidateCaseName(c.Case.Name); err != nil {
		return err
	}

	// Default the Redis address rather than failing; a local server is the
	// common development setup.
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}

	if c.Redis.DB < 0 {
		return fmt.Errorf("redis.db must be >= 0, got %d", c.Redis.DB)
	}

	for name, module := range c.Modules {
		if name == "" {
			return fmt.Errorf("module name cannot be empty")
		}
		if module.DisplayName == "" {
			return fmt.Errorf("module '%s': display_name is required", name)
		}
	}

	return nil
}

// ValidateCaseName checks if a case name is valid according to DNS naming
// rules.
func ValidateCaseName(name string) error {
	if name == "" {
		return fmt.Errorf("case name cannot be empty")
	}

	if len(name) > MaxCaseNameLength {
		return fmt.Errorf("case name too long: %d characters (max: %d)", len(name), MaxCaseNameLength)
	}

	if !caseNamePattern.MatchString(name) {
		return fmt.Errorf("invalid case name '%s': must be lowercase alphanumeric with hyphens (not at start/end)", name)
	}

	return nil
}
