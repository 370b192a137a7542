// Package config provides YAML configuration file loading and validation.
// It handles environment variable expansion, default value application,
// and ensures all required configuration fields are present.
package config

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the root configuration structure loaded from YAML.
type Config struct {
	Providers []Provider `yaml:"providers"` // RPC endpoints, in display order
	Defaults  Defaults   `yaml:"defaults"`  // Settings inherited by every provider
	Log       Log        `yaml:"log"`       // Logger settings
}

// Provider is a single JSON-RPC endpoint.
type Provider struct {
	Name    string        `yaml:"name"`              // Identifier used by --provider
	URL     string        `yaml:"url"`               // Endpoint URL (supports ${VAR} env expansion)
	Timeout time.Duration `yaml:"timeout,omitempty"` // Optional, inherits Defaults.Timeout
}

// Defaults contains values that apply to all providers unless overridden.
type Defaults struct {
	Timeout       time.Duration `yaml:"timeout"`             // HTTP request timeout (e.g., "10s")
	HealthSamples int           `yaml:"health_samples"`      // eth_blockNumber samples per provider for status
	BlockTag      string        `yaml:"block_tag,omitempty"` // Block used by balance and code when --block is unset
}

// Log configures internal/logger.
type Log struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
	Output string `yaml:"output"` // stderr, stdout, or a directory for evmrpc.log
}

const (
	defaultBlockTag  = "latest"
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
	defaultLogOutput = "stderr"
)

var (
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"text", "json"}
	validBlockTags  = []string{"latest", "earliest", "pending", "safe", "finalized"}
)

// Warnings receives non-fatal validation messages. Tests may redirect it.
var Warnings io.Writer = os.Stderr

// Validate validates the configuration and applies defaults where appropriate.
// It may emit warnings for suspicious values but does not fail on warnings.
func (c *Config) Validate() error {
	if c.Defaults.Timeout <= 0 {
		return fmt.Errorf("defaults.timeout is required")
	}
	if c.Defaults.HealthSamples <= 0 {
		return fmt.Errorf("defaults.health_samples is required and must be > 0")
	}
	if len(c.Providers) == 0 {
		return fmt.Errorf("at least one provider is required")
	}

	if c.Defaults.BlockTag == "" {
		c.Defaults.BlockTag = defaultBlockTag
	}
	if !oneOf(c.Defaults.BlockTag, validBlockTags) {
		return fmt.Errorf("defaults.block_tag %q is not one of %s", c.Defaults.BlockTag, strings.Join(validBlockTags, ", "))
	}

	if err := c.Log.validate(); err != nil {
		return err
	}

	warnTimeout("defaults", c.Defaults.Timeout)

	seen := make(map[string]bool, len(c.Providers))
	for i := range c.Providers {
		p := &c.Providers[i]
		if p.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("provider %s: duplicate name", p.Name)
		}
		seen[p.Name] = true

		if p.Timeout == 0 {
			p.Timeout = c.Defaults.Timeout
		}
		if err := ValidateURL(p.URL); err != nil {
			return fmt.Errorf("provider %s: %w", p.Name, err)
		}

		warnTimeout(fmt.Sprintf("provider %s", p.Name), p.Timeout)
	}

	return nil
}

// Provider returns the provider called name, or the first provider when name
// is empty.
func (c *Config) Provider(name string) (Provider, error) {
	if name == "" {
		return c.Providers[0], nil
	}
	for _, p := range c.Providers {
		if p.Name == name {
			return p, nil
		}
	}
	return Provider{}, fmt.Errorf("provider '%s' not found in config", name)
}

func (l *Log) validate() error {
	if l.Level == "" {
		l.Level = defaultLogLevel
	}
	if l.Format == "" {
		l.Format = defaultLogFormat
	}
	if l.Output == "" {
		l.Output = defaultLogOutput
	}
	l.Level = strings.ToLower(l.Level)
	l.Format = strings.ToLower(l.Format)

	if !oneOf(l.Level, validLogLevels) {
		return fmt.Errorf("log.level %q is not one of %s", l.Level, strings.Join(validLogLevels, ", "))
	}
	if !oneOf(l.Format, validLogFormats) {
		return fmt.Errorf("log.format %q is not one of %s", l.Format, strings.Join(validLogFormats, ", "))
	}
	return nil
}

// ValidateURL checks that raw is an absolute http or https URL.
func ValidateURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid url (missing scheme or host)")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid url scheme %q (expected http or https)", u.Scheme)
	}
	return nil
}

func warnTimeout(scope string, d time.Duration) {
	const low = 500 * time.Millisecond
	const high = 2 * time.Minute
	if d > 0 && d < low {
		fmt.Fprintf(Warnings, "Warning: %s timeout is very low (%s); requests may fail under normal network jitter\n", scope, d)
	}
	if d > high {
		fmt.Fprintf(Warnings, "Warning: %s timeout is very high (%s); failures may take a long time to surface\n", scope, d)
	}
}

func oneOf(s string, set []string) bool {
	for _, v := range set {
		if s == v {
			return true
		}
	}
	return false
}

// Load reads and parses a YAML configuration file, expanding environment
// variables and validating all required fields.
//
// URLs can use ${VAR} syntax, expanded with os.ExpandEnv:
//
//	url: ${AREON_RPC_URL}
//
// Validation rules:
//   - defaults.timeout must be set and > 0
//   - defaults.health_samples must be > 0
//   - at least one provider, each with a unique name and an http(s) URL
//   - log.level and log.format must be known values
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse is Load for configuration already in memory.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// AdHoc builds a single-provider configuration for an endpoint given on the
// command line, bypassing the config file.
func AdHoc(rawURL string, timeout time.Duration) (*Config, error) {
	cfg := &Config{
		Providers: []Provider{{Name: "adhoc", URL: rawURL}},
		Defaults:  Defaults{Timeout: timeout, HealthSamples: 5},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
