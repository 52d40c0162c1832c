package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"legalcn/internal/logging"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const APP_NAME = "legalcn" // application name used for config directory

// Default values, matching the server's published behavior.
const (
	DefaultServerName       = "Legal-CN-Server"
	DefaultServerVersion    = "0.2.0"
	DefaultPenaltyThreshold = 0.3 // penalty ratio cap used by risk checks
	DefaultAPIRateLimit     = 10  // external API calls per window
	DefaultAPIRatePeriod    = 60  // window in seconds
)

// Config holds server configuration for legalcn.
//
// The background-check API key is deliberately not serialized: it is
// resolved from the environment or the OS credential store (see
// credentials.go) so it never lands in a plaintext config file.
type Config struct {
	ServerName    string `yaml:"server_name"`
	ServerVersion string `yaml:"server_version"`
	Debug         bool   `yaml:"debug"`

	// PenaltyThreshold is the liquidated-damages ratio above which the
	// risk checker flags a clause (judicial practice: 30%).
	PenaltyThreshold float64 `yaml:"penalty_threshold"`

	// Rate limiting for the external background-check API.
	APIRateLimit  int `yaml:"api_rate_limit"`
	APIRatePeriod int `yaml:"api_rate_period"`

	// PIDPath is where minted report identifiers are persisted.
	// Empty means alongside the config file.
	PIDPath string `yaml:"pid_path,omitempty"`

	Version  string `yaml:"version"`   // Track config version
	InitTime int64  `yaml:"init_time"` // Unix timestamp of first setup

	apiKey string // resolved at load time, never written back
}

// ConfigPath returns the standard config file path for the current platform
func ConfigPath() (string, error) {
	configDir := filepath.Join(xdg.ConfigHome, APP_NAME)
	configPath := filepath.Join(configDir, "config.yaml")

	logging.Debug("Determined config path", "path", configPath)
	return configPath, nil
}

// Load loads the config from the standard location. A missing file is not
// an error for a stdio server: defaults plus environment overrides apply.
func Load() (*Config, error) {
	configPath, exists := FindConfigFile()
	logging.Debug("Loading config from", "path", configPath)
	if !exists {
		cfg := DefaultConfig()
		cfg.applyEnv()
		return &cfg, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads config from a specific path, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	cfg := DefaultConfig()
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnv()
	return &cfg, nil
}

// FindConfigFile returns the path to an existing config file, and whether it exists.
func FindConfigFile() (string, bool) {
	primary, err := ConfigPath()
	if err != nil {
		logging.Error("Failed to get config path", "error", err)
		return "", false
	}

	if _, err := os.Stat(primary); err == nil {
		logging.Debug("Config found at primary path", "path", primary)
		return primary, true
	}

	return primary, false
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ServerName:       DefaultServerName,
		ServerVersion:    DefaultServerVersion,
		PenaltyThreshold: DefaultPenaltyThreshold,
		APIRateLimit:     DefaultAPIRateLimit,
		APIRatePeriod:    DefaultAPIRatePeriod,
		Version:          "1.0",
		InitTime:         0, // Will be set during first save
	}
}

// applyEnv layers environment variables over file values. Env wins, so a
// deployment can steer a server without touching the config file.
func (c *Config) applyEnv() {
	if v := os.Getenv("MCP_SERVER_NAME"); v != "" {
		c.ServerName = v
	}
	if v := os.Getenv("MCP_SERVER_VERSION"); v != "" {
		c.ServerVersion = v
	}
	if v := os.Getenv("DEBUG"); v != "" {
		c.Debug = v != "false" && v != "0"
	}
	if v := os.Getenv("PENALTY_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			c.PenaltyThreshold = f
		} else {
			logging.Warn("Ignoring invalid PENALTY_THRESHOLD", "value", v)
		}
	}
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.APIRateLimit = n
		}
	}
	if v := os.Getenv("API_RATE_PERIOD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.APIRatePeriod = n
		}
	}

	c.apiKey = ResolveAPIKey()
}

// APIKey returns the resolved background-check API key, empty if none is
// configured. The key gates optional enrichment only; the core rule engine
// never needs it.
func (c *Config) APIKey() string {
	return c.apiKey
}

// HasAPIKey reports whether a background-check API key is configured.
func (c *Config) HasAPIKey() bool {
	return c.apiKey != ""
}

// PIDFilePath returns the effective path for the PID registry file.
func (c *Config) PIDFilePath() string {
	if c.PIDPath != "" {
		return c.PIDPath
	}
	configPath, _ := ConfigPath()
	return filepath.Join(filepath.Dir(configPath), "pids.json")
}

// Save writes the config to the standard location
func (c *Config) Save() error {
	configPath, _ := FindConfigFile()
	return c.SaveTo(configPath)
}

// SaveTo writes the config to a specific path
func (c *Config) SaveTo(path string) error {
	// Set init time if this is the first save
	if c.InitTime == 0 {
		c.InitTime = time.Now().Unix()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create file with restrictive permissions (600) for security
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	defer enc.Close()

	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
