package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultServerURL is used when no server is configured
	DefaultServerURL = "http://localhost:8086"

	// DefaultTimeout bounds a single API request
	DefaultTimeout = 30 * time.Second

	// DefaultRetryMax is the number of retries for idempotent requests
	DefaultRetryMax = 3
)

// Environment variables overriding the configuration file
const (
	EnvHost  = "MCON_HOST"
	EnvOrgID = "MCON_ORG_ID"
	EnvToken = "MCON_TOKEN"
)

// Config represents the application configuration
type Config struct {
	// API server URL
	ServerURL string `json:"server_url"`

	// Organization that buckets, tokens and dashboards belong to
	OrgID string `json:"org_id,omitempty"`

	// Request timeout in seconds
	TimeoutSeconds int `json:"timeout_seconds,omitempty"`

	// Retries for idempotent requests
	RetryMax *int `json:"retry_max,omitempty"`

	// Token taken from the environment; never written to disk
	Token string `json:"-"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		ServerURL: DefaultServerURL,
	}
}

// Timeout returns the configured request timeout
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Retries returns the configured retry count
func (c *Config) Retries() int {
	if c.RetryMax == nil || *c.RetryMax < 0 {
		return DefaultRetryMax
	}
	return *c.RetryMax
}

// Load loads the configuration from the given file path
func Load(path string) (*Config, error) {
	// If config file doesn't exist, return default config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves the configuration to the given file path
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyEnv loads dotenv files, when present, and overrides the configuration
// with MCON_* environment variables. Variables already set in the process
// environment win over dotenv files.
func (c *Config) ApplyEnv(dotenvFiles ...string) error {
	var existing []string
	for _, f := range dotenvFiles {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) > 0 {
		if err := godotenv.Load(existing...); err != nil {
			return err
		}
	}

	if v := os.Getenv(EnvHost); v != "" {
		c.ServerURL = v
	}
	if v := os.Getenv(EnvOrgID); v != "" {
		c.OrgID = v
	}
	if v := os.Getenv(EnvToken); v != "" {
		c.Token = v
	}
	return nil
}

// GetGlobalConfigDir returns the directory holding the global configuration
func GetGlobalConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".mcon"), nil
}

// GetGlobalConfigPath returns the path of the global configuration file
func GetGlobalConfigPath() (string, error) {
	dir, err := GetGlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadGlobalConfig loads the global configuration file
func LoadGlobalConfig() (*Config, error) {
	path, err := GetGlobalConfigPath()
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// SaveGlobalConfig saves the global configuration file
func SaveGlobalConfig(cfg *Config) error {
	path, err := GetGlobalConfigPath()
	if err != nil {
		return err
	}
	return cfg.Save(path)
}
