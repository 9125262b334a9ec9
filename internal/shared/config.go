package shared

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// DefaultRedirectURI is the loopback callback registered in the Spotify developer dashboard.
const DefaultRedirectURI = "http://127.0.0.1:8888/callback"

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Transfer    TransferConfig    `toml:"transfer"`
	Database    DatabaseConfig    `toml:"database"`
	Cache       CacheConfig       `toml:"cache"`
	Log         LogConfig         `toml:"log"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify"`
}

// SpotifyConfig contains Spotify API credentials. Tokens are never written back.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURI  string `toml:"redirect_uri"`
}

// TransferConfig tunes the transfer pipeline.
type TransferConfig struct {
	SearchLimit    int    `toml:"search_limit"`
	PreviewLimit   int    `toml:"preview_limit"`
	TickIntervalMS int    `toml:"tick_interval_ms"`
	OnMiss         string `toml:"on_miss"`
	Scorer         string `toml:"scorer"`
}

// TickInterval returns the pause between entries as a [time.Duration].
func (t TransferConfig) TickInterval() time.Duration {
	return time.Duration(t.TickIntervalMS) * time.Millisecond
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// CacheConfig controls the match cache.
type CacheConfig struct {
	Enabled bool `toml:"enabled"`
	Reuse   bool `toml:"reuse"`
}

// LogConfig controls logger verbosity.
type LogConfig struct {
	Level string `toml:"level"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the values of [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// Validate checks the transfer settings for values the pipeline cannot honor.
func (c *Config) Validate() error {
	t := c.Transfer
	if t.SearchLimit < 1 || t.SearchLimit > 50 {
		return fmt.Errorf("%w: transfer.search_limit must be between 1 and 50, got %d", ErrInvalidConfig, t.SearchLimit)
	}
	if t.PreviewLimit < 1 || t.PreviewLimit > 50 {
		return fmt.Errorf("%w: transfer.preview_limit must be between 1 and 50, got %d", ErrInvalidConfig, t.PreviewLimit)
	}
	if t.TickIntervalMS < 0 {
		return fmt.Errorf("%w: transfer.tick_interval_ms must not be negative", ErrInvalidConfig)
	}
	switch t.OnMiss {
	case "skip", "abort":
	default:
		return fmt.Errorf("%w: transfer.on_miss must be skip or abort, got %q", ErrInvalidConfig, t.OnMiss)
	}
	switch t.Scorer {
	case "top", "fuzzy":
	default:
		return fmt.Errorf("%w: transfer.scorer must be top or fuzzy, got %q", ErrInvalidConfig, t.Scorer)
	}
	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// LoadOrDefault loads the config at path when it exists and falls back to [DefaultConfig] otherwise.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return DefaultConfig(), nil
	}
	return LoadConfig(path)
}

// Encode renders the config back to TOML.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}
