package shared

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./ytspot.db" {
			t.Errorf("expected database path ./ytspot.db, got %s", config.Database.Path)
		}
		if config.Credentials.Spotify.RedirectURI != DefaultRedirectURI {
			t.Errorf("expected redirect uri %s, got %s", DefaultRedirectURI, config.Credentials.Spotify.RedirectURI)
		}
		if config.Transfer.SearchLimit != 20 {
			t.Errorf("expected search limit 20, got %d", config.Transfer.SearchLimit)
		}
		if config.Transfer.PreviewLimit != 9 {
			t.Errorf("expected preview limit 9, got %d", config.Transfer.PreviewLimit)
		}
		if config.Transfer.TickInterval() != 100*time.Millisecond {
			t.Errorf("expected tick interval 100ms, got %v", config.Transfer.TickInterval())
		}
		if config.Transfer.OnMiss != "skip" {
			t.Errorf("expected on_miss skip, got %s", config.Transfer.OnMiss)
		}
		if err := config.Validate(); err != nil {
			t.Errorf("default config should validate, got %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}
		if config.Database.Path != DefaultConfig().Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		testConfig := `[credentials.spotify]
client_id = "test_client_id"
client_secret = "test_secret"

[transfer]
search_limit = 10
on_miss = "abort"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Credentials.Spotify.ClientID != "test_client_id" {
			t.Errorf("expected spotify client_id test_client_id, got %s", config.Credentials.Spotify.ClientID)
		}
		if config.Transfer.SearchLimit != 10 {
			t.Errorf("expected search limit 10, got %d", config.Transfer.SearchLimit)
		}
		if config.Transfer.OnMiss != "abort" {
			t.Errorf("expected on_miss abort, got %s", config.Transfer.OnMiss)
		}
		if config.Transfer.PreviewLimit != 9 {
			t.Errorf("missing keys should keep defaults, got preview limit %d", config.Transfer.PreviewLimit)
		}
		if config.Credentials.Spotify.RedirectURI != DefaultRedirectURI {
			t.Errorf("missing redirect uri should keep default, got %s", config.Credentials.Spotify.RedirectURI)
		}
	})

	t.Run("LoadOrDefault Missing File", func(t *testing.T) {
		config, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.toml"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if config.Transfer.SearchLimit != 20 {
			t.Errorf("expected defaults, got search limit %d", config.Transfer.SearchLimit)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		tt := []struct {
			name   string
			mutate func(*Config)
		}{
			{name: "search limit zero", mutate: func(c *Config) { c.Transfer.SearchLimit = 0 }},
			{name: "search limit too large", mutate: func(c *Config) { c.Transfer.SearchLimit = 51 }},
			{name: "preview limit zero", mutate: func(c *Config) { c.Transfer.PreviewLimit = 0 }},
			{name: "negative tick", mutate: func(c *Config) { c.Transfer.TickIntervalMS = -1 }},
			{name: "unknown miss policy", mutate: func(c *Config) { c.Transfer.OnMiss = "retry" }},
			{name: "unknown scorer", mutate: func(c *Config) { c.Transfer.Scorer = "duration" }},
		}

		for _, tc := range tt {
			t.Run(tc.name, func(t *testing.T) {
				config := DefaultConfig()
				tc.mutate(config)

				err := config.Validate()
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
			})
		}
	})

	t.Run("Encode", func(t *testing.T) {
		data, err := DefaultConfig().Encode()
		if err != nil {
			t.Fatalf("failed to encode: %v", err)
		}
		if !strings.Contains(string(data), "search_limit = 20") {
			t.Errorf("expected encoded config to contain search_limit, got:\n%s", data)
		}
	})
}
