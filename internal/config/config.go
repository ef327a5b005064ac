// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config represents the application configuration. It can be loaded from a
// JSON file; missing values fall back to environment variables and then to
// defaults.
type Config struct {
	// Paths
	WorkspaceRoot string `json:"workspace_root,omitempty"` // Root directory for knowledge, scratch and archive folders

	// Server
	Port int `json:"port,omitempty"` // HTTP listen port

	// Credentials
	GeminiAPIKey string `json:"gemini_api_key,omitempty"` // Gemini API key
	SearchAPIKey string `json:"search_api_key,omitempty"` // Google Programmable Search API key
	SearchCX     string `json:"search_cx,omitempty"`      // Google Programmable Search engine ID

	// Behavior
	DefaultModel string `json:"default_model,omitempty"` // Model catalog ID used when a request names none
}

// Default returns the configuration used when no file and no environment
// overrides are present.
func Default() Config {
	return Config{
		WorkspaceRoot: ".",
		Port:          8080,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv fills empty fields from environment variables. File values win
// over the environment.
func (c *Config) ApplyEnv() {
	if c.WorkspaceRoot == "" {
		c.WorkspaceRoot = os.Getenv("WORKSPACE_ROOT")
	}
	if c.GeminiAPIKey == "" {
		c.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.SearchAPIKey == "" {
		c.SearchAPIKey = os.Getenv("GOOGLE_SEARCH_API_KEY")
	}
	if c.SearchCX == "" {
		c.SearchCX = os.Getenv("GOOGLE_SEARCH_CX")
	}
	if c.Port == 0 {
		if p, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
			c.Port = p
		}
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.WorkspaceRoot == "" {
		result.WorkspaceRoot = defaults.WorkspaceRoot
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.SearchAPIKey == "" {
		result.SearchAPIKey = defaults.SearchAPIKey
	}
	if result.SearchCX == "" {
		result.SearchCX = defaults.SearchCX
	}
	if result.DefaultModel == "" {
		result.DefaultModel = defaults.DefaultModel
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	return result
}
