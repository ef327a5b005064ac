package main

import (
	"fmt"

	"github.com/mohan/resume-optimizer/internal/config"
	"github.com/mohan/resume-optimizer/internal/rendering"
	"github.com/mohan/resume-optimizer/internal/runner"
	"github.com/mohan/resume-optimizer/internal/workspace"
)

// loadConfig resolves the effective configuration: file values, then
// environment variables, then defaults.
func loadConfig(path string) (config.Config, error) {
	cfg := config.Config{}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}
	cfg.ApplyEnv()
	cfg = cfg.MergeWithDefaults(config.Default())
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// buildRunner wires the production runner: a filesystem workspace, the Gemini
// pipeline and the Chrome PDF converter.
func buildRunner(cfg config.Config) (*runner.Runner, error) {
	ws, err := workspace.New(cfg.WorkspaceRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare workspace: %w", err)
	}
	return runner.New(ws, runner.GeminiPipelineFactory, rendering.NewChromeConverter()), nil
}

// credentialsFrom maps config values onto run credentials.
func credentialsFrom(cfg config.Config) runner.Credentials {
	return runner.Credentials{
		GeminiAPIKey: cfg.GeminiAPIKey,
		SearchAPIKey: cfg.SearchAPIKey,
		SearchCX:     cfg.SearchCX,
	}
}
