//-------------------------------------------------------------------------
//
// HR Assistant Orchestration Service
//
// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.
//
//-------------------------------------------------------------------------

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigFileName is the default configuration file name.
	ConfigFileName = "hr-assistant.yaml"

	// SystemConfigPath is the system-wide configuration path.
	SystemConfigPath = "/etc/hr-assistant/" + ConfigFileName
)

// Environment variable names recognized as overrides. These match the
// variables the deployment templates export.
const (
	EnvSearchEndpoint   = "AZURE_SEARCH_ENDPOINT"
	EnvOpenAIEndpoint   = "AZURE_OPENAI_ENDPOINT"
	EnvOpenAIDeployment = "AZURE_OPENAI_DEPLOYMENT"
	EnvRetrievalMode    = "RETRIEVAL_MODE"
	EnvReasoningEffort  = "RETRIEVAL_REASONING_EFFORT"
	EnvKBVariant        = "KNOWLEDGE_BASE_VARIANT"
)

// Load loads the configuration from the specified path, or searches
// default locations if path is empty. Environment variables (optionally
// sourced from a .env file in the working directory) override file values.
//
// Search order:
//  1. Explicit path (if provided)
//  2. /etc/hr-assistant/hr-assistant.yaml
//  3. hr-assistant.yaml in the binary's directory
//
// When no configuration file exists, defaults plus environment overrides
// are used so the service can run from environment alone.
func Load(path string) (*Config, error) {
	// A .env file is optional; ignore a missing one.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	configPath, err := findConfigFile(path)
	if err != nil {
		return nil, err
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// findConfigFile finds the configuration file using the search order.
// Returns an empty path (and nil error) when no file exists and none was
// explicitly requested.
func findConfigFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicitPath)
		}
		return explicitPath, nil
	}

	searchPaths := []string{
		SystemConfigPath,
		getBinaryDirConfigPath(),
	}

	for _, p := range searchPaths {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", nil
}

// getBinaryDirConfigPath returns the path to the config file in the
// binary's directory.
func getBinaryDirConfigPath() string {
	executable, err := os.Executable()
	if err != nil {
		return ""
	}

	// Resolve symlinks to get the actual binary location
	executable, err = filepath.EvalSymlinks(executable)
	if err != nil {
		return ""
	}

	return filepath.Join(filepath.Dir(executable), ConfigFileName)
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvSearchEndpoint); v != "" {
		cfg.Azure.SearchEndpoint = v
	}
	if v := os.Getenv(EnvOpenAIEndpoint); v != "" {
		cfg.Azure.OpenAIEndpoint = v
	}
	if v := os.Getenv(EnvOpenAIDeployment); v != "" {
		cfg.Azure.OpenAIDeployment = v
	}
	if v := os.Getenv(EnvRetrievalMode); v != "" {
		cfg.Retrieval.Mode = v
	}
	if v := os.Getenv(EnvReasoningEffort); v != "" {
		cfg.Retrieval.ReasoningEffort = v
	}
}
