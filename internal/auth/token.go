//-------------------------------------------------------------------------
//
// HR Assistant Orchestration Service
//
// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.
//
//-------------------------------------------------------------------------

// Package auth provides bearer token acquisition for the Azure resources
// the pipeline calls.
package auth

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// OAuth scopes for the two resource families the service talks to.
const (
	ScopeSearch    = "https://search.azure.com/.default"
	ScopeCognitive = "https://cognitiveservices.azure.com/.default"
)

// Environment variable names for bearer tokens.
const (
	EnvSearchToken = "AZURE_SEARCH_TOKEN"
	EnvOpenAIToken = "AZURE_OPENAI_TOKEN"
)

// Default token file paths (relative to home directory).
const (
	DefaultSearchTokenFile = ".azure-search-token"
	DefaultOpenAITokenFile = ".azure-openai-token"
)

// TokenSource supplies a bearer token scoped to a resource. Token is called
// once per outbound request so implementations may refresh freely.
type TokenSource interface {
	Token(ctx context.Context, scope string) (string, error)
}

// Loader loads tokens from configured file paths, environment variables,
// or default file locations.
type Loader struct {
	searchPath string
	openAIPath string
}

// NewLoader creates a token loader. Paths may be empty, in which case
// environment variables and default file locations are consulted.
func NewLoader(searchPath, openAIPath string) *Loader {
	return &Loader{
		searchPath: searchPath,
		openAIPath: openAIPath,
	}
}

// Token loads a bearer token for the given scope with the following
// priority:
//  1. Configured file path (if specified)
//  2. Environment variable
//  3. Default file location (~/.azure-*-token)
func (l *Loader) Token(ctx context.Context, scope string) (string, error) {
	switch scope {
	case ScopeSearch:
		return l.loadToken(l.searchPath, EnvSearchToken,
			DefaultSearchTokenFile, "search")
	case ScopeCognitive:
		return l.loadToken(l.openAIPath, EnvOpenAIToken,
			DefaultOpenAITokenFile, "cognitive services")
	default:
		return "", fmt.Errorf("unknown token scope: %s", scope)
	}
}

func (l *Loader) loadToken(
	configPath, envVar, defaultFile, resourceName string,
) (string, error) {
	if configPath != "" {
		return readTokenFile(expandTokenPath(configPath), resourceName)
	}

	if token := os.Getenv(envVar); token != "" {
		return token, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	path := filepath.Join(homeDir, defaultFile)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", fmt.Errorf(
			"%s token not found: set %s environment variable or create %s",
			resourceName, envVar, path)
	}

	return readTokenFile(path, resourceName)
}

// readTokenFile reads a bearer token from a file.
func readTokenFile(path, resourceName string) (string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", fmt.Errorf("%s token file not found: %s", resourceName, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s token: %w", resourceName, err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("%s token file is empty: %s", resourceName, path)
	}

	return token, nil
}

// expandTokenPath expands ~ to the user's home directory.
func expandTokenPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}
	return path
}

// Static is a TokenSource returning fixed tokens keyed by scope. Intended
// for tests.
type Static map[string]string

// Token returns the fixed token for the scope.
func (s Static) Token(_ context.Context, scope string) (string, error) {
	token, ok := s[scope]
	if !ok {
		return "", fmt.Errorf("no token for scope: %s", scope)
	}
	return token, nil
}
