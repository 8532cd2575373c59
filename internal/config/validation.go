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
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}
	return path
}

// ValidationError represents a single configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}

	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration for errors and returns all validation
// errors found.
func (c *Config) Validate() error {
	var errs ValidationErrors

	errs = append(errs, c.validateServer()...)
	errs = append(errs, c.validateAzure()...)
	errs = append(errs, c.validateRetrieval()...)
	errs = append(errs, c.validateGeneration()...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// validateServer validates server configuration.
func (c *Config) validateServer() ValidationErrors {
	var errs ValidationErrors

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, ValidationError{
			Field:   "server.port",
			Message: "must be between 1 and 65535",
		})
	}

	if c.Server.TLS.Enabled {
		if c.Server.TLS.CertFile == "" {
			errs = append(errs, ValidationError{
				Field:   "server.tls.cert_file",
				Message: "required when TLS is enabled",
			})
		} else if _, err := os.Stat(expandPath(c.Server.TLS.CertFile)); err != nil {
			errs = append(errs, ValidationError{
				Field:   "server.tls.cert_file",
				Message: fmt.Sprintf("file not found: %s", c.Server.TLS.CertFile),
			})
		}

		if c.Server.TLS.KeyFile == "" {
			errs = append(errs, ValidationError{
				Field:   "server.tls.key_file",
				Message: "required when TLS is enabled",
			})
		} else if _, err := os.Stat(expandPath(c.Server.TLS.KeyFile)); err != nil {
			errs = append(errs, ValidationError{
				Field:   "server.tls.key_file",
				Message: fmt.Sprintf("file not found: %s", c.Server.TLS.KeyFile),
			})
		}
	}

	return errs
}

// validateAzure validates the Azure endpoint configuration.
func (c *Config) validateAzure() ValidationErrors {
	var errs ValidationErrors

	errs = append(errs, validateEndpoint("azure.search_endpoint",
		c.Azure.SearchEndpoint)...)
	errs = append(errs, validateEndpoint("azure.openai_endpoint",
		c.Azure.OpenAIEndpoint)...)

	if c.Azure.OpenAIDeployment == "" {
		errs = append(errs, ValidationError{
			Field:   "azure.openai_deployment",
			Message: "required",
		})
	}

	return errs
}

// validateEndpoint checks that an endpoint is a well-formed absolute URL.
func validateEndpoint(field, endpoint string) ValidationErrors {
	if endpoint == "" {
		return ValidationErrors{{Field: field, Message: "required"}}
	}

	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ValidationErrors{{
			Field:   field,
			Message: fmt.Sprintf("must be an absolute URL: %s", endpoint),
		}}
	}

	return nil
}

// validateRetrieval validates retrieval settings.
func (c *Config) validateRetrieval() ValidationErrors {
	var errs ValidationErrors

	switch c.Retrieval.Mode {
	case RetrievalModeSemantic, RetrievalModeAgentic:
	default:
		errs = append(errs, ValidationError{
			Field:   "retrieval.mode",
			Message: "must be one of: semantic, agentic",
		})
	}

	switch c.Retrieval.ReasoningEffort {
	case ReasoningEffortLow, ReasoningEffortMedium, ReasoningEffortHigh:
	default:
		errs = append(errs, ValidationError{
			Field:   "retrieval.reasoning_effort",
			Message: "must be one of: low, medium, high",
		})
	}

	if c.Retrieval.FallbackIndex == "" {
		errs = append(errs, ValidationError{
			Field:   "retrieval.fallback_index",
			Message: "required",
		})
	}

	return errs
}

// validateGeneration validates inference settings.
func (c *Config) validateGeneration() ValidationErrors {
	var errs ValidationErrors

	if c.Generation.MaxTokens < 1 {
		errs = append(errs, ValidationError{
			Field:   "generation.max_tokens",
			Message: "must be positive",
		})
	}

	if c.Generation.RouterMaxTokens < 1 {
		errs = append(errs, ValidationError{
			Field:   "generation.router_max_tokens",
			Message: "must be positive",
		})
	}

	if c.Generation.Temperature < 0 || c.Generation.Temperature > 2 {
		errs = append(errs, ValidationError{
			Field:   "generation.temperature",
			Message: "must be between 0 and 2",
		})
	}

	if c.Generation.TimeoutSeconds < 1 {
		errs = append(errs, ValidationError{
			Field:   "generation.timeout_seconds",
			Message: "must be positive",
		})
	}

	return errs
}
