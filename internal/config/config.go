//-------------------------------------------------------------------------
//
// HR Assistant Orchestration Service
//
// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.
//
//-------------------------------------------------------------------------

// Package config handles configuration loading and validation for the
// HR Assistant service.
package config

// Config is the root configuration structure for the service.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Azure      AzureConfig      `yaml:"azure"`
	Retrieval  RetrievalConfig  `yaml:"retrieval"`
	Generation GenerationConfig `yaml:"generation"`
	Tokens     TokensConfig     `yaml:"tokens"`
	StaticDir  string           `yaml:"static_dir"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	ListenAddress string     `yaml:"listen_address"`
	Port          int        `yaml:"port"`
	TLS           TLSConfig  `yaml:"tls"`
	CORS          CORSConfig `yaml:"cors"`
}

// TLSConfig contains TLS/HTTPS settings.
type TLSConfig struct {
	Enabled  bool   `yaml:"enabled"`
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// CORSConfig contains CORS (Cross-Origin Resource Sharing) settings.
type CORSConfig struct {
	Enabled        bool     `yaml:"enabled"`
	AllowedOrigins []string `yaml:"allowed_origins"` // Origins to allow, or ["*"] for all
}

// AzureConfig contains the Azure service endpoints the pipeline talks to.
type AzureConfig struct {
	SearchEndpoint   string `yaml:"search_endpoint"`
	OpenAIEndpoint   string `yaml:"openai_endpoint"`
	OpenAIDeployment string `yaml:"openai_deployment"`
}

// Retrieval modes supported by the knowledge base service.
const (
	RetrievalModeSemantic = "semantic"
	RetrievalModeAgentic  = "agentic"
)

// Reasoning effort levels for agentic retrieval.
const (
	ReasoningEffortLow    = "low"
	ReasoningEffortMedium = "medium"
	ReasoningEffortHigh   = "high"
)

// RetrievalConfig contains knowledge retrieval settings.
type RetrievalConfig struct {
	// Mode selects between agentic (multi-step) and semantic (single-shot)
	// retrieval against the knowledge base service.
	Mode string `yaml:"mode"`

	// ReasoningEffort tunes query decomposition depth in agentic mode.
	ReasoningEffort string `yaml:"reasoning_effort"`

	// FallbackIndex is the search index queried directly when knowledge
	// base retrieval fails.
	FallbackIndex string `yaml:"fallback_index"`
}

// GenerationConfig contains settings for model inference calls.
type GenerationConfig struct {
	MaxTokens       int     `yaml:"max_tokens"`        // Cap on answer length
	RouterMaxTokens int     `yaml:"router_max_tokens"` // Cap on routing decision length
	Temperature     float64 `yaml:"temperature"`
	TimeoutSeconds  int     `yaml:"timeout_seconds"` // Per-call wall clock timeout
}

// TokensConfig contains paths to files containing bearer tokens for the
// Azure resources. If not specified, tokens are loaded from environment
// variables or default file locations.
type TokensConfig struct {
	Search string `yaml:"search"` // Path to file containing the search token
	OpenAI string `yaml:"openai"` // Path to file containing the cognitive services token
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddress: "0.0.0.0",
			Port:          8080,
			TLS: TLSConfig{
				Enabled: false,
			},
		},
		Azure: AzureConfig{
			SearchEndpoint:   "https://gptkb-j2f5gccswaftm.search.windows.net",
			OpenAIDeployment: "gpt-4.1-mini",
		},
		Retrieval: RetrievalConfig{
			Mode:            RetrievalModeAgentic,
			ReasoningEffort: ReasoningEffortMedium,
			FallbackIndex:   "gptkbindex",
		},
		Generation: GenerationConfig{
			MaxTokens:       1000,
			RouterMaxTokens: 100,
			Temperature:     0.7,
			TimeoutSeconds:  60,
		},
	}
}
