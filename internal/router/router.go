//-------------------------------------------------------------------------
//
// HR Assistant Orchestration Service
//
// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.
//
//-------------------------------------------------------------------------

// Package router classifies a query to the specialist that should handle
// it. Classification degrades from model output parsing to keyword
// heuristics to a default specialist; it never fails.
package router

import (
	"context"
	"log/slog"

	"github.com/leyredelacalzada/azure-search-openai-demo/internal/llm"
	"github.com/leyredelacalzada/azure-search-openai-demo/internal/specialist"
)

const defaultMaxTokens = 100

// Router decides which specialist handles a query.
type Router struct {
	provider  llm.CompletionProvider
	registry  *specialist.Registry
	maxTokens int
	logger    *slog.Logger
}

// New creates a router.
func New(
	provider llm.CompletionProvider,
	registry *specialist.Registry,
	opts ...Option,
) *Router {
	r := &Router{
		provider:  provider,
		registry:  registry,
		maxTokens: defaultMaxTokens,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Option configures the router.
type Option func(*Router)

// WithMaxTokens caps the routing response length.
func WithMaxTokens(tokens int) Option {
	return func(r *Router) {
		r.maxTokens = tokens
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// Route classifies the query. A failed or malformed inference call is
// recovered by keyword-matching the query itself, then by the default
// specialist; the returned decision always names a registry-valid target.
func (r *Router) Route(ctx context.Context, query string) Decision {
	resp, err := r.provider.Complete(ctx, llm.CompletionRequest{
		SystemPrompt: specialist.OrchestratorInstructions,
		Messages: []llm.Message{
			{Role: "user", Content: query},
		},
		MaxTokens:   r.maxTokens,
		Temperature: 0,
	})
	if err != nil {
		r.logger.Warn("routing inference failed, using keyword heuristics",
			"error", err)
		return r.routeByKeywords(query)
	}

	decision := ParseDecision(resp.Content, r.registry)
	r.logger.Debug("routing decision",
		"target", decision.Target,
		"reason", decision.Reason)
	return decision
}

// routeByKeywords classifies the query text directly, without model
// output.
func (r *Router) routeByKeywords(query string) Decision {
	if sp, ok := matchKeywords(query, r.registry); ok {
		return Decision{
			Target: sp.ID,
			Reason: "Matched " + string(sp.ID) + " keywords",
		}
	}
	return Decision{
		Target: r.registry.Default().ID,
		Reason: "Default routing",
	}
}
