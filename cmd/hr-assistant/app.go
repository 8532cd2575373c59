//-------------------------------------------------------------------------
//
// HR Assistant Orchestration Service
//
// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.
//
//-------------------------------------------------------------------------

package main

import (
	"log/slog"

	"github.com/leyredelacalzada/azure-search-openai-demo/internal/auth"
	"github.com/leyredelacalzada/azure-search-openai-demo/internal/config"
	"github.com/leyredelacalzada/azure-search-openai-demo/internal/llm/azure"
	"github.com/leyredelacalzada/azure-search-openai-demo/internal/pipeline"
	"github.com/leyredelacalzada/azure-search-openai-demo/internal/responder"
	"github.com/leyredelacalzada/azure-search-openai-demo/internal/retrieval"
	"github.com/leyredelacalzada/azure-search-openai-demo/internal/router"
	"github.com/leyredelacalzada/azure-search-openai-demo/internal/specialist"
)

// app bundles the wired collaborators shared by the serve and terminal
// commands.
type app struct {
	cfg          *config.Config
	registry     *specialist.Registry
	orchestrator *pipeline.Orchestrator
}

// newApp loads configuration and wires the pipeline.
func newApp(configPath string, logger *slog.Logger) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	registry := specialist.NewRegistry()
	tokens := auth.NewLoader(cfg.Tokens.Search, cfg.Tokens.OpenAI)

	client := azure.NewClient(
		cfg.Azure.OpenAIEndpoint,
		cfg.Azure.OpenAIDeployment,
		tokens,
		azure.WithTimeout(cfg.Generation.TimeoutSeconds),
	)
	provider := azure.NewCompletionProvider(client,
		azure.WithMaxTokens(cfg.Generation.MaxTokens),
		azure.WithTemperature(cfg.Generation.Temperature),
	)

	retriever := retrieval.NewClient(
		cfg.Azure.SearchEndpoint,
		tokens,
		retrieval.WithMode(cfg.Retrieval.Mode),
		retrieval.WithReasoningEffort(cfg.Retrieval.ReasoningEffort),
		retrieval.WithFallbackIndex(cfg.Retrieval.FallbackIndex),
		retrieval.WithTimeout(cfg.Generation.TimeoutSeconds),
		retrieval.WithLogger(logger),
	)

	orchestrator := pipeline.NewOrchestrator(pipeline.OrchestratorConfig{
		Router: router.New(provider, registry,
			router.WithMaxTokens(cfg.Generation.RouterMaxTokens),
			router.WithLogger(logger)),
		Retriever: retriever,
		Responder: responder.New(provider,
			responder.WithMaxTokens(cfg.Generation.MaxTokens),
			responder.WithLogger(logger)),
		Registry: registry,
		Logger:   logger,
	})

	return &app{
		cfg:          cfg,
		registry:     registry,
		orchestrator: orchestrator,
	}, nil
}
