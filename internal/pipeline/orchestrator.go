//-------------------------------------------------------------------------
//
// HR Assistant Orchestration Service
//
// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.
//
//-------------------------------------------------------------------------

package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/leyredelacalzada/azure-search-openai-demo/internal/config"
	"github.com/leyredelacalzada/azure-search-openai-demo/internal/responder"
	"github.com/leyredelacalzada/azure-search-openai-demo/internal/retrieval"
	"github.com/leyredelacalzada/azure-search-openai-demo/internal/router"
	"github.com/leyredelacalzada/azure-search-openai-demo/internal/specialist"
)

const (
	// maxContextSources bounds how many source names the context event
	// reports. The full document set still reaches the responder.
	maxContextSources = 3

	// maxSourceNameLen truncates source names in the context event.
	maxSourceNameLen = 50
)

// Orchestrator sequences Router -> Retrieval -> Responder for each query
// and reports progress as an event stream. It holds only read-only
// collaborators, so concurrent runs share no mutable state.
type Orchestrator struct {
	router    *router.Router
	retriever retrieval.Retriever
	responder *responder.Responder
	registry  *specialist.Registry
	logger    *slog.Logger
}

// OrchestratorConfig contains the collaborators for an orchestrator.
type OrchestratorConfig struct {
	Router    *router.Router
	Retriever retrieval.Retriever
	Responder *responder.Responder
	Registry  *specialist.Registry
	Logger    *slog.Logger
}

// NewOrchestrator creates an orchestrator.
func NewOrchestrator(cfg OrchestratorConfig) *Orchestrator {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Orchestrator{
		router:    cfg.Router,
		retriever: cfg.Retriever,
		responder: cfg.Responder,
		registry:  cfg.Registry,
		logger:    logger,
	}
}

// Run executes the pipeline for one query. The returned channel yields
// events in order and is closed when the run ends. Routing and retrieval
// failures are absorbed by their fallbacks; only generation failures
// terminate the stream with an error event. Cancelling ctx stops the run
// and releases outbound connections.
func (o *Orchestrator) Run(ctx context.Context, req Request) <-chan Event {
	events := make(chan Event)

	go func() {
		defer close(events)

		runID := uuid.NewString()
		logger := o.logger.With("run_id", runID)
		kb := config.KnowledgeBaseFor(req.KBVariant)

		logger.Debug("pipeline run started",
			"kb_variant", kb.Variant,
			"knowledge_base", kb.Name)

		if !o.emit(ctx, events, Event{
			Type:    EventKBInfo,
			KBName:  kb.Name,
			Sources: kb.Sources,
		}) {
			return
		}

		// Routing
		if !o.emit(ctx, events, Event{
			Type:    EventStatus,
			Agent:   specialist.Orchestrator,
			Message: "Analyzing your question...",
		}) {
			return
		}

		decision := o.router.Route(ctx, req.Query)
		target, ok := o.registry.Get(decision.Target)
		if !ok {
			// Route never returns an unknown target; this is belt and
			// braces for alternative Router wirings.
			target = o.registry.Default()
			decision.Target = target.ID
		}

		logger.Info("query routed",
			"target", decision.Target,
			"reason", decision.Reason)

		if !o.emit(ctx, events, Event{
			Type:   EventRouting,
			From:   specialist.Orchestrator,
			To:     string(decision.Target),
			Reason: decision.Reason,
		}) {
			return
		}

		// Retrieval
		if !o.emit(ctx, events, Event{
			Type:    EventStatus,
			Agent:   string(target.ID),
			Message: fmt.Sprintf("Searching %s...", kb.Name),
		}) {
			return
		}

		docs, err := o.retriever.Retrieve(ctx, req.Query, kb)
		if err != nil {
			// The HTTP retriever absorbs its own failures; treat an
			// error from other implementations the same way.
			logger.Warn("retrieval failed, proceeding without context", "error", err)
			docs = nil
		}

		if !o.emit(ctx, events, Event{
			Type:    EventContext,
			Agent:   string(target.ID),
			Sources: contextSources(docs),
		}) {
			return
		}

		// Generation
		if !o.emit(ctx, events, Event{
			Type:    EventStatus,
			Agent:   string(target.ID),
			Message: "Generating response...",
		}) {
			return
		}

		if !o.emit(ctx, events, Event{
			Type:  EventResponseStart,
			Agent: string(target.ID),
		}) {
			return
		}

		chunks, errs := o.responder.Respond(ctx, target, req.Query, req.History, docs)

		for chunk := range chunks {
			if chunk.Content == "" {
				continue
			}
			if !o.emit(ctx, events, Event{
				Type:    EventResponseChunk,
				Content: chunk.Content,
			}) {
				return
			}
		}

		if err := <-errs; err != nil {
			logger.Error("generation failed", "error", err)
			o.emit(ctx, events, Event{
				Type:    EventError,
				Message: err.Error(),
			})
			return
		}

		o.emit(ctx, events, Event{
			Type:  EventResponseEnd,
			Agent: string(target.ID),
		})

		logger.Debug("pipeline run finished")
	}()

	return events
}

// emit sends an event unless the consumer is gone. Returns false when the
// run should stop.
func (o *Orchestrator) emit(ctx context.Context, events chan<- Event, ev Event) bool {
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// contextSources summarizes retrieved documents for the context event.
func contextSources(docs []retrieval.Document) []string {
	sources := make([]string, 0, maxContextSources)
	for _, doc := range docs {
		if len(sources) >= maxContextSources {
			break
		}
		name := doc.Source
		if name == "" {
			name = "Unknown"
		}
		if len(name) > maxSourceNameLen {
			name = name[:maxSourceNameLen]
		}
		sources = append(sources, name)
	}
	return sources
}
