//-------------------------------------------------------------------------
//
// HR Assistant Orchestration Service
//
// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.
//
//-------------------------------------------------------------------------

package router

import (
	"context"
	"errors"
	"testing"

	"github.com/leyredelacalzada/azure-search-openai-demo/internal/llm"
	"github.com/leyredelacalzada/azure-search-openai-demo/internal/specialist"
)

// mockProvider implements llm.CompletionProvider for testing.
type mockProvider struct {
	completeFunc func(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error)
}

func (m *mockProvider) Complete(
	ctx context.Context, req llm.CompletionRequest,
) (*llm.CompletionResponse, error) {
	return m.completeFunc(ctx, req)
}

func (m *mockProvider) CompleteStream(
	ctx context.Context, req llm.CompletionRequest,
) (<-chan llm.StreamChunk, <-chan error) {
	chunks := make(chan llm.StreamChunk)
	errs := make(chan error, 1)
	close(chunks)
	close(errs)
	return chunks, errs
}

func (m *mockProvider) ModelName() string {
	return "mock"
}

func TestRouteParsesModelDecision(t *testing.T) {
	registry := specialist.NewRegistry()
	provider := &mockProvider{
		completeFunc: func(_ context.Context, _ llm.CompletionRequest) (*llm.CompletionResponse, error) {
			return &llm.CompletionResponse{
				Content: `{"agent": "perks", "reason": "Wellness question"}`,
			}, nil
		},
	}

	r := New(provider, registry)
	d := r.Route(context.Background(), "does the gym count for PerksPlus?")

	if d.Target != specialist.Perks {
		t.Errorf("target = %s, want %s", d.Target, specialist.Perks)
	}
	if d.Reason != "Wellness question" {
		t.Errorf("unexpected reason: %q", d.Reason)
	}
}

func TestRouteRequestShape(t *testing.T) {
	registry := specialist.NewRegistry()

	var captured llm.CompletionRequest
	provider := &mockProvider{
		completeFunc: func(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
			captured = req
			return &llm.CompletionResponse{
				Content: `{"agent": "benefits", "reason": "ok"}`,
			}, nil
		},
	}

	r := New(provider, registry, WithMaxTokens(64))
	r.Route(context.Background(), "what is my deductible?")

	if captured.SystemPrompt != specialist.OrchestratorInstructions {
		t.Error("routing call should use the orchestrator instructions")
	}
	if captured.MaxTokens != 64 {
		t.Errorf("max tokens = %d, want 64", captured.MaxTokens)
	}
	if captured.Temperature != 0 {
		t.Errorf("temperature = %v, want 0", captured.Temperature)
	}
	if len(captured.Messages) != 1 || captured.Messages[0].Content != "what is my deductible?" {
		t.Errorf("unexpected messages: %+v", captured.Messages)
	}
}

func TestRouteProviderErrorUsesKeywords(t *testing.T) {
	registry := specialist.NewRegistry()
	provider := &mockProvider{
		completeFunc: func(_ context.Context, _ llm.CompletionRequest) (*llm.CompletionResponse, error) {
			return nil, errors.New("model unavailable")
		},
	}

	r := New(provider, registry)
	d := r.Route(context.Background(), "what is the remote work policy?")

	if d.Target != specialist.HRPolicy {
		t.Errorf("target = %s, want %s", d.Target, specialist.HRPolicy)
	}
}

func TestRouteProviderErrorNoKeywordsDefaults(t *testing.T) {
	registry := specialist.NewRegistry()
	provider := &mockProvider{
		completeFunc: func(_ context.Context, _ llm.CompletionRequest) (*llm.CompletionResponse, error) {
			return nil, errors.New("model unavailable")
		},
	}

	r := New(provider, registry)
	d := r.Route(context.Background(), "hello there")

	if d.Target != registry.Default().ID {
		t.Errorf("target = %s, want default %s",
			d.Target, registry.Default().ID)
	}
}

func TestRouteNeverReturnsUnknownTarget(t *testing.T) {
	registry := specialist.NewRegistry()
	outputs := []string{
		`{"agent": "nonexistent", "reason": "?"}`,
		"not json at all",
		"",
	}

	for _, out := range outputs {
		provider := &mockProvider{
			completeFunc: func(_ context.Context, _ llm.CompletionRequest) (*llm.CompletionResponse, error) {
				return &llm.CompletionResponse{Content: out}, nil
			},
		}
		r := New(provider, registry)
		d := r.Route(context.Background(), "unmatchable text here")
		if _, ok := registry.Get(d.Target); !ok {
			t.Errorf("output %q produced non-registry target %s", out, d.Target)
		}
	}
}
