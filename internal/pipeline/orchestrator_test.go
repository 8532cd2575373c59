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
	"errors"
	"strings"
	"testing"

	"github.com/leyredelacalzada/azure-search-openai-demo/internal/config"
	"github.com/leyredelacalzada/azure-search-openai-demo/internal/llm"
	"github.com/leyredelacalzada/azure-search-openai-demo/internal/responder"
	"github.com/leyredelacalzada/azure-search-openai-demo/internal/retrieval"
	"github.com/leyredelacalzada/azure-search-openai-demo/internal/router"
	"github.com/leyredelacalzada/azure-search-openai-demo/internal/specialist"
)

// mockProvider implements llm.CompletionProvider. Complete serves the
// routing step; CompleteStream serves generation.
type mockProvider struct {
	completeFunc func(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error)
	streamFunc   func(ctx context.Context, req llm.CompletionRequest) (<-chan llm.StreamChunk, <-chan error)
}

func (m *mockProvider) Complete(
	ctx context.Context, req llm.CompletionRequest,
) (*llm.CompletionResponse, error) {
	return m.completeFunc(ctx, req)
}

func (m *mockProvider) CompleteStream(
	ctx context.Context, req llm.CompletionRequest,
) (<-chan llm.StreamChunk, <-chan error) {
	return m.streamFunc(ctx, req)
}

func (m *mockProvider) ModelName() string {
	return "mock"
}

// mockRetriever implements retrieval.Retriever.
type mockRetriever struct {
	retrieveFunc func(ctx context.Context, query string, kb config.KnowledgeBase) ([]retrieval.Document, error)
}

func (m *mockRetriever) Retrieve(
	ctx context.Context, query string, kb config.KnowledgeBase,
) ([]retrieval.Document, error) {
	return m.retrieveFunc(ctx, query, kb)
}

func routeTo(target string) func(context.Context, llm.CompletionRequest) (*llm.CompletionResponse, error) {
	return func(_ context.Context, _ llm.CompletionRequest) (*llm.CompletionResponse, error) {
		return &llm.CompletionResponse{
			Content: `{"agent": "` + target + `", "reason": "test route"}`,
		}, nil
	}
}

func streamChunks(contents []string, finalErr error) func(context.Context, llm.CompletionRequest) (<-chan llm.StreamChunk, <-chan error) {
	return func(_ context.Context, _ llm.CompletionRequest) (<-chan llm.StreamChunk, <-chan error) {
		chunks := make(chan llm.StreamChunk, len(contents))
		errs := make(chan error, 1)
		for _, c := range contents {
			chunks <- llm.StreamChunk{Content: c}
		}
		close(chunks)
		if finalErr != nil {
			errs <- finalErr
		}
		close(errs)
		return chunks, errs
	}
}

func newTestOrchestrator(provider *mockProvider, retriever retrieval.Retriever) *Orchestrator {
	registry := specialist.NewRegistry()
	return NewOrchestrator(OrchestratorConfig{
		Router:    router.New(provider, registry),
		Retriever: retriever,
		Responder: responder.New(provider),
		Registry:  registry,
	})
}

func collectEvents(t *testing.T, events <-chan Event) []Event {
	t.Helper()
	var out []Event
	for ev := range events {
		out = append(out, ev)
	}
	return out
}

func eventTypes(events []Event) []EventType {
	types := make([]EventType, 0, len(events))
	for _, ev := range events {
		types = append(types, ev.Type)
	}
	return types
}

func TestRunSuccessfulEventOrder(t *testing.T) {
	provider := &mockProvider{
		completeFunc: routeTo("hr-policy"),
		streamFunc:   streamChunks([]string{"PTO ", "accrues ", "monthly."}, nil),
	}
	retriever := &mockRetriever{
		retrieveFunc: func(_ context.Context, _ string, _ config.KnowledgeBase) ([]retrieval.Document, error) {
			return []retrieval.Document{
				{Content: "PTO policy text", Source: "handbook.pdf"},
			}, nil
		},
	}

	o := newTestOrchestrator(provider, retriever)
	events := collectEvents(t, o.Run(context.Background(), Request{
		Query: "how does PTO accrue?",
	}))

	want := []EventType{
		EventKBInfo,
		EventStatus,
		EventRouting,
		EventStatus,
		EventContext,
		EventStatus,
		EventResponseStart,
		EventResponseChunk,
		EventResponseChunk,
		EventResponseChunk,
		EventResponseEnd,
	}
	got := eventTypes(events)
	if len(got) != len(want) {
		t.Fatalf("got %d events %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	routing := events[2]
	if routing.From != specialist.Orchestrator || routing.To != "hr-policy" {
		t.Errorf("unexpected routing event: %+v", routing)
	}
	if routing.Reason != "test route" {
		t.Errorf("routing reason = %q", routing.Reason)
	}

	contextEv := events[4]
	if len(contextEv.Sources) != 1 || contextEv.Sources[0] != "handbook.pdf" {
		t.Errorf("unexpected context sources: %v", contextEv.Sources)
	}

	var answer strings.Builder
	for _, ev := range events {
		if ev.Type == EventResponseChunk {
			answer.WriteString(ev.Content)
		}
	}
	if answer.String() != "PTO accrues monthly." {
		t.Errorf("assembled answer = %q", answer.String())
	}
}

func TestRunKBInfoReflectsVariant(t *testing.T) {
	provider := &mockProvider{
		completeFunc: routeTo("benefits"),
		streamFunc:   streamChunks([]string{"ok"}, nil),
	}
	retriever := &mockRetriever{
		retrieveFunc: func(_ context.Context, _ string, kb config.KnowledgeBase) ([]retrieval.Document, error) {
			if kb.Name != "gptkbindex-agent-upgrade-with-web" {
				t.Errorf("retriever received kb %q", kb.Name)
			}
			return nil, nil
		},
	}

	o := newTestOrchestrator(provider, retriever)
	events := collectEvents(t, o.Run(context.Background(), Request{
		Query:     "anything",
		KBVariant: "with-web",
	}))

	if events[0].Type != EventKBInfo {
		t.Fatalf("first event = %s, want kb_info", events[0].Type)
	}
	if events[0].KBName != "gptkbindex-agent-upgrade-with-web" {
		t.Errorf("kb_info name = %q", events[0].KBName)
	}
}

func TestRunEmptyRetrievalStillSucceeds(t *testing.T) {
	provider := &mockProvider{
		completeFunc: routeTo("perks"),
		streamFunc:   streamChunks([]string{"No sources found."}, nil),
	}
	retriever := &mockRetriever{
		retrieveFunc: func(_ context.Context, _ string, _ config.KnowledgeBase) ([]retrieval.Document, error) {
			return nil, nil
		},
	}

	o := newTestOrchestrator(provider, retriever)
	events := collectEvents(t, o.Run(context.Background(), Request{Query: "q"}))

	var sawContext, sawEnd bool
	for _, ev := range events {
		switch ev.Type {
		case EventContext:
			sawContext = true
			if len(ev.Sources) != 0 {
				t.Errorf("context sources should be empty, got %v", ev.Sources)
			}
		case EventResponseEnd:
			sawEnd = true
		case EventError:
			t.Errorf("unexpected error event: %+v", ev)
		}
	}
	if !sawContext || !sawEnd {
		t.Errorf("missing context or response_end: %v", eventTypes(events))
	}
}

func TestRunRetrieverErrorAbsorbed(t *testing.T) {
	provider := &mockProvider{
		completeFunc: routeTo("benefits"),
		streamFunc:   streamChunks([]string{"ok"}, nil),
	}
	retriever := &mockRetriever{
		retrieveFunc: func(_ context.Context, _ string, _ config.KnowledgeBase) ([]retrieval.Document, error) {
			return nil, errors.New("search down")
		},
	}

	o := newTestOrchestrator(provider, retriever)
	events := collectEvents(t, o.Run(context.Background(), Request{Query: "q"}))

	for _, ev := range events {
		if ev.Type == EventError {
			t.Fatalf("retrieval error should not surface: %+v", ev)
		}
	}
	if events[len(events)-1].Type != EventResponseEnd {
		t.Errorf("run should finish normally, last event: %s",
			events[len(events)-1].Type)
	}
}

func TestRunGenerationErrorEndsStream(t *testing.T) {
	provider := &mockProvider{
		completeFunc: routeTo("benefits"),
		streamFunc:   streamChunks([]string{"partial "}, errors.New("model overloaded")),
	}
	retriever := &mockRetriever{
		retrieveFunc: func(_ context.Context, _ string, _ config.KnowledgeBase) ([]retrieval.Document, error) {
			return nil, nil
		},
	}

	o := newTestOrchestrator(provider, retriever)
	events := collectEvents(t, o.Run(context.Background(), Request{Query: "q"}))

	last := events[len(events)-1]
	if last.Type != EventError {
		t.Fatalf("last event = %s, want error", last.Type)
	}
	if !strings.Contains(last.Message, "model overloaded") {
		t.Errorf("error message = %q", last.Message)
	}

	var errCount int
	for _, ev := range events {
		switch ev.Type {
		case EventError:
			errCount++
		case EventResponseEnd:
			t.Error("failed run must not emit response_end")
		}
	}
	if errCount != 1 {
		t.Errorf("got %d error events, want exactly 1", errCount)
	}
}

func TestRunEmptyChunksSkipped(t *testing.T) {
	provider := &mockProvider{
		completeFunc: routeTo("benefits"),
		streamFunc:   streamChunks([]string{"", "text", ""}, nil),
	}
	retriever := &mockRetriever{
		retrieveFunc: func(_ context.Context, _ string, _ config.KnowledgeBase) ([]retrieval.Document, error) {
			return nil, nil
		},
	}

	o := newTestOrchestrator(provider, retriever)
	events := collectEvents(t, o.Run(context.Background(), Request{Query: "q"}))

	var chunkCount int
	for _, ev := range events {
		if ev.Type == EventResponseChunk {
			chunkCount++
		}
	}
	if chunkCount != 1 {
		t.Errorf("got %d chunk events, want 1 (empty chunks skipped)", chunkCount)
	}
}

func TestRunSingleRoutingAndContextEvents(t *testing.T) {
	provider := &mockProvider{
		completeFunc: routeTo("roles"),
		streamFunc:   streamChunks([]string{"answer"}, nil),
	}
	retriever := &mockRetriever{
		retrieveFunc: func(_ context.Context, _ string, _ config.KnowledgeBase) ([]retrieval.Document, error) {
			return []retrieval.Document{{Content: "c", Source: "s.pdf"}}, nil
		},
	}

	o := newTestOrchestrator(provider, retriever)
	events := collectEvents(t, o.Run(context.Background(), Request{Query: "q"}))

	counts := map[EventType]int{}
	for _, ev := range events {
		counts[ev.Type]++
	}
	if counts[EventRouting] != 1 {
		t.Errorf("got %d routing events, want 1", counts[EventRouting])
	}
	if counts[EventContext] != 1 {
		t.Errorf("got %d context events, want 1", counts[EventContext])
	}
	if counts[EventResponseStart] != 1 || counts[EventResponseEnd] != 1 {
		t.Errorf("response start/end counts: %d/%d",
			counts[EventResponseStart], counts[EventResponseEnd])
	}
}

func TestRunCancelledContextStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	provider := &mockProvider{
		completeFunc: routeTo("benefits"),
		streamFunc:   streamChunks([]string{"x"}, nil),
	}
	retriever := &mockRetriever{
		retrieveFunc: func(_ context.Context, _ string, _ config.KnowledgeBase) ([]retrieval.Document, error) {
			return nil, nil
		},
	}

	o := newTestOrchestrator(provider, retriever)
	events := o.Run(ctx, Request{Query: "q"})

	// The stream must terminate; whether any events slip out before the
	// cancellation is observed is timing-dependent.
	for range events {
	}
}

func TestContextSourcesTruncation(t *testing.T) {
	long := strings.Repeat("n", maxSourceNameLen+20)
	docs := []retrieval.Document{
		{Source: long},
		{Source: "a.pdf"},
		{Source: ""},
		{Source: "d.pdf"},
	}

	sources := contextSources(docs)
	if len(sources) != maxContextSources {
		t.Fatalf("got %d sources, want %d", len(sources), maxContextSources)
	}
	if len(sources[0]) != maxSourceNameLen {
		t.Errorf("long name not truncated: %d chars", len(sources[0]))
	}
	if sources[2] != "Unknown" {
		t.Errorf("empty source should report Unknown, got %q", sources[2])
	}
}
