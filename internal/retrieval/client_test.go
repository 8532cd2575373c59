//-------------------------------------------------------------------------
//
// HR Assistant Orchestration Service
//
// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.
//
//-------------------------------------------------------------------------

package retrieval

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/leyredelacalzada/azure-search-openai-demo/internal/auth"
	"github.com/leyredelacalzada/azure-search-openai-demo/internal/config"
)

var testTokens = auth.Static{auth.ScopeSearch: "test-search-token"}

func testKB() config.KnowledgeBase {
	return config.KnowledgeBase{
		Variant: "base",
		Name:    "gptkbindex-agent-upgrade",
	}
}

func TestRetrievePrimaryPath(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody retrieveRequest

	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path + "?" + r.URL.RawQuery
			gotAuth = r.Header.Get("Authorization")
			if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
				t.Errorf("failed to decode request body: %v", err)
			}
			_ = json.NewEncoder(w).Encode(retrieveResponse{
				References: []reference{
					{Content: "PTO accrues monthly", Source: "handbook.pdf"},
					{Content: "Carry-over is capped", SourceFile: "policy.pdf"},
				},
			})
		}))
	defer server.Close()

	client := NewClient(server.URL, testTokens)
	docs, err := client.Retrieve(context.Background(), "how does PTO accrue?", testKB())
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}

	wantPath := "/knowledgebases/gptkbindex-agent-upgrade/retrieve?api-version=2025-05-01-preview"
	if gotPath != wantPath {
		t.Errorf("path = %s, want %s", gotPath, wantPath)
	}
	if gotAuth != "Bearer test-search-token" {
		t.Errorf("unexpected auth header: %s", gotAuth)
	}
	if gotBody.RetrievalMode != config.RetrievalModeAgentic {
		t.Errorf("retrievalMode = %q, want agentic", gotBody.RetrievalMode)
	}
	if gotBody.ReasoningEffort != config.ReasoningEffortMedium {
		t.Errorf("reasoning effort = %q, want medium", gotBody.ReasoningEffort)
	}
	if len(gotBody.Messages) != 1 || gotBody.Messages[0].Content != "how does PTO accrue?" {
		t.Errorf("unexpected messages: %+v", gotBody.Messages)
	}

	if len(docs) != 2 {
		t.Fatalf("got %d documents, want 2", len(docs))
	}
	if docs[0].Source != "handbook.pdf" || docs[0].Rank != 1 {
		t.Errorf("unexpected first document: %+v", docs[0])
	}
	if docs[1].Source != "policy.pdf" || docs[1].Rank != 2 {
		t.Errorf("unexpected second document: %+v", docs[1])
	}
}

func TestRetrieveSemanticModeOmitsAgenticFields(t *testing.T) {
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			_ = json.NewEncoder(w).Encode(retrieveResponse{})
		}))
	defer server.Close()

	client := NewClient(server.URL, testTokens,
		WithMode(config.RetrievalModeSemantic))
	if _, err := client.Retrieve(context.Background(), "q", testKB()); err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}

	if _, ok := gotBody["retrievalMode"]; ok {
		t.Error("semantic mode should omit retrievalMode")
	}
	if _, ok := gotBody["retrievalReasoningEffort"]; ok {
		t.Error("semantic mode should omit retrievalReasoningEffort")
	}
}

func TestRetrieveFallsBackToIndexSearch(t *testing.T) {
	var searchPath string
	var searchBody searchRequest

	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			if strings.Contains(r.URL.Path, "/knowledgebases/") {
				http.Error(w, "retrieve unavailable", http.StatusInternalServerError)
				return
			}
			searchPath = r.URL.Path + "?" + r.URL.RawQuery
			if err := json.NewDecoder(r.Body).Decode(&searchBody); err != nil {
				t.Errorf("failed to decode search body: %v", err)
			}
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"value": []map[string]string{
					{"id": "1", "content": "doc one", "sourcefile": "a.pdf"},
					{"id": "2", "content": "doc two"},
				},
			})
		}))
	defer server.Close()

	client := NewClient(server.URL, testTokens, WithTopK(3))
	docs, err := client.Retrieve(context.Background(), "benefits question", testKB())
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}

	wantPath := "/indexes/gptkbindex/docs/search?api-version=2024-07-01"
	if searchPath != wantPath {
		t.Errorf("fallback path = %s, want %s", searchPath, wantPath)
	}
	if searchBody.Search != "benefits question" {
		t.Errorf("search text = %q", searchBody.Search)
	}
	if searchBody.Top != 3 {
		t.Errorf("top = %d, want 3", searchBody.Top)
	}
	if searchBody.Select != "id,content,sourcefile,sourcepage" {
		t.Errorf("select = %q", searchBody.Select)
	}

	if len(docs) != 2 {
		t.Fatalf("got %d documents, want 2", len(docs))
	}
	if docs[0].Source != "a.pdf" {
		t.Errorf("first source = %q, want a.pdf", docs[0].Source)
	}
	if docs[1].Source != "Unknown" {
		t.Errorf("missing sourcefile should map to Unknown, got %q", docs[1].Source)
	}
}

func TestRetrieveBothPathsFailReturnsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusServiceUnavailable)
		}))
	defer server.Close()

	client := NewClient(server.URL, testTokens)
	docs, err := client.Retrieve(context.Background(), "anything", testKB())
	if err != nil {
		t.Fatalf("Retrieve should not error when both paths fail, got: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("expected no documents, got %d", len(docs))
	}
}

func TestRetrieveTokenFailureDegrades(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request should be sent without a token")
		}))
	defer server.Close()

	client := NewClient(server.URL, auth.Static{})
	docs, err := client.Retrieve(context.Background(), "anything", testKB())
	if err != nil {
		t.Fatalf("Retrieve should degrade, got: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("expected no documents, got %d", len(docs))
	}
}

func TestReferenceSourcePreference(t *testing.T) {
	tests := []struct {
		ref  reference
		want string
	}{
		{reference{Source: "s", SourceFile: "f", ID: "i"}, "s"},
		{reference{SourceFile: "f", ID: "i"}, "f"},
		{reference{ID: "i"}, "i"},
		{reference{}, "Unknown"},
	}

	for _, tt := range tests {
		if got := referenceSource(tt.ref); got != tt.want {
			t.Errorf("referenceSource(%+v) = %q, want %q", tt.ref, got, tt.want)
		}
	}
}
