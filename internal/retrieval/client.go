//-------------------------------------------------------------------------
//
// HR Assistant Orchestration Service
//
// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.
//
//-------------------------------------------------------------------------

// Package retrieval fetches grounding documents from the knowledge base
// service, with a fallback from agentic retrieval to plain index search.
package retrieval

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/leyredelacalzada/azure-search-openai-demo/internal/auth"
	"github.com/leyredelacalzada/azure-search-openai-demo/internal/config"
)

const (
	knowledgeBaseAPIVersion = "2025-05-01-preview"
	indexSearchAPIVersion   = "2024-07-01"

	defaultTopK    = 5
	defaultTimeout = 60
)

// Document is one retrieved context document, ordered by relevance.
type Document struct {
	Content string `json:"content"`
	Source  string `json:"source"`
	Rank    int    `json:"rank,omitempty"`
}

// Retriever fetches context documents for a query against a knowledge
// base variant.
type Retriever interface {
	Retrieve(ctx context.Context, query string, kb config.KnowledgeBase) ([]Document, error)
}

// Client retrieves documents from the search service. The primary path is
// the knowledge base retrieve endpoint; when it fails, the client retries
// against the plain index search endpoint. Only when both fail does it
// return an empty document list, never an error: a degraded answer beats
// no answer.
type Client struct {
	httpClient      *http.Client
	endpoint        string
	mode            string
	reasoningEffort string
	fallbackIndex   string
	topK            int
	tokens          auth.TokenSource
	logger          *slog.Logger
}

// NewClient creates a retrieval client for a search service endpoint.
func NewClient(endpoint string, tokens auth.TokenSource, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout * time.Second,
		},
		endpoint:        strings.TrimSuffix(endpoint, "/"),
		mode:            config.RetrievalModeAgentic,
		reasoningEffort: config.ReasoningEffortMedium,
		fallbackIndex:   "gptkbindex",
		topK:            defaultTopK,
		tokens:          tokens,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Option configures the client.
type Option func(*Client)

// WithMode sets the retrieval mode (semantic or agentic).
func WithMode(mode string) Option {
	return func(c *Client) {
		c.mode = mode
	}
}

// WithReasoningEffort sets the agentic reasoning effort (low, medium, high).
func WithReasoningEffort(effort string) Option {
	return func(c *Client) {
		c.reasoningEffort = effort
	}
}

// WithFallbackIndex sets the index queried when knowledge base retrieval
// fails.
func WithFallbackIndex(index string) Option {
	return func(c *Client) {
		c.fallbackIndex = index
	}
}

// WithTopK sets the result count requested from the fallback search.
func WithTopK(topK int) Option {
	return func(c *Client) {
		c.topK = topK
	}
}

// WithTimeout sets the HTTP timeout.
func WithTimeout(seconds int) Option {
	return func(c *Client) {
		c.httpClient.Timeout = time.Duration(seconds) * time.Second
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// retrieveRequest is the body for the knowledge base retrieve endpoint.
type retrieveRequest struct {
	Messages        []message `json:"messages"`
	RetrievalMode   string    `json:"retrievalMode,omitempty"`
	ReasoningEffort string    `json:"retrievalReasoningEffort,omitempty"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// retrieveResponse is the knowledge base retrieve response.
type retrieveResponse struct {
	References []reference `json:"references"`
}

type reference struct {
	ID         string `json:"id"`
	Content    string `json:"content"`
	Source     string `json:"source"`
	SourceFile string `json:"sourcefile"`
}

// searchRequest is the body for the index search endpoint.
type searchRequest struct {
	Search string `json:"search"`
	Top    int    `json:"top"`
	Select string `json:"select"`
}

// searchResponse is the index search response.
type searchResponse struct {
	Value []struct {
		ID         string `json:"id"`
		Content    string `json:"content"`
		SourceFile string `json:"sourcefile"`
		SourcePage string `json:"sourcepage"`
	} `json:"value"`
}

// Retrieve fetches context documents for a query. The returned error is
// always nil for the HTTP client; failures degrade to the fallback path
// and then to an empty list. The interface keeps the error return so test
// doubles can exercise pipeline failure handling.
func (c *Client) Retrieve(
	ctx context.Context,
	query string,
	kb config.KnowledgeBase,
) ([]Document, error) {
	docs, err := c.retrieveFromKnowledgeBase(ctx, query, kb.Name)
	if err == nil {
		return docs, nil
	}

	c.logger.Warn("knowledge base retrieval failed, falling back to index search",
		"knowledge_base", kb.Name,
		"error", err)

	docs, err = c.searchIndex(ctx, query)
	if err != nil {
		c.logger.Warn("fallback index search failed, proceeding without context",
			"index", c.fallbackIndex,
			"error", err)
		return nil, nil
	}

	return docs, nil
}

// retrieveFromKnowledgeBase calls the reasoning-augmented retrieve
// endpoint and returns the ranked references verbatim.
func (c *Client) retrieveFromKnowledgeBase(
	ctx context.Context,
	query, kbName string,
) ([]Document, error) {
	body := retrieveRequest{
		Messages: []message{{Role: "user", Content: query}},
	}
	if c.mode == config.RetrievalModeAgentic {
		body.RetrievalMode = config.RetrievalModeAgentic
		body.ReasoningEffort = c.reasoningEffort
	}

	url := fmt.Sprintf("%s/knowledgebases/%s/retrieve?api-version=%s",
		c.endpoint, kbName, knowledgeBaseAPIVersion)

	respBody, err := c.post(ctx, url, body)
	if err != nil {
		return nil, err
	}

	var resp retrieveResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse retrieve response: %w", err)
	}

	docs := make([]Document, 0, len(resp.References))
	for i, ref := range resp.References {
		docs = append(docs, Document{
			Content: ref.Content,
			Source:  referenceSource(ref),
			Rank:    i + 1,
		})
	}
	return docs, nil
}

// searchIndex calls the plain hybrid search endpoint.
func (c *Client) searchIndex(ctx context.Context, query string) ([]Document, error) {
	body := searchRequest{
		Search: query,
		Top:    c.topK,
		Select: "id,content,sourcefile,sourcepage",
	}

	url := fmt.Sprintf("%s/indexes/%s/docs/search?api-version=%s",
		c.endpoint, c.fallbackIndex, indexSearchAPIVersion)

	respBody, err := c.post(ctx, url, body)
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	docs := make([]Document, 0, len(resp.Value))
	for i, r := range resp.Value {
		source := r.SourceFile
		if source == "" {
			source = "Unknown"
		}
		docs = append(docs, Document{
			Content: r.Content,
			Source:  source,
			Rank:    i + 1,
		})
	}
	return docs, nil
}

// post issues an authenticated POST and returns the response body for
// 2xx responses.
func (c *Client) post(ctx context.Context, url string, body interface{}) ([]byte, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url,
		bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	token, err := c.tokens.Token(ctx, auth.ScopeSearch)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire token: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("search API error (status %d): %s",
			resp.StatusCode, string(respBody))
	}

	return respBody, nil
}

// referenceSource picks the best available source identifier for a
// knowledge base reference.
func referenceSource(ref reference) string {
	switch {
	case ref.Source != "":
		return ref.Source
	case ref.SourceFile != "":
		return ref.SourceFile
	case ref.ID != "":
		return ref.ID
	default:
		return "Unknown"
	}
}

// Ensure Client implements the interface.
var _ Retriever = (*Client)(nil)
