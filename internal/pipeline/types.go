//-------------------------------------------------------------------------
//
// HR Assistant Orchestration Service
//
// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.
//
//-------------------------------------------------------------------------

// Package pipeline sequences routing, retrieval, and grounded response
// generation, exposing each run as an ordered stream of lifecycle events.
package pipeline

import "github.com/leyredelacalzada/azure-search-openai-demo/internal/llm"

// EventType discriminates pipeline events on the wire.
type EventType string

// Event types, in the order a successful run emits them. A run emits
// exactly one routing and one context event; chunk events repeat.
const (
	EventKBInfo        EventType = "kb_info"
	EventStatus        EventType = "status"
	EventRouting       EventType = "routing"
	EventContext       EventType = "context"
	EventResponseStart EventType = "response_start"
	EventResponseChunk EventType = "response_chunk"
	EventResponseEnd   EventType = "response_end"
	EventError         EventType = "error"
)

// Event is one discrete progress notification from a pipeline run. Only
// the fields relevant to the event type are set.
type Event struct {
	Type EventType `json:"type"`

	// Agent names the persona an event belongs to (status, context,
	// response_start, response_end).
	Agent string `json:"agent,omitempty"`

	// Message carries status text, or the failure description for error
	// events.
	Message string `json:"message,omitempty"`

	// Routing fields.
	From   string `json:"from,omitempty"`
	To     string `json:"to,omitempty"`
	Reason string `json:"reason,omitempty"`

	// Sources lists retrieved source names (context) or the knowledge
	// base's constituent data sources (kb_info). An empty list on a
	// context event means the run proceeds ungrounded.
	Sources []string `json:"sources,omitempty"`

	// Content is one incremental answer fragment (response_chunk).
	Content string `json:"content,omitempty"`

	// KBName is the knowledge base selected for the run (kb_info).
	KBName string `json:"kb_name,omitempty"`
}

// Request is one query to run through the pipeline. History, when
// present, is the prior conversation; the pipeline itself stores nothing
// between runs.
type Request struct {
	Query     string        `json:"query"`
	KBVariant string        `json:"kb_variant"`
	History   []llm.Message `json:"messages,omitempty"`
}
