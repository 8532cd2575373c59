//-------------------------------------------------------------------------
//
// HR Assistant Orchestration Service
//
// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.
//
//-------------------------------------------------------------------------

// Package responder generates a specialist's grounded, streamed answer to
// a query.
package responder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leyredelacalzada/azure-search-openai-demo/internal/llm"
	"github.com/leyredelacalzada/azure-search-openai-demo/internal/retrieval"
	"github.com/leyredelacalzada/azure-search-openai-demo/internal/specialist"
)

const (
	// maxContextDocs bounds how many retrieved documents enter the prompt.
	maxContextDocs = 5

	// maxDocChars bounds each document's contribution to the prompt.
	maxDocChars = 1500

	// docSeparator visibly separates documents in the context block.
	docSeparator = "\n\n---\n\n"

	defaultMaxTokens = 1000
)

// citationRules is appended to every grounded prompt. The trailing source
// list format is what the pipeline's consumers parse.
const citationRules = `CITATION RULES:
- Answer the question using the context above
- Do NOT include source citations inline in your response text
- At the very end of your response, add a blank line then list all sources you used in this format:
  [Sources: source1.pdf, source2.pdf]
- Only list sources you actually referenced in your answer`

// Responder produces grounded streamed answers.
type Responder struct {
	provider  llm.CompletionProvider
	maxTokens int
	logger    *slog.Logger
}

// New creates a responder.
func New(provider llm.CompletionProvider, opts ...Option) *Responder {
	r := &Responder{
		provider:  provider,
		maxTokens: defaultMaxTokens,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Option configures the responder.
type Option func(*Responder)

// WithMaxTokens caps the generated answer length.
func WithMaxTokens(tokens int) Option {
	return func(r *Responder) {
		r.maxTokens = tokens
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Responder) {
		r.logger = logger
	}
}

// Respond streams the specialist's grounded answer. The chunk channel is
// closed when generation ends; failures arrive on the error channel. An
// empty document list is valid: the prompt then states that no source
// material was found and the answer proceeds ungrounded. History, when
// present, precedes the current query in the conversation.
func (r *Responder) Respond(
	ctx context.Context,
	sp *specialist.Specialist,
	query string,
	history []llm.Message,
	docs []retrieval.Document,
) (<-chan llm.StreamChunk, <-chan error) {
	messages := make([]llm.Message, 0, len(history)+1)
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: "user", Content: query})

	return r.provider.CompleteStream(ctx, llm.CompletionRequest{
		SystemPrompt: buildSystemPrompt(sp, docs),
		Messages:     messages,
		MaxTokens:    r.maxTokens,
		Temperature:  -1, // provider default
	})
}

// buildSystemPrompt assembles persona instructions, the serialized
// context block, and the citation rules.
func buildSystemPrompt(sp *specialist.Specialist, docs []retrieval.Document) string {
	var sb strings.Builder
	sb.WriteString(sp.Instructions)
	sb.WriteString("\n\nRETRIEVED CONTEXT:\n")
	sb.WriteString(formatContext(docs))
	sb.WriteString("\n\n")
	sb.WriteString(citationRules)
	return sb.String()
}

// formatContext renders the top documents as source-tagged, truncated
// passages.
func formatContext(docs []retrieval.Document) string {
	if len(docs) == 0 {
		return "(no source material was retrieved for this question; " +
			"say so if the answer depends on it)"
	}

	if len(docs) > maxContextDocs {
		docs = docs[:maxContextDocs]
	}

	passages := make([]string, 0, len(docs))
	for _, doc := range docs {
		content := doc.Content
		if len(content) > maxDocChars {
			content = content[:maxDocChars]
		}
		source := doc.Source
		if source == "" {
			source = "Unknown"
		}
		passages = append(passages, fmt.Sprintf("[Source: %s]\n%s", source, content))
	}

	return strings.Join(passages, docSeparator)
}
