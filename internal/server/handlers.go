//-------------------------------------------------------------------------
//
// HR Assistant Orchestration Service
//
// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.
//
//-------------------------------------------------------------------------

package server

import (
	"encoding/json"
	"net/http"

	"github.com/leyredelacalzada/azure-search-openai-demo/internal/config"
	"github.com/leyredelacalzada/azure-search-openai-demo/internal/pipeline"
)

// HealthResponse is the response for the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

// AgentInfo is the display metadata for one specialist.
type AgentInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Emoji       string `json:"emoji"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// ConfigResponse is the response for the configuration endpoint.
type ConfigResponse struct {
	KnowledgeBase  string                          `json:"knowledge_base"`
	RetrievalMode  string                          `json:"retrieval_mode"`
	SearchEndpoint string                          `json:"search_endpoint"`
	KBVariants     map[string]config.KnowledgeBase `json:"kb_variants"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// handleHealth handles GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, HealthResponse{Status: "healthy"})
}

// handleAgents handles GET /api/agents: the specialist catalog for UI
// rendering.
func (s *Server) handleAgents(w http.ResponseWriter, r *http.Request) {
	agents := make(map[string]AgentInfo)
	for _, sp := range s.registry.Ordered() {
		agents[string(sp.ID)] = AgentInfo{
			ID:          string(sp.ID),
			Name:        sp.Name,
			Emoji:       sp.Emoji,
			Color:       sp.Color,
			Description: sp.Description,
		}
	}
	s.respondJSON(w, http.StatusOK, agents)
}

// handleConfig handles GET /api/config.
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, ConfigResponse{
		KnowledgeBase:  config.KnowledgeBaseFor(config.DefaultKnowledgeBaseVariant).Name,
		RetrievalMode:  s.config.Retrieval.Mode,
		SearchEndpoint: s.config.Azure.SearchEndpoint,
		KBVariants:     config.KnowledgeBases(),
	})
}

// handleChat handles POST /api/chat: one pipeline run streamed back as
// newline-delimited JSON events.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req pipeline.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "INVALID_REQUEST",
			"invalid request body: "+err.Error())
		return
	}

	if req.Query == "" {
		s.respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "query is required")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		s.respondError(w, http.StatusInternalServerError, "STREAMING_ERROR",
			"streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	events := s.pipeline.Run(r.Context(), req)

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			s.sendEvent(w, flusher, ev)

		case <-r.Context().Done():
			// Client disconnected; the pipeline observes the same
			// context and stops issuing inference requests.
			s.logger.Debug("client disconnected during streaming")
			return
		}
	}
}

// sendEvent writes one newline-delimited JSON event.
func (s *Server) sendEvent(w http.ResponseWriter, flusher http.Flusher, ev pipeline.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		s.logger.Error("failed to marshal event", "error", err)
		return
	}

	if _, err := w.Write(append(data, '\n')); err != nil {
		s.logger.Error("failed to write event", "error", err)
		return
	}
	flusher.Flush()
}

// respondJSON sends a JSON response.
func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// respondError sends an error response.
func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	s.respondJSON(w, status, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
