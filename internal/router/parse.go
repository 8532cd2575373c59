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
	"encoding/json"
	"strings"

	"github.com/leyredelacalzada/azure-search-openai-demo/internal/specialist"
)

// Decision is the routing outcome: which specialist handles the query and
// why. Target is always a registry-valid identifier.
type Decision struct {
	Target specialist.ID `json:"agent"`
	Reason string        `json:"reason"`
}

// routingPayload is the structured answer the orchestrator model is asked
// to produce.
type routingPayload struct {
	Agent  string `json:"agent"`
	Reason string `json:"reason"`
}

// ParseDecision extracts a routing decision from raw model output. It is
// a pure function so parsing is testable without a live model.
//
// Tier 1: locate a JSON block by first/last brace and decode it.
// Tier 2: keyword matching of the full text against each specialist's
// keyword list, in priority order.
// Tier 3: the default specialist with a generic reason.
//
// The returned target is always present in the registry.
func ParseDecision(text string, registry *specialist.Registry) Decision {
	if d, ok := parseJSONDecision(text, registry); ok {
		return d
	}

	if sp, ok := matchKeywords(text, registry); ok {
		return Decision{
			Target: sp.ID,
			Reason: "Matched " + string(sp.ID) + " keywords",
		}
	}

	return Decision{
		Target: registry.Default().ID,
		Reason: "Default routing",
	}
}

// parseJSONDecision attempts the structured-format tier.
func parseJSONDecision(text string, registry *specialist.Registry) (Decision, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return Decision{}, false
	}

	var payload routingPayload
	if err := json.Unmarshal([]byte(text[start:end+1]), &payload); err != nil {
		return Decision{}, false
	}

	sp, ok := registry.Resolve(payload.Agent)
	if !ok {
		return Decision{}, false
	}

	reason := strings.TrimSpace(payload.Reason)
	if reason == "" {
		reason = "Routed by orchestrator"
	}

	return Decision{Target: sp.ID, Reason: reason}, true
}
