//-------------------------------------------------------------------------
//
// HR Assistant Orchestration Service
//
// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.
//
//-------------------------------------------------------------------------

// Package specialist defines the closed set of domain specialists queries
// are routed to, along with their personas and grounding instructions.
package specialist

import "strings"

// ID identifies a specialist. The set of valid IDs is closed; routing
// operates only on these values.
type ID string

// The specialist identifiers.
const (
	Benefits ID = "benefits"
	HRPolicy ID = "hr-policy"
	Perks    ID = "perks"
	Roles    ID = "roles"
)

// Orchestrator is the persona used for the routing step. It is not a
// routing target.
const Orchestrator = "orchestrator"

// Specialist is an immutable persona record: display metadata, the system
// instructions that define its expertise, and the keywords used when
// routing falls back to heuristics.
type Specialist struct {
	ID          ID
	Name        string
	Description string
	Emoji       string
	Color       string

	// Instructions is the persona and behavioral prompt prepended to
	// every grounded generation for this specialist.
	Instructions string

	// Keywords are checked, in registry priority order, when the routing
	// model's output cannot be parsed.
	Keywords []string
}

// Registry is the fixed mapping from specialist identifier to persona.
// It is constructed once at startup and is safe for concurrent reads.
type Registry struct {
	order []ID
	byID  map[ID]*Specialist
}

// NewRegistry builds the registry. Declaration order doubles as the
// routing priority order: when a query's keywords match more than one
// specialist, the first declared wins. This is why "vacation" resolves to
// hr-policy rather than perks.
func NewRegistry() *Registry {
	specialists := []*Specialist{
		{
			ID:           Benefits,
			Name:         "Benefits Specialist",
			Description:  "Health insurance & medical plans expert",
			Emoji:        "🏥",
			Color:        "#10b981",
			Instructions: benefitsInstructions,
			Keywords: []string{
				"insurance", "health", "medical", "deductible", "copay",
				"premium", "coverage", "prescription", "northwind",
				"dental", "vision", "enrollment",
			},
		},
		{
			ID:           HRPolicy,
			Name:         "HR Policy Advisor",
			Description:  "Employee handbook & workplace policies",
			Emoji:        "📋",
			Color:        "#f59e0b",
			Instructions: hrPolicyInstructions,
			Keywords: []string{
				"policy", "handbook", "pto", "vacation", "leave",
				"remote", "conduct", "performance", "review",
				"onboarding", "procedure", "sick",
			},
		},
		{
			ID:           Perks,
			Name:         "Perks & Wellness Coach",
			Description:  "PerksPlus wellness program expert",
			Emoji:        "💪",
			Color:        "#ec4899",
			Instructions: perksInstructions,
			Keywords: []string{
				"perk", "perks", "perksplus", "wellness", "gym",
				"fitness", "reimbursement", "recognition", "wellbeing",
			},
		},
		{
			ID:           Roles,
			Name:         "Career Guide",
			Description:  "Job roles & career development",
			Emoji:        "🚀",
			Color:        "#8b5cf6",
			Instructions: rolesInstructions,
			Keywords: []string{
				"role", "roles", "career", "job", "promotion",
				"skills", "qualification", "title", "position",
			},
		},
	}

	r := &Registry{
		order: make([]ID, 0, len(specialists)),
		byID:  make(map[ID]*Specialist, len(specialists)),
	}
	for _, s := range specialists {
		r.order = append(r.order, s.ID)
		r.byID[s.ID] = s
	}
	return r
}

// Get returns the specialist for an ID.
func (r *Registry) Get(id ID) (*Specialist, bool) {
	s, ok := r.byID[id]
	return s, ok
}

// Resolve maps a raw identifier string to a specialist, case-insensitively.
// Unknown identifiers return false; callers substitute the default.
func (r *Registry) Resolve(raw string) (*Specialist, bool) {
	s, ok := r.byID[ID(strings.ToLower(strings.TrimSpace(raw)))]
	return s, ok
}

// Default returns the specialist substituted when routing is ambiguous,
// fails to parse, or produces an unknown identifier.
func (r *Registry) Default() *Specialist {
	return r.byID[r.order[0]]
}

// Ordered returns the specialists in routing priority order.
func (r *Registry) Ordered() []*Specialist {
	out := make([]*Specialist, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}
