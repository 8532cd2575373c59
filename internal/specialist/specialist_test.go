//-------------------------------------------------------------------------
//
// HR Assistant Orchestration Service
//
// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.
//
//-------------------------------------------------------------------------

package specialist

import (
	"strings"
	"testing"
)

func TestRegistryContainsAllSpecialists(t *testing.T) {
	r := NewRegistry()

	for _, id := range []ID{Benefits, HRPolicy, Perks, Roles} {
		s, ok := r.Get(id)
		if !ok {
			t.Errorf("registry missing %s", id)
			continue
		}
		if s.ID != id {
			t.Errorf("specialist %s has mismatched ID %s", id, s.ID)
		}
		if s.Instructions == "" {
			t.Errorf("specialist %s has no instructions", id)
		}
		if len(s.Keywords) == 0 {
			t.Errorf("specialist %s has no keywords", id)
		}
	}
}

func TestRegistryDefault(t *testing.T) {
	r := NewRegistry()

	if got := r.Default().ID; got != Benefits {
		t.Errorf("default specialist = %s, want %s", got, Benefits)
	}
}

func TestRegistryOrdered(t *testing.T) {
	r := NewRegistry()

	want := []ID{Benefits, HRPolicy, Perks, Roles}
	got := r.Ordered()
	if len(got) != len(want) {
		t.Fatalf("Ordered returned %d specialists, want %d", len(got), len(want))
	}
	for i, s := range got {
		if s.ID != want[i] {
			t.Errorf("Ordered[%d] = %s, want %s", i, s.ID, want[i])
		}
	}
}

func TestRegistryResolve(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		raw    string
		wantID ID
		wantOK bool
	}{
		{"benefits", Benefits, true},
		{"BENEFITS", Benefits, true},
		{"  hr-policy  ", HRPolicy, true},
		{"Perks", Perks, true},
		{"roles", Roles, true},
		{"orchestrator", "", false},
		{"finance", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		s, ok := r.Resolve(tt.raw)
		if ok != tt.wantOK {
			t.Errorf("Resolve(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			continue
		}
		if ok && s.ID != tt.wantID {
			t.Errorf("Resolve(%q) = %s, want %s", tt.raw, s.ID, tt.wantID)
		}
	}
}

func TestOrchestratorInstructionsListTargets(t *testing.T) {
	for _, id := range []ID{Benefits, HRPolicy, Perks, Roles} {
		if !strings.Contains(OrchestratorInstructions, string(id)) {
			t.Errorf("routing instructions do not mention %s", id)
		}
	}
}
