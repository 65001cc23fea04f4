package domain

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestDiff(t *testing.T) {
	active := StatusActive
	completed := StatusCompleted
	owner := UserOwner

	tests := []struct {
		name     string
		old      *State
		new      *State
		wantDiff *StateDiff // nil means we expect no diff
	}{
		{
			name: "Initial Load (Old is Nil)",
			old:  nil,
			new: &State{
				SessionID:   "sess-1",
				CurrentStep: StepStart,
				Status:      StatusActive,
				Messages:    []string{"hello"},
			},
			wantDiff: &StateDiff{
				SessionID:   "sess-1",
				CurrentStep: &[]StepID{StepStart}[0],
				Status:      &active,
				Messages:    &MessagesDelta{Appended: []string{"hello"}},
			},
		},
		{
			name: "No Changes",
			old: &State{
				SessionID:   "sess-1",
				CurrentStep: StepDetectUserType,
				Status:      StatusActive,
				Messages:    []string{"a"},
			},
			new: &State{
				SessionID:   "sess-1",
				CurrentStep: StepDetectUserType,
				Status:      StatusActive,
				Messages:    []string{"a"},
			},
			wantDiff: nil,
		},
		{
			name: "Status Change",
			old: &State{
				SessionID:   "sess-1",
				CurrentStep: StepShowProperties,
				Status:      StatusActive,
			},
			new: &State{
				SessionID:   "sess-1",
				CurrentStep: StepShowProperties,
				Status:      StatusCompleted,
			},
			wantDiff: &StateDiff{
				SessionID: "sess-1",
				Status:    &completed,
			},
		},
		{
			name: "Branch Fields",
			old: &State{
				SessionID:   "sess-1",
				CurrentStep: StepDetectUserType,
			},
			new: &State{
				SessionID:      "sess-1",
				CurrentStep:    StepDetectUserType,
				UserType:       UserOwner,
				LastHumanInput: "owner",
			},
			wantDiff: &StateDiff{
				SessionID: "sess-1",
				UserType:  &owner,
				Fields:    map[string]any{"last_human_input": "owner"},
			},
		},
		{
			name: "Messages Append",
			old: &State{
				SessionID:   "sess-1",
				CurrentStep: StepStart,
				Messages:    []string{"q1"},
			},
			new: &State{
				SessionID:   "sess-1",
				CurrentStep: StepDetectUserType,
				Messages:    []string{"q1", "User: owner"},
			},
			wantDiff: &StateDiff{
				SessionID:   "sess-1",
				CurrentStep: &[]StepID{StepDetectUserType}[0],
				Messages:    &MessagesDelta{Appended: []string{"User: owner"}},
			},
		},
		{
			name: "Messages Rewritten",
			old: &State{
				Messages: []string{"a", "b"},
			},
			new: &State{
				Messages: []string{"a", "c"},
			},
			wantDiff: &StateDiff{
				Messages: &MessagesDelta{Rewritten: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(tt.old, tt.new)
			if tt.wantDiff == nil {
				if got != nil {
					t.Errorf("Diff() = %v, want nil", got)
				}
				return
			}

			if got == nil {
				t.Fatalf("Diff() = nil, want %v", tt.wantDiff)
			}

			if got.SessionID != tt.wantDiff.SessionID {
				t.Errorf("Diff().SessionID = %v, want %v", got.SessionID, tt.wantDiff.SessionID)
			}
			if !reflect.DeepEqual(got.Fields, tt.wantDiff.Fields) {
				t.Errorf("Diff().Fields = %v, want %v", got.Fields, tt.wantDiff.Fields)
			}
			if !reflect.DeepEqual(got.Messages, tt.wantDiff.Messages) {
				t.Errorf("Diff().Messages = %v, want %v", got.Messages, tt.wantDiff.Messages)
			}
			if !equalPtr(got.CurrentStep, tt.wantDiff.CurrentStep) {
				t.Errorf("Diff().CurrentStep = %v, want %v", got.CurrentStep, tt.wantDiff.CurrentStep)
			}
			if !equalPtr(got.Status, tt.wantDiff.Status) {
				t.Errorf("Diff().Status = %v, want %v", got.Status, tt.wantDiff.Status)
			}
			if !equalPtr(got.UserType, tt.wantDiff.UserType) {
				t.Errorf("Diff().UserType = %v, want %v", got.UserType, tt.wantDiff.UserType)
			}
		})
	}
}

func TestDiffJSONSerialization(t *testing.T) {
	t.Run("Empty Fields Omitted", func(t *testing.T) {
		s1 := &State{CurrentStep: StepStart, Messages: []string{"a"}}
		s2 := &State{CurrentStep: StepDetectUserType, Messages: []string{"a"}}
		diff := Diff(s1, s2)

		if diff == nil {
			t.Fatal("Expected diff, got nil")
		}
		bytes, _ := json.Marshal(diff)
		if strings.Contains(string(bytes), `"fields"`) {
			t.Errorf("JSON should not contain 'fields' when empty, got: %s", string(bytes))
		}
	})

	t.Run("Owner Details Serialized", func(t *testing.T) {
		s1 := &State{}
		s2 := &State{OwnerDetails: &OwnerDetails{FullName: "Jane Doe", IsVacant: true}}
		diff := Diff(s1, s2)

		if diff == nil {
			t.Fatal("Expected diff, got nil")
		}
		bytes, _ := json.Marshal(diff)
		if !strings.Contains(string(bytes), `"full_name":"Jane Doe"`) {
			t.Errorf("JSON should contain owner details, got: %s", string(bytes))
		}
	})
}

func TestStateClone(t *testing.T) {
	s := NewState("sess-1")
	s.OwnerDetails = &OwnerDetails{FullName: "Jane Doe"}
	s.Annotations = map[string]string{"k": "v"}
	s.Append("hello")

	c := s.Clone()
	c.OwnerDetails.FullName = "John"
	c.Annotations["k"] = "changed"
	c.Append("world")

	if s.OwnerDetails.FullName != "Jane Doe" {
		t.Errorf("Clone shares owner details with original")
	}
	if s.Annotations["k"] != "v" {
		t.Errorf("Clone shares annotations with original")
	}
	if len(s.Messages) != 1 {
		t.Errorf("Clone shares transcript with original, got %v", s.Messages)
	}
	if s.LastMessage() != "hello" {
		t.Errorf("LastMessage() = %q, want %q", s.LastMessage(), "hello")
	}
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}
