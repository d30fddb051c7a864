package model

import (
	"testing"
)

func TestStatusIsTerminal(t *testing.T) {
	terminal := []Status{StatusApproved, StatusDenied, StatusExpired}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Errorf("Expected %s to be terminal", s)
		}
	}

	open := []Status{StatusDraft, StatusSubmitted, StatusPendingInfo, StatusUnderReview}
	for _, s := range open {
		if s.IsTerminal() {
			t.Errorf("Expected %s to be non-terminal", s)
		}
	}
}

func TestStatusValid(t *testing.T) {
	if !StatusPendingInfo.Valid() {
		t.Error("Expected pending_info to be a valid status")
	}
	if Status("cancelled").Valid() {
		t.Error("Expected 'cancelled' to be invalid")
	}
}

func TestUrgencyValid(t *testing.T) {
	for _, u := range []Urgency{UrgencyStandard, UrgencyUrgent, UrgencyEmergent} {
		if !u.Valid() {
			t.Errorf("Expected %s to be valid", u)
		}
	}
	if Urgency("routine").Valid() {
		t.Error("Expected 'routine' to be invalid")
	}
}

func TestDocumentationComplete(t *testing.T) {
	req := &PriorAuth{
		DocumentsRequired: []string{"Clinical notes", "X-ray results", "PT records"},
		DocumentsReceived: []string{"Clinical notes", "X-ray results"},
	}

	if req.DocumentationComplete() {
		t.Error("Expected incomplete documentation")
	}

	missing := req.MissingDocuments()
	if len(missing) != 1 || missing[0] != "PT records" {
		t.Errorf("Expected missing [PT records], got %v", missing)
	}

	req.DocumentsReceived = append(req.DocumentsReceived, "PT records")
	if !req.DocumentationComplete() {
		t.Error("Expected complete documentation")
	}
	if len(req.MissingDocuments()) != 0 {
		t.Errorf("Expected no missing documents, got %v", req.MissingDocuments())
	}
}

func TestDocumentationCompleteIgnoresExtras(t *testing.T) {
	// The predicate tolerates received types outside the required list
	req := &PriorAuth{
		DocumentsRequired: []string{"Clinical notes"},
		DocumentsReceived: []string{"Clinical notes", "Lab results"},
	}

	if !req.DocumentationComplete() {
		t.Error("Expected complete documentation despite extra received type")
	}
}

func TestDocumentationCompleteEmptyRequired(t *testing.T) {
	req := &PriorAuth{}
	if !req.DocumentationComplete() {
		t.Error("Expected a request with no required documents to be complete")
	}
}

func TestRequiresDocument(t *testing.T) {
	req := &PriorAuth{DocumentsRequired: []string{"Clinical notes"}}

	if !req.RequiresDocument("Clinical notes") {
		t.Error("Expected Clinical notes to be required")
	}
	if req.RequiresDocument("Lab results") {
		t.Error("Expected Lab results to not be required")
	}
}

func TestClone(t *testing.T) {
	req := &PriorAuth{
		ID:                "PA-2024-000001",
		DiagnosisCodes:    []string{"M54.5"},
		DocumentsRequired: []string{"Clinical notes"},
		DocumentsReceived: []string{"Clinical notes"},
	}

	c := req.Clone()
	c.DiagnosisCodes[0] = "changed"
	c.DocumentsReceived[0] = "changed"

	if req.DiagnosisCodes[0] != "M54.5" {
		t.Error("Clone should not share diagnosis codes with the original")
	}
	if req.DocumentsReceived[0] != "Clinical notes" {
		t.Error("Clone should not share document slices with the original")
	}
}
