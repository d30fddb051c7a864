package model

import (
	"time"
)

// Status is the lifecycle state of a prior authorization request
type Status string

const (
	StatusDraft       Status = "draft"
	StatusSubmitted   Status = "submitted"
	StatusPendingInfo Status = "pending_info"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusDenied      Status = "denied"
	StatusExpired     Status = "expired"
)

// IsTerminal reports whether the status admits no further transitions
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusDenied || s == StatusExpired
}

// Valid reports whether the status is one of the known lifecycle states
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusPendingInfo, StatusUnderReview,
		StatusApproved, StatusDenied, StatusExpired:
		return true
	}
	return false
}

// Urgency is the clinical priority tier, fixed at creation. It selects the
// CMS decision window for the request.
type Urgency string

const (
	UrgencyStandard Urgency = "standard"
	UrgencyUrgent   Urgency = "urgent"
	UrgencyEmergent Urgency = "emergent"
)

func (u Urgency) Valid() bool {
	return u == UrgencyStandard || u == UrgencyUrgent || u == UrgencyEmergent
}

// PriorAuth represents a prior authorization request
type PriorAuth struct {
	ID                   string    `json:"id"`
	MemberID             string    `json:"memberId"`
	MemberName           string    `json:"memberName"`
	ProviderID           string    `json:"providerId"`
	ProviderName         string    `json:"providerName"`
	ProcedureCode        string    `json:"procedureCode"`
	ProcedureDescription string    `json:"procedureDescription"`
	DiagnosisCodes       []string  `json:"diagnosisCodes"`
	Urgency              Urgency   `json:"urgency"`
	Status               Status    `json:"status"`
	SubmittedDate        time.Time `json:"submittedDate,omitempty"`
	DeadlineDate         time.Time `json:"deadlineDate,omitempty"`
	ClinicalNotes        string    `json:"clinicalNotes,omitempty"`
	DocumentsRequired    []string  `json:"documentsRequired"`
	DocumentsReceived    []string  `json:"documentsReceived"`
	ReviewerNotes        string    `json:"reviewerNotes,omitempty"`
	DecidedAt            time.Time `json:"decidedAt,omitempty"`
}

// DocumentationComplete reports whether every required document type has been
// received. Extra received types are ignored.
func (p *PriorAuth) DocumentationComplete() bool {
	return len(p.MissingDocuments()) == 0
}

// MissingDocuments returns the required document types not yet received
func (p *PriorAuth) MissingDocuments() []string {
	received := make(map[string]bool, len(p.DocumentsReceived))
	for _, d := range p.DocumentsReceived {
		received[d] = true
	}

	var missing []string
	for _, d := range p.DocumentsRequired {
		if !received[d] {
			missing = append(missing, d)
		}
	}
	return missing
}

// RequiresDocument reports whether the document type is on the required list
func (p *PriorAuth) RequiresDocument(docType string) bool {
	for _, d := range p.DocumentsRequired {
		if d == docType {
			return true
		}
	}
	return false
}

// HasReceivedDocument reports whether the document type was already received
func (p *PriorAuth) HasReceivedDocument(docType string) bool {
	for _, d := range p.DocumentsReceived {
		if d == docType {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the request
func (p *PriorAuth) Clone() *PriorAuth {
	c := *p
	c.DiagnosisCodes = append([]string(nil), p.DiagnosisCodes...)
	c.DocumentsRequired = append([]string(nil), p.DocumentsRequired...)
	c.DocumentsReceived = append([]string(nil), p.DocumentsReceived...)
	return &c
}
