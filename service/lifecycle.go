package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/SamSnead85/ProjectApexHealth-sub002/model"
	"github.com/SamSnead85/ProjectApexHealth-sub002/pkg/sla"
)

var (
	// ErrNotFound is returned when a request ID is unknown to the store
	ErrNotFound = errors.New("prior authorization request not found")

	// ErrDocumentsIncomplete rejects moving to under_review while required
	// documentation is still missing
	ErrDocumentsIncomplete = errors.New("required documentation is incomplete")

	// ErrDocumentsComplete rejects flagging pending_info when the
	// documentation set is already complete
	ErrDocumentsComplete = errors.New("required documentation is already complete")

	// ErrUnknownDocumentType is returned when a received document is not on
	// the request's required list
	ErrUnknownDocumentType = errors.New("document type is not required by this request")

	// ErrTerminalRequest rejects any mutation of a decided or expired request
	ErrTerminalRequest = errors.New("request is in a terminal state")
)

// InvalidTransitionError identifies a status change that is not in the
// transition table
type InvalidTransitionError struct {
	From model.Status
	To   model.Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
}

// transitions is the authoritative table of legal status changes. Terminal
// states have no outgoing edges. The expired edges are taken internally by
// lazy expiry, never by a caller action.
var transitions = map[model.Status][]model.Status{
	model.StatusDraft:       {model.StatusSubmitted},
	model.StatusSubmitted:   {model.StatusUnderReview, model.StatusPendingInfo, model.StatusExpired},
	model.StatusPendingInfo: {model.StatusUnderReview, model.StatusExpired},
	model.StatusUnderReview: {model.StatusPendingInfo, model.StatusApproved, model.StatusDenied, model.StatusExpired},
}

// CanTransition reports whether the (from, to) pair is in the transition table
func CanTransition(from, to model.Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// transition validates and applies a status change in place. Guards run
// before any field is touched, so a rejected transition leaves the request
// unchanged.
//
// Side effects beyond the status field:
//   - entering submitted stamps SubmittedDate and computes DeadlineDate from
//     the urgency tier's decision window
//   - entering approved or denied stamps DecidedAt and attaches reviewer notes
//
// Moving from pending_info back to under_review requires the documentation
// gate to pass; completeness alone never resurrects review, the reviewer
// action calling this is what initiates it.
func transition(req *model.PriorAuth, to model.Status, notes string, now time.Time) error {
	if !CanTransition(req.Status, to) {
		return &InvalidTransitionError{From: req.Status, To: to}
	}

	switch to {
	case model.StatusPendingInfo:
		if req.DocumentationComplete() {
			return ErrDocumentsComplete
		}
	case model.StatusUnderReview:
		if req.Status == model.StatusPendingInfo && !req.DocumentationComplete() {
			return ErrDocumentsIncomplete
		}
	case model.StatusApproved:
		// The portal disables the approve button while documents are
		// missing, but the core rejects it independently
		if !req.DocumentationComplete() {
			return ErrDocumentsIncomplete
		}
	}

	switch to {
	case model.StatusSubmitted:
		req.SubmittedDate = now
		req.DeadlineDate = sla.DeadlineFor(req.Urgency, now)
	case model.StatusApproved, model.StatusDenied:
		req.ReviewerNotes = notes
		req.DecidedAt = now
	}

	req.Status = to
	return nil
}
