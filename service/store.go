package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/SamSnead85/ProjectApexHealth-sub002/model"
)

// StatusFilterAll passes every request through List unfiltered
const StatusFilterAll = "all"

// AuthStore is the in-memory single source of truth for prior authorization
// requests in the current session. It owns every instance: callers only ever
// see copies, and all mutation goes through the store so the transition table
// and the documentation invariant cannot be bypassed.
//
// Expiry is lazy. Every public method first materializes the expired status
// for any overdue non-terminal request, so status correctness depends on when
// a request is observed, not on a background timer.
type AuthStore struct {
	mu       sync.RWMutex
	requests map[string]*model.PriorAuth
	order    []string // insertion order for List
	now      func() time.Time
}

// NewAuthStore creates a store holding the given seed requests
func NewAuthStore(seed []*model.PriorAuth) *AuthStore {
	s := &AuthStore{
		requests: make(map[string]*model.PriorAuth),
		now:      time.Now,
	}
	for _, req := range seed {
		s.insertLocked(req)
	}
	return s
}

// Add inserts a new request. Used for locally created drafts.
func (s *AuthStore) Add(req *model.PriorAuth) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertLocked(req)
}

// insertLocked normalizes and stores a copy of the request. Must be called
// with the write lock held (or before the store is shared).
func (s *AuthStore) insertLocked(req *model.PriorAuth) {
	c := req.Clone()
	clampReceived(c)
	if _, exists := s.requests[c.ID]; !exists {
		s.order = append(s.order, c.ID)
	}
	s.requests[c.ID] = c
}

// clampReceived drops received document types that are not on the required
// list, so documentsReceived stays a subset of documentsRequired no matter
// what a caller or remote payload hands us
func clampReceived(req *model.PriorAuth) {
	kept := req.DocumentsReceived[:0]
	for _, d := range req.DocumentsReceived {
		if req.RequiresDocument(d) {
			kept = append(kept, d)
		}
	}
	req.DocumentsReceived = kept
}

// List returns copies of all requests in insertion order, or those matching
// the status filter. An empty filter or "all" passes everything through.
// Callers needing chronological order must sort explicitly.
func (s *AuthStore) List(filter string) []*model.PriorAuth {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireDueLocked()

	var result []*model.PriorAuth
	for _, id := range s.order {
		req := s.requests[id]
		if filter == "" || filter == StatusFilterAll || string(req.Status) == filter {
			result = append(result, req.Clone())
		}
	}
	return result
}

// Get returns a copy of the request, or nil if the ID is unknown
func (s *AuthStore) Get(id string) *model.PriorAuth {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireDueLocked()

	req, ok := s.requests[id]
	if !ok {
		return nil
	}
	return req.Clone()
}

// ReplaceAll atomically swaps the entire collection. Used by the sync
// adapter; the overlay replaces wholesale, it never merges partial objects.
// Incoming records are normalized so the documentation invariant holds.
func (s *AuthStore) ReplaceAll(requests []*model.PriorAuth) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = make(map[string]*model.PriorAuth, len(requests))
	s.order = s.order[:0]
	for _, req := range requests {
		if req == nil || req.ID == "" {
			continue
		}
		s.insertLocked(req)
	}
}

// ApplyTransition attempts a status change on the stored request. The stored
// object is mutated only if the state machine accepts the transition;
// otherwise the store is unchanged and the error is surfaced. Returns a copy
// of the request after a successful transition.
func (s *AuthStore) ApplyTransition(id string, to model.Status, notes string) (*model.PriorAuth, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireDueLocked()

	req, ok := s.requests[id]
	if !ok {
		return nil, ErrNotFound
	}

	if err := transition(req, to, notes, s.now()); err != nil {
		return nil, err
	}
	return req.Clone(), nil
}

// MarkDocumentReceived records that a required document type has arrived.
// The received set grows monotonically until decision; receiving the same
// type twice is a no-op. Document types outside the required list are
// rejected, which keeps documentsReceived a subset of documentsRequired.
func (s *AuthStore) MarkDocumentReceived(id, docType string) (*model.PriorAuth, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireDueLocked()

	req, ok := s.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	if req.Status.IsTerminal() {
		return nil, ErrTerminalRequest
	}
	if !req.RequiresDocument(docType) {
		return nil, ErrUnknownDocumentType
	}

	if !req.HasReceivedDocument(docType) {
		req.DocumentsReceived = append(req.DocumentsReceived, docType)
	}
	return req.Clone(), nil
}

// Count returns the number of requests in the store
func (s *AuthStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.requests)
}

// expireDueLocked materializes the expired transition for every non-terminal
// request whose deadline has strictly passed. Drafts have no deadline and
// never expire. Must be called with the write lock held.
func (s *AuthStore) expireDueLocked() {
	now := s.now()
	for _, req := range s.requests {
		if req.Status.IsTerminal() || req.DeadlineDate.IsZero() {
			continue
		}
		if req.DeadlineDate.Before(now) {
			if err := transition(req, model.StatusExpired, "", now); err != nil {
				slog.Warn("could not expire request", "id", req.ID, "status", req.Status, "error", err)
				continue
			}
			slog.Info("request expired past SLA deadline", "id", req.ID, "deadline", req.DeadlineDate)
		}
	}
}
