package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SamSnead85/ProjectApexHealth-sub002/config"
	"github.com/SamSnead85/ProjectApexHealth-sub002/model"
)

func seedStore() *AuthStore {
	return NewAuthStore(SeedRequests(time.Now()))
}

func TestSyncDisabledWithoutBaseURL(t *testing.T) {
	store := seedStore()
	svc := NewSyncService(&config.SyncConfig{Limit: 50, TimeoutSeconds: 1}, store)

	if svc.Enabled() {
		t.Error("Expected sync to be disabled without a base URL")
	}

	before := store.Count()
	svc.Sync(context.Background())
	if store.Count() != before {
		t.Error("Disabled sync must not touch the store")
	}
}

func TestSyncReplacesStoreOnSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/prior-auth" {
			t.Errorf("Expected /api/v1/prior-auth, got %s", r.URL.Path)
		}
		if r.URL.Query().Get("limit") != "25" {
			t.Errorf("Expected limit=25, got %s", r.URL.Query().Get("limit"))
		}

		payload := syncPayload{Data: []*model.PriorAuth{
			{
				ID:                "PA-2024-900001",
				Urgency:           model.UrgencyUrgent,
				Status:            model.StatusSubmitted,
				DocumentsRequired: []string{"Clinical notes"},
				DocumentsReceived: []string{"Clinical notes"},
			},
		}}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
	defer server.Close()

	store := seedStore()
	svc := NewSyncService(&config.SyncConfig{BaseURL: server.URL, Limit: 25, TimeoutSeconds: 2}, store)

	svc.Sync(context.Background())

	if store.Count() != 1 {
		t.Fatalf("Expected store replaced with 1 request, got %d", store.Count())
	}
	if store.Get("PA-2024-900001") == nil {
		t.Error("Expected upstream request in store")
	}
}

func TestSyncUnreachableLeavesSeedData(t *testing.T) {
	store := seedStore()
	before := store.Count()

	// Nothing listens here; the call must return silently
	svc := NewSyncService(&config.SyncConfig{
		BaseURL:        "http://127.0.0.1:1",
		Limit:          50,
		TimeoutSeconds: 1,
	}, store)

	svc.Sync(context.Background())

	if store.Count() != before {
		t.Error("Failed sync must leave the seed data unchanged")
	}
	if store.Get("PA-2024-001287") == nil {
		t.Error("Expected seed request to survive failed sync")
	}
}

func TestSyncNon2xxLeavesStoreUnchanged(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	store := seedStore()
	before := store.Count()

	svc := NewSyncService(&config.SyncConfig{BaseURL: server.URL, Limit: 50, TimeoutSeconds: 2}, store)
	svc.Sync(context.Background())

	if store.Count() != before {
		t.Error("Non-2xx response must leave the store unchanged")
	}
}

func TestSyncEmptyPayloadLeavesStoreUnchanged(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	store := seedStore()
	before := store.Count()

	svc := NewSyncService(&config.SyncConfig{BaseURL: server.URL, Limit: 50, TimeoutSeconds: 2}, store)
	svc.Sync(context.Background())

	if store.Count() != before {
		t.Error("Empty payload must leave the store unchanged")
	}
}

func TestSyncMalformedPayloadLeavesStoreUnchanged(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	store := seedStore()
	before := store.Count()

	svc := NewSyncService(&config.SyncConfig{BaseURL: server.URL, Limit: 50, TimeoutSeconds: 2}, store)
	svc.Sync(context.Background())

	if store.Count() != before {
		t.Error("Malformed payload must leave the store unchanged")
	}
}

func TestSyncNormalizesIncomingDocuments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": [{
			"id": "PA-2024-900002",
			"urgency": "standard",
			"status": "pending_info",
			"documentsRequired": ["Clinical notes"],
			"documentsReceived": ["Clinical notes", "Stray attachment"]
		}]}`))
	}))
	defer server.Close()

	store := seedStore()
	svc := NewSyncService(&config.SyncConfig{BaseURL: server.URL, Limit: 50, TimeoutSeconds: 2}, store)
	svc.Sync(context.Background())

	got := store.Get("PA-2024-900002")
	if got == nil {
		t.Fatal("Expected upstream request in store")
	}
	if len(got.DocumentsReceived) != 1 {
		t.Errorf("Expected received documents clamped to required list, got %v", got.DocumentsReceived)
	}
}

func TestSeedRequests(t *testing.T) {
	now := time.Now()
	seed := SeedRequests(now)

	if len(seed) != 4 {
		t.Fatalf("Expected 4 seed requests, got %d", len(seed))
	}

	for _, req := range seed {
		if req.ID == "" {
			t.Error("Seed request missing ID")
		}
		for _, d := range req.DocumentsReceived {
			if !req.RequiresDocument(d) {
				t.Errorf("Seed %s: received %q not in required set", req.ID, d)
			}
		}
		if !req.Status.Valid() {
			t.Errorf("Seed %s: invalid status %s", req.ID, req.Status)
		}
	}
}
