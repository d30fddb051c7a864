package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SamSnead85/ProjectApexHealth-sub002/config"
	"github.com/SamSnead85/ProjectApexHealth-sub002/model"
)

// maxSyncBody bounds how much of the upstream response we are willing to read
const maxSyncBody = 8 << 20

// SyncService overlays server-provided prior authorization requests onto the
// local store. It is best-effort by design: the portal has no error surface
// for this call, so every failure is swallowed and the store keeps its seed
// data as a fully acceptable degraded mode.
type SyncService struct {
	config     *config.SyncConfig
	httpClient *http.Client
	store      *AuthStore
}

func NewSyncService(cfg *config.SyncConfig, store *AuthStore) *SyncService {
	return &SyncService{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		store: store,
	}
}

// Enabled reports whether an upstream base URL is configured. Without one the
// adapter performs no network activity at all.
func (s *SyncService) Enabled() bool {
	return s.config.BaseURL != ""
}

// syncPayload is the upstream response shape
type syncPayload struct {
	Data []*model.PriorAuth `json:"data"`
}

// Sync issues one bounded request against the upstream and, on success with a
// non-empty result list, replaces the store's collection wholesale. It never
// returns an error: network failures, non-2xx responses, malformed bodies and
// empty payloads all leave the store untouched. No retry, no polling; the
// caller invokes this at most once.
func (s *SyncService) Sync(ctx context.Context) {
	if !s.Enabled() {
		return
	}

	url := fmt.Sprintf("%s/api/v1/prior-auth?limit=%d",
		strings.TrimRight(s.config.BaseURL, "/"), s.config.Limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		slog.Debug("sync skipped: bad request", "url", url, "error", err)
		return
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		slog.Debug("sync skipped: upstream unreachable", "url", url, "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Debug("sync skipped: unexpected status", "url", url, "status", resp.StatusCode)
		return
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSyncBody))
	if err != nil {
		slog.Debug("sync skipped: read failed", "error", err)
		return
	}

	var payload syncPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.Debug("sync skipped: malformed payload", "error", err)
		return
	}
	if len(payload.Data) == 0 {
		slog.Debug("sync skipped: empty payload")
		return
	}

	s.store.ReplaceAll(payload.Data)
	slog.Info("prior authorization store synced from upstream", "count", len(payload.Data))
}
