package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/roadlink/conflate/internal/cache"
	"github.com/roadlink/conflate/internal/text"
	"github.com/roadlink/conflate/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testCtx(t *testing.T) *types.Context {
	t.Helper()
	tbl, err := text.LoadAbbreviationTable("en")
	if err != nil {
		t.Fatalf("LoadAbbreviationTable: %v", err)
	}
	return types.NewContext("US", "", tbl)
}

type stubCache struct {
	stats cache.Stats
	err   error
}

func (s *stubCache) Get(context.Context, cache.Key) (cache.Decision, bool, error) { return cache.Decision{}, false, nil }
func (s *stubCache) Set(context.Context, cache.Key, cache.Decision) error         { return nil }
func (s *stubCache) Delete(context.Context, cache.Key) error                     { return nil }
func (s *stubCache) Clear(context.Context) error                                 { return nil }
func (s *stubCache) Stats(context.Context) (cache.Stats, error)                  { return s.stats, s.err }
func (s *stubCache) Close() error                                                { return nil }

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthReturnsHealthy(t *testing.T) {
	srv := NewServer(testCtx(t), nil, nil, zap.NewNop())
	rec := doJSON(t, srv.Router(), http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("status = %q, want healthy", resp.Status)
	}
}

func TestConflateMatchesIdenticalNames(t *testing.T) {
	srv := NewServer(testCtx(t), nil, nil, zap.NewNop())
	rec := doJSON(t, srv.Router(), http.MethodPost, "/v1/conflate", ConflateRequest{
		Master: ConflateSide{ID: 1, Name: "Main Street"},
		New:    ConflateSide{ID: 100, Name: "Main St"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp ConflateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Matched || resp.MasterID != 1 {
		t.Errorf("resp = %+v, want matched to master 1", resp)
	}
}

func TestConflateRejectsMissingFields(t *testing.T) {
	srv := NewServer(testCtx(t), nil, nil, zap.NewNop())
	rec := doJSON(t, srv.Router(), http.MethodPost, "/v1/conflate", map[string]any{"master": map[string]any{"id": 1}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestStatsReportsZeroWithoutCache(t *testing.T) {
	srv := NewServer(testCtx(t), nil, nil, zap.NewNop())
	rec := doJSON(t, srv.Router(), http.MethodGet, "/v1/stats", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp StatsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.TotalItems != 0 || resp.CacheHitRate != 0 {
		t.Errorf("resp = %+v, want zero values", resp)
	}
}

func TestSearchRouteOmittedWithoutIndex(t *testing.T) {
	srv := NewServer(testCtx(t), nil, nil, zap.NewNop())
	rec := doJSON(t, srv.Router(), http.MethodGet, "/v1/search?q=main", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 when no search index is configured", rec.Code)
	}
}

func TestStatsReflectsCache(t *testing.T) {
	srv := NewServer(testCtx(t), &stubCache{stats: cache.Stats{HitRate: 0.5, TotalHits: 5, TotalMiss: 5, TotalItems: 10}}, nil, zap.NewNop())
	rec := doJSON(t, srv.Router(), http.MethodGet, "/v1/stats", nil)
	var resp StatsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.TotalItems != 10 || resp.CacheHitRate != 0.5 {
		t.Errorf("resp = %+v, want totals from stub cache", resp)
	}
}
