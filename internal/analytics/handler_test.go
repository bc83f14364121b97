package analytics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newAnalyticsRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.March, 31, 12, 0, 0, 0, time.UTC)

	svc := NewService(NewMemoryRepo())
	ctx := context.Background()
	svc.Now = func() time.Time { return now.Add(-10 * 24 * time.Hour) }
	svc.Record(ctx, "u1", WizardCompleted, "tot")
	svc.Now = func() time.Time { return now.Add(-2 * 24 * time.Hour) }
	svc.Record(ctx, "u1", PromptSaved, "tot")
	svc.Record(ctx, "u2", PromptSaved, "cot")
	svc.Now = func() time.Time { return now }

	r := gin.New()
	NewHandler(svc).RegisterAdminRoutes(r.Group("/api/v1/admin"))
	return r
}

func getSummary(t *testing.T, r http.Handler, query string) (*httptest.ResponseRecorder, Summary) {
	t.Helper()
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/admin/analytics"+query, nil))
	var out Summary
	if resp.Code == http.StatusOK {
		if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode summary: %v (%s)", err, resp.Body.String())
		}
	}
	return resp, out
}

func TestSummaryHandlerWindows(t *testing.T) {
	r := newAnalyticsRouter(t)

	resp, sum := getSummary(t, r, "")
	if resp.Code != http.StatusOK || sum.Total != 3 {
		t.Fatalf("default window expected 3 events, got %d: %s", resp.Code, resp.Body.String())
	}

	resp, sum = getSummary(t, r, "?since=7d")
	if resp.Code != http.StatusOK || sum.Total != 2 {
		t.Fatalf("7d window expected 2 events, got %d: %s", resp.Code, resp.Body.String())
	}
	if sum.ByType[PromptSaved] != 2 || sum.ByFramework["cot"] != 1 || sum.ByFramework["tot"] != 1 {
		t.Fatalf("unexpected breakdown %+v", sum)
	}

	resp, sum = getSummary(t, r, "?since=2026-03-30T00:00:00Z")
	if resp.Code != http.StatusOK || sum.Total != 0 {
		t.Fatalf("RFC3339 window expected 0 events, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestSummaryHandlerRejectsBadSince(t *testing.T) {
	r := newAnalyticsRouter(t)
	for _, q := range []string{"?since=yesterday", "?since=0d", "?since=-3d"} {
		resp, _ := getSummary(t, r, q)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("%s expected 400, got %d", q, resp.Code)
		}
		var body struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil || body.Error.Code != "invalid_since" {
			t.Fatalf("%s expected invalid_since, got %s", q, resp.Body.String())
		}
	}
}
