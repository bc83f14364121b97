package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"promptstudio/internal/shared/config"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	t.Setenv("JWT_SECRET", "bootstrap-secret")
	gin.SetMode(gin.TestMode)
	app, err := Build(config.Config{Env: "dev", FreePromptLimit: 2, CORSAllowOrigin: []string{"http://localhost:5173"}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func call(t *testing.T, h http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

func TestBuildFallsBackToMemoryInDev(t *testing.T) {
	app := newTestApp(t)
	if app.DB != nil {
		t.Fatal("expected no database without DATABASE_URL")
	}
	resp := call(t, app.Router, http.MethodGet, "/api/v1/health", nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("health expected 200, got %d", resp.Code)
	}
}

func TestBuildRequiresDatabaseInProduction(t *testing.T) {
	if _, err := Build(config.Config{Env: "production"}); err == nil {
		t.Fatal("expected error without DATABASE_URL in production")
	}
}

func TestEndToEndStudioFlow(t *testing.T) {
	app := newTestApp(t)
	r := app.Router

	resp := call(t, r, http.MethodPost, "/api/v1/auth/register", gin.H{"email": "ada@example.com", "password": "analytical", "fullName": "Ada"}, nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", resp.Code, resp.Body.String())
	}
	var session struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &session); err != nil || session.Token == "" {
		t.Fatalf("decode session: %v (%s)", err, resp.Body.String())
	}
	authz := map[string]string{"Authorization": "Bearer " + session.Token}

	for qid, opts := range map[string][]string{
		"q1": {"improve-draft"},
		"q2": {"refinement"},
		"q3": {"polish"},
		"q4": {"have-draft"},
	} {
		resp = call(t, r, http.MethodPut, "/api/v1/wizard/session/answers/"+qid, gin.H{"selectedOptionIds": opts}, authz)
		if resp.Code != http.StatusOK {
			t.Fatalf("answer %s: %d %s", qid, resp.Code, resp.Body.String())
		}
	}
	resp = call(t, r, http.MethodPost, "/api/v1/wizard/recommendation", nil, authz)
	var rec struct {
		FrameworkID string          `json:"frameworkId"`
		Prepopulate json.RawMessage `json:"prepopulateData"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &rec); err != nil || rec.FrameworkID != "reflection" {
		t.Fatalf("recommendation: %d %s", resp.Code, resp.Body.String())
	}

	save := gin.H{
		"title":       "Polish my essay",
		"frameworkId": "reflection",
		"fields":      gin.H{"role": "a meticulous editor", "task": "Tighten this essay", "criteria": []string{"Clarity"}},
	}
	for i := 0; i < 2; i++ {
		resp = call(t, r, http.MethodPost, "/api/v1/prompts", save, authz)
		if resp.Code != http.StatusCreated {
			t.Fatalf("save %d: %d %s", i, resp.Code, resp.Body.String())
		}
	}
	resp = call(t, r, http.MethodPost, "/api/v1/prompts", save, authz)
	if resp.Code != http.StatusPaymentRequired {
		t.Fatalf("expected 402 at the free limit, got %d %s", resp.Code, resp.Body.String())
	}

	resp = call(t, r, http.MethodGet, "/api/v1/usage", nil, authz)
	var u struct {
		Plan      string `json:"plan"`
		Used      int    `json:"used"`
		Remaining int    `json:"remaining"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &u); err != nil || u.Plan != "free" || u.Used != 2 || u.Remaining != 0 {
		t.Fatalf("unexpected usage %s", resp.Body.String())
	}

	resp = call(t, r, http.MethodGet, "/api/v1/admin/analytics", nil, authz)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("non-admin expected 403, got %d", resp.Code)
	}

	if _, err := app.UsersService.SetAdmin(context.Background(), session.User.ID, true); err != nil {
		t.Fatalf("SetAdmin: %v", err)
	}
	resp = call(t, r, http.MethodGet, "/api/v1/admin/analytics?since=1d", nil, authz)
	var sum struct {
		ByType map[string]int `json:"byType"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &sum); err != nil || sum.ByType["prompt_saved"] != 2 || sum.ByType["wizard_completed"] != 1 {
		t.Fatalf("unexpected analytics %d %s", resp.Code, resp.Body.String())
	}

	resp = call(t, r, http.MethodGet, "/metrics", nil, nil)
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "prompts_saved_total") {
		t.Fatalf("unexpected metrics %d %s", resp.Code, resp.Body.String())
	}
}

func TestGuestNeedsIdentity(t *testing.T) {
	app := newTestApp(t)
	resp := call(t, app.Router, http.MethodGet, "/api/v1/frameworks", nil, nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", resp.Code)
	}
	resp = call(t, app.Router, http.MethodGet, "/api/v1/frameworks", nil, map[string]string{"X-Guest-Id": "g"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for guest, got %d", resp.Code)
	}
}
