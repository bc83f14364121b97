package prompts

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"promptstudio/internal/shared/auth"
	"promptstudio/internal/shared/server/middleware"
)

func newTestRouter(t *testing.T, freeLimit int) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", "prompts-handler-secret")
	gin.SetMode(gin.TestMode)
	f := newFixture(t, freeLimit)
	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(middleware.Auth("dev"))
	NewHandler(f.svc).RegisterRoutes(api)
	return r
}

func bearer(t *testing.T, userID string) map[string]string {
	t.Helper()
	token, err := auth.SignJWT(auth.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: userID}})
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}
	return map[string]string{"Authorization": "Bearer " + token}
}

func do(r http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

type errorBody struct {
	Error struct {
		Code    string         `json:"code"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v (%s)", err, resp.Body.String())
	}
	return body
}

func TestGenerateAsGuest(t *testing.T) {
	r := newTestRouter(t, 10)
	guest := map[string]string{"X-Guest-Id": "g1"}

	resp := do(r, http.MethodPost, "/api/v1/prompts/generate", gin.H{
		"frameworkId": "cot",
		"fields":      gin.H{"role": "tutor", "problem": "2+2"},
	}, guest)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = do(r, http.MethodPost, "/api/v1/prompts/generate", gin.H{"frameworkId": "nope"}, guest)
	if resp.Code != http.StatusBadRequest || decodeError(t, resp).Error.Code != "invalid_framework_type" {
		t.Fatalf("expected invalid_framework_type, got %d %s", resp.Code, resp.Body.String())
	}

	resp = do(r, http.MethodPost, "/api/v1/prompts/generate", gin.H{"frameworkId": "cot", "fields": gin.H{"role": "tutor"}}, guest)
	body := decodeError(t, resp)
	if resp.Code != http.StatusBadRequest || body.Error.Code != "missing_required_fields" {
		t.Fatalf("expected missing_required_fields, got %d %s", resp.Code, resp.Body.String())
	}
	if fields, _ := body.Error.Details["fields"].([]any); len(fields) != 1 || fields[0] != "problem" {
		t.Fatalf("unexpected details %v", body.Error.Details)
	}
}

func TestGuestCannotSaveOrList(t *testing.T) {
	r := newTestRouter(t, 10)
	guest := map[string]string{"X-Guest-Id": "g1"}

	resp := do(r, http.MethodPost, "/api/v1/prompts", gin.H{"frameworkId": "cot", "fields": gin.H{"role": "r", "problem": "p"}}, guest)
	if resp.Code != http.StatusUnauthorized || decodeError(t, resp).Error.Code != "login_required" {
		t.Fatalf("expected login_required, got %d %s", resp.Code, resp.Body.String())
	}
	resp = do(r, http.MethodGet, "/api/v1/prompts", nil, guest)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for guest list, got %d", resp.Code)
	}
}

func TestSaveLimitAndLibraryFlow(t *testing.T) {
	r := newTestRouter(t, 1)
	free := bearer(t, "free")
	payload := gin.H{"title": "Math", "frameworkId": "cot", "fields": gin.H{"role": "r", "problem": "p"}}

	resp := do(r, http.MethodPost, "/api/v1/prompts", payload, free)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var saved Prompt
	if err := json.Unmarshal(resp.Body.Bytes(), &saved); err != nil {
		t.Fatalf("decode prompt: %v", err)
	}

	resp = do(r, http.MethodPost, "/api/v1/prompts", payload, free)
	if resp.Code != http.StatusPaymentRequired || decodeError(t, resp).Error.Code != "limit_reached" {
		t.Fatalf("expected 402 limit_reached, got %d %s", resp.Code, resp.Body.String())
	}

	resp = do(r, http.MethodGet, "/api/v1/prompts?limit=5", nil, free)
	var list listResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &list); err != nil || len(list.Items) != 1 || list.Limit != 5 {
		t.Fatalf("unexpected list %d %s", resp.Code, resp.Body.String())
	}

	resp = do(r, http.MethodGet, "/api/v1/prompts?limit=-1", nil, free)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad pagination, got %d", resp.Code)
	}

	resp = do(r, http.MethodGet, "/api/v1/prompts/"+saved.ID+"/export?format=md", nil, free)
	if resp.Code != http.StatusForbidden || decodeError(t, resp).Error.Code != "premium_required" {
		t.Fatalf("expected 403 premium_required, got %d %s", resp.Code, resp.Body.String())
	}

	resp = do(r, http.MethodDelete, "/api/v1/prompts/"+saved.ID, nil, free)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
	resp = do(r, http.MethodGet, "/api/v1/prompts/"+saved.ID, nil, free)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.Code)
	}
}

func TestPremiumExportAttachment(t *testing.T) {
	r := newTestRouter(t, 10)
	premium := bearer(t, "premium")

	resp := do(r, http.MethodPost, "/api/v1/prompts", gin.H{"title": "My Prompt", "frameworkId": "cot", "fields": gin.H{"role": "r", "problem": "p"}}, premium)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var saved Prompt
	_ = json.Unmarshal(resp.Body.Bytes(), &saved)

	resp = do(r, http.MethodGet, "/api/v1/prompts/"+saved.ID+"/export?format=md", nil, premium)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if cd := resp.Header().Get("Content-Disposition"); cd != `attachment; filename="My-Prompt.md"` {
		t.Fatalf("unexpected Content-Disposition %q", cd)
	}

	resp = do(r, http.MethodGet, "/api/v1/prompts/"+saved.ID+"/export?format=docx", nil, premium)
	if resp.Code != http.StatusBadRequest || decodeError(t, resp).Error.Code != "invalid_format" {
		t.Fatalf("expected invalid_format, got %d %s", resp.Code, resp.Body.String())
	}
}
