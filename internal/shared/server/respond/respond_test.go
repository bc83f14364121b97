package respond

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"promptstudio/internal/shared/telemetry"
)

func TestErrorEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	restore := telemetry.SetOutput(&buf)
	defer restore()

	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		Error(c, http.StatusBadRequest, "missing_required_fields", "Missing fields", gin.H{"fields": []string{"role"}})
	})
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/x", nil))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	var body ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Code != "missing_required_fields" || body.Error.Message != "Missing fields" || body.Error.Details == nil {
		t.Fatalf("unexpected body %+v", body)
	}
	if !strings.Contains(buf.String(), `"level":"warn"`) {
		t.Fatalf("expected warn-level http.error log, got %s", buf.String())
	}
}

func TestInternalHidesError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	restore := telemetry.SetOutput(&buf)
	defer restore()

	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		Internal(c, "prompts.save_failed", errors.New("connection refused"))
	})
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/x", nil))

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	if strings.Contains(resp.Body.String(), "connection refused") {
		t.Fatal("internal error text leaked to client")
	}
	if !strings.Contains(buf.String(), "connection refused") {
		t.Fatal("expected error text in logs")
	}
}
