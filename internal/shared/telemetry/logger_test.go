package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestWriteEmitsJSONLines(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	defer restore()

	Info("wizard.recommended", map[string]any{"framework_id": "cot", "confidence": 35})
	Error("prompts.save_failed", map[string]any{"error": errors.New("boom")})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	var first map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if first["level"] != "info" || first["msg"] != "wizard.recommended" || first["framework_id"] != "cot" {
		t.Fatalf("unexpected entry %v", first)
	}
	if _, ok := first["ts"]; !ok {
		t.Fatal("missing ts")
	}
	var second map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if second["level"] != "error" || second["error"] != "boom" {
		t.Fatalf("unexpected entry %v", second)
	}
}

func TestSetOutputRestore(t *testing.T) {
	var a, b bytes.Buffer
	restoreA := SetOutput(&a)
	restoreB := SetOutput(&b)
	Warn("to-b", nil)
	restoreB()
	Warn("to-a", nil)
	restoreA()

	if !strings.Contains(b.String(), "to-b") || strings.Contains(b.String(), "to-a") {
		t.Fatalf("unexpected b output %q", b.String())
	}
	if !strings.Contains(a.String(), "to-a") {
		t.Fatalf("unexpected a output %q", a.String())
	}
}
