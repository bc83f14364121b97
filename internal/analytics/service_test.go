package analytics

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"promptstudio/internal/shared/telemetry"
)

func TestRecordAndSummary(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	repo := NewMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	svc.Now = func() time.Time { return now.Add(-48 * time.Hour) }
	svc.Record(ctx, "u1", PromptGenerated, "cot")

	svc.Now = func() time.Time { return now }
	svc.Record(ctx, "u1", WizardCompleted, "tot")
	svc.Record(ctx, "u2", WizardCompleted, "tot")
	svc.Record(ctx, "u2", PromptSaved, "cot")
	svc.Record(ctx, "u2", PromptExported, "")

	sum, err := svc.Summary(ctx, now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.Total != 4 {
		t.Fatalf("expected 4 events in window, got %d", sum.Total)
	}
	if sum.ByType[WizardCompleted] != 2 || sum.ByType[PromptGenerated] != 0 {
		t.Fatalf("unexpected by-type %v", sum.ByType)
	}
	if sum.ByFramework["tot"] != 2 || sum.ByFramework["cot"] != 1 {
		t.Fatalf("unexpected by-framework %v", sum.ByFramework)
	}
}

type failingRepo struct{ MemoryRepo }

func (f *failingRepo) Insert(context.Context, Event) error { return errors.New("db down") }

func TestRecordIsBestEffort(t *testing.T) {
	var buf bytes.Buffer
	restore := telemetry.SetOutput(&buf)
	defer restore()

	svc := NewService(&failingRepo{})
	svc.Record(context.Background(), "u1", PromptSaved, "cot")

	if !strings.Contains(buf.String(), "analytics.record_failed") {
		t.Fatalf("expected failure to be logged, got %q", buf.String())
	}
}

func TestPGRepoSummaryGroups(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	since := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY event_type, framework_id")).
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows([]string{"event_type", "framework_id", "count"}).
			AddRow("wizard_completed", "tot", 3).
			AddRow("prompt_saved", "tot", 1).
			AddRow("prompt_exported", "", 2))

	sum, err := (&PGRepo{DB: db}).Summary(context.Background(), since)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.Total != 6 || sum.ByFramework["tot"] != 4 || sum.ByType[PromptExported] != 2 {
		t.Fatalf("unexpected summary %+v", sum)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestParseSince(t *testing.T) {
	now := time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC)
	if got, ok := parseSince("7d", now); !ok || !got.Equal(now.Add(-7*24*time.Hour)) {
		t.Fatalf("unexpected 7d result %v %v", got, ok)
	}
	if got, ok := parseSince("", now); !ok || !got.Equal(now.Add(-defaultWindow)) {
		t.Fatalf("unexpected default %v", got)
	}
	if _, ok := parseSince("yesterday", now); ok {
		t.Fatal("expected parse failure")
	}
	if _, ok := parseSince("-3d", now); ok {
		t.Fatal("expected negative window to fail")
	}
}
