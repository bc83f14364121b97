package metrics

import (
	"strings"
	"testing"
	"time"
)

func TestRenderIncludesCounters(t *testing.T) {
	ObserveRecommendation("tot", 2*time.Millisecond)
	ObserveRecommendation("tot", 300*time.Microsecond)
	IncPromptSaved()

	out := Render()
	for _, want := range []string{
		"# TYPE recommendations_total counter",
		`recommendations_by_framework_total{framework="tot"}`,
		"prompts_saved_total",
		`recommendation_duration_ms_bucket{le="+Inf"}`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestHistogramBucketsAreCumulative(t *testing.T) {
	h := newHistogram([]float64{1, 5})
	h.Observe(0.5)
	h.Observe(3)
	h.Observe(10)

	snap := h.Snapshot()
	var cumulative uint64
	var got []uint64
	for i := range snap.buckets {
		cumulative += snap.counts[i]
		got = append(got, cumulative)
	}
	if got[0] != 1 || got[1] != 2 || snap.count != 3 {
		t.Fatalf("unexpected cumulative buckets %v (count %d)", got, snap.count)
	}
}
