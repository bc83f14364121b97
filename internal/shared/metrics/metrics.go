package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	recommendationsTotal atomic.Uint64
	promptsGenerated     atomic.Uint64
	promptsSaved         atomic.Uint64
	promptsExported      atomic.Uint64
	limitReachedTotal    atomic.Uint64

	recommendationDuration = newHistogram([]float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10})

	frameworkMu   sync.Mutex
	frameworkWins = map[string]uint64{}
)

// ObserveRecommendation counts a computed recommendation, its winning
// framework and how long scoring took.
func ObserveRecommendation(frameworkID string, elapsed time.Duration) {
	recommendationsTotal.Add(1)
	recommendationDuration.Observe(float64(elapsed.Microseconds()) / 1000.0)
	frameworkMu.Lock()
	frameworkWins[frameworkID]++
	frameworkMu.Unlock()
}

// IncPromptGenerated counts a rendered prompt.
func IncPromptGenerated() { promptsGenerated.Add(1) }

// IncPromptSaved counts a persisted prompt.
func IncPromptSaved() { promptsSaved.Add(1) }

// IncPromptExported counts an export download.
func IncPromptExported() { promptsExported.Add(1) }

// IncLimitReached counts saves rejected by the free-tier cap.
func IncLimitReached() { limitReachedTotal.Add(1) }

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "recommendations_total", "Wizard recommendations computed", recommendationsTotal.Load())
	writeFrameworkWins(&buf)
	writeCounter(&buf, "prompts_generated_total", "Prompts rendered", promptsGenerated.Load())
	writeCounter(&buf, "prompts_saved_total", "Prompts saved", promptsSaved.Load())
	writeCounter(&buf, "prompts_exported_total", "Prompts exported", promptsExported.Load())
	writeCounter(&buf, "prompt_limit_reached_total", "Saves rejected by the free-tier limit", limitReachedTotal.Load())
	writeHistogram(&buf, "recommendation_duration_ms", "Recommendation scoring duration in milliseconds", recommendationDuration.Snapshot())
	return buf.String()
}

func writeFrameworkWins(buf *bytes.Buffer) {
	frameworkMu.Lock()
	ids := make([]string, 0, len(frameworkWins))
	for id := range frameworkWins {
		ids = append(ids, id)
	}
	counts := make(map[string]uint64, len(frameworkWins))
	for k, v := range frameworkWins {
		counts[k] = v
	}
	frameworkMu.Unlock()
	sort.Strings(ids)

	fmt.Fprintf(buf, "# HELP recommendations_by_framework_total Recommendations won per framework\n")
	fmt.Fprintf(buf, "# TYPE recommendations_by_framework_total counter\n")
	for _, id := range ids {
		fmt.Fprintf(buf, "recommendations_by_framework_total{framework=%q} %d\n", id, counts[id])
	}
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
