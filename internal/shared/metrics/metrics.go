package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	analysisOkTotal  atomic.Uint64
	uploadsTotal     atomic.Uint64
	uploadsRejected  atomic.Uint64
	exportsTotal     atomic.Uint64
	writingDegraded  atomic.Uint64
	panicsTotal      atomic.Uint64
	analysisDegraded = newLabeledCounter()

	aiLatency = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncAnalysisOk counts an analysis produced from a parsed AI response.
func IncAnalysisOk() {
	analysisOkTotal.Add(1)
}

// IncAnalysisDegraded counts an analysis that fell back to the mock record.
func IncAnalysisDegraded(reason string) {
	analysisDegraded.Inc(reason)
}

// IncUpload counts accepted uploads.
func IncUpload() {
	uploadsTotal.Add(1)
}

// IncUploadRejected counts uploads rejected by validation.
func IncUploadRejected() {
	uploadsRejected.Add(1)
}

// IncExport counts rendered PDF exports.
func IncExport() {
	exportsTotal.Add(1)
}

// IncWritingDegraded counts enhance/cover-letter calls served from fallback text.
func IncWritingDegraded() {
	writingDegraded.Add(1)
}

// IncPanic counts handler panics caught by the recovery middleware.
func IncPanic() {
	panicsTotal.Add(1)
}

// ObserveAILatencyMs records an upstream AI call duration in milliseconds.
func ObserveAILatencyMs(value float64) {
	if value < 0 {
		value = 0
	}
	aiLatency.Observe(value)
}

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
	writeCounter(&buf, "analysis_ok_total", "Analyses built from a parsed AI response", analysisOkTotal.Load())
	writeLabeledCounter(&buf, "analysis_degraded_total", "Analyses served from the fallback record", "reason", analysisDegraded.Snapshot())
	writeCounter(&buf, "resume_uploads_total", "Accepted resume uploads", uploadsTotal.Load())
	writeCounter(&buf, "resume_uploads_rejected_total", "Rejected resume uploads", uploadsRejected.Load())
	writeCounter(&buf, "resume_exports_total", "Rendered PDF exports", exportsTotal.Load())
	writeCounter(&buf, "writing_degraded_total", "Writing assistant calls served from fallback text", writingDegraded.Load())
	writeCounter(&buf, "http_panics_total", "Handler panics recovered", panicsTotal.Load())
	writeHistogram(&buf, "ai_call_duration_ms", "Upstream AI call duration in milliseconds", aiLatency.Snapshot())
	return buf.String()
}

type labeledCounter struct {
	mu     sync.Mutex
	values map[string]uint64
}

func newLabeledCounter() *labeledCounter {
	return &labeledCounter{values: make(map[string]uint64)}
}

func (l *labeledCounter) Inc(label string) {
	l.mu.Lock()
	l.values[label]++
	l.mu.Unlock()
}

func (l *labeledCounter) Snapshot() map[string]uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]uint64, len(l.values))
	for k, v := range l.values {
		out[k] = v
	}
	return out
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

// Observe records value in the first bucket that holds it; rendering accumulates.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			return
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeLabeledCounter(buf *bytes.Buffer, name, help, label string, values map[string]uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(buf, "%s{%s=%q} %d\n", name, label, k, values[k])
	}
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
