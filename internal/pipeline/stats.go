package pipeline

import (
	"slices"
	"sync"
	"time"
)

type sample struct {
	at      time.Time
	elapsed time.Duration
	rows    int
}

// StatsSnapshot aggregates the analyses finished within the window.
type StatsSnapshot struct {
	Analyses int     `json:"analyses"`
	Rows     int     `json:"rows"`
	MinMs    float64 `json:"min_ms"`
	MaxMs    float64 `json:"max_ms"`
	AvgMs    float64 `json:"avg_ms"`
	P50Ms    float64 `json:"p50_ms"`
	P95Ms    float64 `json:"p95_ms"`
	P99Ms    float64 `json:"p99_ms"`
}

// AnalysisStats keeps a rolling window of analysis latencies.
type AnalysisStats struct {
	mu      sync.Mutex
	samples []sample
	window  time.Duration
}

func NewAnalysisStats(window time.Duration) *AnalysisStats {
	if window <= 0 {
		window = time.Hour
	}
	return &AnalysisStats{
		samples: make([]sample, 0, 256),
		window:  window,
	}
}

// Record adds one finished analysis.
func (s *AnalysisStats) Record(elapsed time.Duration, rows int) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	s.samples = append(s.samples, sample{at: now, elapsed: max(elapsed, 0), rows: rows})
}

func (s *AnalysisStats) Snapshot() StatsSnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	if len(s.samples) == 0 {
		return StatsSnapshot{}
	}

	ms := make([]float64, 0, len(s.samples))
	var sum float64
	rows := 0
	for _, sm := range s.samples {
		v := float64(sm.elapsed) / float64(time.Millisecond)
		ms = append(ms, v)
		sum += v
		rows += sm.rows
	}
	slices.Sort(ms)

	return StatsSnapshot{
		Analyses: len(ms),
		Rows:     rows,
		MinMs:    ms[0],
		MaxMs:    ms[len(ms)-1],
		AvgMs:    sum / float64(len(ms)),
		P50Ms:    percentile(ms, 50),
		P95Ms:    percentile(ms, 95),
		P99Ms:    percentile(ms, 99),
	}
}

func (s *AnalysisStats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.window)
	s.samples = slices.DeleteFunc(s.samples, func(sm sample) bool {
		return sm.at.Before(cutoff)
	})
}

// percentile interpolates linearly between the closest ranks of sorted.
func percentile(sorted []float64, pct float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if pct <= 0 {
		return sorted[0]
	}
	if pct >= 100 {
		return sorted[len(sorted)-1]
	}

	index := float64(len(sorted)-1) * pct / 100.0
	lower := int(index)
	if lower+1 >= len(sorted) {
		return sorted[lower]
	}
	weight := index - float64(lower)
	return sorted[lower] + (sorted[lower+1]-sorted[lower])*weight
}
