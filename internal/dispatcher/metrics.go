package dispatcher

import (
	"sort"
	"sync"
	"time"

	"github.com/dshills/redline/internal/dispatcher/handler"
)

// Metrics collects dispatch statistics.
type Metrics struct {
	mu sync.RWMutex

	toolMetrics map[string]*ToolMetrics

	totalDispatches uint64
	totalErrors     uint64
	totalPanics     uint64
	totalDuration   time.Duration
}

// ToolMetrics holds metrics for a specific tool.
type ToolMetrics struct {
	Name          string
	DispatchCount uint64
	ErrorCount    uint64
	TotalDuration time.Duration
	MinDuration   time.Duration
	MaxDuration   time.Duration
	LastStatus    handler.ResultStatus
	LastDispatch  time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		toolMetrics: make(map[string]*ToolMetrics),
	}
}

// RecordDispatch records a dispatch event.
func (m *Metrics) RecordDispatch(name string, duration time.Duration, status handler.ResultStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalDispatches++
	m.totalDuration += duration

	if status == handler.StatusError {
		m.totalErrors++
	}

	tm := m.toolMetrics[name]
	if tm == nil {
		tm = &ToolMetrics{
			Name:        name,
			MinDuration: duration,
			MaxDuration: duration,
		}
		m.toolMetrics[name] = tm
	}

	tm.DispatchCount++
	tm.TotalDuration += duration
	tm.LastStatus = status
	tm.LastDispatch = time.Now()

	if duration < tm.MinDuration {
		tm.MinDuration = duration
	}
	if duration > tm.MaxDuration {
		tm.MaxDuration = duration
	}

	if status == handler.StatusError {
		tm.ErrorCount++
	}
}

// RecordPanic records a panic recovery.
func (m *Metrics) RecordPanic(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalPanics++

	if tm := m.toolMetrics[name]; tm != nil {
		tm.ErrorCount++
	}
}

// TotalDispatches returns the total number of dispatches.
func (m *Metrics) TotalDispatches() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalDispatches
}

// TotalErrors returns the total number of errors.
func (m *Metrics) TotalErrors() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalErrors
}

// TotalPanics returns the total number of panics recovered.
func (m *Metrics) TotalPanics() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalPanics
}

// AverageDuration returns the average dispatch duration.
func (m *Metrics) AverageDuration() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.totalDispatches == 0 {
		return 0
	}
	return m.totalDuration / time.Duration(m.totalDispatches)
}

// ToolStats returns a copy of the metrics for a specific tool, or nil.
func (m *Metrics) ToolStats(name string) *ToolMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tm := m.toolMetrics[name]
	if tm == nil {
		return nil
	}
	out := *tm
	return &out
}

// PerTool returns per-tool metrics sorted by dispatch count, busiest
// first.
func (m *Metrics) PerTool() []*ToolMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tools := make([]*ToolMetrics, 0, len(m.toolMetrics))
	for _, tm := range m.toolMetrics {
		out := *tm
		tools = append(tools, &out)
	}

	sort.Slice(tools, func(i, j int) bool {
		if tools[i].DispatchCount != tools[j].DispatchCount {
			return tools[i].DispatchCount > tools[j].DispatchCount
		}
		return tools[i].Name < tools[j].Name
	})
	return tools
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.toolMetrics = make(map[string]*ToolMetrics)
	m.totalDispatches = 0
	m.totalErrors = 0
	m.totalPanics = 0
	m.totalDuration = 0
}

// MetricsSnapshot is a point-in-time view of the collector.
type MetricsSnapshot struct {
	TotalDispatches uint64        `json:"total_dispatches"`
	TotalErrors     uint64        `json:"total_errors"`
	TotalPanics     uint64        `json:"total_panics"`
	AverageDuration time.Duration `json:"average_duration_ns"`
	ToolCount       int           `json:"tool_count"`
	Timestamp       time.Time     `json:"timestamp"`
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot := MetricsSnapshot{
		TotalDispatches: m.totalDispatches,
		TotalErrors:     m.totalErrors,
		TotalPanics:     m.totalPanics,
		ToolCount:       len(m.toolMetrics),
		Timestamp:       time.Now(),
	}

	if m.totalDispatches > 0 {
		snapshot.AverageDuration = m.totalDuration / time.Duration(m.totalDispatches)
	}

	return snapshot
}

// AverageToolDuration returns the average duration for this tool.
func (tm *ToolMetrics) AverageToolDuration() time.Duration {
	if tm.DispatchCount == 0 {
		return 0
	}
	return tm.TotalDuration / time.Duration(tm.DispatchCount)
}

// ErrorRate returns the error rate as a percentage.
func (tm *ToolMetrics) ErrorRate() float64 {
	if tm.DispatchCount == 0 {
		return 0
	}
	return float64(tm.ErrorCount) / float64(tm.DispatchCount) * 100
}
