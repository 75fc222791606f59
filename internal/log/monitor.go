package log

import "sync/atomic"

// Monitor records whether any diagnostic at or above its threshold has been
// observed. Once fired it stays fired for the rest of the process.
// Observe is safe for concurrent use.
type Monitor struct {
	fired     atomic.Bool
	threshold Level
}

// NewMonitor creates a monitor that fires on messages at or above threshold.
func NewMonitor(threshold Level) *Monitor {
	return &Monitor{threshold: threshold}
}

// Observe evaluates a message severity against the threshold.
func (m *Monitor) Observe(level Level) {
	if m == nil {
		return
	}
	if level >= m.threshold {
		m.fired.Store(true)
	}
}

// HasFired reports whether a qualifying message has been observed.
func (m *Monitor) HasFired() bool {
	if m == nil {
		return false
	}
	return m.fired.Load()
}

// Threshold returns the severity that fires the monitor.
func (m *Monitor) Threshold() Level {
	return m.threshold
}
