package log

import (
	"sync"
	"testing"
)

func TestMonitor_Threshold(t *testing.T) {
	m := NewMonitor(LevelError)

	m.Observe(LevelDebug)
	m.Observe(LevelInfo)
	m.Observe(LevelWarning)
	if m.HasFired() {
		t.Fatal("monitor fired below threshold")
	}

	m.Observe(LevelCritical)
	if !m.HasFired() {
		t.Fatal("monitor did not fire on CRITICAL")
	}
}

func TestMonitor_StaysFired(t *testing.T) {
	m := NewMonitor(LevelError)
	m.Observe(LevelError)

	for i := 0; i < 3; i++ {
		m.Observe(LevelDebug)
		if !m.HasFired() {
			t.Fatalf("monitor reset after observation %d", i)
		}
	}
}

func TestMonitor_LoweredThreshold(t *testing.T) {
	m := NewMonitor(LevelWarning)
	m.Observe(LevelWarning)

	if !m.HasFired() {
		t.Error("monitor with WARNING threshold should fire on WARNING")
	}
	if m.Threshold() != LevelWarning {
		t.Errorf("Threshold() = %v", m.Threshold())
	}
}

func TestMonitor_ConcurrentObservers(t *testing.T) {
	m := NewMonitor(LevelError)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Observe(LevelError)
			_ = m.HasFired()
		}()
	}
	wg.Wait()

	if !m.HasFired() {
		t.Error("monitor should have fired")
	}
}
