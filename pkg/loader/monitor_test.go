package loader

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fakeChecker struct {
	healthy atomic.Bool
	calls   atomic.Int32
}

func (f *fakeChecker) HealthCheck(context.Context) bool {
	f.calls.Add(1)
	return f.healthy.Load()
}

func TestMonitorCheck(t *testing.T) {
	fc := &fakeChecker{}
	var (
		mu      sync.Mutex
		changes []bool
	)
	m := NewMonitor(fc, WithMonitorLogger(quietLogger()), OnChange(func(h bool) {
		mu.Lock()
		changes = append(changes, h)
		mu.Unlock()
	}))

	if !m.Healthy() {
		t.Error("monitor should start healthy")
	}
	if m.Check(context.Background()) {
		t.Error("Check should report the checker result")
	}
	if m.Healthy() || m.LastChecked().IsZero() {
		t.Error("Check should record the result")
	}

	fc.healthy.Store(true)
	m.Check(context.Background())
	m.Check(context.Background())

	mu.Lock()
	defer mu.Unlock()
	if len(changes) != 2 || changes[0] || !changes[1] {
		t.Errorf("changes = %v, want [false true]", changes)
	}
}

func TestMonitorRun(t *testing.T) {
	fc := &fakeChecker{}
	fc.healthy.Store(true)
	m := NewMonitor(fc, WithInterval(5*time.Millisecond), WithMonitorLogger(quietLogger()))

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	err := m.Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run = %v, want deadline exceeded", err)
	}
	if n := fc.calls.Load(); n < 3 {
		t.Errorf("checks = %d, want periodic checks", n)
	}
}
