package loader

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultHealthInterval is the polling period of a [Monitor].
const DefaultHealthInterval = 30 * time.Second

// HealthChecker is implemented by [api.Client].
type HealthChecker interface {
	HealthCheck(ctx context.Context) bool
}

// Monitor tracks API health by polling a [HealthChecker]. The API is
// assumed healthy until the first check says otherwise.
type Monitor struct {
	checker  HealthChecker
	interval time.Duration
	logger   *log.Logger
	onChange func(healthy bool)

	mu          sync.RWMutex
	healthy     bool
	lastChecked time.Time
}

// MonitorOption configures a [Monitor].
type MonitorOption func(*Monitor)

// WithInterval sets the polling period.
func WithInterval(d time.Duration) MonitorOption {
	return func(m *Monitor) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithMonitorLogger sets the logger.
func WithMonitorLogger(l *log.Logger) MonitorOption {
	return func(m *Monitor) {
		if l != nil {
			m.logger = l
		}
	}
}

// OnChange registers fn to be called whenever the health status flips.
func OnChange(fn func(healthy bool)) MonitorOption {
	return func(m *Monitor) { m.onChange = fn }
}

// NewMonitor creates a monitor for checker.
func NewMonitor(checker HealthChecker, opts ...MonitorOption) *Monitor {
	m := &Monitor{
		checker:  checker,
		interval: DefaultHealthInterval,
		logger:   log.Default(),
		healthy:  true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Healthy returns the result of the latest check.
func (m *Monitor) Healthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.healthy
}

// LastChecked returns when the latest check completed.
func (m *Monitor) LastChecked() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastChecked
}

// Check runs a health check now and records the result.
func (m *Monitor) Check(ctx context.Context) bool {
	healthy := m.checker.HealthCheck(ctx)

	m.mu.Lock()
	changed := healthy != m.healthy
	m.healthy = healthy
	m.lastChecked = time.Now()
	m.mu.Unlock()

	if changed {
		if healthy {
			m.logger.Info("API is reachable again")
		} else {
			m.logger.Warn("API health check failed")
		}
		if m.onChange != nil {
			m.onChange(healthy)
		}
	}
	return healthy
}

// Run checks immediately and then once per interval until ctx is done.
// It returns ctx.Err().
func (m *Monitor) Run(ctx context.Context) error {
	m.Check(ctx)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}
