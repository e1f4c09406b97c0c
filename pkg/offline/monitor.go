package offline

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Monitor tracks server reachability by probing the health endpoint on an
// interval. Dispatch decisions read the latest published flag; a probe racing
// with an actual connectivity flip is tolerated, the next probe corrects it.
type Monitor struct {
	healthURL string
	interval  time.Duration
	client    *http.Client
	logger    *zap.Logger

	online atomic.Bool

	mu       sync.Mutex
	onOnline []func()

	cancel context.CancelFunc
	done   chan struct{}
}

// NewMonitor creates a reachability monitor for the given health endpoint.
// The monitor starts pessimistic: it reports offline until the first probe succeeds.
func NewMonitor(healthURL string, interval time.Duration, logger *zap.Logger) *Monitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		healthURL: healthURL,
		interval:  interval,
		client:    &http.Client{Timeout: 5 * time.Second},
		logger:    logger,
	}
}

// Online reports the last published reachability state.
func (m *Monitor) Online() bool {
	return m.online.Load()
}

// OnOnline registers a callback fired on every offline-to-online transition.
func (m *Monitor) OnOnline(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onOnline = append(m.onOnline, fn)
}

// Start launches the background probe loop. Call Stop to terminate it.
func (m *Monitor) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.done = make(chan struct{})

	go func() {
		defer close(m.done)
		m.publish(m.probe(ctx))
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.publish(m.probe(ctx))
			}
		}
	}()
}

// Stop terminates the probe loop and waits for it to exit.
func (m *Monitor) Stop() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	<-m.done
}

// CheckNow performs a single probe and publishes the result immediately.
func (m *Monitor) CheckNow(ctx context.Context) bool {
	online := m.probe(ctx)
	m.publish(online)
	return online
}

func (m *Monitor) probe(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.healthURL, nil)
	if err != nil {
		return false
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (m *Monitor) publish(online bool) {
	previous := m.online.Swap(online)
	if previous == online {
		return
	}
	if online {
		m.logger.Info("server reachable, triggering queued-write replay")
		m.mu.Lock()
		callbacks := make([]func(), len(m.onOnline))
		copy(callbacks, m.onOnline)
		m.mu.Unlock()
		for _, fn := range callbacks {
			fn()
		}
		return
	}
	m.logger.Warn("server unreachable, writes will be queued locally")
}
