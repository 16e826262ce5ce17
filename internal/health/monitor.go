package health

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
)

const DefaultPollInterval = 10 * time.Second

type heartRateSource interface {
	LatestHeartRate(ctx context.Context) (int, error)
}

// HeartRateMonitor polls the latest heart rate for display while a session runs.
// It only ever holds a display value and never touches session state.
type HeartRateMonitor struct {
	source   heartRateSource
	interval time.Duration

	current atomic.Int64

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewHeartRateMonitor(source heartRateSource, interval time.Duration) *HeartRateMonitor {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &HeartRateMonitor{
		source:   source,
		interval: interval,
	}
}

// Start begins polling. Starting a running monitor is a no-op.
func (m *HeartRateMonitor) Start(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.done = make(chan struct{})
	go m.loop(ctx, m.done)
}

// Stop ends polling, waits for the poller to exit and clears the displayed value.
func (m *HeartRateMonitor) Stop() {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.cancel, m.done = nil, nil
	m.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	m.current.Store(0)
}

// Current is the last polled heart rate, 0 when unknown.
func (m *HeartRateMonitor) Current() int {
	return int(m.current.Load())
}

func (m *HeartRateMonitor) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.poll(ctx)
		}
	}
}

func (m *HeartRateMonitor) poll(ctx context.Context) {
	hr, err := m.source.LatestHeartRate(ctx)
	if err != nil {
		if ctx.Err() == nil {
			log.Debugf("heart rate monitor: %s", err)
		}
		return
	}
	m.current.Store(int64(hr))
}
