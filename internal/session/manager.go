package session

import (
	"sync"

	"github.com/2beens/gymcoach/internal/telemetry/metrics"
)

// Manager owns the single active session of the service.
type Manager struct {
	mu             sync.Mutex
	active         *Controller
	metricsManager *metrics.Manager
}

func NewManager(metricsManager *metrics.Manager) *Manager {
	return &Manager{
		metricsManager: metricsManager,
	}
}

// Start replaces any active session; in-memory progress of the old one is dropped.
func (m *Manager) Start(c *Controller) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = c
	m.metricsManager.GaugeActiveSession.Set(1)
}

// Do runs fn with the active session while holding the lock.
func (m *Manager) Do(fn func(c *Controller) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return ErrNoActiveSession
	}
	return fn(m.active)
}

func (m *Manager) Active() (*Controller, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active, m.active != nil
}

// End drops the active session if it is still c.
func (m *Manager) End(c *Controller) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == c {
		m.active = nil
		m.metricsManager.GaugeActiveSession.Set(0)
	}
}
