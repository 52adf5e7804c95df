package mqtt

import (
	"context"
	"sync"

	"github.com/kilianp07/smartbin/core/alert"
)

// MockPublisher records alerts in memory for tests that run without a broker.
type MockPublisher struct {
	mu     sync.Mutex
	Alerts []alert.PickupAlert
	Err    error
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

// PublishPickupAlert records the alert or returns the configured error.
func (m *MockPublisher) PublishPickupAlert(_ context.Context, a alert.PickupAlert) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Alerts = append(m.Alerts, a)
	return nil
}

// Published returns a copy of the recorded alerts.
func (m *MockPublisher) Published() []alert.PickupAlert {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]alert.PickupAlert, len(m.Alerts))
	copy(out, m.Alerts)
	return out
}
