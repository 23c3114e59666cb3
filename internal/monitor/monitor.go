package monitor

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultInterval is the polling interval used when none is set.
const DefaultInterval = 10 * time.Second

// Monitor drives a set of observers, polling each on its own goroutine
// at a fixed interval until stopped.
type Monitor struct {
	interval  time.Duration
	observers []*Observer

	cancel context.CancelFunc
	group  *errgroup.Group
}

// NewMonitor creates a monitor with the given polling interval.
// A non-positive interval falls back to DefaultInterval.
func NewMonitor(interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Monitor{interval: interval}
}

// Add registers an observer. Observers must be added before Start.
func (m *Monitor) Add(o *Observer) {
	m.observers = append(m.observers, o)
}

// Start initializes every observer's baseline and begins polling.
// It returns once all baselines are captured; polling continues in the
// background until Stop.
func (m *Monitor) Start(ctx context.Context) error {
	if m.cancel != nil {
		return errors.New("monitor already started")
	}
	if len(m.observers) == 0 {
		return errors.New("monitor has no observers")
	}

	for _, o := range m.observers {
		if err := o.Init(); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.group, ctx = errgroup.WithContext(ctx)

	for _, o := range m.observers {
		m.group.Go(func() error {
			ticker := time.NewTicker(m.interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					if err := o.Poll(); err != nil {
						return err
					}
				}
			}
		})
	}
	return nil
}

// Stop halts polling and waits for the observer goroutines to finish.
// It returns the first polling error, if any occurred.
func (m *Monitor) Stop() error {
	if m.cancel == nil {
		return errors.New("monitor not started")
	}
	m.cancel()
	err := m.group.Wait()
	m.cancel = nil
	m.group = nil
	return err
}
