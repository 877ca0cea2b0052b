package monitor

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/clearlane/ownership-oracle/internal/adapter"
	"github.com/clearlane/ownership-oracle/internal/logger"
	"github.com/clearlane/ownership-oracle/internal/oracle"
)

const DEFAULT_POLL_INTERVAL = time.Minute

// MaturityMonitorConfig holds configuration for the maturity monitor
type MaturityMonitorConfig struct {
	PollInterval time.Duration // Time between release sweeps
}

// maturityMonitor implements the Monitor interface, releasing matured
// auto-release pledges on a fixed interval
type maturityMonitor struct {
	config    *MaturityMonitorConfig
	tracker   oracle.Tracker
	clock     adapter.Clock
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewMaturityMonitor creates a new maturity monitor
func NewMaturityMonitor(config *MaturityMonitorConfig, tracker oracle.Tracker, clock adapter.Clock) Monitor {
	if config.PollInterval <= 0 {
		config.PollInterval = DEFAULT_POLL_INTERVAL
	}
	return &maturityMonitor{
		config:    config,
		tracker:   tracker,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Name returns the monitor's name
func (m *maturityMonitor) Name() string {
	return "maturity-monitor"
}

// Start begins the monitor's main loop. One sweep runs immediately, then
// every poll interval until the context is canceled or stop is requested.
func (m *maturityMonitor) Start(ctx context.Context) error {
	if !m.running.CompareAndSwap(false, true) {
		return fmt.Errorf("monitor already running")
	}
	defer func() {
		m.running.Store(false)
		close(m.stoppedCh) // Signal that we've stopped
	}()

	logger.InfoCtx(ctx, "Starting maturity monitor",
		zap.Duration("poll_interval", m.config.PollInterval),
	)

	for {
		m.sweep(ctx)

		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Maturity monitor stopping due to context cancellation", zap.Error(ctx.Err()))
			return nil
		case <-m.stopChan:
			logger.InfoCtx(ctx, "Maturity monitor stop requested")
			return nil
		case <-m.clock.After(m.config.PollInterval):
		}
	}
}

// sweep runs a single release cycle. Failures are logged and retried on the
// next interval.
func (m *maturityMonitor) sweep(ctx context.Context) {
	released, err := m.tracker.ReleaseMatured(ctx)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			logger.ErrorCtx(ctx, err, zap.String("message", "maturity sweep failed"))
		}
		return
	}
	if released > 0 {
		logger.InfoCtx(ctx, "released matured encumbrances", zap.Int("count", released))
	}
}

// Stop gracefully stops the monitor with timeout support
func (m *maturityMonitor) Stop(ctx context.Context) error {
	if !m.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping maturity monitor")

	// Signal stop to the main loop
	close(m.stopChan)

	// Wait for main loop to exit, but respect context cancellation
	select {
	case <-m.stoppedCh:
		logger.InfoCtx(ctx, "Maturity monitor stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Maturity monitor stop interrupted by context timeout")
		return ctx.Err()
	}
}
