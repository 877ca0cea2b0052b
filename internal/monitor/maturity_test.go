package monitor_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearlane/ownership-oracle/internal/logger"
	"github.com/clearlane/ownership-oracle/internal/mocks"
	"github.com/clearlane/ownership-oracle/internal/monitor"
)

// testMonitorMocks contains all the mocks needed for testing the monitor
type testMonitorMocks struct {
	ctrl    *gomock.Controller
	tracker *mocks.MockTracker
	clock   *mocks.MockClock
	monitor monitor.Monitor
}

// setupTestMonitor creates all the mocks and monitor for testing
func setupTestMonitor(t *testing.T, interval time.Duration) *testMonitorMocks {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: true,
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	ctrl := gomock.NewController(t)

	tm := &testMonitorMocks{
		ctrl:    ctrl,
		tracker: mocks.NewMockTracker(ctrl),
		clock:   mocks.NewMockClock(ctrl),
	}
	tm.monitor = monitor.NewMaturityMonitor(
		&monitor.MaturityMonitorConfig{PollInterval: interval},
		tm.tracker,
		tm.clock,
	)
	return tm
}

func tearDownTestMonitor(mocks *testMonitorMocks) {
	mocks.ctrl.Finish()
}

func TestMaturityMonitor_Name(t *testing.T) {
	tm := setupTestMonitor(t, time.Minute)
	defer tearDownTestMonitor(tm)

	assert.Equal(t, "maturity-monitor", tm.monitor.Name())
}

func TestMaturityMonitor_SweepsEveryInterval(t *testing.T) {
	tm := setupTestMonitor(t, time.Minute)
	defer tearDownTestMonitor(tm)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tick := make(chan time.Time)
	tm.clock.EXPECT().After(time.Minute).Return(tick).AnyTimes()

	var sweeps atomic.Int32
	tm.tracker.EXPECT().ReleaseMatured(gomock.Any()).DoAndReturn(
		func(context.Context) (int, error) {
			sweeps.Add(1)
			return 1, nil
		}).AnyTimes()

	done := make(chan error, 1)
	go func() {
		done <- tm.monitor.Start(ctx)
	}()

	// First sweep runs without waiting for a tick; each tick drives one more
	require.Eventually(t, func() bool { return sweeps.Load() >= 1 }, time.Second, time.Millisecond)
	tick <- time.Now()
	require.Eventually(t, func() bool { return sweeps.Load() >= 2 }, time.Second, time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop after context cancellation")
	}
}

func TestMaturityMonitor_SweepFailureDoesNotStopTheLoop(t *testing.T) {
	tm := setupTestMonitor(t, time.Minute)
	defer tearDownTestMonitor(tm)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tick := make(chan time.Time)
	tm.clock.EXPECT().After(time.Minute).Return(tick).AnyTimes()

	var sweeps atomic.Int32
	tm.tracker.EXPECT().ReleaseMatured(gomock.Any()).DoAndReturn(
		func(context.Context) (int, error) {
			sweeps.Add(1)
			return 0, errors.New("event log unavailable")
		}).AnyTimes()

	done := make(chan error, 1)
	go func() {
		done <- tm.monitor.Start(ctx)
	}()

	require.Eventually(t, func() bool { return sweeps.Load() >= 1 }, time.Second, time.Millisecond)
	tick <- time.Now()
	require.Eventually(t, func() bool { return sweeps.Load() >= 2 }, time.Second, time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop after context cancellation")
	}
}

func TestMaturityMonitor_Stop(t *testing.T) {
	tm := setupTestMonitor(t, time.Minute)
	defer tearDownTestMonitor(tm)

	ctx := context.Background()

	tick := make(chan time.Time)
	tm.clock.EXPECT().After(time.Minute).Return(tick).AnyTimes()
	tm.tracker.EXPECT().ReleaseMatured(gomock.Any()).Return(0, nil).AnyTimes()

	done := make(chan error, 1)
	go func() {
		done <- tm.monitor.Start(ctx)
	}()

	// Give the loop a moment to reach its first wait
	time.Sleep(10 * time.Millisecond)

	stopCtx, stopCancel := context.WithTimeout(ctx, time.Second)
	defer stopCancel()
	require.NoError(t, tm.monitor.Stop(stopCtx))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop after stop request")
	}

	// Stopping twice is a no-op
	require.NoError(t, tm.monitor.Stop(stopCtx))
}

func TestMaturityMonitor_StartTwice(t *testing.T) {
	tm := setupTestMonitor(t, time.Minute)
	defer tearDownTestMonitor(tm)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tick := make(chan time.Time)
	tm.clock.EXPECT().After(time.Minute).Return(tick).AnyTimes()
	tm.tracker.EXPECT().ReleaseMatured(gomock.Any()).Return(0, nil).AnyTimes()

	done := make(chan error, 1)
	go func() {
		done <- tm.monitor.Start(ctx)
	}()

	time.Sleep(10 * time.Millisecond)
	require.Error(t, tm.monitor.Start(ctx))

	cancel()
	<-done
}
