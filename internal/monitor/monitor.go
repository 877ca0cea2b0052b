package monitor

import (
	"context"
)

// Monitor defines the interface for monitor implementations
// Monitors are long-running background tasks that perform periodic maintenance
//
//go:generate mockgen -source=monitor.go -destination=../mocks/monitor.go -package=mocks -mock_names=Monitor=MockMonitor
type Monitor interface {
	// Start begins the monitor's main loop
	// This is a blocking call that runs until the context is canceled
	Start(ctx context.Context) error

	// Stop gracefully stops the monitor
	// This should wait for any in-progress work to complete
	Stop(ctx context.Context) error

	// Name returns the monitor's name for logging and identification
	Name() string
}
