package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/clearlane/ownership-oracle/internal/adapter"
	"github.com/clearlane/ownership-oracle/internal/config"
	"github.com/clearlane/ownership-oracle/internal/eventlog"
	"github.com/clearlane/ownership-oracle/internal/logger"
	"github.com/clearlane/ownership-oracle/internal/monitor"
	"github.com/clearlane/ownership-oracle/internal/oracle"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadMaturityMonitorConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "maturity-monitor",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting maturity monitor")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("dsn", cfg.Database.DSN()))
	}

	// Configure connection pool
	if err := eventlog.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database")

	// Initialize the tracker over the event log
	log := eventlog.NewPGLog(db)
	clock := adapter.NewClock()
	tracker := oracle.NewTracker(log, clock)

	// Create the monitor
	m := monitor.NewMaturityMonitor(&monitor.MaturityMonitorConfig{
		PollInterval: cfg.Monitor.PollInterval,
	}, tracker, clock)

	// Start the monitor in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := m.Start(ctx); err != nil {
			errCh <- err
		}
	}()
	logger.InfoCtx(ctx, "Maturity monitor started",
		zap.String("name", m.Name()),
		zap.Duration("poll_interval", cfg.Monitor.PollInterval),
	)

	// Wait for interrupt signal to gracefully shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "monitor"))
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := m.Stop(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err, zap.String("message", "Failed to stop monitor"))
	}
	cancel()

	logger.Info("Maturity monitor stopped")
}
