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
	"github.com/clearlane/ownership-oracle/internal/api/middleware"
	"github.com/clearlane/ownership-oracle/internal/api/server"
	"github.com/clearlane/ownership-oracle/internal/config"
	"github.com/clearlane/ownership-oracle/internal/eventlog"
	"github.com/clearlane/ownership-oracle/internal/evidence"
	"github.com/clearlane/ownership-oracle/internal/logger"
	"github.com/clearlane/ownership-oracle/internal/oracle"
	"github.com/clearlane/ownership-oracle/internal/valuation"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
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
			"service": "api-server",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Ownership Oracle API")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("dsn", cfg.Database.DSN()))
	}

	// Configure connection pool
	if err := eventlog.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	if err := eventlog.Migrate(db); err != nil {
		logger.FatalCtx(ctx, "Failed to migrate database", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize the event log and adapters
	log := eventlog.NewPGLog(db)
	clock := adapter.NewClock()

	// Build the valuation feed. The static fallback keeps projections working
	// when no pricing service is configured or reachable.
	fallback := valuation.NewStaticFeed(cfg.Valuation.FallbackValue, cfg.Valuation.Currency)
	var feed valuation.Feed = fallback
	if cfg.Valuation.BaseURL != "" {
		httpClient := adapter.NewHTTPClient(cfg.Valuation.HTTPTimeout)
		feed = valuation.NewFallbackFeed(valuation.NewHTTPFeed(httpClient, cfg.Valuation.BaseURL), fallback)
		logger.InfoCtx(ctx, "Using HTTP valuation feed", zap.String("base_url", cfg.Valuation.BaseURL))
	} else {
		logger.WarnCtx(ctx, "Valuation feed not configured, using static fallback value",
			zap.Float64("fallback_value", cfg.Valuation.FallbackValue))
	}

	// Initialize the oracle services
	signer := evidence.NewHMACSigner(cfg.Evidence.NodeID, cfg.Evidence.SigningSecret, clock)
	timeOracle := oracle.NewTimeOracle(log, clock)
	tracker := oracle.NewTracker(log, clock)
	ownershipOracle := oracle.NewOracle(log, timeOracle, tracker, feed, clock)
	resolver := oracle.NewResolver(log, timeOracle, signer, clock, oracle.ResolverConfig{
		ResolutionCost:   cfg.Dispute.ResolutionCost,
		EstimatedSavings: cfg.Dispute.EstimatedSavings,
		VerifyPoolSize:   cfg.Dispute.VerifyPoolSize,
	})

	// Create server config
	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}

	// Create and start server
	srv := server.New(serverConfig, ownershipOracle, timeOracle, tracker, resolver)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("API server stopped")
}
