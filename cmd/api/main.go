package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/ypamar/newsletter/config"
	"github.com/ypamar/newsletter/internal/app"
	"github.com/ypamar/newsletter/pkg/logger"
)

const (
	defaultShutdownTimeout = 20 * time.Second
	// shutdownGrace is added to the app timeout for closing the database and the mailer
	shutdownGrace = 5 * time.Second
	// forcedShutdownWait bounds the wait once a second signal arrived
	forcedShutdownWait = 2 * time.Second
)

var errForcedShutdown = errors.New("forced shutdown")

// swapped in tests
var (
	osExit       = os.Exit
	signalNotify = signal.Notify
)

// NewAppFunc defines the function signature for creating a new app
type NewAppFunc func(cfg *config.Config, opts ...app.AppOption) app.AppInterface

var newApp NewAppFunc = app.NewApp

// shutdownBudget returns the time in-flight requests get and the deadline of the whole shutdown
func shutdownBudget(cfg *config.Config) (requests, total time.Duration) {
	requests = cfg.Server.ShutdownTimeout
	if requests <= 0 {
		requests = defaultShutdownTimeout
	}
	return requests, requests + shutdownGrace
}

func logStartup(cfg *config.Config, appLogger logger.Logger) {
	mailerMode := "smtp"
	if cfg.SMTP.Host == "" && cfg.IsDevelopment() {
		mailerMode = "console"
	}
	appLogger.WithFields(map[string]interface{}{
		"environment":     cfg.Environment,
		"version":         cfg.Version,
		"uploads_enabled": cfg.Storage.Enabled(),
		"mailer":          mailerMode,
		"session_ttl":     cfg.Editor.SessionTTL.String(),
	}).Info(fmt.Sprintf("Starting email designer API on %s:%d", cfg.Server.Host, cfg.Server.Port))
}

// runServer initializes the app, serves until a signal or a server error and drains
func runServer(cfg *config.Config, appLogger logger.Logger) error {
	appInstance := newApp(cfg, app.WithLogger(appLogger))

	if err := appInstance.Initialize(); err != nil {
		appLogger.WithField("error", err.Error()).Error("Failed to initialize application")
		return err
	}

	stop := make(chan os.Signal, 1)
	signalNotify(stop, os.Interrupt, syscall.SIGTERM)

	serverError := make(chan error, 1)
	go func() {
		appLogger.Info("Server started successfully")
		serverError <- appInstance.Start()
	}()

	select {
	case err := <-serverError:
		if err != nil {
			appLogger.WithField("error", err.Error()).Error("Server error")
		}
		return err
	case sig := <-stop:
		appLogger.WithField("signal", sig.String()).Info("Shutdown signal received, open editor sessions will be dropped")
		return drain(cfg, appInstance, appLogger)
	}
}

// drain shuts the app down gracefully. A second signal cancels the
// graceful shutdown and returns errForcedShutdown.
func drain(cfg *config.Config, appInstance app.AppInterface, appLogger logger.Logger) error {
	requests, total := shutdownBudget(cfg)
	appInstance.SetShutdownTimeout(requests)

	ctx, cancel := context.WithTimeout(context.Background(), total)
	defer cancel()

	appLogger.WithField("active_requests", appInstance.GetActiveRequestCount()).
		WithField("timeout", requests.String()).
		Info("Draining requests, send the signal again to force shutdown")

	force := make(chan os.Signal, 1)
	signalNotify(force, os.Interrupt, syscall.SIGTERM)

	done := make(chan error, 1)
	go func() {
		done <- appInstance.Shutdown(ctx)
	}()

	select {
	case err := <-done:
		if err != nil {
			appLogger.WithField("error", err.Error()).Error("Error during graceful shutdown")
			return err
		}
		appLogger.Info("Server shut down gracefully")
		return nil
	case sig := <-force:
		appLogger.WithField("signal", sig.String()).Warn("Force shutdown signal received")
		cancel()
		select {
		case <-done:
		case <-time.After(forcedShutdownWait):
			appLogger.Warn("Forced shutdown did not complete in time")
		}
		return errForcedShutdown
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.NewLoggerWithLevel(cfg.LogLevel)
	logStartup(cfg, appLogger)

	if err := runServer(cfg, appLogger); err != nil {
		osExit(1)
	}
}
