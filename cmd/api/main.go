package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"helloapi/internal/config"
	"helloapi/internal/database"
	"helloapi/internal/health"
	"helloapi/internal/logging"
	"helloapi/internal/otel"
	"helloapi/internal/server"
	"helloapi/internal/storage"
)

// @title Hello API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := cfg.Location()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, cfg.AppName, loc)
	if err != nil {
		logging.Error(loc, "tracing_init_failed", err)
		os.Exit(1)
	}

	var checkers []health.Checker

	// Dependencies are optional and only probed by /health.
	var db *sql.DB
	if cfg.Database.Enabled() {
		db, err = database.Open(ctx, cfg.Database, cfg.AppName)
		if err != nil {
			logging.Error(loc, "database_init_failed", err)
			os.Exit(1)
		}
		checkers = append(checkers, database.NewPinger(db))
	}

	if cfg.MinIO.Enabled() {
		probe, err := storage.NewMinIO(cfg.MinIO)
		if err != nil {
			logging.Error(loc, "storage_init_failed", err)
			os.Exit(1)
		}
		checkers = append(checkers, probe)
	}

	app, err := server.New(cfg, server.Deps{Checkers: checkers})
	if err != nil {
		logging.Error(loc, "server_init_failed", err)
		os.Exit(1)
	}

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		logging.Event(loc, map[string]any{
			"msg":    "server_started",
			"addr":   addr,
			"checks": len(checkers),
		})
		errCh <- app.Listen(addr)
	}()

	exitCode := 0
	select {
	case err := <-errCh:
		if err != nil {
			logging.Error(loc, "server_failed", err)
			exitCode = 1
		}
	case <-ctx.Done():
		logging.Event(loc, map[string]any{"msg": "server_stopping"})
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logging.Error(loc, "server_shutdown_failed", err)
		exitCode = 1
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logging.Error(loc, "tracing_shutdown_failed", err)
	}
	if db != nil {
		_ = db.Close()
	}

	logging.Event(loc, map[string]any{"msg": "server_stopped"})
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
