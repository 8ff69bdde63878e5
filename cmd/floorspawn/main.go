package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/udisondev/floorspawn/internal/config"
	"github.com/udisondev/floorspawn/internal/db"
	"github.com/udisondev/floorspawn/internal/level"
)

const SpawnConfigPath = "config/floorspawn.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load config FIRST to determine log level
	cfgPath := SpawnConfigPath
	if p := os.Getenv("FLOORSPAWN_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadSpawn(cfgPath)
	if err != nil {
		return fmt.Errorf("loading spawn config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	slog.Info("floorspawn starting",
		"log_level", cfg.LogLevel,
		"level_source", cfg.LevelSource,
		"level", cfg.Level)

	source, closeSource, err := openSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	res, err := startScene(ctx, cfg, source, os.Stdout)
	if err != nil {
		return fmt.Errorf("starting scene: %w", err)
	}

	slog.Info("scene started",
		"outcome", res.Outcome,
		"position", res.Position)
	return nil
}

// openSource returns the level source selected by cfg.LevelSource.
// The returned close func is always non-nil.
func openSource(ctx context.Context, cfg config.Spawn) (level.Source, func(), error) {
	if cfg.LevelSource != config.SourceDB {
		return level.NewFileSource(cfg.LevelDir), func() {}, nil
	}

	database, err := db.New(ctx, cfg.Database.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}
	slog.Info("database connected")

	if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("running migrations: %w", err)
	}

	return db.NewLevelRepository(database.Pool()), database.Close, nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
