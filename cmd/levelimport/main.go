// Command levelimport stores YAML level files in PostgreSQL so that
// floorspawn can load them with level_source: db.
//
// Usage:
//
//	go run ./cmd/levelimport -replace levels/arena.yaml
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/udisondev/floorspawn/internal/config"
	"github.com/udisondev/floorspawn/internal/db"
	"github.com/udisondev/floorspawn/internal/level"
)

func main() {
	cfgPath := flag.String("config", "config/floorspawn.yaml", "spawn config with the database block")
	replace := flag.Bool("replace", false, "delete an existing level with the same name first")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: levelimport [-config path] [-replace] level.yaml...")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *cfgPath, *replace, flag.Args()); err != nil {
		slog.Error("import failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfgPath string, replace bool, paths []string) error {
	if p := os.Getenv("FLOORSPAWN_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadSpawn(cfgPath)
	if err != nil {
		return fmt.Errorf("loading spawn config: %w", err)
	}

	// Parse everything before touching the database.
	levels := make([]*level.Level, 0, len(paths))
	for _, p := range paths {
		lvl, err := level.LoadFile(p)
		if err != nil {
			return err
		}
		levels = append(levels, lvl)
	}

	if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	database, err := db.New(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()

	return importLevels(ctx, db.NewLevelRepository(database.Pool()), levels, replace)
}

// levelStore is the subset of db.LevelRepository used by the importer.
type levelStore interface {
	Create(ctx context.Context, lvl *level.Level) (int64, error)
	Delete(ctx context.Context, name string) error
}

func importLevels(ctx context.Context, store levelStore, levels []*level.Level, replace bool) error {
	for _, lvl := range levels {
		if replace {
			if err := store.Delete(ctx, lvl.Name); err != nil && !errors.Is(err, level.ErrNotFound) {
				return fmt.Errorf("deleting level %q: %w", lvl.Name, err)
			}
		}

		id, err := store.Create(ctx, lvl)
		if err != nil {
			return fmt.Errorf("importing level %q: %w", lvl.Name, err)
		}

		slog.Info("level imported",
			"name", lvl.Name,
			"id", id,
			"tiles", lvl.Floor.TileCount(),
			"colliders", lvl.Physics.Len())
	}
	return nil
}
