package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/udisondev/floorspawn/internal/config"
	"github.com/udisondev/floorspawn/internal/debugdraw"
	"github.com/udisondev/floorspawn/internal/level"
	"github.com/udisondev/floorspawn/internal/model"
	"github.com/udisondev/floorspawn/internal/spawn"
	"github.com/udisondev/floorspawn/internal/tilemap"
	"github.com/udisondev/floorspawn/internal/world"
)

// newRand returns the placement RNG. Seed 0 draws a fresh seed.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// startScene loads the configured level and runs one scene start on a
// fresh world. An empty candidate set is a logged outcome, not a failure.
func startScene(ctx context.Context, cfg config.Spawn, source level.Source, out io.Writer) (spawn.Result, error) {
	lvl, err := source.Load(ctx, cfg.Level)
	if err != nil {
		return spawn.Result{}, fmt.Errorf("loading level %q: %w", cfg.Level, err)
	}

	res, err := runScene(ctx, cfg, lvl, world.New(), out)
	if errors.Is(err, spawn.ErrNoValidPosition) {
		return res, nil
	}
	return res, err
}

// populate adds the level's pre-placed entities to the scene.
func populate(scene *world.World, lvl *level.Level) error {
	for _, e := range lvl.Entities {
		if _, err := scene.Instantiate(model.NewTemplate(e.Name, e.Tag), e.Position, model.Identity()); err != nil {
			return fmt.Errorf("placing entity %q: %w", e.Name, err)
		}
	}
	return nil
}

// runScene wires a locator and controller over lvl, runs one scene start
// in scene and, when cfg.Render is set, prints the grid to out.
func runScene(ctx context.Context, cfg config.Spawn, lvl *level.Level, scene *world.World, out io.Writer) (spawn.Result, error) {
	mask, err := lvl.ObstacleMask(cfg.WallLayer)
	if err != nil {
		return spawn.Result{}, fmt.Errorf("resolving wall layer: %w", err)
	}

	if err := populate(scene, lvl); err != nil {
		return spawn.Result{}, err
	}

	opts := []spawn.Option{
		spawn.WithZ(cfg.ZPosition),
		spawn.WithProbeRadius(cfg.ProbeRadius),
		spawn.WithObstacleMask(mask),
	}

	gizmo := debugdraw.NewGizmo(lvl.Floor)
	gizmo.UpdateBounds()

	var sink debugdraw.Sink
	if cfg.DrawDebug {
		sink = debugdraw.NewSlogSink(nil)
		opts = append(opts, spawn.WithObserver(spawn.ObserverFunc(debugdraw.RayObserver(sink))))
	}

	locator, err := spawn.NewLocator(lvl.Floor, lvl.Physics, newRand(cfg.Seed), opts...)
	if err != nil {
		return spawn.Result{}, fmt.Errorf("creating locator: %w", err)
	}

	ctrl, err := spawn.NewController(locator, scene, scene, model.NewTemplate(cfg.PlayerName, model.TagPlayer))
	if err != nil {
		return spawn.Result{}, fmt.Errorf("creating controller: %w", err)
	}

	res, err := ctrl.OnSceneStart(ctx)
	if sink != nil {
		gizmo.Draw(sink)
	}
	if cfg.Render && out != nil && ctx.Err() == nil {
		renderScene(out, lvl, locator, res)
	}
	return res, err
}

func renderScene(out io.Writer, lvl *level.Level, locator *spawn.Locator, res spawn.Result) {
	snap := debugdraw.Snapshot{
		Floor:      lvl.Floor,
		Candidates: locator.Candidates(),
		Blocked: func(c tilemap.Cell) bool {
			return lvl.Floor.HasTile(c) && !locator.IsClear(locator.CellCenter(c))
		},
	}
	if res.Outcome.Placed() {
		pos := res.Position
		snap.Player = &pos
	}
	fmt.Fprintln(out, debugdraw.NewRenderer(out).Render(snap))
}
