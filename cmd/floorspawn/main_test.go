package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/floorspawn/internal/config"
	"github.com/udisondev/floorspawn/internal/level"
	"github.com/udisondev/floorspawn/internal/model"
	"github.com/udisondev/floorspawn/internal/spawn"
	"github.com/udisondev/floorspawn/internal/testutil"
	"github.com/udisondev/floorspawn/internal/tilemap"
	"github.com/udisondev/floorspawn/internal/world"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLogLevel(tt.in), "parseLogLevel(%q)", tt.in)
	}
}

func sceneConfig() config.Spawn {
	cfg := config.DefaultSpawn()
	cfg.Seed = 42
	cfg.Render = true
	return cfg
}

func TestRunSceneSpawnsAndRenders(t *testing.T) {
	lvl := testutil.RoomLevel("room", 4, 3, tilemap.Cell{X: 1, Y: 1})
	var out bytes.Buffer

	res, err := runScene(context.Background(), sceneConfig(), lvl, world.New(), &out)
	require.NoError(t, err)

	assert.Equal(t, spawn.OutcomeSpawned, res.Outcome)
	assert.Equal(t, -1.0, res.Position.Z)
	assert.NotEqual(t, tilemap.Cell{X: 1, Y: 1}, lvl.Floor.WorldToCell(res.Position))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 4, "3 grid rows + legend")
	assert.Contains(t, out.String(), "@@")
	assert.Equal(t, "##", lines[1][2:4], "wall cell (1,1) in the middle row")
}

func TestRunSceneSameSeedSamePosition(t *testing.T) {
	cfg := sceneConfig()
	cfg.Render = false

	first, err := runScene(context.Background(), cfg, testutil.RoomLevel("a", 6, 6), world.New(), nil)
	require.NoError(t, err)
	second, err := runScene(context.Background(), cfg, testutil.RoomLevel("a", 6, 6), world.New(), nil)
	require.NoError(t, err)

	assert.Equal(t, first.Position, second.Position)
}

func TestRunSceneNoCandidates(t *testing.T) {
	lvl := testutil.RoomLevel("walled", 2, 1, tilemap.Cell{X: 0, Y: 0}, tilemap.Cell{X: 1, Y: 0})
	var out bytes.Buffer

	res, err := runScene(context.Background(), sceneConfig(), lvl, world.New(), &out)
	require.ErrorIs(t, err, spawn.ErrNoValidPosition)
	assert.Equal(t, spawn.OutcomeNoCandidates, res.Outcome)
	assert.NotContains(t, out.String(), "@@")
}

func TestRunSceneUnknownWallLayer(t *testing.T) {
	cfg := sceneConfig()
	cfg.WallLayer = "Lava"

	_, err := runScene(context.Background(), cfg, level.New("x", tilemap.NewDefault()), world.New(), nil)
	assert.Error(t, err)
}

func TestRunSceneBundledArena(t *testing.T) {
	lvl, err := level.LoadFile("../../levels/arena.yaml")
	require.NoError(t, err)

	cfg := sceneConfig()
	cfg.Render = false
	cfg.DrawDebug = true

	res, err := runScene(context.Background(), cfg, lvl, world.New(), nil)
	require.NoError(t, err)
	assert.True(t, lvl.Floor.HasTile(lvl.Floor.WorldToCell(res.Position)))
}

const quarryLevel = `
name: quarry
layers: {Rock: 3}
wall_layer: Rock
rows:
  - "##"
  - "#."
`

func TestRunSceneUsesLevelWallLayer(t *testing.T) {
	lvl, err := level.Parse([]byte(quarryLevel))
	require.NoError(t, err)

	cfg := sceneConfig()
	cfg.Render = false
	open := tilemap.Cell{X: 1, Y: 0}

	for seed := uint64(1); seed <= 50; seed++ {
		cfg.Seed = seed
		res, err := runScene(context.Background(), cfg, lvl, world.New(), nil)
		require.NoError(t, err)
		require.Equal(t, open, lvl.Floor.WorldToCell(res.Position), "seed %d placed the player inside a Rock wall", seed)
	}
}

func TestRunSceneWallLayerOverride(t *testing.T) {
	lvl, err := level.Parse([]byte(quarryLevel))
	require.NoError(t, err)

	cfg := sceneConfig()
	cfg.Render = false
	cfg.WallLayer = "Default"

	// Nothing sits on Default, so all four painted cells are candidates.
	for seed := uint64(1); seed <= 50; seed++ {
		cfg.Seed = seed
		_, err := runScene(context.Background(), cfg, lvl, world.New(), nil)
		require.NoError(t, err)
	}

	cfg.WallLayer = "Lava"
	_, err = runScene(context.Background(), cfg, lvl, world.New(), nil)
	assert.Error(t, err)
}

func TestRunSceneRelocatesPrePlacedPlayer(t *testing.T) {
	lvl := testutil.RoomLevel("room", 3, 3, tilemap.Cell{X: 1, Y: 1})
	start := model.NewVec3(1.5, 1.5, -1)
	lvl.Entities = []level.Entity{{Name: "Hero", Tag: model.TagPlayer, Position: start}}

	scene := world.New()
	cfg := sceneConfig()
	cfg.Render = false

	res, err := runScene(context.Background(), cfg, lvl, scene, nil)
	require.NoError(t, err)

	assert.Equal(t, spawn.OutcomeRelocated, res.Outcome)
	assert.Equal(t, 1, scene.ObjectCount())
	assert.Equal(t, "Hero", res.Entity.Name())
	assert.NotEqual(t, start, res.Entity.Position(), "player moved off the wall cell")
	assert.Equal(t, res.Position, res.Entity.Position())
}

func TestRunSceneKeepsOtherEntities(t *testing.T) {
	lvl := testutil.RoomLevel("room", 3, 3)
	lvl.Entities = []level.Entity{{Name: "Crate", Tag: "Prop", Position: model.NewVec3(0.5, 0.5, 0)}}

	scene := world.New()
	cfg := sceneConfig()
	cfg.Render = false

	res, err := runScene(context.Background(), cfg, lvl, scene, nil)
	require.NoError(t, err)

	assert.Equal(t, spawn.OutcomeSpawned, res.Outcome)
	assert.Equal(t, 2, scene.ObjectCount())
}

func TestStartSceneNoCandidatesIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sealed.yaml"), []byte("rows: [\"##\"]"), 0o600))

	cfg := sceneConfig()
	cfg.Render = false
	cfg.Level = "sealed"

	res, err := startScene(context.Background(), cfg, level.NewFileSource(dir), nil)
	require.NoError(t, err)
	assert.Equal(t, spawn.OutcomeNoCandidates, res.Outcome)
}

func TestStartSceneMissingLevel(t *testing.T) {
	cfg := sceneConfig()
	cfg.Level = "nowhere"

	_, err := startScene(context.Background(), cfg, level.NewFileSource(t.TempDir()), nil)
	assert.ErrorIs(t, err, level.ErrNotFound)
}

func TestStartSceneBundledQuarry(t *testing.T) {
	cfg := sceneConfig()
	cfg.Render = false
	cfg.Level = "quarry"

	res, err := startScene(context.Background(), cfg, level.NewFileSource("../../levels"), nil)
	require.NoError(t, err)

	assert.Equal(t, spawn.OutcomeRelocated, res.Outcome)
	assert.Equal(t, "Miner", res.Entity.Name())
}

func TestOpenSourceFile(t *testing.T) {
	cfg := config.DefaultSpawn()
	cfg.LevelDir = "../../levels"

	src, closeFn, err := openSource(context.Background(), cfg)
	require.NoError(t, err)
	defer closeFn()

	lvl, err := src.Load(context.Background(), "arena")
	require.NoError(t, err)
	assert.Equal(t, "arena", lvl.Name)
}
