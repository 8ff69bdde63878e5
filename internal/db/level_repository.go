package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/floorspawn/internal/level"
	"github.com/udisondev/floorspawn/internal/model"
	"github.com/udisondev/floorspawn/internal/tilemap"
)

// LevelRepository stores level input data: floor tiles, layers and
// static colliders. Spawn results are never written here.
type LevelRepository struct {
	pool *pgxpool.Pool
}

// NewLevelRepository creates a new level repository.
func NewLevelRepository(pool *pgxpool.Pool) *LevelRepository {
	return &LevelRepository{pool: pool}
}

// levelRow is one levels row.
type levelRow struct {
	id        int64
	name      string
	cellSize  model.Vec2
	origin    model.Vec3
	wallLayer string
}

// Create inserts a level with all its tiles, layers, colliders and
// entities in a single transaction. Returns the new level_id.
func (r *LevelRepository) Create(ctx context.Context, lvl *level.Level) (int64, error) {
	colliders := make([][]any, 0, lvl.Physics.Len())
	for _, c := range lvl.Physics.Colliders() {
		row, err := colliderToRow(c)
		if err != nil {
			return 0, fmt.Errorf("level %q: %w", lvl.Name, err)
		}
		colliders = append(colliders, []any{
			row.Kind, row.CenterX, row.CenterY, row.SizeX, row.SizeY, row.Radius, row.LayerIndex, row.Tag,
		})
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction for level %q: %w", lvl.Name, err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("rollback failed", "level", lvl.Name, "error", err)
		}
	}()

	size := lvl.Floor.CellSize()
	origin := lvl.Floor.Origin()

	var levelID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO levels (name, cell_size_x, cell_size_y, origin_x, origin_y, origin_z, wall_layer)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING level_id
	`, lvl.Name, size.X, size.Y, origin.X, origin.Y, origin.Z, lvl.WallLayer).Scan(&levelID)
	if err != nil {
		return 0, fmt.Errorf("creating level %q: %w", lvl.Name, err)
	}

	cells := lvl.Floor.Cells()
	tiles := make([][]any, 0, len(cells))
	for c, id := range cells {
		tiles = append(tiles, []any{levelID, int32(c.X), int32(c.Y), int32(id)})
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"floor_tiles"},
		[]string{"level_id", "cell_x", "cell_y", "tile_id"},
		pgx.CopyFromRows(tiles),
	); err != nil {
		return 0, fmt.Errorf("inserting tiles for level %q: %w", lvl.Name, err)
	}

	names := lvl.Layers.Names()
	layers := make([][]any, 0, len(names))
	for name, idx := range names {
		layers = append(layers, []any{levelID, name, int32(idx)})
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"level_layers"},
		[]string{"level_id", "name", "layer_index"},
		pgx.CopyFromRows(layers),
	); err != nil {
		return 0, fmt.Errorf("inserting layers for level %q: %w", lvl.Name, err)
	}

	for i := range colliders {
		colliders[i] = append([]any{levelID}, colliders[i]...)
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"level_colliders"},
		[]string{"level_id", "kind", "center_x", "center_y", "size_x", "size_y", "radius", "layer_index", "tag"},
		pgx.CopyFromRows(colliders),
	); err != nil {
		return 0, fmt.Errorf("inserting colliders for level %q: %w", lvl.Name, err)
	}

	entities := make([][]any, 0, len(lvl.Entities))
	for _, e := range lvl.Entities {
		row := entityToRow(e)
		entities = append(entities, []any{levelID, row.Name, row.Tag, row.X, row.Y, row.Z})
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"level_entities"},
		[]string{"level_id", "name", "tag", "pos_x", "pos_y", "pos_z"},
		pgx.CopyFromRows(entities),
	); err != nil {
		return 0, fmt.Errorf("inserting entities for level %q: %w", lvl.Name, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit transaction for level %q: %w", lvl.Name, err)
	}

	slog.Info("level stored",
		"level", lvl.Name,
		"levelID", levelID,
		"tiles", len(tiles),
		"colliders", len(colliders),
		"entities", len(entities))

	return levelID, nil
}

// Delete removes a level and (via cascade) all its rows.
// Returns level.ErrNotFound if no such level exists.
func (r *LevelRepository) Delete(ctx context.Context, name string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM levels WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("deleting level %q: %w", name, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deleting level %q: %w", name, level.ErrNotFound)
	}
	return nil
}

// Load implements level.Source. Tiles, layers, colliders and entities are
// fetched concurrently once the level row is known.
func (r *LevelRepository) Load(ctx context.Context, name string) (*level.Level, error) {
	head, err := r.loadHead(ctx, name)
	if err != nil {
		return nil, err
	}

	var (
		tiles     []TileRow
		layers    map[string]int
		colliders []ColliderRow
		entities  []EntityRow
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tiles, err = r.LoadTiles(gctx, head.id)
		return err
	})
	g.Go(func() error {
		var err error
		layers, err = r.LoadLayers(gctx, head.id)
		return err
	})
	g.Go(func() error {
		var err error
		colliders, err = r.LoadColliders(gctx, head.id)
		return err
	})
	g.Go(func() error {
		var err error
		entities, err = r.LoadEntities(gctx, head.id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading level %q: %w", name, err)
	}

	lvl := level.New(head.name, tilemap.New(head.cellSize, head.origin))
	lvl.WallLayer = head.wallLayer
	for _, t := range tiles {
		lvl.Floor.SetTile(tilemap.Cell{X: int(t.CellX), Y: int(t.CellY)}, tilemap.TileID(t.TileID))
	}
	for layerName, idx := range layers {
		if err := lvl.Layers.Define(layerName, idx); err != nil {
			return nil, fmt.Errorf("loading level %q: %w", name, err)
		}
	}
	for _, row := range colliders {
		c, err := row.Collider()
		if err != nil {
			return nil, fmt.Errorf("loading level %q: %w", name, err)
		}
		lvl.Physics.Add(c)
	}
	for _, row := range entities {
		lvl.Entities = append(lvl.Entities, row.Entity())
	}

	slog.Info("level loaded from database",
		"level", lvl.Name,
		"tiles", len(tiles),
		"colliders", len(colliders),
		"entities", len(entities))

	return lvl, nil
}

func (r *LevelRepository) loadHead(ctx context.Context, name string) (levelRow, error) {
	var row levelRow
	err := r.pool.QueryRow(ctx, `
		SELECT level_id, name, cell_size_x, cell_size_y, origin_x, origin_y, origin_z, wall_layer
		FROM levels
		WHERE name = $1
	`, name).Scan(
		&row.id, &row.name,
		&row.cellSize.X, &row.cellSize.Y,
		&row.origin.X, &row.origin.Y, &row.origin.Z,
		&row.wallLayer,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return levelRow{}, fmt.Errorf("level %q: %w", name, level.ErrNotFound)
	}
	if err != nil {
		return levelRow{}, fmt.Errorf("loading level %q: %w", name, err)
	}
	return row, nil
}

// LoadTiles loads all floor tiles of a level.
func (r *LevelRepository) LoadTiles(ctx context.Context, levelID int64) ([]TileRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT cell_x, cell_y, tile_id
		FROM floor_tiles
		WHERE level_id = $1
		ORDER BY cell_y, cell_x
	`, levelID)
	if err != nil {
		return nil, fmt.Errorf("loading tiles for level %d: %w", levelID, err)
	}
	defer rows.Close()

	var out []TileRow
	for rows.Next() {
		var t TileRow
		if err := rows.Scan(&t.CellX, &t.CellY, &t.TileID); err != nil {
			return nil, fmt.Errorf("scanning tile row: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tile rows: %w", err)
	}
	return out, nil
}

// LoadLayers loads the layer name table of a level.
func (r *LevelRepository) LoadLayers(ctx context.Context, levelID int64) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT name, layer_index
		FROM level_layers
		WHERE level_id = $1
	`, levelID)
	if err != nil {
		return nil, fmt.Errorf("loading layers for level %d: %w", levelID, err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var (
			name string
			idx  int32
		)
		if err := rows.Scan(&name, &idx); err != nil {
			return nil, fmt.Errorf("scanning layer row: %w", err)
		}
		out[name] = int(idx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating layer rows: %w", err)
	}
	return out, nil
}

// LoadColliders loads all static colliders of a level in insertion order.
func (r *LevelRepository) LoadColliders(ctx context.Context, levelID int64) ([]ColliderRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT kind, center_x, center_y, size_x, size_y, radius, layer_index, tag
		FROM level_colliders
		WHERE level_id = $1
		ORDER BY collider_id
	`, levelID)
	if err != nil {
		return nil, fmt.Errorf("loading colliders for level %d: %w", levelID, err)
	}
	defer rows.Close()

	var out []ColliderRow
	for rows.Next() {
		var c ColliderRow
		if err := rows.Scan(&c.Kind, &c.CenterX, &c.CenterY, &c.SizeX, &c.SizeY, &c.Radius, &c.LayerIndex, &c.Tag); err != nil {
			return nil, fmt.Errorf("scanning collider row: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating collider rows: %w", err)
	}
	return out, nil
}

// LoadEntities loads the pre-placed entities of a level in insertion order.
func (r *LevelRepository) LoadEntities(ctx context.Context, levelID int64) ([]EntityRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT name, tag, pos_x, pos_y, pos_z
		FROM level_entities
		WHERE level_id = $1
		ORDER BY entity_id
	`, levelID)
	if err != nil {
		return nil, fmt.Errorf("loading entities for level %d: %w", levelID, err)
	}
	defer rows.Close()

	var out []EntityRow
	for rows.Next() {
		var e EntityRow
		if err := rows.Scan(&e.Name, &e.Tag, &e.X, &e.Y, &e.Z); err != nil {
			return nil, fmt.Errorf("scanning entity row: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entity rows: %w", err)
	}
	return out, nil
}
