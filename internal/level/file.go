package level

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/floorspawn/internal/model"
	"github.com/udisondev/floorspawn/internal/physics"
	"github.com/udisondev/floorspawn/internal/tilemap"
)

// Layout cell kinds.
const (
	KindEmpty = "empty"
	KindFloor = "floor"
	KindWall  = "wall"  // floor tile with a wall collider on top
	KindSolid = "solid" // wall collider, no floor tile
)

// DefaultLegend maps layout characters to cell kinds.
func DefaultLegend() map[string]string {
	return map[string]string{
		" ": KindEmpty,
		".": KindFloor,
		"#": KindWall,
		"x": KindSolid,
	}
}

type vec2YAML struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type vec3YAML struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// colliderYAML is an extra collider not derived from the layout.
type colliderYAML struct {
	Kind   string   `yaml:"kind"` // box | circle
	Center vec2YAML `yaml:"center"`
	Size   vec2YAML `yaml:"size"`
	Radius float64  `yaml:"radius"`
	Layer  string   `yaml:"layer"`
	Tag    string   `yaml:"tag"`
}

// entityYAML is an object placed in the scene before it starts.
type entityYAML struct {
	Name     string   `yaml:"name"`
	Tag      string   `yaml:"tag"`
	Position vec3YAML `yaml:"position"`
}

// fileYAML is the on-disk level format.
type fileYAML struct {
	Name      string            `yaml:"name"`
	CellSize  *vec2YAML         `yaml:"cell_size"`
	Origin    vec3YAML          `yaml:"origin"`
	Layers    map[string]int    `yaml:"layers"`
	WallLayer string            `yaml:"wall_layer"`
	Legend    map[string]string `yaml:"legend"`
	Rows      []string          `yaml:"rows"`
	Colliders []colliderYAML    `yaml:"colliders"`
	Entities  []entityYAML      `yaml:"entities"`
}

// Parse builds a level from YAML. Layout rows are read top-down: the
// first row has the highest y.
func Parse(data []byte) (*Level, error) {
	var f fileYAML
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing level yaml: %w", err)
	}

	cellSize := model.Vec2{X: 1, Y: 1}
	if f.CellSize != nil {
		cellSize = model.Vec2{X: f.CellSize.X, Y: f.CellSize.Y}
	}
	floor := tilemap.New(cellSize, model.Vec3{X: f.Origin.X, Y: f.Origin.Y, Z: f.Origin.Z})
	lvl := New(f.Name, floor)

	for name, idx := range f.Layers {
		if err := lvl.Layers.Define(name, idx); err != nil {
			return nil, fmt.Errorf("level %q: %w", f.Name, err)
		}
	}

	if f.WallLayer != "" {
		lvl.WallLayer = f.WallLayer
	}
	wallLayer := lvl.Layers.NameToLayer(lvl.WallLayer)
	if wallLayer < 0 {
		return nil, fmt.Errorf("level %q: unknown wall layer %q", f.Name, lvl.WallLayer)
	}

	legend := DefaultLegend()
	for ch, kind := range f.Legend {
		legend[ch] = kind
	}

	if err := applyRows(lvl, f.Rows, legend, wallLayer); err != nil {
		return nil, fmt.Errorf("level %q: %w", f.Name, err)
	}

	for i, c := range f.Colliders {
		col, err := buildCollider(lvl.Layers, c)
		if err != nil {
			return nil, fmt.Errorf("level %q collider %d: %w", f.Name, i, err)
		}
		lvl.Physics.Add(col)
	}

	for i, e := range f.Entities {
		if e.Name == "" {
			return nil, fmt.Errorf("level %q entity %d: name is empty", f.Name, i)
		}
		lvl.Entities = append(lvl.Entities, Entity{
			Name:     e.Name,
			Tag:      e.Tag,
			Position: model.Vec3{X: e.Position.X, Y: e.Position.Y, Z: e.Position.Z},
		})
	}

	return lvl, nil
}

func applyRows(lvl *Level, rows []string, legend map[string]string, wallLayer int) error {
	top := len(rows) - 1
	for i, row := range rows {
		y := top - i
		for x, ch := range []rune(row) {
			cell := tilemap.Cell{X: x, Y: y}
			kind, ok := legend[string(ch)]
			if !ok {
				return fmt.Errorf("row %d col %d: unknown layout character %q", i, x, ch)
			}
			switch kind {
			case KindEmpty:
			case KindFloor:
				lvl.Floor.SetTile(cell, TileFloor)
			case KindWall:
				lvl.Floor.SetTile(cell, TileWall)
				lvl.Physics.Add(physics.BoxFromCell(lvl.Floor, cell, wallLayer))
			case KindSolid:
				lvl.Physics.Add(physics.BoxFromCell(lvl.Floor, cell, wallLayer))
			default:
				return fmt.Errorf("row %d col %d: unknown cell kind %q", i, x, kind)
			}
		}
	}
	return nil
}

func buildCollider(layers *physics.Layers, c colliderYAML) (physics.Collider, error) {
	layerName := c.Layer
	if layerName == "" {
		layerName = DefaultWallLayer
	}
	layer := layers.NameToLayer(layerName)
	if layer < 0 {
		return nil, fmt.Errorf("unknown layer %q", layerName)
	}

	center := model.Vec2{X: c.Center.X, Y: c.Center.Y}
	switch strings.ToLower(c.Kind) {
	case "", "box":
		if c.Size.X <= 0 || c.Size.Y <= 0 {
			return nil, fmt.Errorf("box size must be positive, got (%v, %v)", c.Size.X, c.Size.Y)
		}
		return &physics.BoxCollider{
			Center:     center,
			Size:       model.Vec2{X: c.Size.X, Y: c.Size.Y},
			LayerIndex: layer,
			Tag:        c.Tag,
		}, nil
	case "circle":
		if c.Radius <= 0 {
			return nil, fmt.Errorf("circle radius must be positive, got %v", c.Radius)
		}
		return &physics.CircleCollider{
			Center:     center,
			Radius:     c.Radius,
			LayerIndex: layer,
			Tag:        c.Tag,
		}, nil
	default:
		return nil, fmt.Errorf("unknown collider kind %q", c.Kind)
	}
}

// LoadFile reads and parses a level file. A missing name is taken
// from the file name.
func LoadFile(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading level %s: %w", path, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading level %s: %w", path, err)
	}
	if lvl.Name == "" {
		lvl.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return lvl, nil
}

// FileSource loads "<dir>/<name>.yaml".
type FileSource struct {
	dir string
}

// NewFileSource creates a file-backed level source.
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

// Load implements Source.
func (s *FileSource) Load(_ context.Context, name string) (*Level, error) {
	path := filepath.Join(s.dir, name+".yaml")
	lvl, err := LoadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("level %q in %s: %w", name, s.dir, ErrNotFound)
		}
		return nil, err
	}

	slog.Info("level loaded from file",
		"level", lvl.Name,
		"path", path,
		"tiles", lvl.Floor.TileCount(),
		"colliders", lvl.Physics.Len())
	return lvl, nil
}
