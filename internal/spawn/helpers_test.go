package spawn

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/floorspawn/internal/model"
	"github.com/udisondev/floorspawn/internal/physics"
	"github.com/udisondev/floorspawn/internal/tilemap"
)

// fixedIndex always returns idx (clamped to n-1) and records the n it saw.
type fixedIndex struct {
	idx   int
	calls []int
}

func (f *fixedIndex) IntN(n int) int {
	f.calls = append(f.calls, n)
	if f.idx >= n {
		return n - 1
	}
	return f.idx
}

// buildRoom paints a w×h floor starting at (0,0) and puts a one-cell
// wall box on every cell listed in walls. Wall cells keep their floor tile.
func buildRoom(w, h int, walls ...tilemap.Cell) (*tilemap.Tilemap, *physics.World) {
	tm := tilemap.NewDefault()
	for y := range h {
		for x := range w {
			tm.SetTile(tilemap.Cell{X: x, Y: y}, 1)
		}
	}
	pw := physics.NewWorld()
	for _, c := range walls {
		pw.Add(physics.BoxFromCell(tm, c, physics.LayerWall))
	}
	return tm, pw
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func newTestLocator(t *testing.T, tm *tilemap.Tilemap, pw *physics.World, rnd RandomIndex, opts ...Option) *Locator {
	t.Helper()
	l, err := NewLocator(tm, pw, rnd, opts...)
	require.NoError(t, err)
	return l
}

func cellOf(tm *tilemap.Tilemap, pos model.Vec3) tilemap.Cell {
	return tm.WorldToCell(pos)
}
