package physics

import "fmt"

// MaxLayers is the number of addressable collision layers.
const MaxLayers = 32

// Built-in layer indices.
const (
	LayerDefault = 0
	LayerWall    = 8
)

// Mask is a bitmask of layer indices. Bit N set = layer N included.
type Mask uint32

// MaskAll matches every layer.
const MaskAll Mask = 0xFFFFFFFF

// LayerBit returns the mask containing only layer n.
func LayerBit(n int) Mask {
	if n < 0 || n >= MaxLayers {
		return 0
	}
	return Mask(1) << n
}

// Contains reports whether layer n is in the mask.
func (m Mask) Contains(n int) bool {
	return m&LayerBit(n) != 0
}

// Layers maps layer names to indices.
type Layers struct {
	byName map[string]int
}

// DefaultLayers returns the registry with "Default" and "Wall".
func DefaultLayers() *Layers {
	return &Layers{byName: map[string]int{
		"Default": LayerDefault,
		"Wall":    LayerWall,
	}}
}

// Define registers a named layer.
func (l *Layers) Define(name string, index int) error {
	if index < 0 || index >= MaxLayers {
		return fmt.Errorf("layer %q index %d out of range [0, %d)", name, index, MaxLayers)
	}
	if prev, ok := l.byName[name]; ok && prev != index {
		return fmt.Errorf("layer %q already defined as %d", name, prev)
	}
	l.byName[name] = index
	return nil
}

// NameToLayer returns the index of a named layer, or -1.
func (l *Layers) NameToLayer(name string) int {
	idx, ok := l.byName[name]
	if !ok {
		return -1
	}
	return idx
}

// GetMask builds a mask from layer names. Unknown names are an error.
func (l *Layers) GetMask(names ...string) (Mask, error) {
	var m Mask
	for _, name := range names {
		idx := l.NameToLayer(name)
		if idx < 0 {
			return 0, fmt.Errorf("unknown layer %q", name)
		}
		m |= LayerBit(idx)
	}
	return m, nil
}

// Names returns a copy of the name → index table.
func (l *Layers) Names() map[string]int {
	out := make(map[string]int, len(l.byName))
	for name, idx := range l.byName {
		out[name] = idx
	}
	return out
}
