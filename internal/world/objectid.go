package world

import "sync/atomic"

// ObjectIDGenerator generates unique entity IDs.
//
// ID ranges (convention):
//   0x00000000 - 0x0FFFFFFF: Reserved (0 = invalid)
//   0x10000000 - 0x1FFFFFFF: Players
//   0x20000000 - 0xFFFFFFFF: Other scene entities
type ObjectIDGenerator struct {
	nextPlayerID atomic.Uint32
	nextObjectID atomic.Uint32
}

// Range starts.
const (
	PlayerIDBase uint32 = 0x10000000
	ObjectIDBase uint32 = 0x20000000
)

// NewObjectIDGenerator creates a new ID generator.
func NewObjectIDGenerator() *ObjectIDGenerator {
	gen := &ObjectIDGenerator{}
	gen.nextPlayerID.Store(PlayerIDBase)
	gen.nextObjectID.Store(ObjectIDBase)
	return gen
}

// NextPlayerID generates next unique player ID.
func (g *ObjectIDGenerator) NextPlayerID() uint32 {
	return g.nextPlayerID.Add(1)
}

// NextObjectID generates next unique non-player ID.
func (g *ObjectIDGenerator) NextObjectID() uint32 {
	return g.nextObjectID.Add(1)
}
