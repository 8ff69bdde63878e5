package model

import "sync"

// TagPlayer marks the single player entity of a scene.
const TagPlayer = "Player"

// Entity is a scene object with an identity and a transform.
// Owned by the world registry; placement only mutates Position.
type Entity struct {
	objectID uint32
	name     string
	tag      string
	position Vec3
	rotation Quaternion

	mu sync.RWMutex
}

// NewEntity creates a new entity.
func NewEntity(objectID uint32, name, tag string, pos Vec3, rot Quaternion) *Entity {
	return &Entity{
		objectID: objectID,
		name:     name,
		tag:      tag,
		position: pos,
		rotation: rot,
	}
}

// ObjectID returns the unique entity ID (immutable after creation).
func (e *Entity) ObjectID() uint32 {
	return e.objectID
}

// Name returns the entity name.
func (e *Entity) Name() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.name
}

// Tag returns the entity tag.
func (e *Entity) Tag() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tag
}

// Position returns a copy of the entity position.
func (e *Entity) Position() Vec3 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.position
}

// SetPosition teleports the entity.
func (e *Entity) SetPosition(pos Vec3) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.position = pos
}

// Rotation returns the entity rotation.
func (e *Entity) Rotation() Quaternion {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.rotation
}

// Template describes how to build a new entity (prefab).
type Template struct {
	Name string
	Tag  string
}

// NewTemplate creates an entity template.
func NewTemplate(name, tag string) *Template {
	return &Template{Name: name, Tag: tag}
}
