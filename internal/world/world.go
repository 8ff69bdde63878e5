package world

import (
	"fmt"
	"sync"

	"github.com/udisondev/floorspawn/internal/model"
)

// World is the scene registry: it owns entities, answers tag lookups
// and instantiates templates.
type World struct {
	objects sync.Map // objectID → *model.Entity
	ids     *ObjectIDGenerator
}

// New creates an empty world.
func New() *World {
	return &World{ids: NewObjectIDGenerator()}
}

// AddObject registers an existing entity.
// Returns error if the objectID is already taken.
func (w *World) AddObject(e *model.Entity) error {
	if e.ObjectID() == 0 {
		return fmt.Errorf("entity %q has invalid objectID 0", e.Name())
	}
	if _, loaded := w.objects.LoadOrStore(e.ObjectID(), e); loaded {
		return fmt.Errorf("objectID %d already in world", e.ObjectID())
	}
	return nil
}

// RemoveObject removes entity by ID.
func (w *World) RemoveObject(objectID uint32) {
	w.objects.Delete(objectID)
}

// GetObject returns entity by ID.
func (w *World) GetObject(objectID uint32) (*model.Entity, bool) {
	value, ok := w.objects.Load(objectID)
	if !ok {
		return nil, false
	}
	return value.(*model.Entity), true
}

// FindWithTag returns the entity with the given tag and the lowest
// objectID, so repeated lookups are stable.
func (w *World) FindWithTag(tag string) (*model.Entity, bool) {
	var found *model.Entity
	w.objects.Range(func(_, value any) bool {
		e := value.(*model.Entity)
		if e.Tag() != tag {
			return true
		}
		if found == nil || e.ObjectID() < found.ObjectID() {
			found = e
		}
		return true
	})
	return found, found != nil
}

// Instantiate creates an entity from tpl at pos and adds it to the world.
func (w *World) Instantiate(tpl *model.Template, pos model.Vec3, rot model.Quaternion) (*model.Entity, error) {
	if tpl == nil {
		return nil, fmt.Errorf("instantiating: nil template")
	}

	var id uint32
	if tpl.Tag == model.TagPlayer {
		id = w.ids.NextPlayerID()
	} else {
		id = w.ids.NextObjectID()
	}

	e := model.NewEntity(id, tpl.Name, tpl.Tag, pos, rot)
	if err := w.AddObject(e); err != nil {
		return nil, fmt.Errorf("instantiating %q: %w", tpl.Name, err)
	}
	return e, nil
}

// ObjectCount returns total number of entities (O(N)).
func (w *World) ObjectCount() int {
	count := 0
	w.objects.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}
