package spawn

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/floorspawn/internal/model"
)

var (
	ErrNoValidPosition = errors.New("spawn: no valid floor position")
	ErrNilTemplate     = errors.New("spawn: player template is not set")
	ErrNilLocator      = errors.New("spawn: locator is not set")
	ErrNilLookup       = errors.New("spawn: player lookup is not set")
	ErrNilFactory      = errors.New("spawn: entity factory is not set")
)

// PlayerLookup finds an entity already present in the scene by tag.
type PlayerLookup interface {
	FindWithTag(tag string) (*model.Entity, bool)
}

// EntityFactory creates a new scene entity from a template.
type EntityFactory interface {
	Instantiate(tpl *model.Template, pos model.Vec3, rot model.Quaternion) (*model.Entity, error)
}

// Outcome is the terminal state of one OnSceneStart call.
type Outcome int

const (
	// OutcomeNone: aborted before the search (precondition or context).
	OutcomeNone Outcome = iota
	OutcomeNoCandidates
	OutcomeRelocated
	OutcomeSpawned
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRelocated:
		return "relocated"
	case OutcomeSpawned:
		return "spawned"
	case OutcomeNoCandidates:
		return "no_candidates"
	default:
		return "none"
	}
}

// Placed reports whether the player ended up on a floor cell.
func (o Outcome) Placed() bool {
	return o == OutcomeRelocated || o == OutcomeSpawned
}

// Result describes what OnSceneStart did.
type Result struct {
	Outcome  Outcome
	Entity   *model.Entity // relocated or created entity; nil on failure
	Position model.Vec3
}

// Controller places the player on scene start: it moves an existing
// player, or creates one from the template.
type Controller struct {
	locator  *Locator
	lookup   PlayerLookup
	factory  EntityFactory
	template *model.Template
}

// NewController creates placement controller.
// template may be nil only when a player is guaranteed to exist already;
// otherwise OnSceneStart fails with ErrNilTemplate.
func NewController(locator *Locator, lookup PlayerLookup, factory EntityFactory, template *model.Template) (*Controller, error) {
	if locator == nil {
		return nil, ErrNilLocator
	}
	if lookup == nil {
		return nil, ErrNilLookup
	}
	if factory == nil {
		return nil, ErrNilFactory
	}
	return &Controller{
		locator:  locator,
		lookup:   lookup,
		factory:  factory,
		template: template,
	}, nil
}

// OnSceneStart runs one placement. No retries: a failed search leaves
// the scene untouched and returns ErrNoValidPosition.
func (c *Controller) OnSceneStart(ctx context.Context) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	if existing, ok := c.lookup.FindWithTag(model.TagPlayer); ok {
		return c.relocate(existing)
	}
	return c.spawnNew()
}

func (c *Controller) relocate(player *model.Entity) (Result, error) {
	slog.Info("player already in scene, relocating",
		"objectID", player.ObjectID(),
		"from", player.Position())

	pos, ok := c.locator.FindValidPosition()
	if !ok {
		slog.Error("no valid floor position for player",
			"objectID", player.ObjectID())
		return Result{Outcome: OutcomeNoCandidates}, ErrNoValidPosition
	}

	player.SetPosition(pos)
	slog.Info("player relocated", "objectID", player.ObjectID(), "position", pos)

	return Result{Outcome: OutcomeRelocated, Entity: player, Position: pos}, nil
}

func (c *Controller) spawnNew() (Result, error) {
	if c.template == nil {
		slog.Error("cannot spawn player", "error", ErrNilTemplate)
		return Result{}, ErrNilTemplate
	}

	pos, ok := c.locator.FindValidPosition()
	if !ok {
		slog.Error("no valid floor position for player", "template", c.template.Name)
		return Result{Outcome: OutcomeNoCandidates}, ErrNoValidPosition
	}

	player, err := c.factory.Instantiate(c.template, pos, model.Identity())
	if err != nil {
		return Result{}, fmt.Errorf("instantiating player %q: %w", c.template.Name, err)
	}

	slog.Info("player spawned", "objectID", player.ObjectID(), "position", pos)
	return Result{Outcome: OutcomeSpawned, Entity: player, Position: pos}, nil
}
