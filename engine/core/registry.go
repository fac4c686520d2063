package core

import (
	"errors"
	"fmt"

	"github.com/1siamBot/terrain-rts/engine/math3d"
)

var (
	ErrRegistryFull         = errors.New("unit registry full")
	ErrSpawnDuringIteration = errors.New("spawn while iterating units")
)

// UnitSpec holds the initial stats of a new unit
type UnitSpec struct {
	Team              Team
	Position          math3d.Vec2 // ground (X, Z)
	Yaw               float64
	Scale             float64
	Dimensions        math3d.Vec3
	DimensionOffset   math3d.Vec3
	OffsetY           float64
	HP                float64
	AttackRadius      float64
	AttackDamage      float64
	AttackCooldownMax float64
	MoveSpeed         float64
}

// Registry is the authoritative list of units. Ids come from a counter
// owned by the registry and match the unit's index.
type Registry struct {
	ground    Ground
	units     []*Unit
	nextID    UnitID
	capacity  int
	iterating int
}

// NewRegistry creates a registry. capacity <= 0 means unbounded.
func NewRegistry(ground Ground, capacity int) *Registry {
	return &Registry{ground: ground, capacity: capacity}
}

// Spawn creates a unit placed on the ground
func (r *Registry) Spawn(spec UnitSpec) (*Unit, error) {
	if r.iterating > 0 {
		return nil, ErrSpawnDuringIteration
	}
	if r.capacity > 0 && len(r.units) >= r.capacity {
		return nil, fmt.Errorf("%w: capacity %d", ErrRegistryFull, r.capacity)
	}
	scale := spec.Scale
	if scale == 0 {
		scale = 1
	}
	u := &Unit{
		ID:                r.nextID,
		Position:          math3d.V3(spec.Position.X, 0, spec.Position.Y),
		Rotation:          math3d.V3(0, spec.Yaw, 0),
		Scale:             math3d.V3(scale, scale, scale),
		Dimensions:        spec.Dimensions,
		DimensionOffset:   spec.DimensionOffset,
		OffsetY:           spec.OffsetY,
		Team:              spec.Team,
		HP:                spec.HP,
		MaxHP:             spec.HP,
		AttackRadius:      spec.AttackRadius,
		AttackDamage:      spec.AttackDamage,
		AttackCooldownMax: spec.AttackCooldownMax,
		Target:            NoUnit,
		MoveSpeed:         spec.MoveSpeed,
		TargetPos:         spec.Position,
		Mode:              ModeIdle,
	}
	r.nextID++
	u.Position.Y = u.OffsetY
	if r.ground != nil {
		u.Position.Y += r.ground.HeightAt(u.Position.X, u.Position.Z)
	}
	u.DeriveBox()
	u.Refresh(r.ground)
	u.SetClip(ClipIdle)
	r.units = append(r.units, u)
	return u, nil
}

// Get returns the unit with the given id, or nil
func (r *Registry) Get(id UnitID) *Unit {
	if id < 0 || int(id) >= len(r.units) {
		return nil
	}
	return r.units[id]
}

// Len returns the number of units ever spawned (dead ones included)
func (r *Registry) Len() int { return len(r.units) }

// Ground returns the height source units are placed on
func (r *Registry) Ground() Ground { return r.ground }

// Each visits every unit in ascending id order. Spawning from inside fn
// fails with ErrSpawnDuringIteration.
func (r *Registry) Each(fn func(u *Unit)) {
	r.iterating++
	defer func() { r.iterating-- }()
	for _, u := range r.units {
		fn(u)
	}
}

// Count returns how many units satisfy pred
func (r *Registry) Count(pred func(u *Unit) bool) int {
	n := 0
	for _, u := range r.units {
		if pred(u) {
			n++
		}
	}
	return n
}
