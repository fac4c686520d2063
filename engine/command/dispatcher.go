package command

import (
	"math"

	"github.com/1siamBot/terrain-rts/engine/core"
	"github.com/1siamBot/terrain-rts/engine/math3d"
	"github.com/1siamBot/terrain-rts/engine/systems"
)

// Terrain resolves a ray to a ground point
type Terrain interface {
	Raymarch(ray math3d.Ray, near, far float64) (math3d.Vec3, bool)
}

// Projector maps a world point to screen space. ok is false for points
// behind the camera.
type Projector interface {
	WorldToScreen(p math3d.Vec3) (math3d.Vec2, bool)
}

// Dispatcher turns input events into selection changes and unit orders
type Dispatcher struct {
	Units     *core.Registry
	Selection *core.Selection
	Terrain   Terrain
	Projector Projector
	Near, Far float64
	Bus       *core.EventBus
}

// Dispatch applies events in queue order
func (d *Dispatcher) Dispatch(events []Event) {
	for _, e := range events {
		d.apply(e)
	}
}

func (d *Dispatcher) apply(e Event) {
	switch e.Kind {
	case LeftClick:
		d.Selection.Clear()
		if id := d.Pick(e.Ray); id != core.NoUnit {
			d.Selection.Add(id)
		}
		d.selectionChanged()

	case LeftClickAdd:
		id := d.Pick(e.Ray)
		if id == core.NoUnit || !d.teamCompatible(id) {
			return
		}
		d.Selection.Toggle(id)
		d.selectionChanged()

	case LeftClickAttack:
		if id := d.Pick(e.Ray); id != core.NoUnit {
			d.attackWithSelection(id)
		}

	case RightClick:
		id := d.Pick(e.Ray)
		if id != core.NoUnit {
			target := d.Units.Get(id)
			if target.Team != core.TeamPlayer {
				d.attackWithSelection(id)
			} else {
				d.moveSelection(target.Ground())
			}
			return
		}
		if d.Terrain == nil {
			return
		}
		if p, ok := d.Terrain.Raymarch(e.Ray, d.Near, d.Far); ok {
			d.moveSelection(p.XZ())
		}

	case DragSelect, DragAddSelect:
		d.dragSelect(e.Rect, e.Kind == DragSelect)
	}
}

// Pick returns the unit whose box the ray hits first. Equal distances go
// to the lowest id. Zeroed boxes (settled corpses) are never hit.
func (d *Dispatcher) Pick(ray math3d.Ray) core.UnitID {
	best := core.NoUnit
	bestDist := math.MaxFloat64
	d.Units.Each(func(u *core.Unit) {
		if u.Box.Empty() {
			return
		}
		hit, dist := math3d.RayBox(ray, u.Box)
		// ascending id order: strict < keeps the lowest id on ties
		if hit && dist < bestDist {
			best, bestDist = u.ID, dist
		}
	})
	return best
}

// teamCompatible guards shift-click from mixing teams in one selection
func (d *Dispatcher) teamCompatible(id core.UnitID) bool {
	picked := d.Units.Get(id)
	for _, sid := range d.Selection.IDs() {
		if u := d.Units.Get(sid); u != nil && u.Team != picked.Team {
			return false
		}
	}
	return true
}

func (d *Dispatcher) dragSelect(rect math3d.Rect, clearExisting bool) {
	if clearExisting {
		d.Selection.Clear()
	}
	if d.Projector != nil {
		d.Units.Each(func(u *core.Unit) {
			if u.Team != core.TeamPlayer || u.IsDead() {
				return
			}
			if p, ok := d.Projector.WorldToScreen(u.Position); ok && rect.Contains(p) {
				d.Selection.Add(u.ID)
			}
		})
	}
	d.selectionChanged()
}

func (d *Dispatcher) attackWithSelection(target core.UnitID) {
	for _, id := range d.Selection.IDs() {
		u := d.Units.Get(id)
		if systems.OrderAttack(u, target) {
			d.Bus.Emit(core.EvtAttackOrder, core.UnitEvent{Unit: id, Team: u.Team, Other: target})
		}
	}
}

func (d *Dispatcher) moveSelection(dest math3d.Vec2) {
	for _, id := range d.Selection.IDs() {
		u := d.Units.Get(id)
		if systems.OrderMove(u, dest) {
			d.Bus.Emit(core.EvtMoveOrder, core.UnitEvent{Unit: id, Team: u.Team, Other: core.NoUnit})
		}
	}
}

func (d *Dispatcher) selectionChanged() {
	d.Bus.Emit(core.EvtSelectionChanged, core.UnitEvent{Unit: core.NoUnit, Other: core.NoUnit, Amount: float64(d.Selection.Len())})
}
