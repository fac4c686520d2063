package systems

import (
	"math"

	"github.com/1siamBot/terrain-rts/engine/core"
)

// arrival slack for the final movement step
const arriveEpsilon = 1e-9

// stepMove integrates one tick of straight-line movement
func (s *Stepper) stepMove(u *core.Unit, dt float64) {
	pos := u.Ground()
	if pos == u.TargetPos {
		if u.Mode == core.ModeMoving {
			u.Mode = core.ModeIdle
		}
		u.Chasing = false
		u.SetClip(core.ClipIdle)
		return
	}

	delta := u.TargetPos.Sub(pos)
	step := u.MoveSpeed * dt
	if delta.Len() <= step+arriveEpsilon {
		u.Position.X, u.Position.Z = u.TargetPos.X, u.TargetPos.Y
	} else {
		delta = delta.Normalize().Scale(step)
		u.Position.X += delta.X
		u.Position.Z += delta.Y
	}
	u.Rotation.Y = math.Atan2(delta.X, delta.Y)

	Separate(u, s.Units)
	u.MarkDirty()
}

// Separate pushes u out of every live unit its footprint overlaps. Each
// push is along the axis of smaller overlap, away from the other's center.
func Separate(u *core.Unit, units *core.Registry) {
	if u.Box.Empty() {
		return
	}
	units.Each(func(o *core.Unit) {
		if o.ID == u.ID || o.IsDead() || o.Box.Empty() {
			return
		}
		mine, theirs := u.Footprint(), o.Footprint()
		overlap := mine.Intersection(theirs)
		if overlap.W <= 0 || overlap.H <= 0 {
			return
		}
		if overlap.W < overlap.H {
			u.Position.X += awaySign(mine.Center().X, theirs.Center().X) * overlap.W
		} else {
			u.Position.Z += awaySign(mine.Center().Y, theirs.Center().Y) * overlap.H
		}
	})
}

func awaySign(mine, theirs float64) float64 {
	if mine < theirs {
		return -1
	}
	return 1
}
