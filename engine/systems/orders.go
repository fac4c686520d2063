package systems

import (
	"github.com/1siamBot/terrain-rts/engine/core"
	"github.com/1siamBot/terrain-rts/engine/math3d"
)

// OrderMove sends a unit to a ground point. The move clip starts right
// away. Dead units and units mid one-shot refuse the order.
func OrderMove(u *core.Unit, dest math3d.Vec2) bool {
	if u == nil || u.IsDead() || u.Action {
		return false
	}
	u.Mode = core.ModeMoving
	u.Chasing = false
	u.Target = core.NoUnit
	u.TargetPos = dest
	u.SetClip(core.ClipMove)
	return true
}

// OrderAttack sets a unit on a target. There is no team check.
func OrderAttack(u *core.Unit, target core.UnitID) bool {
	if u == nil || u.IsDead() || u.Action {
		return false
	}
	u.Mode = core.ModeAttacking
	u.Chasing = false
	u.Target = target
	u.SetClip(core.ClipMove)
	return true
}
