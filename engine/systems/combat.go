package systems

import (
	"github.com/1siamBot/terrain-rts/engine/core"
	"github.com/1siamBot/terrain-rts/engine/math3d"
)

// stepAttack handles range checks, swing start and chasing
func (s *Stepper) stepAttack(u *core.Unit, dt float64) {
	t := s.Units.Get(u.Target)
	if t == nil || (t.IsDead() && s.Policy == IgnoreDead) {
		goIdle(u)
		u.SetClip(core.ClipIdle)
		return
	}

	if InRange(u, t) {
		if u.AttackCooldown <= 0 {
			u.Chasing = false
			u.Action = true
			u.SetClip(core.ClipAttack)
			s.Bus.Emit(core.EvtAttackStarted, core.UnitEvent{Unit: u.ID, Team: u.Team, Other: t.ID})
		} else if u.Chasing {
			u.Chasing = false
			u.SetClip(core.ClipIdle)
		}
	} else {
		// keep the running frame, only swap the clip
		u.Anim.Clip = core.ClipMove
		u.Chasing = true
		u.TargetPos = t.Ground()
	}
	u.AttackCooldown -= dt
}

// resolveAttack lands a finished swing on the attacker's target
func (s *Stepper) resolveAttack(u *core.Unit) {
	t := s.Units.Get(u.Target)
	if t == nil || (t.IsDead() && s.Policy == IgnoreDead) {
		goIdle(u)
		return
	}

	t.HP -= u.AttackDamage
	u.AttackCooldown = u.AttackCooldownMax
	s.Bus.Emit(core.EvtUnitDamaged, core.UnitEvent{Unit: t.ID, Team: t.Team, Other: u.ID, Amount: u.AttackDamage})

	if t.HP <= 0 {
		Kill(t)
		u.Mode = core.ModeIdle
		u.Chasing = false
		s.Bus.Emit(core.EvtUnitKilled, core.UnitEvent{Unit: t.ID, Team: t.Team, Other: u.ID})
	}
}

// InRange checks whether t stands inside a's attack circle
func InRange(a, t *core.Unit) bool {
	return math3d.PointInCircle(t.Ground(), a.Ground(), a.AttackRadius)
}

// Kill puts a unit into its death animation
func Kill(u *core.Unit) {
	u.Mode = core.ModeDead
	u.Chasing = false
	u.Action = true
	u.Target = core.NoUnit
	u.SetClip(core.ClipDie)
}

func goIdle(u *core.Unit) {
	u.Mode = core.ModeIdle
	u.Chasing = false
	u.Target = core.NoUnit
}
