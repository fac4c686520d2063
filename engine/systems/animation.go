package systems

import (
	"github.com/1siamBot/terrain-rts/engine/core"
)

// loopClip advances a looping clip one frame, wrapping at its length
func (s *Stepper) loopClip(u *core.Unit) {
	u.Anim.Frame = (u.Anim.Frame + 1) % s.Clips.Frames(u.Anim.Clip)
}

// stepAction advances a one-shot clip. Returns true when the unit is done
// for this tick.
func (s *Stepper) stepAction(u *core.Unit) bool {
	u.Anim.Frame++
	switch u.Mode {
	case core.ModeAttacking:
		if u.Anim.Frame >= s.Clips.Frames(core.ClipAttack) {
			u.Action = false
			s.resolveAttack(u)
			u.SetClip(core.ClipIdle)
		}
	case core.ModeDead:
		if n := s.Clips.Frames(core.ClipDie); u.Anim.Frame >= n {
			u.Action = false
			u.Anim.Frame = n - 1
			u.ClearBox()
			s.Bus.Emit(core.EvtCorpseSettled, core.UnitEvent{Unit: u.ID, Team: u.Team, Other: core.NoUnit})
			return true
		}
	default:
		u.Action = false
	}
	return false
}
