package systems

import (
	"fmt"

	"github.com/1siamBot/terrain-rts/engine/core"
)

// DeadTargetPolicy decides what a resolving attack does when its target
// is already dead.
type DeadTargetPolicy uint8

const (
	// Overkill applies damage to the dead record and re-runs the death
	// transition.
	Overkill DeadTargetPolicy = iota
	// IgnoreDead drops the attack and sends the attacker back to idle.
	IgnoreDead
)

func (p DeadTargetPolicy) String() string {
	if p == IgnoreDead {
		return "ignore"
	}
	return "overkill"
}

// ParseDeadTargetPolicy maps a config name to a policy
func ParseDeadTargetPolicy(s string) (DeadTargetPolicy, error) {
	switch s {
	case "", "overkill":
		return Overkill, nil
	case "ignore":
		return IgnoreDead, nil
	}
	return 0, fmt.Errorf("unknown dead target policy %q", s)
}

// Stepper advances every unit's state machine by one fixed tick
type Stepper struct {
	Units  *core.Registry
	Ground core.Ground
	Clips  core.ClipSet
	Bus    *core.EventBus
	Policy DeadTargetPolicy
}

// Step runs one tick over all units in id order
func (s *Stepper) Step(dt float64) {
	s.Units.Each(func(u *core.Unit) {
		s.stepUnit(u, dt)
	})
}

func (s *Stepper) stepUnit(u *core.Unit, dt float64) {
	if u.Action {
		if s.stepAction(u) {
			return
		}
	} else {
		if u.IsDead() {
			return
		}
		if u.IsAttacking() {
			s.stepAttack(u, dt)
		}
		if u.IsMoving() {
			s.stepMove(u, dt)
		}
		s.loopClip(u)
	}
	if u.Dirty() {
		u.Refresh(s.Ground)
	}
}
