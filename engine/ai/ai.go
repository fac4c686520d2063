package ai

import (
	"math"

	"github.com/1siamBot/terrain-rts/engine/core"
	"github.com/1siamBot/terrain-rts/engine/systems"
)

// CombatAI drives every live AI-team unit: attack the nearest player unit,
// or run from it when hurt. It thinks on its own coarse interval.
type CombatAI struct {
	Units         *core.Registry
	Bus           *core.EventBus
	FleeThreshold float64 // health fraction below which units flee

	tickTimer     float64
	thinkInterval float64
}

func NewCombatAI(units *core.Registry, bus *core.EventBus, interval, fleeThreshold float64) *CombatAI {
	return &CombatAI{
		Units:         units,
		Bus:           bus,
		FleeThreshold: fleeThreshold,
		thinkInterval: interval,
	}
}

// Update accumulates real frame time and thinks once per interval.
// Returns the number of thinks run.
func (ai *CombatAI) Update(dt float64) int {
	ai.tickTimer += dt
	n := 0
	for ai.thinkInterval > 0 && ai.tickTimer >= ai.thinkInterval {
		ai.tickTimer -= ai.thinkInterval
		ai.Think()
		n++
	}
	return n
}

// Think is the decision pass. It is greedy and memoryless.
func (ai *CombatAI) Think() {
	ai.Units.Each(func(u *core.Unit) {
		if u.Team != core.TeamAI || u.IsDead() {
			return
		}
		enemy := ai.nearestEnemy(u)
		if enemy == nil {
			return
		}

		if u.HealthRatio() >= ai.FleeThreshold {
			if u.IsAttacking() && u.Target == enemy.ID {
				return
			}
			if systems.OrderAttack(u, enemy.ID) {
				ai.Bus.Emit(core.EvtAttackOrder, core.UnitEvent{Unit: u.ID, Team: u.Team, Other: enemy.ID})
			}
			return
		}

		// run directly away, as far as the enemy is
		away := u.Ground().Sub(enemy.Ground())
		dest := u.Ground().Add(away)
		if systems.OrderMove(u, dest) {
			ai.Bus.Emit(core.EvtMoveOrder, core.UnitEvent{Unit: u.ID, Team: u.Team, Other: enemy.ID})
		}
	})
}

// nearestEnemy returns the closest living player unit; ties go to the
// lowest id.
func (ai *CombatAI) nearestEnemy(u *core.Unit) *core.Unit {
	var best *core.Unit
	bestDist := math.MaxFloat64
	pos := u.Ground()
	ai.Units.Each(func(o *core.Unit) {
		if o.Team != core.TeamPlayer || o.IsDead() {
			return
		}
		if d := pos.DistanceTo(o.Ground()); d < bestDist {
			best, bestDist = o, d
		}
	})
	return best
}
