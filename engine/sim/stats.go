package sim

import (
	"github.com/charmbracelet/log"

	"github.com/1siamBot/terrain-rts/engine/core"
)

// TeamStats are the combat totals for one team
type TeamStats struct {
	Spawned     int
	Orders      int
	Attacks     int     // swings started
	DamageDealt float64 // to the other team
	DamageTaken float64
	Losses      int // distinct units killed
}

// Stats accumulates per-team totals from bus events
type Stats struct {
	Teams map[core.Team]*TeamStats

	// a corpse hit again under the overkill policy dies again; count it once
	dead map[core.UnitID]bool
}

func NewStats() *Stats {
	return &Stats{
		Teams: map[core.Team]*TeamStats{
			core.TeamPlayer: {},
			core.TeamAI:     {},
		},
		dead: make(map[core.UnitID]bool),
	}
}

// Team returns the totals of t, creating them if needed
func (st *Stats) Team(t core.Team) *TeamStats {
	ts, ok := st.Teams[t]
	if !ok {
		ts = &TeamStats{}
		st.Teams[t] = ts
	}
	return ts
}

// Attach subscribes to the bus. Damage is credited to the attacker's team,
// looked up in units.
func (st *Stats) Attach(bus *core.EventBus, units *core.Registry) {
	bus.On(core.EvtUnitSpawned, func(e core.Event) {
		if ue, ok := e.Payload.(core.UnitEvent); ok {
			st.Team(ue.Team).Spawned++
		}
	})
	order := func(e core.Event) {
		if ue, ok := e.Payload.(core.UnitEvent); ok {
			st.Team(ue.Team).Orders++
		}
	}
	bus.On(core.EvtMoveOrder, order)
	bus.On(core.EvtAttackOrder, order)
	bus.On(core.EvtAttackStarted, func(e core.Event) {
		if ue, ok := e.Payload.(core.UnitEvent); ok {
			st.Team(ue.Team).Attacks++
		}
	})
	bus.On(core.EvtUnitDamaged, func(e core.Event) {
		ue, ok := e.Payload.(core.UnitEvent)
		if !ok {
			return
		}
		st.Team(ue.Team).DamageTaken += ue.Amount
		if attacker := units.Get(ue.Other); attacker != nil {
			st.Team(attacker.Team).DamageDealt += ue.Amount
		}
	})
	bus.On(core.EvtUnitKilled, func(e core.Event) {
		ue, ok := e.Payload.(core.UnitEvent)
		if !ok || st.dead[ue.Unit] {
			return
		}
		st.dead[ue.Unit] = true
		st.Team(ue.Team).Losses++
	})
}

// attachLogger logs gameplay events at debug level
func (s *Simulation) attachLogger() {
	logUnit := func(msg string) core.EventHandler {
		return func(e core.Event) {
			ue, ok := e.Payload.(core.UnitEvent)
			if !ok {
				return
			}
			s.logger.Debug(msg, "tick", e.Tick, "unit", ue.Unit, "team", ue.Team, "other", ue.Other)
		}
	}
	s.Bus.On(core.EvtUnitSpawned, logUnit("unit spawned"))
	s.Bus.On(core.EvtMoveOrder, logUnit("move order"))
	s.Bus.On(core.EvtAttackOrder, logUnit("attack order"))
	s.Bus.On(core.EvtAttackStarted, logUnit("attack started"))
	s.Bus.On(core.EvtCorpseSettled, logUnit("corpse settled"))
	s.Bus.On(core.EvtUnitDamaged, func(e core.Event) {
		if ue, ok := e.Payload.(core.UnitEvent); ok {
			s.logger.Debug("unit damaged", "tick", e.Tick, "unit", ue.Unit, "by", ue.Other, "amount", ue.Amount)
		}
	})
	s.Bus.On(core.EvtUnitKilled, func(e core.Event) {
		if ue, ok := e.Payload.(core.UnitEvent); ok {
			s.logger.Info("unit killed", "tick", e.Tick, "unit", ue.Unit, "team", ue.Team, "by", ue.Other)
		}
	})
	s.Bus.On(core.EvtSelectionChanged, func(e core.Event) {
		if ue, ok := e.Payload.(core.UnitEvent); ok {
			s.logger.Debug("selection changed", "tick", e.Tick, "count", int(ue.Amount))
		}
	})
}

// Summary logs the final totals
func (st *Stats) Summary(logger *log.Logger) {
	for _, team := range []core.Team{core.TeamPlayer, core.TeamAI} {
		ts := st.Team(team)
		logger.Info("team totals",
			"team", team,
			"spawned", ts.Spawned,
			"losses", ts.Losses,
			"attacks", ts.Attacks,
			"dealt", ts.DamageDealt,
			"taken", ts.DamageTaken,
		)
	}
}
