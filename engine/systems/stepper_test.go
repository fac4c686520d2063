package systems

import (
	"math"
	"testing"

	"github.com/1siamBot/terrain-rts/engine/core"
	"github.com/1siamBot/terrain-rts/engine/math3d"
)

const tickDT = 1.0 / 60.0

type flatGround struct{}

func (flatGround) HeightAt(x, z float64) float64 { return 0 }

func testClips() core.ClipSet {
	return core.ClipSet{core.ClipIdle: 4, core.ClipMove: 4, core.ClipAttack: 3, core.ClipDie: 2}
}

func newTestStepper(policy DeadTargetPolicy) *Stepper {
	return &Stepper{
		Units:  core.NewRegistry(flatGround{}, 0),
		Ground: flatGround{},
		Clips:  testClips(),
		Bus:    core.NewEventBus(),
		Policy: policy,
	}
}

func spawn(t *testing.T, s *Stepper, team core.Team, x, z float64) *core.Unit {
	t.Helper()
	u, err := s.Units.Spawn(core.UnitSpec{
		Team:              team,
		Position:          math3d.V2(x, z),
		Dimensions:        math3d.V3(1, 4, 1),
		DimensionOffset:   math3d.V3(0, 2, 0),
		HP:                100,
		AttackRadius:      5,
		AttackDamage:      25,
		AttackCooldownMax: 0,
		MoveSpeed:         5,
	})
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	return u
}

// stepUntil runs ticks until cond holds, failing after max ticks
func stepUntil(t *testing.T, s *Stepper, max int, cond func() bool) int {
	t.Helper()
	for i := 1; i <= max; i++ {
		s.Step(tickDT)
		if cond() {
			return i
		}
	}
	t.Fatalf("condition not met after %d ticks", max)
	return 0
}

func TestMoveArrivesInExactTicks(t *testing.T) {
	s := newTestStepper(Overkill)
	u := spawn(t, s, core.TeamPlayer, 0, 0)
	if !OrderMove(u, math3d.V2(10, 0)) {
		t.Fatal("move refused")
	}
	if u.Anim.Clip != core.ClipMove {
		t.Fatal("move clip should start with the order")
	}

	step := u.MoveSpeed * tickDT
	for tick := 1; tick <= 120; tick++ {
		before := u.Position.X
		s.Step(tickDT)
		moved := u.Position.X - before
		if tick < 120 {
			if u.Position.X >= 10 {
				t.Fatalf("tick %d: arrived early at %v", tick, u.Position.X)
			}
			continue
		}
		if u.Position.X != 10 || u.Position.Z != 0 {
			t.Fatalf("tick 120: position %v, expected exactly (10, 0)", u.Position)
		}
		if moved > step+1e-9 {
			t.Errorf("last step overshot: moved %v, step %v", moved, step)
		}
	}
	if !u.IsMoving() {
		t.Error("unit should still be flagged moving until the next tick")
	}
	s.Step(tickDT)
	if u.Mode != core.ModeIdle || u.Anim.Clip != core.ClipIdle {
		t.Errorf("after arrival: mode %v clip %v", u.Mode, u.Anim.Clip)
	}
}

func TestMoveFinalStepIsRemainingDistance(t *testing.T) {
	s := newTestStepper(Overkill)
	u := spawn(t, s, core.TeamPlayer, 0, 0)
	u.MoveSpeed = 18 // 0.3 per tick
	OrderMove(u, math3d.V2(0, 1))
	for i := 0; i < 3; i++ {
		s.Step(tickDT)
	}
	before := u.Position.Z
	s.Step(tickDT)
	if u.Position.Z != 1 {
		t.Fatalf("Z = %v, expected 1", u.Position.Z)
	}
	if math.Abs((u.Position.Z-before)-(1-before)) > 0 {
		t.Error("final displacement should equal remaining distance")
	}
	if math.Abs(u.Rotation.Y) > 1e-12 {
		t.Errorf("facing +Z should give yaw 0, got %v", u.Rotation.Y)
	}
}

func TestInRange(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		want     bool
	}{
		{"inside", 4, true},
		{"edge", 5, true},
		{"outside", 6, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestStepper(Overkill)
			a := spawn(t, s, core.TeamPlayer, 0, 0)
			b := spawn(t, s, core.TeamAI, tc.distance, 0)
			if got := InRange(a, b); got != tc.want {
				t.Errorf("InRange at %v = %v", tc.distance, got)
			}
		})
	}
}

func TestFourHitsKill(t *testing.T) {
	s := newTestStepper(Overkill)
	target := spawn(t, s, core.TeamAI, 4, 0)
	attacker := spawn(t, s, core.TeamPlayer, 0, 0)
	OrderAttack(attacker, target.ID)

	for hit := 1; hit <= 3; hit++ {
		want := 100 - 25*float64(hit)
		stepUntil(t, s, 20, func() bool { return target.HP == want })
		if target.IsDead() || target.Action {
			t.Fatalf("hit %d: target dead too early", hit)
		}
		if attacker.Mode != core.ModeAttacking {
			t.Fatalf("hit %d: attacker left attacking mode", hit)
		}
	}
	if target.HP != 25 {
		t.Fatalf("HP = %v, expected 25", target.HP)
	}

	stepUntil(t, s, 20, func() bool { return target.HP <= 0 })
	if !target.IsDead() || !target.Action || target.Anim.Clip != core.ClipDie {
		t.Fatalf("target after 4th hit: mode %v action %v clip %v", target.Mode, target.Action, target.Anim.Clip)
	}
	if attacker.Mode != core.ModeIdle {
		t.Errorf("attacker should go idle after the kill, got %v", attacker.Mode)
	}

	stepUntil(t, s, 5, func() bool { return !target.Action })
	if !target.Box.Empty() {
		t.Error("corpse should have a zeroed box")
	}
	if !target.IsDead() {
		t.Error("corpse should stay dead")
	}
}

func TestDeadNeverMoving(t *testing.T) {
	s := newTestStepper(Overkill)
	runner := spawn(t, s, core.TeamAI, 3, 0)
	attacker := spawn(t, s, core.TeamPlayer, 0, 0)
	runner.HP = 25
	OrderMove(runner, math3d.V2(3, 3))
	OrderAttack(attacker, runner.ID)

	for i := 0; i < 60; i++ {
		s.Step(tickDT)
		s.Units.Each(func(u *core.Unit) {
			if u.IsDead() && u.IsMoving() {
				t.Fatalf("tick %d: unit %d dead and moving", i, u.ID)
			}
		})
	}
	if !runner.IsDead() {
		t.Fatal("runner should be dead")
	}
	pos := runner.Position
	for i := 0; i < 10; i++ {
		s.Step(tickDT)
	}
	if runner.Position != pos {
		t.Error("corpse moved")
	}
}

func TestActionRefusesOrders(t *testing.T) {
	s := newTestStepper(Overkill)
	target := spawn(t, s, core.TeamAI, 2, 0)
	attacker := spawn(t, s, core.TeamPlayer, 0, 0)
	OrderAttack(attacker, target.ID)
	s.Step(tickDT)
	if !attacker.Action || attacker.Anim.Clip != core.ClipAttack {
		t.Fatal("swing should have started")
	}
	if OrderMove(attacker, math3d.V2(-5, 0)) || OrderAttack(attacker, attacker.ID) {
		t.Error("orders must be refused mid-swing")
	}
	if attacker.Target != target.ID {
		t.Error("target changed mid-swing")
	}
}

func TestChaseThenWaitOutCooldown(t *testing.T) {
	s := newTestStepper(Overkill)
	target := spawn(t, s, core.TeamAI, 10, 0)
	attacker := spawn(t, s, core.TeamPlayer, 0, 0)
	attacker.AttackCooldown = 10
	OrderAttack(attacker, target.ID)

	s.Step(tickDT)
	if !attacker.Chasing || !attacker.IsMoving() || attacker.Anim.Clip != core.ClipMove {
		t.Fatalf("expected chase, got chasing=%v clip=%v", attacker.Chasing, attacker.Anim.Clip)
	}
	if attacker.TargetPos != target.Ground() {
		t.Errorf("chase should aim at target, got %v", attacker.TargetPos)
	}
	if attacker.Position.X <= 0 {
		t.Error("attacker did not close in")
	}

	// target walks away; chase re-aims every tick
	OrderMove(target, math3d.V2(10, 8))
	s.Step(tickDT)
	if attacker.TargetPos != target.Ground() {
		t.Errorf("chase not re-aimed: %v vs %v", attacker.TargetPos, target.Ground())
	}

	stepUntil(t, s, 600, func() bool { return !attacker.Chasing })
	if !InRange(attacker, target) || attacker.Anim.Clip != core.ClipIdle || attacker.Action {
		t.Errorf("expected idle wait in range, clip %v action %v", attacker.Anim.Clip, attacker.Action)
	}
	if attacker.Mode != core.ModeAttacking {
		t.Error("attacker should keep attacking while waiting")
	}
}

func TestInvalidTargetGoesIdle(t *testing.T) {
	s := newTestStepper(Overkill)
	u := spawn(t, s, core.TeamPlayer, 0, 0)
	OrderAttack(u, 99)
	s.Step(tickDT)
	if u.Mode != core.ModeIdle || u.Target != core.NoUnit || u.Anim.Clip != core.ClipIdle {
		t.Errorf("mode %v target %v clip %v", u.Mode, u.Target, u.Anim.Clip)
	}
}

func TestDeadTargetPolicy(t *testing.T) {
	tests := []struct {
		policy DeadTargetPolicy
		hp     float64
		kills  int
	}{
		{Overkill, -25, 2},
		{IgnoreDead, 0, 1},
	}
	for _, tc := range tests {
		t.Run(tc.policy.String(), func(t *testing.T) {
			s := newTestStepper(tc.policy)
			kills := 0
			s.Bus.On(core.EvtUnitKilled, func(core.Event) { kills++ })

			target := spawn(t, s, core.TeamAI, 0, 3)
			a1 := spawn(t, s, core.TeamPlayer, -2, 0)
			a2 := spawn(t, s, core.TeamPlayer, 2, 0)
			target.HP = 25
			OrderAttack(a1, target.ID)
			OrderAttack(a2, target.ID)

			stepUntil(t, s, 10, func() bool { return target.IsDead() })
			s.Bus.Dispatch()

			if target.HP != tc.hp {
				t.Errorf("HP = %v, expected %v", target.HP, tc.hp)
			}
			if kills != tc.kills {
				t.Errorf("kills = %d, expected %d", kills, tc.kills)
			}
			if a1.Mode != core.ModeIdle || a2.Mode != core.ModeIdle {
				t.Errorf("attackers: %v, %v", a1.Mode, a2.Mode)
			}
		})
	}
}

func TestSeparateAlongSmallerOverlap(t *testing.T) {
	tests := []struct {
		name  string
		mover int
		wantX float64
	}{
		{"left unit pushed left", 0, -0.25},
		{"right unit pushed right", 1, 1.0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestStepper(Overkill)
			a := spawn(t, s, core.TeamPlayer, 0, 0)
			b := spawn(t, s, core.TeamPlayer, 0.75, 0.25)
			units := []*core.Unit{a, b}
			mover := units[tc.mover]
			z := mover.Position.Z

			Separate(mover, s.Units)

			if mover.Position.X != tc.wantX {
				t.Errorf("X = %v, expected %v", mover.Position.X, tc.wantX)
			}
			if mover.Position.Z != z {
				t.Errorf("Z changed: %v -> %v", z, mover.Position.Z)
			}
			if a.Footprint().Intersects(b.Footprint()) {
				t.Error("units still overlap")
			}
		})
	}
}

func TestSeparateSkipsDead(t *testing.T) {
	s := newTestStepper(Overkill)
	a := spawn(t, s, core.TeamPlayer, 0, 0)
	b := spawn(t, s, core.TeamAI, 0.5, 0)
	Kill(b)
	Separate(a, s.Units)
	if a.Position.X != 0 {
		t.Error("dead unit should not push")
	}
}

func TestParseDeadTargetPolicy(t *testing.T) {
	if p, err := ParseDeadTargetPolicy("ignore"); err != nil || p != IgnoreDead {
		t.Errorf("ignore -> %v, %v", p, err)
	}
	if p, err := ParseDeadTargetPolicy(""); err != nil || p != Overkill {
		t.Errorf("empty -> %v, %v", p, err)
	}
	if _, err := ParseDeadTargetPolicy("revive"); err == nil {
		t.Error("expected error")
	}
}
