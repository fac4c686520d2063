package core

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/1siamBot/terrain-rts/engine/math3d"
)

type slope struct{}

func (slope) HeightAt(x, z float64) float64 { return 0.5*x + 0.25*z }

func robot(team Team, x, z float64) UnitSpec {
	return UnitSpec{
		Team:              team,
		Position:          math3d.V2(x, z),
		Dimensions:        math3d.V3(1, 4, 1),
		DimensionOffset:   math3d.V3(0, 2, 0),
		HP:                100,
		AttackRadius:      5,
		AttackDamage:      25,
		AttackCooldownMax: 1,
		MoveSpeed:         5,
	}
}

func TestRegistryAssignsSequentialIDs(t *testing.T) {
	reg := NewRegistry(nil, 0)
	for i := 0; i < 5; i++ {
		u, err := reg.Spawn(robot(TeamPlayer, float64(i), 0))
		if err != nil {
			t.Fatalf("Spawn: %v", err)
		}
		if u.ID != UnitID(i) {
			t.Errorf("unit %d got id %d", i, u.ID)
		}
		if reg.Get(u.ID) != u {
			t.Errorf("Get(%d) returned a different unit", u.ID)
		}
	}
	if reg.Get(5) != nil || reg.Get(NoUnit) != nil {
		t.Error("Get of unknown id should be nil")
	}
}

func TestRegistryIDsIndependentAcrossRegistries(t *testing.T) {
	a := NewRegistry(nil, 0)
	b := NewRegistry(nil, 0)
	a.Spawn(robot(TeamPlayer, 0, 0))
	a.Spawn(robot(TeamPlayer, 0, 0))
	u, _ := b.Spawn(robot(TeamAI, 0, 0))
	if u.ID != 0 {
		t.Errorf("second registry started at id %d", u.ID)
	}
}

func TestRegistryCapacity(t *testing.T) {
	reg := NewRegistry(nil, 2)
	reg.Spawn(robot(TeamPlayer, 0, 0))
	reg.Spawn(robot(TeamPlayer, 0, 0))
	_, err := reg.Spawn(robot(TeamPlayer, 0, 0))
	if !errors.Is(err, ErrRegistryFull) {
		t.Fatalf("expected ErrRegistryFull, got %v", err)
	}
	if reg.Len() != 2 {
		t.Errorf("Len = %d", reg.Len())
	}
}

func TestRegistrySpawnDuringIteration(t *testing.T) {
	reg := NewRegistry(nil, 0)
	reg.Spawn(robot(TeamPlayer, 0, 0))
	var spawnErr error
	reg.Each(func(u *Unit) {
		_, spawnErr = reg.Spawn(robot(TeamAI, 1, 1))
	})
	if !errors.Is(spawnErr, ErrSpawnDuringIteration) {
		t.Fatalf("expected ErrSpawnDuringIteration, got %v", spawnErr)
	}
	if _, err := reg.Spawn(robot(TeamAI, 1, 1)); err != nil {
		t.Errorf("spawn after iteration: %v", err)
	}
}

func TestSpawnPlacesUnitOnGround(t *testing.T) {
	reg := NewRegistry(slope{}, 0)
	spec := robot(TeamPlayer, 2, 4)
	spec.OffsetY = 0.5
	u, _ := reg.Spawn(spec)
	if u.Position.Y != 0.5+2 {
		t.Errorf("Y = %v, expected 2.5", u.Position.Y)
	}
	want := math3d.BoundingBox{Min: math3d.V3(1.5, 2.5, 3.5), Max: math3d.V3(2.5, 6.5, 4.5)}
	if u.Box != want {
		t.Errorf("Box = %+v, expected %+v", u.Box, want)
	}
	if u.Anim.Clip != ClipIdle || u.Mode != ModeIdle || u.Target != NoUnit {
		t.Errorf("unexpected initial state %+v", u)
	}
}

func TestRefreshIsIdempotent(t *testing.T) {
	reg := NewRegistry(slope{}, 0)
	u, _ := reg.Spawn(robot(TeamPlayer, 0, 0))
	u.Position.X += 3
	u.Rotation.Y = 0.6
	u.MarkDirty()

	u.Refresh(slope{})
	box, tr, pos := u.Box, u.Transform, u.Position
	u.Refresh(slope{})
	if u.Box != box || u.Transform != tr || u.Position != pos {
		t.Error("second refresh changed derived state")
	}
	if u.Dirty() {
		t.Error("refresh should clear dirty")
	}
	if u.Box.Min.X != 2.5 || u.Box.Max.X != 3.5 {
		t.Errorf("box not translated with unit: %+v", u.Box)
	}
}

func TestFootprintFollowsUnrefreshedPosition(t *testing.T) {
	reg := NewRegistry(nil, 0)
	u, _ := reg.Spawn(robot(TeamPlayer, 0, 0))
	u.Position.Z += 2
	fp := u.Footprint()
	if fp.X != -0.5 || fp.Y != 1.5 || fp.W != 1 || fp.H != 1 {
		t.Errorf("Footprint = %+v", fp)
	}
}

func TestUnitIsMoving(t *testing.T) {
	tests := []struct {
		mode    Mode
		chasing bool
		want    bool
	}{
		{ModeIdle, false, false},
		{ModeMoving, false, true},
		{ModeAttacking, false, false},
		{ModeAttacking, true, true},
		{ModeDead, false, false},
	}
	for _, tc := range tests {
		u := &Unit{Mode: tc.mode, Chasing: tc.chasing}
		if got := u.IsMoving(); got != tc.want {
			t.Errorf("%v chasing=%v: IsMoving = %v", tc.mode, tc.chasing, got)
		}
	}
}

func TestSelectionAddRemove(t *testing.T) {
	s := NewSelection()
	if !s.Add(3) || s.Add(3) {
		t.Fatal("duplicate add should be refused")
	}
	s.Toggle(4)
	s.Toggle(3)
	if s.Contains(3) || !s.Contains(4) || s.Len() != 1 {
		t.Errorf("after toggles: %v", s.IDs())
	}
	for i := 0; i < 20; i++ {
		s.Add(UnitID(10 + i))
	}
	if s.Len() != MaxSelected {
		t.Errorf("Len = %d, expected %d", s.Len(), MaxSelected)
	}
	s.Clear()
	if s.Len() != 0 || s.Contains(4) {
		t.Error("Clear left ids behind")
	}
}

func TestSelectionRandomSequence(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := NewSelection()
	for i := 0; i < 5000; i++ {
		id := UnitID(rng.Intn(30))
		switch rng.Intn(3) {
		case 0:
			s.Add(id)
		case 1:
			s.Remove(id)
		case 2:
			s.Toggle(id)
		}
		ids := s.IDs()
		if len(ids) > MaxSelected {
			t.Fatalf("step %d: %d ids exceed capacity", i, len(ids))
		}
		seen := map[UnitID]bool{}
		for _, v := range ids {
			if seen[v] {
				t.Fatalf("step %d: duplicate id %d", i, v)
			}
			seen[v] = true
		}
	}
}

func TestEventBusDispatch(t *testing.T) {
	bus := NewEventBus()
	var got []Event
	bus.On(EvtUnitKilled, func(e Event) { got = append(got, e) })
	bus.SetTick(42)
	bus.Emit(EvtUnitKilled, UnitEvent{Unit: 1, Other: 2})
	bus.Emit(EvtUnitDamaged, UnitEvent{Unit: 1})
	if bus.Pending() != 2 {
		t.Fatalf("Pending = %d", bus.Pending())
	}
	bus.Dispatch()
	if len(got) != 1 || got[0].Tick != 42 || got[0].Payload.(UnitEvent).Other != 2 {
		t.Errorf("dispatched %+v", got)
	}
	if bus.Pending() != 0 {
		t.Error("queue not drained")
	}

	var nilBus *EventBus
	nilBus.Emit(EvtUnitKilled, nil)
	nilBus.Dispatch()
}

func TestGameLoopAdvance(t *testing.T) {
	ticks := 0
	gl := NewGameLoop(10, func(dt float64) {
		if dt != 0.1 {
			t.Errorf("dt = %v", dt)
		}
		ticks++
	})
	if n := gl.Advance(0.25); n != 2 {
		t.Errorf("Advance(0.25) ran %d ticks", n)
	}
	if n := gl.Advance(0.06); n != 1 {
		t.Errorf("carry-over: ran %d ticks", n)
	}
	if n := gl.Advance(5); n != 2 {
		t.Errorf("capped frame ran %d ticks", n)
	}
	gl.Pause()
	if n := gl.Advance(0.2); n != 0 {
		t.Errorf("paused loop ran %d ticks", n)
	}
	if gl.CurrentTick() != uint64(ticks) || ticks != 5 {
		t.Errorf("ticks = %d, CurrentTick = %d", ticks, gl.CurrentTick())
	}
}

func TestParseTeamAndClip(t *testing.T) {
	if team, err := ParseTeam("ai"); err != nil || team != TeamAI {
		t.Errorf("ParseTeam(ai) = %v, %v", team, err)
	}
	if _, err := ParseTeam("zerg"); err == nil {
		t.Error("expected error for unknown team")
	}
	if c, err := ParseClip("die"); err != nil || c != ClipDie || c.Looping() {
		t.Errorf("ParseClip(die) = %v, %v", c, err)
	}
	if DefaultClips().Frames(ClipAttack) != 20 || (ClipSet{}).Frames(ClipIdle) != 1 {
		t.Error("Frames mismatch")
	}
}
