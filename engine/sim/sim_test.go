package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/1siamBot/terrain-rts/engine/camera"
	"github.com/1siamBot/terrain-rts/engine/config"
	"github.com/1siamBot/terrain-rts/engine/core"
	"github.com/1siamBot/terrain-rts/engine/input"
	"github.com/1siamBot/terrain-rts/engine/math3d"
	"github.com/1siamBot/terrain-rts/engine/systems"
)

func testConfig() config.Config {
	cfg := config.Embedded()
	cfg.Terrain.Width, cfg.Terrain.Height = 80, 80
	return cfg
}

func newSim(t *testing.T, cfg config.Config) *Simulation {
	t.Helper()
	s, err := New(cfg, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSkirmishAIWinsAgainstIdlePlayer(t *testing.T) {
	s := newSim(t, testConfig())
	if err := s.SpawnScenario(); err != nil {
		t.Fatal(err)
	}
	if got := s.Stats.Team(core.TeamPlayer).Spawned + s.Stats.Team(core.TeamAI).Spawned; got != 13 {
		t.Fatalf("spawned %d units, expected 13", got)
	}

	// one simulated minute
	if n := s.RunTicks(3600); n != 3600 {
		t.Fatalf("ran %d ticks", n)
	}
	player := s.Stats.Team(core.TeamPlayer)
	if player.Losses == 0 || player.DamageTaken == 0 {
		t.Errorf("player took no losses: %+v", *player)
	}
	if ai := s.Stats.Team(core.TeamAI); ai.DamageDealt != player.DamageTaken || ai.Losses != 0 {
		t.Errorf("ai totals inconsistent: %+v", *ai)
	}
	if s.Alive(core.TeamPlayer) != 6-player.Losses {
		t.Errorf("alive %d with %d losses", s.Alive(core.TeamPlayer), player.Losses)
	}
	if s.Loop.CurrentTick() != 3600 {
		t.Errorf("tick = %d", s.Loop.CurrentTick())
	}
}

func TestRegistryExhaustion(t *testing.T) {
	cfg := testConfig()
	cfg.Sim.MaxUnits = 4
	s := newSim(t, cfg)
	err := s.SpawnScenario()
	if !errors.Is(err, core.ErrRegistryFull) {
		t.Fatalf("err = %v, expected registry full", err)
	}
	if s.Units.Len() != 4 {
		t.Errorf("len = %d", s.Units.Len())
	}
}

func TestPauseStopsTicks(t *testing.T) {
	s := newSim(t, testConfig())
	s.TogglePause()
	if n := s.RunTicks(10); n != 0 {
		t.Errorf("paused run ticked %d times", n)
	}
	s.TogglePause()
	if n := s.RunTicks(10); n != 10 {
		t.Errorf("resumed run ticked %d times", n)
	}
}

func TestFrameClickSelectAndMove(t *testing.T) {
	cfg := testConfig()
	cfg.Terrain.HeightScale = 0.001 // near flat, nothing occludes the ground
	cfg.Scenario = []config.SpawnGroup{{Template: "robot", Team: "player", X: 4, Z: 4}}
	s := newSim(t, cfg)
	if err := s.SpawnScenario(); err != nil {
		t.Fatal(err)
	}
	u := s.Units.Get(0)
	dt := 1 / cfg.Sim.TickRate
	idle := camera.Controls{}

	// settle the camera on the unit before projecting
	s.Frame(dt, idle, input.Frame{})
	at, ok := s.Camera.WorldToScreen(u.Box.Center())
	if !ok {
		t.Fatal("unit behind the camera")
	}
	s.Frame(dt, idle, input.Frame{X: at.X, Y: at.Y, Buttons: input.ButtonLeft})
	s.Frame(dt, idle, input.Frame{X: at.X, Y: at.Y})
	if !s.Selection.Contains(u.ID) {
		t.Fatal("click did not select the unit")
	}

	gx, gz := 8.0, 2.0
	dest, ok := s.Camera.WorldToScreen(math3d.V3(gx, s.Terrain.HeightAt(gx, gz), gz))
	if !ok {
		t.Fatal("destination behind the camera")
	}
	s.Frame(dt, idle, input.Frame{X: dest.X, Y: dest.Y, Buttons: input.ButtonRight})
	if u.Mode != core.ModeMoving {
		t.Fatalf("mode = %v, expected moving", u.Mode)
	}
	if math.Abs(u.TargetPos.X-gx) > 0.5 || math.Abs(u.TargetPos.Y-gz) > 0.5 {
		t.Errorf("target = %v, expected near (%v, %v)", u.TargetPos, gx, gz)
	}
	if s.Stats.Team(core.TeamPlayer).Orders != 1 {
		t.Errorf("orders = %d", s.Stats.Team(core.TeamPlayer).Orders)
	}
}

func TestWinner(t *testing.T) {
	cfg := testConfig()
	cfg.Scenario = []config.SpawnGroup{
		{Template: "robot", Team: "player", X: 0, Z: 0},
		{Template: "robot", Team: "ai", X: 10, Z: 0},
	}
	s := newSim(t, cfg)
	if err := s.SpawnScenario(); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Winner(); ok {
		t.Fatal("winner declared with both teams alive")
	}
	s.Units.Get(1).Mode = core.ModeDead
	if team, ok := s.Winner(); !ok || team != core.TeamPlayer {
		t.Errorf("winner = %v %v", team, ok)
	}
}

func TestFriendlyFireCreditsOwnTeam(t *testing.T) {
	cfg := testConfig()
	cfg.Scenario = []config.SpawnGroup{{Template: "robot", Team: "player", X: 0, Z: 0, Count: 2, Spacing: 2}}
	s := newSim(t, cfg)
	if err := s.SpawnScenario(); err != nil {
		t.Fatal(err)
	}
	if !systems.OrderAttack(s.Units.Get(0), 1) {
		t.Fatal("attack order refused")
	}
	s.RunTicks(60)

	player, ai := s.Stats.Team(core.TeamPlayer), s.Stats.Team(core.TeamAI)
	if player.DamageTaken == 0 {
		t.Fatal("no damage landed")
	}
	if player.DamageDealt != player.DamageTaken {
		t.Errorf("player dealt %v, took %v", player.DamageDealt, player.DamageTaken)
	}
	if ai.DamageDealt != 0 {
		t.Errorf("ai credited with %v damage", ai.DamageDealt)
	}
}

func TestDispatcherUsesCameraClipPlanes(t *testing.T) {
	cfg := testConfig()
	cfg.Camera.Near, cfg.Camera.Far = 0.5, 250
	s := newSim(t, cfg)
	if s.Dispatcher.Near != s.Camera.Near() || s.Dispatcher.Far != s.Camera.Far() {
		t.Errorf("dispatcher planes %v..%v, camera %v..%v",
			s.Dispatcher.Near, s.Dispatcher.Far, s.Camera.Near(), s.Camera.Far())
	}
	if s.Dispatcher.Far != 250 {
		t.Errorf("far = %v, expected 250", s.Dispatcher.Far)
	}
}
