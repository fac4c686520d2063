// Package sim wires the terrain, units, input and AI into one
// single-threaded simulation driven by a fixed-timestep loop.
package sim

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/1siamBot/terrain-rts/engine/ai"
	"github.com/1siamBot/terrain-rts/engine/camera"
	"github.com/1siamBot/terrain-rts/engine/command"
	"github.com/1siamBot/terrain-rts/engine/config"
	"github.com/1siamBot/terrain-rts/engine/core"
	"github.com/1siamBot/terrain-rts/engine/input"
	"github.com/1siamBot/terrain-rts/engine/math3d"
	"github.com/1siamBot/terrain-rts/engine/systems"
	"github.com/1siamBot/terrain-rts/engine/terrain"
)

// Simulation owns every piece of game state. All methods must be called
// from one goroutine.
type Simulation struct {
	Session    uuid.UUID
	Config     config.Config
	Terrain    *terrain.HeightField
	Units      *core.Registry
	Selection  *core.Selection
	Bus        *core.EventBus
	Stepper    *systems.Stepper
	Dispatcher *command.Dispatcher
	AI         *ai.CombatAI
	Loop       *core.GameLoop
	Tracker    *input.Tracker
	Camera     *camera.Camera
	Stats      *Stats

	queue  command.Queue
	logger *log.Logger
}

// New builds a simulation from cfg. The terrain comes from
// cfg.Terrain.Path, or is synthesized from seed when the path is empty.
// A nil logger discards output.
func New(cfg config.Config, seed uint64, logger *log.Logger) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	hf, err := loadTerrain(cfg.Terrain, seed)
	if err != nil {
		return nil, err
	}
	clips, err := cfg.ClipSet()
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		Session:   uuid.New(),
		Config:    cfg,
		Terrain:   hf,
		Units:     core.NewRegistry(hf, cfg.Sim.MaxUnits),
		Selection: core.NewSelection(),
		Bus:       core.NewEventBus(),
		Tracker:   input.NewTracker(cfg.Input.MinDragArea),
		Stats:     NewStats(),
	}
	s.logger = logger.With("session", s.Session.String()[:8])

	s.Camera = camera.New(cfg.Camera, math3d.V3(0, hf.HeightAt(0, 0), 0))
	s.Stepper = &systems.Stepper{
		Units:  s.Units,
		Ground: hf,
		Clips:  clips,
		Bus:    s.Bus,
		Policy: cfg.Policy(),
	}
	s.Dispatcher = &command.Dispatcher{
		Units:     s.Units,
		Selection: s.Selection,
		Terrain:   hf,
		Projector: s.Camera,
		Near:      s.Camera.Near(),
		Far:       s.Camera.Far(),
		Bus:       s.Bus,
	}
	s.AI = ai.NewCombatAI(s.Units, s.Bus, cfg.Sim.AIInterval, cfg.Combat.FleeThreshold)
	s.Loop = core.NewGameLoop(cfg.Sim.TickRate, s.tick)
	if cfg.Sim.MaxFrameTime > 0 {
		s.Loop.MaxFrameTime = cfg.Sim.MaxFrameTime
	}
	s.Loop.Play()

	s.Stats.Attach(s.Bus, s.Units)
	s.attachLogger()

	s.logger.Info("session started",
		"terrain", fmt.Sprintf("%dx%d", hf.Width(), hf.Height()),
		"tick_rate", cfg.Sim.TickRate,
		"policy", cfg.Policy(),
	)
	return s, nil
}

func loadTerrain(tc config.TerrainConfig, seed uint64) (*terrain.HeightField, error) {
	if tc.Path != "" {
		return terrain.Load(tc.Path, tc.HeightScale)
	}
	hf, err := terrain.Synthesize(tc.Width, tc.Height, tc.HeightScale, seed)
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize terrain: %w", err)
	}
	return hf, nil
}

// Logger returns the session-scoped logger
func (s *Simulation) Logger() *log.Logger { return s.logger }

// Spawn adds one unit and announces it
func (s *Simulation) Spawn(spec core.UnitSpec) (*core.Unit, error) {
	u, err := s.Units.Spawn(spec)
	if err != nil {
		return nil, err
	}
	s.Bus.Emit(core.EvtUnitSpawned, core.UnitEvent{Unit: u.ID, Team: u.Team, Other: core.NoUnit})
	return u, nil
}

// SpawnScenario spawns every unit the config's scenario lists and points
// the camera at the first player unit.
func (s *Simulation) SpawnScenario() error {
	specs, err := s.Config.Spawns()
	if err != nil {
		return err
	}
	focused := false
	for _, spec := range specs {
		u, err := s.Spawn(spec)
		if err != nil {
			return fmt.Errorf("failed to spawn scenario: %w", err)
		}
		if !focused && u.Team == core.TeamPlayer {
			s.Camera.SetFocus(u.Position)
			focused = true
		}
	}
	s.Bus.Dispatch()
	s.logger.Info("scenario spawned",
		"units", s.Units.Len(),
		"player", s.Alive(core.TeamPlayer),
		"ai", s.Alive(core.TeamAI),
	)
	return nil
}

// Frame advances one rendered frame: camera and pointer input every
// frame, AI on its own interval, units on fixed ticks. Returns the number
// of ticks run.
func (s *Simulation) Frame(frameDT float64, ctl camera.Controls, in input.Frame) int {
	s.Camera.Update(ctl, frameDT, s.Terrain)
	s.Tracker.Update(in, s.Camera, &s.queue)

	if s.Loop.State == core.StatePlaying {
		s.AI.Update(frameDT)
	}
	n := s.Loop.Advance(frameDT)
	s.Bus.Dispatch()
	return n
}

// RunTicks feeds exactly n ticks of time with no player input. Returns
// the number of ticks run, which is 0 while paused.
func (s *Simulation) RunTicks(n int) int {
	dt := 1 / s.Config.Sim.TickRate
	ran := 0
	for i := 0; i < n; i++ {
		if s.Loop.State == core.StatePlaying {
			s.AI.Update(dt)
		}
		ran += s.Loop.Advance(dt)
		s.Bus.Dispatch()
	}
	return ran
}

// tick drains the command queue then steps every unit
func (s *Simulation) tick(dt float64) {
	s.Bus.SetTick(s.Loop.TickCount)
	s.Dispatcher.Dispatch(s.queue.Drain())
	s.Stepper.Step(dt)
}

// TogglePause flips between playing and paused
func (s *Simulation) TogglePause() {
	if s.Loop.State == core.StatePaused {
		s.Loop.Play()
		s.logger.Info("resumed", "tick", s.Loop.CurrentTick())
		return
	}
	s.Loop.Pause()
	s.logger.Info("paused", "tick", s.Loop.CurrentTick())
}

// Alive counts living units of a team
func (s *Simulation) Alive(team core.Team) int {
	return s.Units.Count(func(u *core.Unit) bool {
		return u.Team == team && !u.IsDead()
	})
}

// Winner reports the surviving team once the other has no living units
func (s *Simulation) Winner() (core.Team, bool) {
	player, enemy := s.Alive(core.TeamPlayer), s.Alive(core.TeamAI)
	switch {
	case player > 0 && enemy == 0:
		return core.TeamPlayer, true
	case enemy > 0 && player == 0:
		return core.TeamAI, true
	}
	return 0, false
}

// DragRect exposes the in-progress drag rectangle for overlays
func (s *Simulation) DragRect() (math3d.Rect, bool) {
	return s.Tracker.DragRect()
}
