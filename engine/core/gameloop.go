package core

import "time"

// GameState represents the overall game state
type GameState uint8

const (
	StatePlaying GameState = iota
	StatePaused
)

// GameLoop runs a fixed-timestep simulation off a real-time accumulator
type GameLoop struct {
	State        GameState
	TickRate     float64 // fixed ticks per second
	MaxFrameTime float64 // frame time cap, seconds
	Tick         func(dt float64)
	TickCount    uint64

	accumulator float64
	lastTime    time.Time
}

// NewGameLoop creates a game loop with fixed tick rate
func NewGameLoop(tickRate float64, tick func(dt float64)) *GameLoop {
	return &GameLoop{
		TickRate:     tickRate,
		MaxFrameTime: 0.25,
		Tick:         tick,
		lastTime:     time.Now(),
	}
}

// Advance feeds frameTime seconds into the accumulator and runs as many
// fixed ticks as fit. Returns the number of ticks run.
func (gl *GameLoop) Advance(frameTime float64) int {
	// Cap frame time to avoid spiral of death
	if gl.MaxFrameTime > 0 && frameTime > gl.MaxFrameTime {
		frameTime = gl.MaxFrameTime
	}
	if frameTime < 0 {
		frameTime = 0
	}

	dt := 1.0 / gl.TickRate
	gl.accumulator += frameTime

	n := 0
	for gl.accumulator >= dt {
		if gl.State == StatePlaying {
			if gl.Tick != nil {
				gl.Tick(dt)
			}
			gl.TickCount++
			n++
		}
		gl.accumulator -= dt
	}
	return n
}

// Elapsed returns the wall-clock seconds since the previous call, or
// since Play.
func (gl *GameLoop) Elapsed() float64 {
	now := time.Now()
	frameTime := now.Sub(gl.lastTime).Seconds()
	gl.lastTime = now
	return frameTime
}

// Play starts or resumes the game
func (gl *GameLoop) Play() {
	gl.State = StatePlaying
	gl.lastTime = time.Now()
}

// Pause pauses the game
func (gl *GameLoop) Pause() {
	gl.State = StatePaused
}

// CurrentTick returns the current simulation tick
func (gl *GameLoop) CurrentTick() uint64 {
	return gl.TickCount
}
