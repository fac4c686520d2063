package input

import (
	"github.com/1siamBot/terrain-rts/engine/command"
	"github.com/1siamBot/terrain-rts/engine/math3d"
)

// Buttons is a bitmask of mouse buttons held this frame
type Buttons uint8

const (
	ButtonLeft Buttons = 1 << iota
	ButtonRight
)

// Modifiers is a bitmask of held modifier keys
type Modifiers uint8

const (
	ModAdd    Modifiers = 1 << iota // shift: add to selection
	ModAttack                       // ctrl: force attack
)

// Frame is one frame's worth of pointer state
type Frame struct {
	X, Y    float64
	Buttons Buttons
	Mods    Modifiers
}

// RayCaster builds a world ray through a screen point
type RayCaster interface {
	ScreenRay(x, y float64) math3d.Ray
}

// Tracker turns per-frame pointer state into edge-triggered command events.
// Left acts on release (click or drag), right on press.
type Tracker struct {
	MinDragArea float64 // px², drags at or below this are clicks

	prev     Buttons
	holding  bool
	pressPos math3d.Vec2
	cursor   math3d.Vec2
}

func NewTracker(minDragArea float64) *Tracker {
	return &Tracker{MinDragArea: minDragArea}
}

// Update compares f against the previous frame and pushes one event per
// button transition.
func (t *Tracker) Update(f Frame, rays RayCaster, q *command.Queue) {
	t.cursor = math3d.V2(f.X, f.Y)
	changed := f.Buttons ^ t.prev
	t.prev = f.Buttons

	if changed&ButtonLeft != 0 {
		if f.Buttons&ButtonLeft != 0 {
			t.holding = true
			t.pressPos = t.cursor
		} else if t.holding {
			t.holding = false
			q.Push(t.leftRelease(f, rays))
		}
	}

	if changed&ButtonRight != 0 && f.Buttons&ButtonRight != 0 {
		q.Push(command.Event{Kind: command.RightClick, Ray: rays.ScreenRay(f.X, f.Y)})
	}
}

func (t *Tracker) leftRelease(f Frame, rays RayCaster) command.Event {
	rect := math3d.RectFromPoints(t.pressPos, t.cursor)
	if rect.Area() > t.MinDragArea {
		kind := command.DragSelect
		if f.Mods&ModAdd != 0 {
			kind = command.DragAddSelect
		}
		return command.Event{Kind: kind, Rect: rect}
	}

	kind := command.LeftClick
	switch {
	case f.Mods&ModAttack != 0:
		kind = command.LeftClickAttack
	case f.Mods&ModAdd != 0:
		kind = command.LeftClickAdd
	}
	return command.Event{Kind: kind, Ray: rays.ScreenRay(f.X, f.Y)}
}

// DragRect returns the selection rectangle while a drag is in progress
func (t *Tracker) DragRect() (math3d.Rect, bool) {
	if !t.holding {
		return math3d.Rect{}, false
	}
	rect := math3d.RectFromPoints(t.pressPos, t.cursor)
	if rect.Area() <= t.MinDragArea {
		return math3d.Rect{}, false
	}
	return rect, true
}
