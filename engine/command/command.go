package command

import "github.com/1siamBot/terrain-rts/engine/math3d"

// Kind enumerates the input events the dispatcher understands
type Kind uint8

const (
	LeftClick       Kind = iota // select the picked unit, or clear
	LeftClickAdd                // toggle the picked unit in the selection
	LeftClickAttack             // force attack the picked unit
	RightClick                  // attack, follow, or move to ground
	DragSelect                  // replace the selection with units in a rect
	DragAddSelect               // add units in a rect to the selection
)

var kindNames = [...]string{
	"left click", "left click add", "left click attack",
	"right click", "drag select", "drag add select",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Event is one edge-triggered mouse event. Clicks carry a world ray,
// drags a screen rectangle.
type Event struct {
	Kind Kind
	Ray  math3d.Ray
	Rect math3d.Rect
}

// Queue buffers events between frames; the simulation drains it once
// per fixed tick.
type Queue struct {
	events []Event
}

func (q *Queue) Push(e Event) {
	q.events = append(q.events, e)
}

// Drain returns every queued event in order and empties the queue
func (q *Queue) Drain() []Event {
	out := q.events
	q.events = nil
	return out
}

func (q *Queue) Len() int { return len(q.events) }
