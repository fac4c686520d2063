package core

// Event represents a game event
type Event struct {
	Type    EventType
	Tick    uint64
	Payload interface{}
}

type EventType uint16

const (
	EvtUnitSpawned EventType = iota
	EvtMoveOrder
	EvtAttackOrder
	EvtAttackStarted
	EvtUnitDamaged
	EvtUnitKilled
	EvtCorpseSettled
	EvtSelectionChanged
)

var eventNames = [...]string{
	"unit spawned", "move order", "attack order", "attack started",
	"unit damaged", "unit killed", "corpse settled", "selection changed",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// UnitEvent is the payload of unit events. Other is the target or attacker
// where one applies.
type UnitEvent struct {
	Unit   UnitID
	Team   Team
	Other  UnitID
	Amount float64
}

// EventBus dispatches events to listeners
type EventBus struct {
	listeners map[EventType][]EventHandler
	queue     []Event
	tick      uint64
}

type EventHandler func(e Event)

func NewEventBus() *EventBus {
	return &EventBus{
		listeners: make(map[EventType][]EventHandler),
	}
}

// On registers a handler for an event type
func (eb *EventBus) On(t EventType, h EventHandler) {
	eb.listeners[t] = append(eb.listeners[t], h)
}

// SetTick stamps subsequently emitted events
func (eb *EventBus) SetTick(tick uint64) { eb.tick = tick }

// Emit queues an event for dispatch. A nil bus drops it.
func (eb *EventBus) Emit(t EventType, payload interface{}) {
	if eb == nil {
		return
	}
	eb.queue = append(eb.queue, Event{Type: t, Tick: eb.tick, Payload: payload})
}

// Pending returns the number of queued events
func (eb *EventBus) Pending() int { return len(eb.queue) }

// Dispatch processes all queued events
func (eb *EventBus) Dispatch() {
	if eb == nil {
		return
	}
	for _, e := range eb.queue {
		if handlers, ok := eb.listeners[e.Type]; ok {
			for _, h := range handlers {
				h(e)
			}
		}
	}
	eb.queue = eb.queue[:0]
}
