// Package interaction wires pointer, touch, resize and visibility events
// to an animation engine.
package interaction

import (
	"fmt"
	"sort"
	"sync"

	"github.com/andyrewlee/marquee/internal/geometry"
)

// Event names an environment signal.
type Event int

const (
	PointerEnter Event = iota
	PointerLeave
	PointerDown
	PointerMove
	PointerUp
	TouchStart
	TouchMove
	TouchEnd
	Resize
	VisibilityChange
)

func (e Event) String() string {
	switch e {
	case PointerEnter:
		return "pointer-enter"
	case PointerLeave:
		return "pointer-leave"
	case PointerDown:
		return "pointer-down"
	case PointerMove:
		return "pointer-move"
	case PointerUp:
		return "pointer-up"
	case TouchStart:
		return "touch-start"
	case TouchMove:
		return "touch-move"
	case TouchEnd:
		return "touch-end"
	case Resize:
		return "resize"
	case VisibilityChange:
		return "visibility-change"
	default:
		return fmt.Sprintf("Event(%d)", int(e))
	}
}

// Payload carries the data of an event. Only the fields relevant to the
// event are set.
type Payload struct {
	X, Y    float64
	Size    geometry.Size
	Visible bool
}

// Handler receives an emitted event.
type Handler func(Payload)

// Bus dispatches events to subscribers in subscription order.
type Bus struct {
	mu   sync.Mutex
	next uint64
	subs map[Event]map[uint64]Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Event]map[uint64]Handler)}
}

// Subscribe registers h for ev until the returned subscription is closed.
func (b *Bus) Subscribe(ev Event, h Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	if b.subs[ev] == nil {
		b.subs[ev] = make(map[uint64]Handler)
	}
	b.subs[ev][b.next] = h
	return &Subscription{bus: b, ev: ev, id: b.next}
}

// Emit calls every handler subscribed to ev. Handlers may subscribe or
// unsubscribe while being called; changes apply to the next Emit.
func (b *Bus) Emit(ev Event, p Payload) {
	b.mu.Lock()
	ids := make([]uint64, 0, len(b.subs[ev]))
	for id := range b.subs[ev] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	handlers := make([]Handler, 0, len(ids))
	for _, id := range ids {
		handlers = append(handlers, b.subs[ev][id])
	}
	b.mu.Unlock()

	for _, h := range handlers {
		if h != nil {
			h(p)
		}
	}
}

// Count returns the number of live subscriptions for ev.
func (b *Bus) Count(ev Event) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[ev])
}

func (b *Bus) remove(ev Event, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs[ev], id)
	if len(b.subs[ev]) == 0 {
		delete(b.subs, ev)
	}
}

// Subscription is one registered handler.
type Subscription struct {
	bus    *Bus
	ev     Event
	id     uint64
	closed bool
}

// Close unsubscribes. It is safe to call more than once.
func (s *Subscription) Close() {
	if s == nil || s.closed {
		return
	}
	s.closed = true
	s.bus.remove(s.ev, s.id)
}

// Scope owns a group of subscriptions that are released together.
type Scope struct {
	subs []*Subscription
}

// Subscribe registers h on b and ties the subscription to the scope.
func (s *Scope) Subscribe(b *Bus, ev Event, h Handler) *Subscription {
	sub := b.Subscribe(ev, h)
	s.subs = append(s.subs, sub)
	return sub
}

// Len is the number of subscriptions held.
func (s *Scope) Len() int { return len(s.subs) }

// Close releases every subscription in the scope.
func (s *Scope) Close() {
	for _, sub := range s.subs {
		sub.Close()
	}
	s.subs = nil
}
