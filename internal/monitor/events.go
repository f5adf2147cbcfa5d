package monitor

import (
	"sync"

	"github.com/MegoCs/clipboard-history/internal/content"
)

// EventKind identifies the kind of monitor lifecycle event.
type EventKind int

const (
	// Started is published once when the polling loop begins.
	Started EventKind = iota
	// ItemAdded is published after each successful change-triggered insert.
	ItemAdded
	// Error is published for any backend read or insert failure.
	Error
)

func (k EventKind) String() string {
	switch k {
	case Started:
		return "started"
	case ItemAdded:
		return "item_added"
	case Error:
		return "error"
	}
	return "unknown"
}

// Event is one monitor state change. Entry is set for ItemAdded; Err is set
// for Error.
type Event struct {
	Kind  EventKind
	Entry content.Entry
	Err   error
}

// Subscription is one subscriber's view of the event stream. Receive from C;
// call Cancel when done.
type Subscription struct {
	C      <-chan Event
	cancel func()
}

// Cancel detaches the subscription. The channel is not closed; pending
// events may still be drained from C.
func (s *Subscription) Cancel() { s.cancel() }

// Broadcaster fans events out to any number of subscribers. Publishing
// never blocks: each subscriber has a bounded buffer and the oldest unread
// event is dropped on overflow, so slow subscribers miss events rather than
// stalling the monitor. This lossiness is deliberate.
type Broadcaster struct {
	buffer int

	mu   sync.Mutex
	subs map[int]chan Event
	next int
}

// NewBroadcaster returns a Broadcaster whose subscribers buffer up to
// buffer events (a non-positive value selects 100, matching the monitor's
// default).
func NewBroadcaster(buffer int) *Broadcaster {
	if buffer <= 0 {
		buffer = 100
	}
	return &Broadcaster{buffer: buffer, subs: make(map[int]chan Event)}
}

// Subscribe registers a new subscriber.
func (b *Broadcaster) Subscribe() *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	ch := make(chan Event, b.buffer)
	b.subs[id] = ch
	return &Subscription{
		C: ch,
		cancel: func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		},
	}
}

// Publish delivers ev to every current subscriber without blocking.
func (b *Broadcaster) Publish(ev Event) {
	b.mu.Lock()
	chans := make([]chan Event, 0, len(b.subs))
	for _, ch := range b.subs {
		chans = append(chans, ch)
	}
	b.mu.Unlock()

	for _, ch := range chans {
		select {
		case ch <- ev:
		default:
			// Buffer full: drop the oldest unread event to make room.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- ev:
			default:
			}
		}
	}
}
