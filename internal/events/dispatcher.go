package events

import (
	"log/slog"
	"sync"
)

const defaultBuffer = 256

// Dispatcher hands events to a sink on a single background goroutine so live
// views never block on storage. When the buffer is full, events are dropped.
type Dispatcher struct {
	sink Sink
	ch   chan Event

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

// NewDispatcher creates a dispatcher with the given buffer size. A non-positive
// size uses the default of 256.
func NewDispatcher(sink Sink, buffer int) *Dispatcher {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	if sink == nil {
		sink = NopSink{}
	}
	d := &Dispatcher{
		sink: sink,
		ch:   make(chan Event, buffer),
		done: make(chan struct{}),
	}
	go d.run()
	return d
}

// Publish queues an event. It never blocks and reports whether the event was
// accepted.
func (d *Dispatcher) Publish(event Event) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return false
	}

	select {
	case d.ch <- event:
		return true
	default:
		slog.Warn("event buffer full, dropping event",
			"type", event.EventType,
			"view_id", event.ViewID,
		)
		return false
	}
}

// Close stops accepting events and waits until queued ones are written.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		<-d.done
		return
	}
	d.closed = true
	close(d.ch)
	d.mu.Unlock()

	<-d.done
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for event := range d.ch {
		if err := d.sink.LogEvent(event); err != nil {
			slog.Error("failed to log event",
				"type", event.EventType,
				"view_id", event.ViewID,
				"error", err,
			)
		}
	}
}
