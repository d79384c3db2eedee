// Package events records what learners do in a live view: lessons opened,
// modules toggled, quiz answers and exercise reveals. Events are write-only
// telemetry and are never read back into view state.
package events

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// Event is one analytics record.
type Event struct {
	ViewID         string
	EventType      string
	ModuleID       string
	LessonID       string
	CatalogVersion string
	Data           map[string]any
	CreatedAt      time.Time
}

// Sink persists events.
type Sink interface {
	LogEvent(event Event) error
}

// NopSink ignores all events.
type NopSink struct{}

func (NopSink) LogEvent(Event) error {
	return nil
}

// MemorySink stores events in memory for tests.
type MemorySink struct {
	mu     sync.Mutex
	events []Event
}

func NewMemorySink() *MemorySink {
	return &MemorySink{
		events: []Event{},
	}
}

func (s *MemorySink) LogEvent(event Event) error {
	if event.EventType == "" {
		return fmt.Errorf("event_type is required")
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	s.mu.Lock()
	s.events = append(s.events, event)
	s.mu.Unlock()

	return nil
}

func (s *MemorySink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event{}, s.events...)
}

// MultiSink fans an event out to every sink and joins their errors.
type MultiSink []Sink

func (m MultiSink) LogEvent(event Event) error {
	var errs []error
	for _, s := range m {
		if err := s.LogEvent(event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
