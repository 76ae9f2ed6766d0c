package events

import (
	"sync"
	"time"
)

// InMemoryEventStore keeps the scheduling event stream in memory, one
// versioned substream per StreamID, and fans events out to subscribers.
type InMemoryEventStore struct {
	mutex       sync.RWMutex
	streams     map[string][]Event
	allEvents   []Event
	subscribers map[string][]Handler
}

// NewInMemoryEventStore creates an empty event store.
func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{
		streams:     make(map[string][]Event),
		subscribers: make(map[string][]Handler),
	}
}

// Publish appends an event to its stream, assigns the stream version, and
// notifies subscribers of that event type.
func (s *InMemoryEventStore) Publish(eventType, streamID string, data interface{}) {
	s.mutex.Lock()
	ev := Event{
		Type:     eventType,
		StreamID: streamID,
		Data:     data,
		Time:     time.Now(),
		Version:  len(s.streams[streamID]) + 1,
	}
	s.streams[streamID] = append(s.streams[streamID], ev)
	s.allEvents = append(s.allEvents, ev)
	handlers := append([]Handler(nil), s.subscribers[eventType]...)
	s.mutex.Unlock()

	for _, h := range handlers {
		h(ev)
	}
}

// ReadEvents returns a stream's events starting at fromVersion (1-based).
func (s *InMemoryEventStore) ReadEvents(streamID string, fromVersion int) []Event {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	stream := s.streams[streamID]
	if fromVersion < 1 {
		fromVersion = 1
	}
	if fromVersion > len(stream) {
		return nil
	}
	return append([]Event(nil), stream[fromVersion-1:]...)
}

// ReadAllEvents returns every event from the given position onward.
func (s *InMemoryEventStore) ReadAllEvents(fromPosition int) []Event {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if fromPosition < 0 {
		fromPosition = 0
	}
	if fromPosition >= len(s.allEvents) {
		return nil
	}
	return append([]Event(nil), s.allEvents[fromPosition:]...)
}

// Subscribe registers a handler for the given event types.
func (s *InMemoryEventStore) Subscribe(eventTypes []string, handler Handler) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, eventType := range eventTypes {
		s.subscribers[eventType] = append(s.subscribers[eventType], handler)
	}
}
