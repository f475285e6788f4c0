package events

import (
	"sync"
)

// MockEventBus provides an in-memory implementation of EventBus for testing
type MockEventBus struct {
	subscriptions   map[string][]interface{}
	publishedEvents map[string][]interface{}
	publishError    error
	mutex           sync.RWMutex
}

// NewMockEventBus creates a new MockEventBus instance
func NewMockEventBus() *MockEventBus {
	return &MockEventBus{
		subscriptions:   make(map[string][]interface{}),
		publishedEvents: make(map[string][]interface{}),
	}
}

// SetPublishError makes subsequent Publish calls fail with the given error
func (m *MockEventBus) SetPublishError(err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.publishError = err
}

// Publish records the event and invokes matching subscribers synchronously
func (m *MockEventBus) Publish(topic string, data interface{}) error {
	m.mutex.Lock()
	if m.publishError != nil {
		err := m.publishError
		m.mutex.Unlock()
		return err
	}
	m.publishedEvents[topic] = append(m.publishedEvents[topic], data)
	handlers := append([]interface{}(nil), m.subscriptions[topic]...)
	m.mutex.Unlock()

	for _, handler := range handlers {
		switch h := handler.(type) {
		case func(ScoreSubmitted):
			if event, ok := data.(ScoreSubmitted); ok {
				h(event)
			}
		case func(ScoresReset):
			if event, ok := data.(ScoresReset); ok {
				h(event)
			}
		case func(interface{}):
			h(data)
		}
	}
	return nil
}

// Subscribe implements the EventBus interface
func (m *MockEventBus) Subscribe(topic string, handler interface{}) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.subscriptions[topic] = append(m.subscriptions[topic], handler)
	return nil
}

// Unsubscribe implements the EventBus interface
func (m *MockEventBus) Unsubscribe(topic string, handler interface{}) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.subscriptions, topic)
	return nil
}

// Close implements the EventBus interface
func (m *MockEventBus) Close() error {
	return nil
}

// PublishedEvents returns all events published on the given topic
func (m *MockEventBus) PublishedEvents(topic string) []interface{} {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return append([]interface{}(nil), m.publishedEvents[topic]...)
}
