package events

import (
	"context"
	"log/slog"
	"sync"
)

// PublishedEvent records one Publish call for assertions.
type PublishedEvent struct {
	Topic   string
	Payload interface{}
}

// MockEventPublisher captures published events for tests.
type MockEventPublisher struct {
	mu     sync.Mutex
	events []PublishedEvent
	logger *slog.Logger
}

func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	return &MockEventPublisher{logger: logger}
}

func (m *MockEventPublisher) Publish(ctx context.Context, topic string, payload interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append(m.events, PublishedEvent{Topic: topic, Payload: payload})
	m.logger.Debug("Mock publish", "topic", topic)
	return nil
}

// GetPublishedEvents returns a copy of everything published so far.
func (m *MockEventPublisher) GetPublishedEvents() []PublishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]PublishedEvent, len(m.events))
	copy(out, m.events)
	return out
}

// ClearEvents drops everything recorded so far.
func (m *MockEventPublisher) ClearEvents() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
}
