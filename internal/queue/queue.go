package queue

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Handler processes one payload. Deliveries are not retried whatever it returns.
type Handler func(ctx context.Context, payload []byte) error

// Queue interface
type Queue interface {
	Publish(ctx context.Context, topic string, payload []byte) error
	Subscribe(topic string, handler Handler) error
	Close() error
}

// InMemoryQueue dispatches each published payload to the topic's subscribers on its own goroutine.
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]Handler
	wg       sync.WaitGroup
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]Handler),
	}
}

// Publish sends a message to all subscribers
func (q *InMemoryQueue) Publish(_ context.Context, topic string, payload []byte) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	for _, handler := range handlers {
		q.wg.Add(1)
		go q.process(topic, handler, payload)
	}
	return nil
}

// The publisher's context belongs to an HTTP request that is already finished by now.
func (q *InMemoryQueue) process(topic string, handler Handler, payload []byte) {
	defer q.wg.Done()
	if err := handler(context.Background(), payload); err != nil {
		logrus.WithError(err).WithField("topic", topic).Error("job failed")
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler Handler) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// Wait blocks until every dispatched job has returned.
func (q *InMemoryQueue) Wait() {
	q.wg.Wait()
}

// Close waits for in-flight jobs.
func (q *InMemoryQueue) Close() error {
	q.Wait()
	return nil
}
