package messaging

import (
	"context"
	"strconv"
	"sync"
	"time"

	"go.uber.org/atomic"
)

// Memory is an in-process broker. Every consumer group of a topic receives
// each published message once; consumers of the same group share the load.
// Nacked messages are redelivered to the group.
type Memory struct {
	closed *atomic.Bool
	seq    *atomic.Int64

	mu     sync.Mutex
	groups map[string]map[string]chan *Message
}

// NewMemory returns an empty in-process broker.
func NewMemory() *Memory {
	return &Memory{
		closed: atomic.NewBool(false),
		seq:    atomic.NewInt64(0),
		groups: map[string]map[string]chan *Message{},
	}
}

// Close stops accepting messages. Running consumers stop when their context ends.
func (m *Memory) Close() error {
	m.closed.Store(true)
	return nil
}

// Publish delivers msg to every consumer group of destination. Messages
// published before any group exists are dropped.
func (m *Memory) Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error) {
	if err := validatePublish(ctx, destination); err != nil {
		return PublishResult{}, err
	}
	if m.closed.Load() {
		return PublishResult{}, ErrClosed
	}

	now := time.Now()
	id := strconv.FormatInt(m.seq.Inc(), 10)

	m.mu.Lock()
	queues := make([]chan *Message, 0, len(m.groups[destination]))
	for _, q := range m.groups[destination] {
		queues = append(queues, q)
	}
	m.mu.Unlock()

	for _, q := range queues {
		delivery := &Message{
			ID:        id,
			Topic:     destination,
			Body:      append([]byte(nil), msg.Body...),
			Key:       append([]byte(nil), msg.Key...),
			Headers:   append([]Header(nil), msg.Headers...),
			Timestamp: now,
		}
		delivery.nack = func(context.Context) error {
			go func() { q <- delivery }()
			return nil
		}

		select {
		case q <- delivery:
		case <-ctx.Done():
			return PublishResult{}, ctx.Err()
		}
	}

	return PublishResult{MessageID: id, Topic: destination, Timestamp: now}, nil
}

// Consume registers the consumer group and handles deliveries until ctx is done.
func (m *Memory) Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error {
	if err := validateConsume(ctx, source, handler); err != nil {
		return err
	}
	if m.closed.Load() {
		return ErrClosed
	}

	co := newConsumeOptions(opts...)
	q := m.queue(source, co.group)
	d := newDispatcher("memory", handler, co)

	for {
		select {
		case <-ctx.Done():
			d.wait()
			return ctx.Err()
		case msg := <-q:
			if !d.dispatch(ctx, msg) {
				d.wait()
				return ctx.Err()
			}
		}
	}
}

func (m *Memory) queue(topic, group string) chan *Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.groups[topic] == nil {
		m.groups[topic] = map[string]chan *Message{}
	}
	q, ok := m.groups[topic][group]
	if !ok {
		q = make(chan *Message, 64)
		m.groups[topic][group] = q
	}
	return q
}
