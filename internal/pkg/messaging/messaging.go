package messaging

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	// ErrClosed is returned when the client has been closed.
	ErrClosed = errors.New("messaging: client is closed")
	// ErrDestinationRequired is returned when publishing without a topic/subject.
	ErrDestinationRequired = errors.New("messaging: destination is required")
	// ErrSourceRequired is returned when consuming without a topic/subject.
	ErrSourceRequired = errors.New("messaging: source is required")
	// ErrHandlerRequired is returned when Consume is called with a nil handler.
	ErrHandlerRequired = errors.New("messaging: handler is required")
)

// Messaging is a broker-agnostic client that can publish and consume messages.
type Messaging interface {
	io.Closer

	Publisher
	Consumer
}

// Publisher publishes messages to a destination (topic/subject).
type Publisher interface {
	Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error)
}

// Consumer consumes messages from a source. Consume blocks until ctx is done
// or the broker fails.
type Consumer interface {
	Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error
}

// Handler processes a received message. With auto-ack enabled a nil error
// acks the message and a non-nil error nacks it.
type Handler func(ctx context.Context, msg *Message) error

// OutgoingMessage is a message to be published.
type OutgoingMessage struct {
	// Body is the message payload.
	Body []byte
	// Key is used by Kafka for partitioning.
	Key []byte
	// Headers are carried by Kafka and NATS, and as attributes by Pub/Sub. NSQ drops them.
	Headers []Header
	// OrderingKey is used by Google Pub/Sub. The publisher must have message
	// ordering enabled, so leave it empty unless the topic is ordered.
	OrderingKey string
}

// Header is a key/value pair used for message headers.
type Header struct {
	Key   string
	Value []byte
}

// PublishResult carries optional broker-specific publish metadata.
type PublishResult struct {
	MessageID string
	Topic     string
	Timestamp time.Time
}

// Message is a received message.
type Message struct {
	ID        string
	Topic     string
	Body      []byte
	Key       []byte
	Headers   []Header
	Timestamp time.Time

	ack  func(context.Context) error
	nack func(context.Context) error
}

// Header returns the value of the first header named key, or "".
func (m *Message) Header(key string) string {
	for _, h := range m.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

// Ack acknowledges successful processing. It is a no-op for brokers without acks.
func (m *Message) Ack(ctx context.Context) error {
	if m.ack == nil {
		return nil
	}
	return m.ack(ctx)
}

// Nack requests redelivery. It is a no-op for brokers without redelivery.
func (m *Message) Nack(ctx context.Context) error {
	if m.nack == nil {
		return nil
	}
	return m.nack(ctx)
}

func validateConsume(ctx context.Context, source string, handler Handler) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if source == "" {
		return ErrSourceRequired
	}
	if handler == nil {
		return ErrHandlerRequired
	}
	return nil
}

func validatePublish(ctx context.Context, destination string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if destination == "" {
		return ErrDestinationRequired
	}
	return nil
}
