package messaging

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/atomic"
)

// ErrNATSURLRequired is returned when the NATS URL is empty.
var ErrNATSURLRequired = errors.New("messaging: nats url is required")

// NATSConfig configures the NATS implementation.
type NATSConfig struct {
	URL     string
	Options []nats.Option
}

// NATS is a messaging implementation backed by core NATS. Core NATS has no
// acknowledgements, so Ack and Nack are no-ops.
type NATS struct {
	conn   *nats.Conn
	closed *atomic.Bool
}

// NewNATS connects to the NATS server.
func NewNATS(cfg NATSConfig) (*NATS, error) {
	if cfg.URL == "" {
		return nil, ErrNATSURLRequired
	}

	conn, err := nats.Connect(cfg.URL, cfg.Options...)
	if err != nil {
		return nil, fmt.Errorf("messaging: nats connect: %w", err)
	}

	return &NATS{conn: conn, closed: atomic.NewBool(false)}, nil
}

// Close drains subscriptions and closes the connection.
func (n *NATS) Close() error {
	if !n.closed.CompareAndSwap(false, true) {
		return nil
	}

	if err := n.conn.Drain(); err != nil {
		n.conn.Close()
		return err
	}
	return nil
}

// Publish sends a message to a subject. Headers are carried as NATS headers.
func (n *NATS) Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error) {
	if err := validatePublish(ctx, destination); err != nil {
		return PublishResult{}, err
	}
	if n.closed.Load() {
		return PublishResult{}, ErrClosed
	}

	nm := nats.NewMsg(destination)
	nm.Data = msg.Body
	for _, h := range msg.Headers {
		if h.Key != "" {
			nm.Header.Add(h.Key, string(h.Value))
		}
	}

	if err := n.conn.PublishMsg(nm); err != nil {
		return PublishResult{}, fmt.Errorf("messaging: nats publish: %w", err)
	}

	return PublishResult{Topic: destination, Timestamp: time.Now()}, nil
}

// Consume subscribes to a subject, joining the queue group when one is set.
func (n *NATS) Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error {
	if err := validateConsume(ctx, source, handler); err != nil {
		return err
	}
	if n.closed.Load() {
		return ErrClosed
	}

	co := newConsumeOptions(opts...)
	d := newDispatcher("nats", handler, co)

	cb := func(m *nats.Msg) { d.dispatch(ctx, fromNATS(m)) }

	var (
		sub *nats.Subscription
		err error
	)
	if co.group != "" {
		sub, err = n.conn.QueueSubscribe(source, co.group, cb)
	} else {
		sub, err = n.conn.Subscribe(source, cb)
	}
	if err != nil {
		return fmt.Errorf("messaging: nats subscribe: %w", err)
	}

	<-ctx.Done()
	drainErr := sub.Drain()
	if errors.Is(drainErr, nats.ErrConnectionClosed) || errors.Is(drainErr, nats.ErrBadSubscription) {
		drainErr = nil
	}
	d.wait()

	return errors.Join(ctx.Err(), drainErr)
}

func fromNATS(m *nats.Msg) *Message {
	var headers []Header
	for key, values := range m.Header {
		for _, v := range values {
			headers = append(headers, Header{Key: key, Value: []byte(v)})
		}
	}

	return &Message{
		Topic:     m.Subject,
		Body:      m.Data,
		Headers:   headers,
		Timestamp: time.Now(),
	}
}
