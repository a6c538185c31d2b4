package sink

import (
	"context"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/shandysiswandi/mailadapter/internal/email/entity"
	"github.com/shandysiswandi/mailadapter/internal/pkg/clock"
	"github.com/shandysiswandi/mailadapter/internal/pkg/instrument"
	"github.com/shandysiswandi/mailadapter/internal/pkg/messaging"
	"github.com/shandysiswandi/mailadapter/internal/pkg/uid"
	"github.com/shandysiswandi/mailadapter/internal/shared/event"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	defaultRetryBase = 100 * time.Millisecond
	maxRetryWait     = 5 * time.Second
)

// MessagingConfig configures the broker sink.
type MessagingConfig struct {
	// Topic receives the envelopes. Defaults to event.EmailAdaptedDestination.
	Topic string
	// MaxRetries bounds publish retries after the first attempt.
	MaxRetries uint64
	// RetryBase is the first Fibonacci backoff step.
	RetryBase time.Duration
}

// Messaging publishes each payload as an event.EmailAdaptedMessage.
type Messaging struct {
	client messaging.Publisher
	ins    instrument.Instrumentation
	uid    uid.NumberID
	clock  clock.Clocker
	cfg    MessagingConfig
}

func NewMessaging(
	client messaging.Publisher,
	ins instrument.Instrumentation,
	id uid.NumberID,
	clk clock.Clocker,
	cfg MessagingConfig,
) *Messaging {
	if cfg.Topic == "" {
		cfg.Topic = event.EmailAdaptedDestination
	}
	if cfg.RetryBase <= 0 {
		cfg.RetryBase = defaultRetryBase
	}

	return &Messaging{client: client, ins: ins, uid: id, clock: clk, cfg: cfg}
}

func (m *Messaging) Emit(ctx context.Context, payload entity.Payload) error {
	ctx, span := m.ins.Tracer("email.outbound.sink").Start(ctx, "MessagingEmit")
	defer span.End()

	body, err := m.envelope(ctx, payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	msg := messaging.OutgoingMessage{
		Body:    body,
		Key:     []byte(cID),
		Headers: []messaging.Header{{Key: instrument.CorrelationHeader, Value: []byte(cID)}},
	}

	backoff := retry.WithMaxRetries(m.cfg.MaxRetries,
		retry.WithCappedDuration(maxRetryWait, retry.NewFibonacci(m.cfg.RetryBase)))

	attempts := 0
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempts++
		if _, err := m.client.Publish(ctx, m.cfg.Topic, msg); err != nil {
			if ctx.Err() != nil {
				return err
			}
			slog.WarnContext(ctx, "failed to publish adapted payload, retrying", "topic", m.cfg.Topic, "attempt", attempts, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	span.SetAttributes(attribute.Int("messaging.attempts", attempts))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (m *Messaging) envelope(ctx context.Context, payload entity.Payload) ([]byte, error) {
	raw, err := marshal(payload, false)
	if err != nil {
		return nil, err
	}

	return marshal(event.EmailAdaptedMessage{
		ID:            m.uid.Generate(),
		Provider:      payloadAttr(payload),
		CorrelationID: instrument.GetCorrelationID(ctx),
		EmittedAt:     m.clock.Now(),
		Payload:       raw,
	}, false)
}
