package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/mailadapter/internal/email/entity"
	"github.com/shandysiswandi/mailadapter/internal/pkg/goerror"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	outcomeEmitted       = "emitted"
	outcomeInvalidInput  = "invalid_input"
	outcomeConfiguration = "configuration_error"
	outcomeInvalidOutput = "invalid_output"
	outcomeSinkFailed    = "sink_failed"
)

type SendEmailInput struct {
	Request entity.EmailRequest
	// Source names the boundary the request came from, e.g. "http" or "mq".
	Source string
}

// SendEmail validates the request, adapts it to the active provider, validates
// the adapted payload and emits it. Nothing is emitted unless every step passes.
func (s *Usecase) SendEmail(ctx context.Context, in SendEmailInput) error {
	ctx, span := s.startSpan(ctx, "SendEmail")
	defer span.End()

	span.SetAttributes(
		attribute.String("email.provider", s.provider.String()),
		attribute.String("email.source", in.Source),
	)
	span.AddEvent("received")
	slog.InfoContext(ctx, "processing email request", "provider", s.provider, "source", in.Source)

	if err := s.ValidateRequest(ctx, in.Request); err != nil {
		return s.fail(ctx, span, outcomeInvalidInput, err)
	}

	payload, err := s.registry.Dispatch(s.provider, in.Request)
	if err != nil {
		slog.ErrorContext(ctx, "no transform registered for the active provider", "provider", s.provider, "error", err)
		return s.fail(ctx, span, outcomeConfiguration,
			goerror.NewConfiguration(err, "Service implementation not configured for: "+s.provider.String()))
	}
	span.AddEvent("dispatched")

	if err := s.validatePayload(ctx, payload); err != nil {
		return s.fail(ctx, span, outcomeInvalidOutput, err)
	}
	span.AddEvent("validated")

	if err := s.sink.Emit(ctx, payload); err != nil {
		slog.ErrorContext(ctx, "failed to emit adapted payload", "provider", s.provider, "error", err)
		return s.fail(ctx, span, outcomeSinkFailed, goerror.NewServer(err))
	}
	span.AddEvent("emitted")
	s.count(ctx, outcomeEmitted)

	return nil
}

func (s *Usecase) fail(ctx context.Context, span trace.Span, outcome string, err error) error {
	span.AddEvent("failed", trace.WithAttributes(attribute.String("email.outcome", outcome)))
	span.RecordError(err)
	span.SetStatus(codes.Error, outcome)
	s.count(ctx, outcome)

	return err
}
