package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/mailadapter/internal/email/entity"
	"github.com/shandysiswandi/mailadapter/internal/pkg/instrument"
	"github.com/shandysiswandi/mailadapter/internal/pkg/validator"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type registry interface {
	Dispatch(p entity.Provider, req entity.EmailRequest) (entity.Payload, error)
	Has(p entity.Provider) bool
	Providers() []entity.Provider
}

type sink interface {
	Emit(ctx context.Context, payload entity.Payload) error
}

type Dependency struct {
	// Provider is the active provider, resolved once at startup.
	Provider   entity.Provider
	Registry   registry
	Sink       sink
	Validator  validator.Validator
	Instrument instrument.Instrumentation
}

type Usecase struct {
	provider  entity.Provider
	registry  registry
	sink      sink
	validator validator.Validator
	ins       instrument.Instrumentation
	outcomes  metric.Int64Counter
}

func New(dep Dependency) *Usecase {
	ins := dep.Instrument
	if ins == nil {
		ins = instrument.NewNoop()
	}

	outcomes, err := ins.Meter("email.usecase").Int64Counter("email.send.outcomes",
		metric.WithDescription("Email send requests by provider and outcome"))
	if err != nil {
		slog.Error("failed to create email outcome counter", "error", err)
	}

	return &Usecase{
		provider:  dep.Provider,
		registry:  dep.Registry,
		sink:      dep.Sink,
		validator: dep.Validator,
		ins:       ins,
		outcomes:  outcomes,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("email.usecase").Start(ctx, name)
}

func (s *Usecase) count(ctx context.Context, outcome string) {
	if s.outcomes == nil {
		return
	}

	s.outcomes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", s.provider.String()),
		attribute.String("outcome", outcome),
	))
}
