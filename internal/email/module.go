package email

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/mailadapter/internal/email/adapter"
	"github.com/shandysiswandi/mailadapter/internal/email/entity"
	"github.com/shandysiswandi/mailadapter/internal/email/inbound"
	"github.com/shandysiswandi/mailadapter/internal/email/outbound/sink"
	"github.com/shandysiswandi/mailadapter/internal/email/usecase"
	"github.com/shandysiswandi/mailadapter/internal/pkg/clock"
	"github.com/shandysiswandi/mailadapter/internal/pkg/config"
	"github.com/shandysiswandi/mailadapter/internal/pkg/goroutine"
	"github.com/shandysiswandi/mailadapter/internal/pkg/instrument"
	"github.com/shandysiswandi/mailadapter/internal/pkg/messaging"
	"github.com/shandysiswandi/mailadapter/internal/pkg/router"
	"github.com/shandysiswandi/mailadapter/internal/pkg/uid"
	"github.com/shandysiswandi/mailadapter/internal/pkg/validator"
)

var (
	// ErrProviderRequired is returned when email.provider is empty.
	ErrProviderRequired = errors.New("email: provider is required")
	// ErrUnknownSink is returned for an unsupported email.sink.driver.
	ErrUnknownSink = errors.New("email: unknown sink driver")
	// ErrMessagingRequired is returned when the messaging sink has no broker client.
	ErrMessagingRequired = errors.New("email: messaging sink requires messaging.driver")
)

// Config is the email settings resolved once at startup.
type Config struct {
	Provider      entity.Provider
	StrictStartup bool
	SinkDriver    string
	Sink          sink.MessagingConfig
}

// ConfigFrom reads the email.* keys. strict_startup defaults to true.
func ConfigFrom(cfg config.Config) Config {
	strict := true
	if cfg.GetString("email.strict_startup") != "" {
		strict = cfg.GetBool("email.strict_startup")
	}

	return Config{
		Provider:      entity.ProviderFromString(cfg.GetString("email.provider")),
		StrictStartup: strict,
		SinkDriver:    strings.ToLower(strings.TrimSpace(cfg.GetString("email.sink.driver"))),
		Sink: sink.MessagingConfig{
			Topic:      cfg.GetString("email.sink.topic"),
			MaxRetries: cfg.GetUint64("email.sink.max_retries"),
			RetryBase:  cfg.GetMillisecond("email.sink.retry_base_ms"),
		},
	}
}

type Dependency struct {
	Ctx        context.Context
	Email      Config
	Config     config.Config
	Messaging  messaging.Messaging
	Instrument instrument.Instrumentation
	UID        uid.NumberID
	UUID       uid.StringID
	Clock      clock.Clocker
	Goroutine  *goroutine.Manager
	Validator  validator.Validator
	Router     *router.Router
	// Output, when set, replaces the configured sink with one writing to it.
	Output io.Writer
}

// CheckProvider reports whether p is set and has a registered transform.
func CheckProvider(reg *adapter.Registry, p entity.Provider) error {
	if p == "" {
		return ErrProviderRequired
	}
	if !reg.Has(p) {
		return fmt.Errorf("%w: %s", adapter.ErrProviderNotRegistered, p)
	}
	return nil
}

// NewUsecase builds the registry, the sink and the pipeline. With
// StrictStartup an unusable provider fails here instead of on every request.
func NewUsecase(dep Dependency) (*usecase.Usecase, error) {
	if dep.Instrument == nil {
		dep.Instrument = instrument.NewNoop()
	}

	reg, err := adapter.NewRegistry(adapter.DefaultStrategies()...)
	if err != nil {
		return nil, err
	}

	if err := CheckProvider(reg, dep.Email.Provider); err != nil {
		if dep.Email.StrictStartup {
			return nil, err
		}
		slog.Error("email provider is not usable, every request will fail", "provider", dep.Email.Provider, "error", err)
	}

	snk, err := newSink(dep)
	if err != nil {
		return nil, err
	}

	return usecase.New(usecase.Dependency{
		Provider:   dep.Email.Provider,
		Registry:   reg,
		Sink:       snk,
		Validator:  dep.Validator,
		Instrument: dep.Instrument,
	}), nil
}

type emitter interface {
	Emit(ctx context.Context, payload entity.Payload) error
}

func newSink(dep Dependency) (emitter, error) {
	if dep.Output != nil {
		return sink.NewWriter(dep.Instrument, dep.Output), nil
	}

	switch dep.Email.SinkDriver {
	case "", sink.DriverLog:
		return sink.NewLog(dep.Instrument), nil
	case sink.DriverMessaging:
		if dep.Messaging == nil {
			return nil, ErrMessagingRequired
		}
		return sink.NewMessaging(dep.Messaging, dep.Instrument, dep.UID, dep.Clock, dep.Email.Sink), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSink, dep.Email.SinkDriver)
	}
}

func New(dep Dependency) error {
	uc, err := NewUsecase(dep)
	if err != nil {
		return err
	}

	inbound.RegisterHTTPEndpoint(dep.Router, uc)
	if dep.Ctx != nil && dep.Messaging != nil {
		inbound.RegisterMQConsumer(dep.Ctx, dep.Config, dep.Goroutine, dep.Messaging, dep.UUID, uc, dep.Instrument)
	}

	return nil
}
