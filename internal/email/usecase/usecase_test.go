package usecase

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/shandysiswandi/mailadapter/internal/email/adapter"
	"github.com/shandysiswandi/mailadapter/internal/email/entity"
	"github.com/shandysiswandi/mailadapter/internal/pkg/goerror"
	"github.com/shandysiswandi/mailadapter/internal/pkg/instrument"
	"github.com/shandysiswandi/mailadapter/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSink struct {
	emitted []entity.Payload
	err     error
}

func (f *fakeSink) Emit(_ context.Context, payload entity.Payload) error {
	if f.err != nil {
		return f.err
	}
	f.emitted = append(f.emitted, payload)
	return nil
}

type brokenValidator struct{}

func (brokenValidator) Validate(any) error { return errors.New("validator exploded") }

func validRequest() entity.EmailRequest {
	return entity.EmailRequest{
		RecipientAddress:     "a@b.com",
		RecipientDisplayName: "A",
		SenderAddress:        "s@b.com",
		Subject:              "Hi",
		Body:                 "Hello",
	}
}

func newUsecase(t *testing.T, provider entity.Provider, snk *fakeSink, strategies ...adapter.Strategy) *Usecase {
	t.Helper()

	if len(strategies) == 0 {
		strategies = adapter.DefaultStrategies()
	}
	reg, err := adapter.NewRegistry(strategies...)
	require.NoError(t, err)

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	return New(Dependency{
		Provider:   provider,
		Registry:   reg,
		Sink:       snk,
		Validator:  v,
		Instrument: instrument.NewNoop(),
	})
}

func requireGoError(t *testing.T, err error) *goerror.Error {
	t.Helper()

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	return gerr
}

func TestUsecase_SendEmail_Success(t *testing.T) {
	tests := []struct {
		name     string
		provider entity.Provider
		want     entity.Payload
	}{
		{
			name:     "aws",
			provider: entity.ProviderAWS,
			want: entity.AWSPayload{
				Recipient:     "a@b.com",
				RecipientName: "A",
				Sender:        "s@b.com",
				Subject:       "Hi",
				Content:       "Hello",
			},
		},
		{
			name:     "oci",
			provider: entity.ProviderOCI,
			want: entity.OCIPayload{
				RecipientEmail: "a@b.com",
				RecipientName:  "A",
				SenderEmail:    "s@b.com",
				Subject:        "Hi",
				Body:           "Hello",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			snk := &fakeSink{}
			uc := newUsecase(t, tt.provider, snk)

			// Act
			err := uc.SendEmail(context.Background(), SendEmailInput{Request: validRequest(), Source: "test"})

			// Assert
			require.NoError(t, err)
			require.Len(t, snk.emitted, 1)
			assert.Equal(t, tt.want, snk.emitted[0])
		})
	}
}

func TestUsecase_SendEmail_UnregisteredProvider(t *testing.T) {
	// Arrange
	snk := &fakeSink{}
	called := false
	uc := newUsecase(t, entity.ProviderFromString("sendgrid"), snk, adapter.Strategy{
		Provider: entity.ProviderAWS,
		Transform: func(req entity.EmailRequest) entity.Payload {
			called = true
			return adapter.ToAWS(req)
		},
	})

	// Act
	err := uc.SendEmail(context.Background(), SendEmailInput{Request: validRequest()})

	// Assert
	gerr := requireGoError(t, err)
	assert.Equal(t, goerror.CodeConfiguration, gerr.Code())
	assert.Equal(t, "Service implementation not configured for: SENDGRID", gerr.Msg())
	assert.ErrorIs(t, err, adapter.ErrProviderNotRegistered)
	assert.False(t, called)
	assert.Empty(t, snk.emitted)
}

func TestUsecase_SendEmail_InvalidRequest(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*entity.EmailRequest)
		wantField string
	}{
		{name: "malformed recipient", mutate: func(r *entity.EmailRequest) { r.RecipientAddress = "not-an-email" }, wantField: "recipientAddress"},
		{name: "malformed sender", mutate: func(r *entity.EmailRequest) { r.SenderAddress = "nope" }, wantField: "senderAddress"},
		{name: "missing display name", mutate: func(r *entity.EmailRequest) { r.RecipientDisplayName = "" }, wantField: "recipientDisplayName"},
		{name: "blank subject", mutate: func(r *entity.EmailRequest) { r.Subject = "   " }, wantField: "subject"},
		{name: "missing body", mutate: func(r *entity.EmailRequest) { r.Body = "" }, wantField: "body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			snk := &fakeSink{}
			called := false
			uc := newUsecase(t, entity.ProviderAWS, snk, adapter.Strategy{
				Provider: entity.ProviderAWS,
				Transform: func(req entity.EmailRequest) entity.Payload {
					called = true
					return adapter.ToAWS(req)
				},
			})
			req := validRequest()
			tt.mutate(&req)

			// Act
			err := uc.SendEmail(context.Background(), SendEmailInput{Request: req})

			// Assert
			gerr := requireGoError(t, err)
			assert.Equal(t, goerror.CodeInvalidInput, gerr.Code())

			var verr validator.V10ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Len(t, verr, 1)
			assert.Contains(t, verr, tt.wantField)
			assert.False(t, called)
			assert.Empty(t, snk.emitted)
		})
	}
}

func TestUsecase_SendEmail_InvalidPayloadNeverEmits(t *testing.T) {
	// Arrange
	snk := &fakeSink{}
	uc := newUsecase(t, entity.ProviderOCI, snk, adapter.Strategy{
		Provider: entity.ProviderOCI,
		Transform: func(req entity.EmailRequest) entity.Payload {
			p := adapter.ToOCI(req).(entity.OCIPayload)
			p.SenderEmail = "broken"
			p.Body = ""
			return p
		},
	})

	// Act
	err := uc.SendEmail(context.Background(), SendEmailInput{Request: validRequest()})

	// Assert
	gerr := requireGoError(t, err)
	assert.Equal(t, goerror.CodeInvalidOutput, gerr.Code())

	var verr validator.V10ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"body", "senderEmail"}, sortedKeys(verr))
	assert.Empty(t, snk.emitted)
}

func TestUsecase_SendEmail_SinkFailure(t *testing.T) {
	snk := &fakeSink{err: errors.New("broker down")}
	uc := newUsecase(t, entity.ProviderAWS, snk)

	err := uc.SendEmail(context.Background(), SendEmailInput{Request: validRequest()})

	gerr := requireGoError(t, err)
	assert.Equal(t, goerror.CodeInternal, gerr.Code())
	assert.Equal(t, "Internal server error", gerr.Msg())
}

func TestUsecase_ValidateRequest(t *testing.T) {
	uc := newUsecase(t, entity.ProviderAWS, &fakeSink{})

	assert.NoError(t, uc.ValidateRequest(context.Background(), validRequest()))

	err := uc.ValidateRequest(context.Background(), entity.EmailRequest{})
	var verr validator.V10ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"body", "recipientAddress", "recipientDisplayName", "senderAddress", "subject"}, sortedKeys(verr))
}

func TestUsecase_ValidateRequest_ValidatorFailure(t *testing.T) {
	reg, err := adapter.NewRegistry(adapter.DefaultStrategies()...)
	require.NoError(t, err)
	uc := New(Dependency{Provider: entity.ProviderAWS, Registry: reg, Sink: &fakeSink{}, Validator: brokenValidator{}})

	err = uc.ValidateRequest(context.Background(), validRequest())

	gerr := requireGoError(t, err)
	assert.Equal(t, goerror.CodeInternal, gerr.Code())
}

func TestUsecase_Health(t *testing.T) {
	uc := newUsecase(t, entity.ProviderOCI, &fakeSink{})

	out := uc.Health(context.Background())

	assert.Equal(t, HealthOutput{
		Status:    HealthStatusUp,
		Provider:  entity.ProviderOCI,
		Providers: []entity.Provider{entity.ProviderAWS, entity.ProviderOCI},
	}, out)

	uc = newUsecase(t, "SENDGRID", &fakeSink{})
	assert.Equal(t, HealthStatusMisconfigured, uc.Health(context.Background()).Status)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
