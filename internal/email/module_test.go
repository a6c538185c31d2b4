package email

import (
	"bytes"
	"context"
	"testing"

	"github.com/shandysiswandi/mailadapter/internal/email/adapter"
	"github.com/shandysiswandi/mailadapter/internal/email/entity"
	"github.com/shandysiswandi/mailadapter/internal/email/usecase"
	"github.com/shandysiswandi/mailadapter/internal/pkg/clock"
	"github.com/shandysiswandi/mailadapter/internal/pkg/config"
	"github.com/shandysiswandi/mailadapter/internal/pkg/messaging"
	"github.com/shandysiswandi/mailadapter/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedNumber int64

func (f fixedNumber) Generate() int64 { return int64(f) }

func loadConfig(t *testing.T, yaml string) config.Config {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(yaml))
	require.NoError(t, err)
	return cfg
}

func TestConfigFrom(t *testing.T) {
	// Arrange
	cfg := loadConfig(t, `
email:
  provider: " oci "
  sink:
    driver: Messaging
    topic: adapted
    max_retries: 4
    retry_base_ms: 250
`)

	// Act
	got := ConfigFrom(cfg)

	// Assert
	assert.Equal(t, entity.ProviderOCI, got.Provider)
	assert.True(t, got.StrictStartup)
	assert.Equal(t, "messaging", got.SinkDriver)
	assert.Equal(t, "adapted", got.Sink.Topic)
	assert.Equal(t, uint64(4), got.Sink.MaxRetries)
	assert.Equal(t, "250ms", got.Sink.RetryBase.String())
}

func TestConfigFrom_StrictStartupDisabled(t *testing.T) {
	cfg := loadConfig(t, "email:\n  provider: AWS\n  strict_startup: false\n")

	assert.False(t, ConfigFrom(cfg).StrictStartup)
}

func TestCheckProvider(t *testing.T) {
	reg, err := adapter.NewRegistry(adapter.DefaultStrategies()...)
	require.NoError(t, err)

	assert.NoError(t, CheckProvider(reg, entity.ProviderAWS))
	assert.ErrorIs(t, CheckProvider(reg, ""), ErrProviderRequired)
	err = CheckProvider(reg, entity.Provider("SMTP"))
	assert.ErrorIs(t, err, adapter.ErrProviderNotRegistered)
	assert.ErrorContains(t, err, "SMTP")
}

func newDependency(t *testing.T, cfg Config) Dependency {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	return Dependency{Email: cfg, Validator: v, UID: fixedNumber(1), Clock: clock.New()}
}

func TestNewUsecase(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		broker  bool
		wantErr error
	}{
		{name: "log sink", cfg: Config{Provider: entity.ProviderAWS, StrictStartup: true}},
		{name: "messaging sink", cfg: Config{Provider: entity.ProviderOCI, StrictStartup: true, SinkDriver: "messaging"}, broker: true},
		{name: "messaging sink without broker", cfg: Config{Provider: entity.ProviderOCI, SinkDriver: "messaging"}, wantErr: ErrMessagingRequired},
		{name: "unknown sink", cfg: Config{Provider: entity.ProviderOCI, SinkDriver: "smtp"}, wantErr: ErrUnknownSink},
		{name: "strict unknown provider", cfg: Config{Provider: "SMTP", StrictStartup: true}, wantErr: adapter.ErrProviderNotRegistered},
		{name: "strict empty provider", cfg: Config{StrictStartup: true}, wantErr: ErrProviderRequired},
		{name: "lenient unknown provider", cfg: Config{Provider: "SMTP"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dep := newDependency(t, tt.cfg)
			if tt.broker {
				dep.Messaging = messaging.NewMemory()
			}

			uc, err := NewUsecase(dep)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, uc)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, uc)
		})
	}
}

func TestNewUsecase_Output(t *testing.T) {
	// Arrange
	var out bytes.Buffer
	dep := newDependency(t, Config{Provider: entity.ProviderOCI, StrictStartup: true})
	dep.Output = &out

	uc, err := NewUsecase(dep)
	require.NoError(t, err)

	// Act
	err = uc.SendEmail(context.Background(), usecase.SendEmailInput{
		Request: entity.EmailRequest{
			RecipientAddress:     "a@b.com",
			RecipientDisplayName: "A",
			SenderAddress:        "s@b.com",
			Subject:              "Hi",
			Body:                 "Hello",
		},
		Source: "test",
	})

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"recipientEmail": "a@b.com"`)
	assert.Contains(t, out.String(), `"senderEmail": "s@b.com"`)
}
