package adapter

import (
	"testing"

	"github.com/shandysiswandi/mailadapter/internal/email/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleRequest = entity.EmailRequest{
	RecipientAddress:     "a@b.com",
	RecipientDisplayName: "A",
	SenderAddress:        "s@b.com",
	Subject:              "Hi",
	Body:                 "Hello",
}

func TestRegistry_Dispatch(t *testing.T) {
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
			reg, err := NewRegistry(DefaultStrategies()...)
			require.NoError(t, err)

			// Act
			got, err := reg.Dispatch(tt.provider, sampleRequest)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.provider, got.Provider())
		})
	}
}

func TestRegistry_Dispatch_NotRegistered(t *testing.T) {
	// Arrange
	called := false
	reg, err := NewRegistry(Strategy{
		Provider: entity.ProviderAWS,
		Transform: func(req entity.EmailRequest) entity.Payload {
			called = true
			return ToAWS(req)
		},
	})
	require.NoError(t, err)

	for _, p := range []entity.Provider{entity.ProviderOCI, entity.ProviderFromString("sendgrid"), ""} {
		// Act
		got, err := reg.Dispatch(p, sampleRequest)

		// Assert
		require.ErrorIs(t, err, ErrProviderNotRegistered)
		assert.Contains(t, err.Error(), p.String())
		assert.Nil(t, got)
	}
	assert.False(t, called)
}

func TestNewRegistry_Duplicate(t *testing.T) {
	_, err := NewRegistry(
		Strategy{Provider: entity.ProviderAWS, Transform: ToAWS},
		Strategy{Provider: entity.ProviderOCI, Transform: ToOCI},
		Strategy{Provider: entity.ProviderAWS, Transform: ToAWS},
	)

	require.ErrorIs(t, err, ErrDuplicateProvider)
	assert.Contains(t, err.Error(), "AWS")
}

func TestNewRegistry_NilTransform(t *testing.T) {
	_, err := NewRegistry(Strategy{Provider: entity.ProviderOCI})

	require.ErrorIs(t, err, ErrNilTransform)
	assert.Contains(t, err.Error(), "OCI")
}

func TestRegistry_HasAndProviders(t *testing.T) {
	reg, err := NewRegistry(
		Strategy{Provider: entity.ProviderOCI, Transform: ToOCI},
		Strategy{Provider: entity.ProviderAWS, Transform: ToAWS},
	)
	require.NoError(t, err)

	assert.True(t, reg.Has(entity.ProviderAWS))
	assert.False(t, reg.Has("SENDGRID"))
	assert.Equal(t, []entity.Provider{entity.ProviderAWS, entity.ProviderOCI}, reg.Providers())
}

func TestNewRegistry_Empty(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)

	_, err = reg.Dispatch(entity.ProviderAWS, sampleRequest)

	assert.ErrorIs(t, err, ErrProviderNotRegistered)
	assert.Empty(t, reg.Providers())
}
