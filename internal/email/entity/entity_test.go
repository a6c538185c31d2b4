package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProviderFromString(t *testing.T) {
	tests := []struct {
		raw       string
		want      Provider
		wantKnown bool
	}{
		{raw: "AWS", want: ProviderAWS, wantKnown: true},
		{raw: " oci ", want: ProviderOCI, wantKnown: true},
		{raw: "Aws", want: ProviderAWS, wantKnown: true},
		{raw: "sendgrid", want: Provider("SENDGRID")},
		{raw: "", want: Provider("")},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := ProviderFromString(tt.raw)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantKnown, got.Known())
		})
	}
}

func TestPayload_Provider(t *testing.T) {
	assert.Equal(t, ProviderAWS, AWSPayload{}.Provider())
	assert.Equal(t, ProviderOCI, OCIPayload{}.Provider())
}
