package entity

import "strings"

// Provider identifies an outbound email provider format.
//
// Unknown identifiers are representable so configuration mistakes can be
// reported by name.
type Provider string

const (
	ProviderAWS Provider = "AWS"
	ProviderOCI Provider = "OCI"
)

// ProviderFromString parses raw case-insensitively. Values outside the known
// set are kept, upper-cased, as an unknown provider.
func ProviderFromString(raw string) Provider {
	return Provider(strings.ToUpper(strings.TrimSpace(raw)))
}

// Known reports whether p is one of the providers this build understands.
func (p Provider) Known() bool {
	switch p {
	case ProviderAWS, ProviderOCI:
		return true
	default:
		return false
	}
}

func (p Provider) String() string {
	return string(p)
}
