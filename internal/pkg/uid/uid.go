// Package uid generates identifiers: UUIDs for correlation IDs and snowflake
// numbers for emitted payloads.
package uid

// StringID generates string identifiers.
type StringID interface {
	Generate() string
}

// NumberID generates numeric identifiers.
type NumberID interface {
	Generate() int64
}
