package config

import (
	"io"
	"time"
)

// Config defines a set of methods for retrieving configuration values of various types.
// Implementations handle retrieval and type conversion; a missing key yields the
// zero value of the requested type.
type Config interface {
	io.Closer

	// GetBool retrieves the value associated with key as a bool.
	GetBool(key string) bool

	// GetString retrieves the value associated with key as a string.
	GetString(key string) string

	// GetInt retrieves the value associated with key as an int.
	GetInt(key string) int

	// GetUint16 retrieves the value associated with key as a uint16.
	GetUint16(key string) uint16

	// GetUint64 retrieves the value associated with key as a uint64.
	GetUint64(key string) uint64

	// GetFloat64 retrieves the value associated with key as a float64.
	GetFloat64(key string) float64

	// GetSecond retrieves the value associated with key as a number of seconds.
	GetSecond(key string) time.Duration

	// GetMillisecond retrieves the value associated with key as a number of milliseconds.
	GetMillisecond(key string) time.Duration

	// GetArray retrieves the value associated with key as a slice of strings.
	// Values are stored with format <element1>,<element2>,...
	// Empty elements are dropped, so an unset key yields an empty slice.
	GetArray(key string) []string
}
