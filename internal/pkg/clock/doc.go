// Package clock provides a tiny time abstraction.
//
// Code that stamps outgoing data (for example the emitted_at field of a
// published email payload) depends on Clocker so tests can use Fixed.
package clock
