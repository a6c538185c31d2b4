// Package messaging provides a broker-agnostic API for publishing and
// consuming messages.
//
// Kafka, NATS, NSQ, Google Pub/Sub and an in-process memory broker share the
// Messaging interface and the Message type, so modules publish and consume
// without knowing which broker is configured.
package messaging
