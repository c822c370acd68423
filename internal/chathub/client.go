package chathub

import "duetchat/backend/internal/models"

// Client is the interface for one live realtime connection. It abstracts the
// underlying transport so the hub can manage connections uniformly and tests
// can substitute in-memory fakes.
type Client interface {
	// ID returns the unique connection identifier. It is stable for the
	// lifetime of the connection and never reused.
	ID() string

	// Enqueue hands an outbound event to the client's write pump without
	// blocking. It returns false when the event cannot be accepted, either
	// because the client is closed or its buffer is full. Safe to call
	// concurrently with Close.
	Enqueue(ev models.ServerEvent) bool

	// Run starts the client's read and write pumps.
	Run()

	// Close stops accepting outbound events and shuts down the write pump.
	// Idempotent.
	Close()
}
