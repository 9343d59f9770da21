package queue

import "context"

// Client sends messages to a queue backend.
type Client interface {
	Send(ctx context.Context, msg Message) error
}

// Received is a delivered message with the handle needed to ack it.
type Received struct {
	Body   string
	Handle string
}

// Consumer receives and acknowledges messages from a queue backend.
type Consumer interface {
	Receive(ctx context.Context, max int) ([]Received, error)
	Delete(ctx context.Context, handle string) error
}
