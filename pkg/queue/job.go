package queue

import "context"

// Job is a registered handler for one message type.
type Job interface {
	// Name identifies the job in logs.
	Name() string

	// Type is the message type this job consumes.
	Type() string

	// Handle processes one payload. A returned error triggers the retry
	// policy and eventually the dead letter queue.
	Handle(ctx context.Context, payload interface{}) error
}
