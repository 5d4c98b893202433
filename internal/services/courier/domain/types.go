// Package domain defines the outbound message queue types
package domain

import "context"

// Message is one outbound in-game message. ActorID routes failure
// notifications back to the right operator
type Message struct {
	ID        string `json:"id"`
	ActorID   string `json:"actor_id"`
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// QueuePort enqueues messages for the global drainer. The returned channel
// resolves exactly once with the terminal outcome
type QueuePort interface {
	Enqueue(msg Message) <-chan error
	Len() int
}

// SendFunc delivers one message upstream
type SendFunc func(ctx context.Context, recipient, subject, body string) error
