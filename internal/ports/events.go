package ports

import "context"

const (
	// EventViewCreated is emitted after a text view is built and its listeners notified.
	EventViewCreated = "view.created"
	// EventViewClosed is emitted when a text view is closed.
	EventViewClosed = "view.closed"
	// EventListenerFailed is emitted when a creation listener faults.
	EventListenerFailed = "listener.failed"
	// EventImplementationsOrdered is emitted when a contract's implementations are ordered.
	EventImplementationsOrdered = "implementations.ordered"
)

// DomainEvent represents a significant occurrence in the composition host.
type DomainEvent interface {
	EventType() string
	Payload() interface{}
}

// EventPublisher distributes events to interested subscribers. Dispatch is
// synchronous: Publish blocks until all handlers run. Implementations must be
// thread-safe.
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
}

// EventHandler processes an event of a specific type. Failures are surfaced
// via returned errors so publishers can log them and continue delivering to
// remaining subscribers.
type EventHandler func(context.Context, DomainEvent) error

// Subscription represents a registered handler.
type Subscription interface {
	Unsubscribe()
}

// Event is a basic DomainEvent carrying a map payload.
type Event struct {
	Type   string
	Fields map[string]interface{}
}

// EventType implements DomainEvent.
func (e Event) EventType() string { return e.Type }

// Payload implements DomainEvent.
func (e Event) Payload() interface{} { return e.Fields }
