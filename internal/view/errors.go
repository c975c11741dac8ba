package view

import "fmt"

// ListenerFaultError records a listener that panicked while handling a view.
type ListenerFaultError struct {
	Listener string
	ViewID   string
	Value    any
	Stack    []byte
}

func (e *ListenerFaultError) Error() string {
	return fmt.Sprintf("listener '%s' failed for view %s: %v", e.Listener, e.ViewID, e.Value)
}

// Unwrap exposes the panic value when it was an error.
func (e *ListenerFaultError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// HostClosedError is returned when creating a view on a closed host.
type HostClosedError struct{}

func (HostClosedError) Error() string {
	return "view host is closed"
}
