package view

import (
	"fmt"
	"sync"

	"github.com/alexisbeaulieu97/partwire/internal/config"
	"github.com/alexisbeaulieu97/partwire/internal/orderer"
)

// CreationListener is notified when a matching text view is created.
type CreationListener interface {
	TextViewCreated(view TextView)
}

// ListenerFunc adapts a function to CreationListener.
type ListenerFunc func(view TextView)

// TextViewCreated implements CreationListener.
func (f ListenerFunc) TextViewCreated(view TextView) {
	f(view)
}

// ListenerMetadata declares a listener's identity, applicability filters and ordering.
type ListenerMetadata struct {
	Name         string   `validate:"required,component_name"`
	ContentTypes []string `validate:"required,min=1,dive,content_type_name"`
	// Roles limits the listener to views carrying at least one of these
	// roles. An empty list applies to every role set.
	Roles  []string `validate:"omitempty,dive,role_name"`
	Before []string `validate:"omitempty,dive,required"`
	After  []string `validate:"omitempty,dive,required"`
}

// Matches reports whether the listener applies to v.
func (m ListenerMetadata) Matches(v TextView) bool {
	if len(m.Roles) > 0 && !v.Roles().ContainsAny(m.Roles...) {
		return false
	}
	ct := v.ContentType()
	for _, name := range m.ContentTypes {
		if ct.IsOfType(name) {
			return true
		}
	}
	return false
}

type registeredListener struct {
	meta     ListenerMetadata
	listener CreationListener
}

func (r *registeredListener) Name() string     { return r.meta.Name }
func (r *registeredListener) Before() []string { return r.meta.Before }
func (r *registeredListener) After() []string  { return r.meta.After }

// ListenerRegistry holds creation listeners in their resolved order.
type ListenerRegistry struct {
	mu       sync.RWMutex
	declared []*registeredListener
	ordered  []*registeredListener
}

// NewListenerRegistry returns an empty registry.
func NewListenerRegistry() *ListenerRegistry {
	return &ListenerRegistry{}
}

// Register adds listener. Names must be unique, and a registration that would
// make the ordering constraints contradictory is rejected and not kept.
func (r *ListenerRegistry) Register(meta ListenerMetadata, listener CreationListener) error {
	if listener == nil {
		return fmt.Errorf("listener '%s' is nil", meta.Name)
	}
	if err := config.ValidateStruct(meta); err != nil {
		return err
	}
	meta.ContentTypes = append([]string(nil), meta.ContentTypes...)
	meta.Roles = append([]string(nil), meta.Roles...)
	meta.Before = append([]string(nil), meta.Before...)
	meta.After = append([]string(nil), meta.After...)

	r.mu.Lock()
	defer r.mu.Unlock()

	candidate := append(append([]*registeredListener(nil), r.declared...), &registeredListener{meta: meta, listener: listener})
	ordered, err := orderer.Order(candidate)
	if err != nil {
		return err
	}

	r.declared = candidate
	r.ordered = ordered
	return nil
}

// Names returns listener names in notification order.
func (r *ListenerRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.ordered))
	for i, entry := range r.ordered {
		names[i] = entry.meta.Name
	}
	return names
}

// Len returns the number of registered listeners.
func (r *ListenerRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ordered)
}

// matching returns the listeners that apply to v, in notification order.
func (r *ListenerRegistry) matching(v TextView) []*registeredListener {
	r.mu.RLock()
	snapshot := append([]*registeredListener(nil), r.ordered...)
	r.mu.RUnlock()

	out := snapshot[:0]
	for _, entry := range snapshot {
		if entry.meta.Matches(v) {
			out = append(out, entry)
		}
	}
	return out
}
