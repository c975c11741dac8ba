// Package contenttype classifies the data shown in a view. Content types form
// a hierarchy through base types; a listener declared for "code" also applies
// to a view whose content type is derived from "code".
package contenttype

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Built-in content type names.
const (
	Any       = "any"
	Text      = "text"
	PlainText = "plaintext"
	Code      = "code"
	Inert     = "inert"
)

// ContentType is a named node in the content type hierarchy.
type ContentType struct {
	name  string
	bases []*ContentType
}

// Name returns the display name the type was registered with.
func (c *ContentType) Name() string {
	if c == nil {
		return ""
	}
	return c.name
}

// BaseTypes returns the direct base types.
func (c *ContentType) BaseTypes() []*ContentType {
	return append([]*ContentType(nil), c.bases...)
}

// IsOfType reports whether c is the named type or derives from it. Names
// compare case-insensitively.
func (c *ContentType) IsOfType(name string) bool {
	if c == nil {
		return false
	}
	if strings.EqualFold(c.name, name) {
		return true
	}
	for _, base := range c.bases {
		if base.IsOfType(name) {
			return true
		}
	}
	return false
}

func (c *ContentType) String() string {
	return c.Name()
}

// UnknownContentTypeError is returned when a name is not registered.
type UnknownContentTypeError struct {
	Name string
}

func (e *UnknownContentTypeError) Error() string {
	return fmt.Sprintf("content type '%s' is not registered", e.Name)
}

// DuplicateContentTypeError is returned when a name is registered twice.
type DuplicateContentTypeError struct {
	Name string
}

func (e *DuplicateContentTypeError) Error() string {
	return fmt.Sprintf("content type '%s' is already registered", e.Name)
}

// Registry holds the known content types.
type Registry struct {
	mu    sync.RWMutex
	types map[string]*ContentType
}

// NewRegistry returns a registry seeded with the built-in types. "inert" does
// not derive from "any" and never matches "any" listeners.
func NewRegistry() *Registry {
	r := &Registry{types: make(map[string]*ContentType)}
	anyType := &ContentType{name: Any}
	text := &ContentType{name: Text, bases: []*ContentType{anyType}}
	r.types[Any] = anyType
	r.types[Inert] = &ContentType{name: Inert}
	r.types[Text] = text
	r.types[PlainText] = &ContentType{name: PlainText, bases: []*ContentType{text}}
	r.types[Code] = &ContentType{name: Code, bases: []*ContentType{text}}
	return r
}

// AddContentType registers name with the given base types. Without bases the
// new type derives from "any". Bases must already be registered, which also
// keeps the hierarchy acyclic.
func (r *Registry) AddContentType(name string, bases ...string) (*ContentType, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, fmt.Errorf("content type name must not be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.types[key]; exists {
		return nil, &DuplicateContentTypeError{Name: name}
	}

	if len(bases) == 0 {
		bases = []string{Any}
	}
	resolved := make([]*ContentType, 0, len(bases))
	for _, base := range bases {
		baseType, ok := r.types[strings.ToLower(strings.TrimSpace(base))]
		if !ok {
			return nil, &UnknownContentTypeError{Name: base}
		}
		resolved = append(resolved, baseType)
	}

	ct := &ContentType{name: strings.TrimSpace(name), bases: resolved}
	r.types[key] = ct
	return ct, nil
}

// Get returns the named content type.
func (r *Registry) Get(name string) (*ContentType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ct, ok := r.types[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, &UnknownContentTypeError{Name: name}
	}
	return ct, nil
}

// Names returns every registered content type name, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.types))
	for _, ct := range r.types {
		names = append(names, ct.name)
	}
	sort.Strings(names)
	return names
}
