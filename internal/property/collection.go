package property

import (
	"fmt"
	"reflect"
)

// Owner is implemented by entities that control the lifetime of their properties.
type Owner interface {
	// Properties returns the collection owned by the entity. Every call
	// returns the same instance.
	Properties() *Collection
}

// Entry is a single key/value pair in a Collection.
type Entry struct {
	Key   any
	Value any
}

// Collection is a mutable keyed property bag.
type Collection struct {
	values map[any]any
	order  []any
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{values: make(map[any]any)}
}

// AddProperty stores value under key, failing when the key already exists.
func (c *Collection) AddProperty(key, value any) error {
	if err := checkKey(key); err != nil {
		return err
	}
	c.init()
	if _, exists := c.values[key]; exists {
		return &DuplicateKeyError{Key: key}
	}
	c.values[key] = value
	c.order = append(c.order, key)
	return nil
}

// SetProperty stores value under key, replacing any previous value.
func (c *Collection) SetProperty(key, value any) {
	if checkKey(key) != nil {
		panic(fmt.Sprintf("property: invalid key %#v", key))
	}
	c.init()
	if _, exists := c.values[key]; !exists {
		c.order = append(c.order, key)
	}
	c.values[key] = value
}

// GetProperty returns the value stored under key.
func (c *Collection) GetProperty(key any) (any, error) {
	value, ok := c.TryGetProperty(key)
	if !ok {
		return nil, &KeyNotFoundError{Key: key}
	}
	return value, nil
}

// TryGetProperty returns the value stored under key. The boolean is false only
// when the key is absent, so a stored nil is reported as (nil, true).
func (c *Collection) TryGetProperty(key any) (any, bool) {
	if c == nil || c.values == nil || checkKey(key) != nil {
		return nil, false
	}
	value, ok := c.values[key]
	return value, ok
}

// ContainsProperty reports whether key is present.
func (c *Collection) ContainsProperty(key any) bool {
	_, ok := c.TryGetProperty(key)
	return ok
}

// RemoveProperty deletes key and reports whether it was present.
func (c *Collection) RemoveProperty(key any) bool {
	if !c.ContainsProperty(key) {
		return false
	}
	delete(c.values, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// GetOrCreateSingletonProperty returns the value under key, calling create and
// storing its result when the key is absent.
func (c *Collection) GetOrCreateSingletonProperty(key any, create func() any) any {
	if value, ok := c.TryGetProperty(key); ok {
		return value
	}
	value := create()
	c.SetProperty(key, value)
	return value
}

// PropertyList returns a snapshot of all entries in insertion order.
func (c *Collection) PropertyList() []Entry {
	if c == nil {
		return nil
	}
	entries := make([]Entry, 0, len(c.order))
	for _, key := range c.order {
		entries = append(entries, Entry{Key: key, Value: c.values[key]})
	}
	return entries
}

// Len returns the number of stored properties.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.values)
}

func (c *Collection) init() {
	if c.values == nil {
		c.values = make(map[any]any)
	}
}

func checkKey(key any) error {
	if key == nil {
		return fmt.Errorf("property key must not be nil")
	}
	if !reflect.TypeOf(key).Comparable() {
		return fmt.Errorf("property key of type %T is not comparable", key)
	}
	return nil
}

// Bag is an embeddable Owner implementation. The zero value is ready to use
// and creates its collection on first access.
type Bag struct {
	props *Collection
}

// Properties implements Owner.
func (b *Bag) Properties() *Collection {
	if b.props == nil {
		b.props = NewCollection()
	}
	return b.props
}

var _ Owner = (*Bag)(nil)
