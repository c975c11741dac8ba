package export

import (
	"fmt"
	"sync"
)

// Lazy pairs implementation metadata with a factory that runs at most once.
type Lazy[T any] struct {
	meta    Metadata
	factory func() (T, error)

	once  sync.Once
	value T
	err   error
}

// NewLazy wraps factory with metadata.
func NewLazy[T any](meta Metadata, factory func() (T, error)) *Lazy[T] {
	return &Lazy[T]{meta: meta, factory: factory}
}

// Metadata returns the implementation's metadata.
func (l *Lazy[T]) Metadata() Metadata {
	return l.meta
}

// Name implements orderer.Orderable.
func (l *Lazy[T]) Name() string { return l.meta.Name }

// Before implements orderer.Orderable.
func (l *Lazy[T]) Before() []string { return l.meta.Before }

// After implements orderer.Orderable.
func (l *Lazy[T]) After() []string { return l.meta.After }

// Value materializes the implementation on first call and returns the cached
// instance afterwards. A factory error is cached as well.
func (l *Lazy[T]) Value() (T, error) {
	l.once.Do(func() {
		defer func() {
			if r := recover(); r != nil {
				l.err = fmt.Errorf("factory for '%s' panicked: %v", l.meta.Name, r)
			}
		}()
		l.value, l.err = l.factory()
	})
	return l.value, l.err
}

// typed adapts an untyped lazy entry to contract type T, sharing its instance.
func typed[T any](contract Contract, base *Lazy[any]) *Lazy[T] {
	return NewLazy(base.meta, func() (T, error) {
		var zero T
		raw, err := base.Value()
		if err != nil {
			return zero, err
		}
		value, ok := raw.(T)
		if !ok {
			return zero, &ContractMismatchError{
				Contract:  contract,
				Component: base.meta.Name,
				Actual:    fmt.Sprintf("%T", raw),
			}
		}
		return value, nil
	})
}
