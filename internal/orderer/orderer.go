// Package orderer sorts named components by their before/after constraints.
package orderer

import (
	"fmt"
	"strings"
)

// Orderable is implemented by anything that carries ordering metadata.
type Orderable interface {
	Name() string
	Before() []string
	After() []string
}

// Item is a plain Orderable value.
type Item struct {
	ID          string
	BeforeNames []string
	AfterNames  []string
}

// Name implements Orderable.
func (s Item) Name() string { return s.ID }

// Before implements Orderable.
func (s Item) Before() []string { return s.BeforeNames }

// After implements Orderable.
func (s Item) After() []string { return s.AfterNames }

// Order returns items sorted so every Before and After constraint holds.
// Items without a constraint between them keep their declaration order.
// References to names that are not part of items are ignored. Unnamed items
// cannot be referenced but are still ordered by their own constraints.
func Order[T Orderable](items []T) ([]T, error) {
	if len(items) == 0 {
		return []T{}, nil
	}

	graph := NewGraph()
	keys := make([]string, len(items))
	byName := make(map[string]string, len(items))

	for i, item := range items {
		name := strings.TrimSpace(item.Name())
		if name == "" {
			// Unnamed items get a key no declared name can collide with.
			keys[i] = fmt.Sprintf("\x00#%d", i)
		} else {
			if _, exists := byName[name]; exists {
				return nil, &DuplicateNameError{Name: name}
			}
			byName[name] = name
			keys[i] = name
		}
		graph.AddNode(keys[i])
	}

	for i, item := range items {
		for _, ref := range item.Before() {
			if target, ok := byName[strings.TrimSpace(ref)]; ok && target != keys[i] {
				graph.AddEdge(keys[i], target)
			}
		}
		for _, ref := range item.After() {
			if target, ok := byName[strings.TrimSpace(ref)]; ok && target != keys[i] {
				graph.AddEdge(target, keys[i])
			}
		}
	}

	sorted, err := graph.TopologicalSort()
	if err != nil {
		if cyclic, ok := err.(*CyclicOrderingError); ok {
			for i, key := range cyclic.Cycle {
				cyclic.Cycle[i] = strings.Replace(key, "\x00#", "<unnamed>#", 1)
			}
		}
		return nil, err
	}

	index := make(map[string]int, len(keys))
	for i, key := range keys {
		index[key] = i
	}
	result := make([]T, 0, len(items))
	for _, key := range sorted {
		result = append(result, items[index[key]])
	}
	return result, nil
}
