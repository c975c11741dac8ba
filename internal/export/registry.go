package export

import (
	"context"
	"fmt"
	"sort"
	"sync"

	gocache "github.com/patrickmn/go-cache"

	"github.com/alexisbeaulieu97/partwire/internal/logger"
	"github.com/alexisbeaulieu97/partwire/internal/orderer"
	"github.com/alexisbeaulieu97/partwire/internal/ports"
	partwireerrors "github.com/alexisbeaulieu97/partwire/pkg/errors"
)

// Registry maps contracts to their canonical export and their alternative
// implementations. Registration and import are safe for concurrent use.
type Registry struct {
	mu              sync.RWMutex
	canonical       map[Contract]*Lazy[any]
	implementations map[Contract][]*Lazy[any]
	ordered         *gocache.Cache
	logger          ports.Logger
	publisher       ports.EventPublisher
	config          *RegistryConfig
}

// Option customizes a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for policy warnings.
func WithLogger(log ports.Logger) Option {
	return func(r *Registry) {
		if log != nil {
			r.logger = log
		}
	}
}

// WithPublisher sets the publisher notified when a contract is ordered.
func WithPublisher(publisher ports.EventPublisher) Option {
	return func(r *Registry) {
		r.publisher = publisher
	}
}

// NewRegistry returns an empty registry. A nil config uses DefaultConfig.
func NewRegistry(cfg *RegistryConfig, opts ...Option) *Registry {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	r := &Registry{
		canonical:       make(map[Contract]*Lazy[any]),
		implementations: make(map[Contract][]*Lazy[any]),
		// Ordered results live for the process; registration invalidates them.
		ordered: gocache.New(gocache.NoExpiration, 0),
		logger:  logger.NewNoOp(),
		config:  cfg,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) setLogger(log ports.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = log
}

// ExportImplementation registers factory as a named alternative implementation of contract.
func (r *Registry) ExportImplementation(contract Contract, meta Metadata, factory func() (any, error)) error {
	if contract == "" {
		return partwireerrors.NewComponentError(meta.Name, fmt.Errorf("contract is empty"))
	}
	if factory == nil {
		return partwireerrors.NewComponentError(meta.Name, fmt.Errorf("factory is nil"))
	}
	meta = meta.clone()
	if err := meta.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if meta.Name != "" {
		for _, existing := range r.implementations[contract] {
			if existing.meta.Name != meta.Name {
				continue
			}
			dup := &orderer.DuplicateNameError{Name: meta.Name}
			if r.config.DuplicatePolicy == PolicyStrict {
				return dup
			}
			r.logger.Warn(context.Background(), "dropping duplicate implementation",
				"contract", contract.String(), "name", meta.Name)
			return nil
		}
	}

	r.implementations[contract] = append(r.implementations[contract], NewLazy(meta, factory))
	r.ordered.Delete(contract.String())
	return nil
}

// Export registers factory as the canonical export of contract.
func (r *Registry) Export(contract Contract, factory func() (any, error)) error {
	if contract == "" {
		return partwireerrors.NewComponentError("", fmt.Errorf("contract is empty"))
	}
	if factory == nil {
		return partwireerrors.NewComponentError(contract.String(), fmt.Errorf("factory is nil"))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.canonical[contract]; exists {
		return &DuplicateExportError{Contract: contract}
	}
	r.canonical[contract] = NewLazy(Metadata{Name: contract.String()}, factory)
	return nil
}

// Canonical returns the canonical export of contract.
func (r *Registry) Canonical(contract Contract) (*Lazy[any], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.canonical[contract]
	if !ok {
		return nil, &ExportNotFoundError{Contract: contract}
	}
	return entry, nil
}

// Implementations returns the alternatives for contract in Before/After
// order. The ordering is computed once and reused until the contract gains a
// new implementation. An unknown contract yields an empty slice.
func (r *Registry) Implementations(contract Contract) ([]*Lazy[any], error) {
	if cached, ok := r.ordered.Get(contract.String()); ok {
		return append([]*Lazy[any](nil), cached.([]*Lazy[any])...), nil
	}

	r.mu.RLock()
	unordered := append([]*Lazy[any](nil), r.implementations[contract]...)
	log := r.logger
	r.mu.RUnlock()

	ordered, err := orderer.Order(unordered)
	if err != nil {
		log.Error(context.Background(), "ordering implementations failed",
			"contract", contract.String(), "error", err)
		return nil, err
	}

	r.mu.RLock()
	// Only cache when no registration raced with the ordering.
	if len(r.implementations[contract]) == len(unordered) {
		r.ordered.Set(contract.String(), ordered, gocache.NoExpiration)
	}
	r.mu.RUnlock()

	r.publishOrdered(contract, ordered)
	return append([]*Lazy[any](nil), ordered...), nil
}

// Validate orders every registered contract so contradictory constraints are
// reported at startup rather than on first import.
func (r *Registry) Validate() error {
	for _, contract := range r.Contracts() {
		if _, err := r.Implementations(Contract(contract)); err != nil {
			return fmt.Errorf("contract '%s': %w", contract, err)
		}
	}
	return nil
}

// Contracts returns every contract with a canonical export or an alternative, sorted.
func (r *Registry) Contracts() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[Contract]struct{}, len(r.implementations)+len(r.canonical))
	for contract := range r.implementations {
		seen[contract] = struct{}{}
	}
	for contract := range r.canonical {
		seen[contract] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for contract := range seen {
		names = append(names, contract.String())
	}
	sort.Strings(names)
	return names
}

func (r *Registry) publishOrdered(contract Contract, ordered []*Lazy[any]) {
	if r.publisher == nil {
		return
	}
	names := make([]string, len(ordered))
	for i, entry := range ordered {
		names[i] = entry.meta.Name
	}
	_ = r.publisher.Publish(context.Background(), ports.Event{
		Type: ports.EventImplementationsOrdered,
		Fields: map[string]interface{}{
			"contract": contract.String(),
			"order":    names,
		},
	})
}
