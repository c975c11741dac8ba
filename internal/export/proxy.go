package export

// Proxy gathers the alternatives of T and selects one. Building a proxy never
// fails; ordering happens on first use and is cached by the registry.
type Proxy[T any] struct {
	registry *Registry
}

// NewProxy returns a proxy over the alternatives of T registered in r.
func NewProxy[T any](r *Registry) *Proxy[T] {
	return &Proxy[T]{registry: r}
}

// Implementations returns the ordered alternatives.
func (p *Proxy[T]) Implementations() ([]*Lazy[T], error) {
	return ImportImplementations[T](p.registry)
}

// Select returns the first alternative after ordering.
func (p *Proxy[T]) Select() (T, error) {
	return First[T](p.registry)
}

// Each calls fn with every alternative in order.
func (p *Proxy[T]) Each(fn func(Metadata, T) error) error {
	return ForEach(p.registry, fn)
}

// Len reports how many alternatives are registered, without materializing them.
func (p *Proxy[T]) Len() (int, error) {
	impls, err := p.registry.Implementations(ContractOf[T]())
	if err != nil {
		return 0, err
	}
	return len(impls), nil
}
