package export

// ExportImplementation registers factory as an alternative implementation of T.
func ExportImplementation[T any](r *Registry, meta Metadata, factory func() (T, error)) error {
	var untyped func() (any, error)
	if factory != nil {
		untyped = func() (any, error) { return factory() }
	}
	return r.ExportImplementation(ContractOf[T](), meta, untyped)
}

// Export registers factory as the canonical export of T.
func Export[T any](r *Registry, factory func() (T, error)) error {
	var untyped func() (any, error)
	if factory != nil {
		untyped = func() (any, error) { return factory() }
	}
	return r.Export(ContractOf[T](), untyped)
}

// Import materializes the canonical export of T.
func Import[T any](r *Registry) (T, error) {
	var zero T
	contract := ContractOf[T]()
	entry, err := r.Canonical(contract)
	if err != nil {
		return zero, err
	}
	return typed[T](contract, entry).Value()
}

// ImportImplementations returns the ordered alternatives of T. Instances are
// created on first Value call and shared by every importer.
func ImportImplementations[T any](r *Registry) ([]*Lazy[T], error) {
	contract := ContractOf[T]()
	entries, err := r.Implementations(contract)
	if err != nil {
		return nil, err
	}
	result := make([]*Lazy[T], len(entries))
	for i, entry := range entries {
		result[i] = typed[T](contract, entry)
	}
	return result, nil
}

// First materializes the first alternative of T after ordering.
func First[T any](r *Registry) (T, error) {
	var zero T
	impls, err := ImportImplementations[T](r)
	if err != nil {
		return zero, err
	}
	if len(impls) == 0 {
		return zero, &NoImplementationError{Contract: ContractOf[T]()}
	}
	return impls[0].Value()
}

// ForEach materializes every alternative of T in order and calls fn with it.
// Iteration stops at the first error.
func ForEach[T any](r *Registry, fn func(Metadata, T) error) error {
	impls, err := ImportImplementations[T](r)
	if err != nil {
		return err
	}
	for _, impl := range impls {
		value, err := impl.Value()
		if err != nil {
			return err
		}
		if err := fn(impl.Metadata(), value); err != nil {
			return err
		}
	}
	return nil
}
