// Package export distinguishes the single canonical export of a service
// contract from the named alternative implementations of that contract.
//
// A component declares itself an alternative with ExportImplementation. A
// proxy component, usually the canonical export, collects every alternative
// with ImportImplementations, which returns lazily materialized
// implementations ordered by their Before/After metadata. Consumers that just
// want "the" implementation call Import and never see the alternatives.
//
//	type Formatter interface{ Format(string) string }
//
//	export.ExportImplementation(reg, export.Metadata{Name: "default"}, newDefault)
//	export.ExportImplementation(reg, export.Metadata{Name: "gofmt", Before: []string{"default"}}, newGofmt)
//	export.Export(reg, func() (Formatter, error) { return &formatterProxy{impls: export.NewProxy[Formatter](reg)}, nil })
//
// Zero alternatives are not an error: ImportImplementations returns an empty
// slice and NewProxy succeeds, while Proxy.Select and First report a
// *NoImplementationError. Contradictory ordering constraints fail with
// *orderer.CyclicOrderingError the first time the contract is imported, and
// Registry.Validate surfaces them eagerly at startup.
package export
