package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/partwire/internal/orderer"
	partwireerrors "github.com/alexisbeaulieu97/partwire/pkg/errors"
)

// ValidateManifest performs structural and cross-field validation. Duplicate
// names and contradictory ordering constraints are rejected here so a broken
// component set fails before anything is composed.
func ValidateManifest(m *Manifest) error {
	if m == nil {
		return partwireerrors.NewValidationError("manifest", "manifest is nil", nil)
	}

	if err := ValidateStruct(m); err != nil {
		return err
	}

	seenTypes := make(map[string]struct{}, len(m.ContentTypes))
	for i, ct := range m.ContentTypes {
		key := strings.ToLower(ct.Name)
		if _, exists := seenTypes[key]; exists {
			return partwireerrors.NewValidationError(fieldForContentType(i, "name"), fmt.Sprintf("duplicate content type %q", ct.Name), nil)
		}
		seenTypes[key] = struct{}{}
	}

	seenContracts := make(map[string]struct{}, len(m.Contracts))
	for i, contract := range m.Contracts {
		if _, exists := seenContracts[contract.Contract]; exists {
			return partwireerrors.NewValidationError(fieldForContract(i, "contract"), fmt.Sprintf("duplicate contract %q", contract.Contract), nil)
		}
		seenContracts[contract.Contract] = struct{}{}

		// Duplicate implementation names are left to the registry's duplicate
		// policy; only the first declaration of a name takes part in ordering.
		if _, err := orderer.Order(firstDeclarations(contract.Implementations)); err != nil {
			return partwireerrors.NewValidationError(fieldForContract(i, "implementations"), err.Error(), err)
		}
	}

	items := make([]orderer.Item, len(m.Listeners))
	for i, listener := range m.Listeners {
		items[i] = listener.Ordering()
	}
	if _, err := orderer.Order(items); err != nil {
		field := "listeners"
		var dup *orderer.DuplicateNameError
		if errors.As(err, &dup) {
			for i, listener := range m.Listeners {
				if listener.Name == dup.Name {
					field = fieldForListener(i, "name")
				}
			}
		}
		return partwireerrors.NewValidationError(field, err.Error(), err)
	}

	return nil
}

func firstDeclarations(impls []ImplementationDecl) []orderer.Item {
	seen := make(map[string]struct{}, len(impls))
	items := make([]orderer.Item, 0, len(impls))
	for _, impl := range impls {
		item := impl.Ordering()
		name := strings.TrimSpace(item.ID)
		if name != "" {
			if _, exists := seen[name]; exists {
				continue
			}
			seen[name] = struct{}{}
		}
		items = append(items, item)
	}
	return items
}
