package config

import "github.com/alexisbeaulieu97/partwire/internal/orderer"

// Manifest is a declarative description of a component set: content types,
// alternative implementations per contract, and view-creation listeners.
type Manifest struct {
	Version      string            `yaml:"version" validate:"required,manifest_version"`
	Name         string            `yaml:"name" validate:"required,min=1,max=100"`
	ContentTypes []ContentTypeDecl `yaml:"content_types,omitempty" validate:"omitempty,dive"`
	Contracts    []ContractDecl    `yaml:"contracts,omitempty" validate:"omitempty,dive"`
	Listeners    []ListenerDecl    `yaml:"listeners,omitempty" validate:"omitempty,dive"`
}

// ContentTypeDecl declares a content type and its base types.
type ContentTypeDecl struct {
	Name  string   `yaml:"name" validate:"required,content_type_name"`
	Bases []string `yaml:"base,omitempty" validate:"omitempty,dive,content_type_name"`
}

// ContractDecl lists the alternative implementations exported for one contract.
type ContractDecl struct {
	Contract        string               `yaml:"contract" validate:"required,component_name"`
	Implementations []ImplementationDecl `yaml:"implementations" validate:"omitempty,dive"`
}

// ImplementationDecl is one alternative implementation of a contract.
type ImplementationDecl struct {
	Name        string   `yaml:"name" validate:"omitempty,component_name"`
	Description string   `yaml:"description,omitempty" validate:"max=256"`
	Before      []string `yaml:"before,omitempty" validate:"omitempty,dive,required"`
	After       []string `yaml:"after,omitempty" validate:"omitempty,dive,required"`
}

// Ordering returns the declaration's ordering metadata.
func (d ImplementationDecl) Ordering() orderer.Item {
	return orderer.Item{ID: d.Name, BeforeNames: d.Before, AfterNames: d.After}
}

// ListenerDecl declares a view-creation listener and its applicability filters.
type ListenerDecl struct {
	Name         string   `yaml:"name" validate:"required,component_name"`
	ContentTypes []string `yaml:"content_types" validate:"required,min=1,dive,content_type_name"`
	Roles        []string `yaml:"roles,omitempty" validate:"omitempty,dive,role_name"`
	Before       []string `yaml:"before,omitempty" validate:"omitempty,dive,required"`
	After        []string `yaml:"after,omitempty" validate:"omitempty,dive,required"`
	// Simulate makes a dry-run listener misbehave. "panic" is the only mode.
	Simulate string `yaml:"simulate,omitempty" validate:"omitempty,oneof=panic"`
}

// Ordering returns the declaration's ordering metadata.
func (d ListenerDecl) Ordering() orderer.Item {
	return orderer.Item{ID: d.Name, BeforeNames: d.Before, AfterNames: d.After}
}
