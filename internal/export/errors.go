package export

import "fmt"

// NoImplementationError is returned when a contract has no alternative implementations.
type NoImplementationError struct {
	Contract Contract
}

func (e *NoImplementationError) Error() string {
	return fmt.Sprintf("no implementation exported for contract '%s'\nHint: register one with ExportImplementation before importing", e.Contract)
}

// ExportNotFoundError is returned when a contract has no canonical export.
type ExportNotFoundError struct {
	Contract Contract
}

func (e *ExportNotFoundError) Error() string {
	return fmt.Sprintf("contract '%s' has no canonical export\nHint: register one with Export", e.Contract)
}

// DuplicateExportError is returned when a contract is exported canonically twice.
type DuplicateExportError struct {
	Contract Contract
}

func (e *DuplicateExportError) Error() string {
	return fmt.Sprintf("contract '%s' already has a canonical export\nHint: export alternatives with ExportImplementation and keep a single proxy export", e.Contract)
}

// ContractMismatchError is returned when a materialized component does not implement its contract.
type ContractMismatchError struct {
	Contract  Contract
	Component string
	Actual    string
}

func (e *ContractMismatchError) Error() string {
	return fmt.Sprintf("component '%s' exported for contract '%s' has type %s", e.Component, e.Contract, e.Actual)
}
