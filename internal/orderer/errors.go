package orderer

import (
	"fmt"
	"strings"
)

// CyclicOrderingError is returned when before/after constraints cannot all be satisfied.
type CyclicOrderingError struct {
	Cycle []string
}

func (e *CyclicOrderingError) Error() string {
	if len(e.Cycle) == 0 {
		return "cyclic ordering constraints detected\nHint: review Before/After declarations to remove cycles"
	}

	sequence := append(append([]string{}, e.Cycle...), e.Cycle[0])
	return fmt.Sprintf(
		"cyclic ordering constraints detected: %s\nHint: remove one of the Before/After references in the cycle",
		strings.Join(sequence, " -> "),
	)
}

// DuplicateNameError is returned when two orderable items share a name.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("component name '%s' is declared more than once\nHint: component names must be unique within a contract", e.Name)
}
