package export

import (
	"strings"

	"github.com/alexisbeaulieu97/partwire/internal/config"
)

// Metadata describes one alternative implementation of a contract.
type Metadata struct {
	// Name identifies the implementation in Before/After references. It may
	// be empty, in which case nothing can be ordered relative to it.
	Name        string   `validate:"omitempty,component_name"`
	Before      []string `validate:"omitempty,dive,required"`
	After       []string `validate:"omitempty,dive,required"`
	Description string   `validate:"max=256"`
}

// Validate ensures metadata is well-formed.
func (m Metadata) Validate() error {
	return config.ValidateStruct(m)
}

// clone returns a copy with surrounding whitespace trimmed from every name.
func (m Metadata) clone() Metadata {
	m.Name = strings.TrimSpace(m.Name)
	m.Before = trimmedNames(m.Before)
	m.After = trimmedNames(m.After)
	return m
}

func trimmedNames(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = strings.TrimSpace(name)
	}
	return out
}
