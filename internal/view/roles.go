package view

import (
	"sort"
	"strings"
)

// Predefined view roles.
const (
	RoleInteractive     = "INTERACTIVE"
	RoleEditable        = "EDITABLE"
	RoleDocument        = "DOCUMENT"
	RoleStructured      = "STRUCTURED"
	RoleZoomable        = "ZOOMABLE"
	RoleDebuggable      = "DEBUGGABLE"
	RolePrimaryDocument = "PRIMARYDOCUMENT"
	RoleAnalyzable      = "ANALYZABLE"
	RolePreview         = "PREVIEW"
)

// DefaultRoles are the roles of an ordinary editor view.
var DefaultRoles = []string{RoleAnalyzable, RoleDocument, RoleEditable, RoleInteractive, RolePrimaryDocument, RoleStructured, RoleZoomable}

// RoleSet is an immutable, case-insensitive set of view roles.
type RoleSet struct {
	roles map[string]struct{}
}

// NewRoleSet builds a set from role names. Blank names are ignored.
func NewRoleSet(roles ...string) RoleSet {
	set := RoleSet{roles: make(map[string]struct{}, len(roles))}
	for _, role := range roles {
		role = normalizeRole(role)
		if role == "" {
			continue
		}
		set.roles[role] = struct{}{}
	}
	return set
}

// Contains reports whether role is in the set.
func (s RoleSet) Contains(role string) bool {
	_, ok := s.roles[normalizeRole(role)]
	return ok
}

// ContainsAny reports whether at least one of roles is in the set.
func (s RoleSet) ContainsAny(roles ...string) bool {
	for _, role := range roles {
		if s.Contains(role) {
			return true
		}
	}
	return false
}

// ContainsAll reports whether every one of roles is in the set.
func (s RoleSet) ContainsAll(roles ...string) bool {
	for _, role := range roles {
		if !s.Contains(role) {
			return false
		}
	}
	return true
}

// Len returns the number of roles.
func (s RoleSet) Len() int {
	return len(s.roles)
}

// List returns the roles sorted.
func (s RoleSet) List() []string {
	out := make([]string, 0, len(s.roles))
	for role := range s.roles {
		out = append(out, role)
	}
	sort.Strings(out)
	return out
}

func (s RoleSet) String() string {
	return strings.Join(s.List(), ",")
}

func normalizeRole(role string) string {
	return strings.ToUpper(strings.TrimSpace(role))
}
