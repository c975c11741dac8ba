package property

import "fmt"

// DuplicateKeyError is returned by AddProperty when the key is already present.
type DuplicateKeyError struct {
	Key any
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("property key '%v' already exists\nHint: use SetProperty to overwrite an existing value", e.Key)
}

// KeyNotFoundError is returned by GetProperty when the key is absent.
type KeyNotFoundError struct {
	Key any
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("property key '%v' not found", e.Key)
}

// TypeMismatchError reports a stored value whose type differs from the type requested.
type TypeMismatchError struct {
	Key      any
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("property key '%v' holds %s, not %s", e.Key, e.Actual, e.Expected)
}
