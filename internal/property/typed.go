package property

import "fmt"

// Get returns the value under key as T.
func Get[T any](c *Collection, key any) (T, error) {
	var zero T
	raw, err := c.GetProperty(key)
	if err != nil {
		return zero, err
	}
	return cast[T](key, raw)
}

// TryGet returns the value under key as T. It reports false when the key is
// absent or holds a value of another type.
func TryGet[T any](c *Collection, key any) (T, bool) {
	var zero T
	raw, ok := c.TryGetProperty(key)
	if !ok {
		return zero, false
	}
	value, err := cast[T](key, raw)
	if err != nil {
		return zero, false
	}
	return value, true
}

// GetOrCreateSingleton returns the T stored under key, creating it on first use.
func GetOrCreateSingleton[T any](c *Collection, key any, create func() T) (T, error) {
	raw := c.GetOrCreateSingletonProperty(key, func() any { return create() })
	return cast[T](key, raw)
}

func cast[T any](key, raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	value, ok := raw.(T)
	if !ok {
		return zero, &TypeMismatchError{
			Key:      key,
			Expected: fmt.Sprintf("%T", &zero)[1:],
			Actual:   fmt.Sprintf("%T", raw),
		}
	}
	return value, nil
}
