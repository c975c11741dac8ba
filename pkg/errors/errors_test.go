package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewParseError("parts.yaml", 12, underlying)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "parts.yaml", parseErr.Path)
	require.Equal(t, 12, parseErr.Line)
	require.True(t, stdErrors.Is(err, underlying))
	require.Equal(t, "parse error: parts.yaml:12: unexpected token", err.Error())
}

func TestValidationErrorIncludesField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("listeners[1].name", "duplicate listener", nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "listeners[1].name", validationErr.Field)
	require.Contains(t, err.Error(), "duplicate listener")
}

func TestComponentErrorIncludesComponentName(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("factory is nil")
	err := NewComponentError("formatter/default", underlying)

	var componentErr *ComponentError
	require.ErrorAs(t, err, &componentErr)
	require.Equal(t, "formatter/default", componentErr.Component)
	require.True(t, stdErrors.Is(err, underlying))
}
