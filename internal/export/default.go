package export

import (
	"sync"

	"github.com/alexisbeaulieu97/partwire/internal/logger"
	"github.com/alexisbeaulieu97/partwire/internal/ports"
)

// Registrations into the default registry usually run from init(), before
// any logger is configured. Their warnings wait in defaultBuffer until
// AttachDefaultLogger is called.
var (
	defaultMu       sync.RWMutex
	defaultBuffer   *logger.EventBuffer
	defaultRegistry *Registry
)

func init() {
	resetDefaultLocked()
}

func resetDefaultLocked() {
	defaultBuffer = logger.NewEventBuffer(0)
	defaultRegistry = NewRegistry(nil, WithLogger(logger.NewBuffered(defaultBuffer)))
}

// Default returns the process-wide registry used by init-time registrations.
func Default() *Registry {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultRegistry
}

// AttachDefaultLogger routes the default registry's logging to log and
// replays anything it recorded before.
func AttachDefaultLogger(log ports.Logger) {
	if log == nil {
		return
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultRegistry.setLogger(log)
	defaultBuffer.Flush(log)
}

// RegisterImplementation adds an alternative implementation of T to the default registry.
func RegisterImplementation[T any](meta Metadata, factory func() (T, error)) error {
	return ExportImplementation(Default(), meta, factory)
}

// RegisterExport sets the canonical export of T in the default registry.
func RegisterExport[T any](factory func() (T, error)) error {
	return Export(Default(), factory)
}

// ResetDefault replaces the default registry with an empty one (for tests).
func ResetDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	resetDefaultLocked()
}
