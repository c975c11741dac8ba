package logger

import (
	"context"

	"github.com/alexisbeaulieu97/partwire/internal/ports"
)

// NoOp discards all log entries.
type NoOp struct{}

// NewNoOp returns a ports.Logger that discards all log entries.
func NewNoOp() ports.Logger {
	return NoOp{}
}

// Debug implements ports.Logger.
func (NoOp) Debug(context.Context, string, ...interface{}) {}

// Info implements ports.Logger.
func (NoOp) Info(context.Context, string, ...interface{}) {}

// Warn implements ports.Logger.
func (NoOp) Warn(context.Context, string, ...interface{}) {}

// Error implements ports.Logger.
func (NoOp) Error(context.Context, string, ...interface{}) {}

// With implements ports.Logger.
func (n NoOp) With(...interface{}) ports.Logger { return n }
