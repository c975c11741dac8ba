package main

import (
	"context"
	"io"

	"github.com/alexisbeaulieu97/partwire/internal/export"
	"github.com/alexisbeaulieu97/partwire/internal/infrastructure/events"
	"github.com/alexisbeaulieu97/partwire/internal/infrastructure/tracing"
	"github.com/alexisbeaulieu97/partwire/internal/logger"
	"github.com/alexisbeaulieu97/partwire/internal/ports"
)

// AppContext bundles the services a command needs for one invocation.
type AppContext struct {
	Logger    ports.Logger
	Publisher *events.LoggingPublisher
	Tracing   *tracing.Provider
}

func newAppContext(s settings, stderr io.Writer) (*AppContext, error) {
	log, err := logger.New(logger.Options{
		Level:         s.LogLevel,
		HumanReadable: s.HumanReadable,
		Writer:        stderr,
		Component:     "partwire",
	})
	if err != nil {
		return nil, newCommandError("start", "creating logger", err, "Use one of debug, info, warn or error for --log-level.")
	}

	export.AttachDefaultLogger(log)

	tracingCfg := s.Tracing
	tracingCfg.Writer = stderr
	provider, err := tracing.NewProvider(tracingCfg)
	if err != nil {
		return nil, newCommandError("start", "configuring tracing", err, "Set tracing.exporter to stdout or none.")
	}

	return &AppContext{
		Logger:    log,
		Publisher: events.NewLoggingPublisher(log),
		Tracing:   provider,
	}, nil
}

// Close flushes pending spans.
func (a *AppContext) Close() error {
	return a.Tracing.Shutdown(context.Background())
}
