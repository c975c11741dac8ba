package view

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/alexisbeaulieu97/partwire/internal/contenttype"
	"github.com/alexisbeaulieu97/partwire/internal/logger"
	"github.com/alexisbeaulieu97/partwire/internal/ports"
)

// NotificationReport summarizes listener delivery for one view.
type NotificationReport struct {
	ViewID   string
	Notified []string
	Faults   []*ListenerFaultError
	Duration time.Duration
}

// Failed reports whether any listener faulted.
func (r NotificationReport) Failed() bool {
	return len(r.Faults) > 0
}

// Host creates text views and dispatches creation notifications.
type Host struct {
	contentTypes *contenttype.Registry
	listeners    *ListenerRegistry
	logger       ports.Logger
	publisher    ports.EventPublisher
	tracer       trace.Tracer

	mu     sync.Mutex
	closed bool
}

// HostOption customizes a Host.
type HostOption func(*Host)

// WithLogger sets the logger used to report listener faults.
func WithLogger(log ports.Logger) HostOption {
	return func(h *Host) {
		if log != nil {
			h.logger = log.With("component", "view_host")
		}
	}
}

// WithPublisher sets the publisher for view lifecycle events.
func WithPublisher(publisher ports.EventPublisher) HostOption {
	return func(h *Host) {
		h.publisher = publisher
	}
}

// WithTracer sets the tracer used for creation spans.
func WithTracer(tracer trace.Tracer) HostOption {
	return func(h *Host) {
		if tracer != nil {
			h.tracer = tracer
		}
	}
}

// NewHost returns a host resolving content types from contentTypes and
// notifying listeners from listeners.
func NewHost(contentTypes *contenttype.Registry, listeners *ListenerRegistry, opts ...HostOption) *Host {
	if contentTypes == nil {
		contentTypes = contenttype.NewRegistry()
	}
	if listeners == nil {
		listeners = NewListenerRegistry()
	}
	h := &Host{
		contentTypes: contentTypes,
		listeners:    listeners,
		logger:       logger.NewNoOp(),
		tracer:       noop.NewTracerProvider().Tracer("partwire/view"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// CreateTextView builds a view over content of the named type with the given
// roles, notifies matching listeners, and marks the view ready. The returned
// error covers only view construction; listener faults are reported in the
// NotificationReport.
func (h *Host) CreateTextView(ctx context.Context, contentTypeName string, roles RoleSet) (TextView, NotificationReport, error) {
	h.mu.Lock()
	closed := h.closed
	h.mu.Unlock()
	if closed {
		return nil, NotificationReport{}, HostClosedError{}
	}

	ct, err := h.contentTypes.Get(contentTypeName)
	if err != nil {
		return nil, NotificationReport{}, fmt.Errorf("create text view: %w", err)
	}

	if ports.GetCorrelationID(ctx) == "" {
		ctx = ports.WithCorrelationID(ctx, ports.GenerateCorrelationID())
	}

	v := newTextView(ct, roles)
	ctx, span := h.tracer.Start(ctx, "view.create", trace.WithAttributes(
		attribute.String("view.id", v.ID()),
		attribute.String("view.content_type", ct.Name()),
		attribute.StringSlice("view.roles", roles.List()),
	))
	defer span.End()

	report := h.notify(ctx, v)
	v.markReady()

	span.SetAttributes(
		attribute.Int("view.listeners.notified", len(report.Notified)),
		attribute.Int("view.listeners.faulted", len(report.Faults)),
	)
	if report.Failed() {
		span.SetStatus(codes.Error, fmt.Sprintf("%d listener(s) faulted", len(report.Faults)))
	}

	h.publish(ctx, ports.EventViewCreated, map[string]interface{}{
		"view_id":      v.ID(),
		"content_type": ct.Name(),
		"roles":        roles.String(),
		"notified":     len(report.Notified),
		"faulted":      len(report.Faults),
	})

	return v, report, nil
}

// CloseView closes view. Closing an already closed view is a no-op.
func (h *Host) CloseView(ctx context.Context, view TextView) {
	v, ok := view.(*textView)
	if !ok || !v.markClosed() {
		return
	}
	h.publish(ctx, ports.EventViewClosed, map[string]interface{}{"view_id": v.ID()})
}

// Close stops the host from creating further views.
func (h *Host) Close() {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()
}

func (h *Host) notify(ctx context.Context, v *textView) NotificationReport {
	start := time.Now()
	report := NotificationReport{ViewID: v.ID()}

	for _, entry := range h.listeners.matching(v) {
		if fault := h.deliver(ctx, entry, v); fault != nil {
			report.Faults = append(report.Faults, fault)
			continue
		}
		report.Notified = append(report.Notified, entry.meta.Name)
	}

	report.Duration = time.Since(start)
	return report
}

func (h *Host) deliver(ctx context.Context, entry *registeredListener, v *textView) (fault *ListenerFaultError) {
	_, span := h.tracer.Start(ctx, "view.listener", trace.WithAttributes(
		attribute.String("listener.name", entry.meta.Name),
		attribute.String("view.id", v.ID()),
	))
	defer span.End()

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		fault = &ListenerFaultError{
			Listener: entry.meta.Name,
			ViewID:   v.ID(),
			Value:    r,
			Stack:    debug.Stack(),
		}
		span.RecordError(fault)
		span.SetStatus(codes.Error, "listener panicked")
		h.logger.Error(ctx, "creation listener failed",
			"listener", entry.meta.Name,
			"view_id", v.ID(),
			"error", fault,
		)
		h.publish(ctx, ports.EventListenerFailed, map[string]interface{}{
			"listener": entry.meta.Name,
			"view_id":  v.ID(),
			"error":    fmt.Sprint(r),
		})
	}()

	entry.listener.TextViewCreated(v)
	return nil
}

func (h *Host) publish(ctx context.Context, eventType string, fields map[string]interface{}) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.Publish(ctx, ports.Event{Type: eventType, Fields: fields}); err != nil {
		h.logger.Warn(ctx, "publish event failed", "event_type", eventType, "error", err)
	}
}
