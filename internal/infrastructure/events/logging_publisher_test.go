package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/partwire/internal/logger"
	"github.com/alexisbeaulieu97/partwire/internal/ports"
)

func newTestLogger(t *testing.T, buf *bytes.Buffer) ports.Logger {
	t.Helper()
	log, err := logger.New(logger.Options{Writer: buf, Level: "debug", Component: "publisher"})
	require.NoError(t, err)
	return log
}

func TestLoggingPublisherIncludesCorrelationID(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	publisher := NewLoggingPublisher(newTestLogger(t, buf))

	ctx := ports.WithCorrelationID(context.Background(), "abc-123")
	err := publisher.Publish(ctx, ports.Event{
		Type:   ports.EventViewCreated,
		Fields: map[string]interface{}{"content_type": "code"},
	})
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "domain event", entry["message"])
	require.Equal(t, ports.EventViewCreated, entry["event_type"])
	require.Equal(t, "abc-123", entry["correlation_id"])
	require.Equal(t, "code", entry["content_type"])
}

func TestLoggingPublisherIsolatesFailingSubscribers(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	publisher := NewLoggingPublisher(newTestLogger(t, buf))

	var handled []string
	_, err := publisher.Subscribe(ports.EventViewClosed, func(context.Context, ports.DomainEvent) error {
		return errors.New("boom")
	})
	require.NoError(t, err)
	_, err = publisher.Subscribe(ports.EventViewClosed, func(context.Context, ports.DomainEvent) error {
		panic("kaboom")
	})
	require.NoError(t, err)
	_, err = publisher.Subscribe(ports.EventViewClosed, func(context.Context, ports.DomainEvent) error {
		handled = append(handled, "third")
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, publisher.Publish(context.Background(), ports.Event{Type: ports.EventViewClosed}))
	require.Equal(t, []string{"third"}, handled)
	require.Equal(t, 2, strings.Count(buf.String(), "event handler failed"))
}

func TestLoggingPublisherUnsubscribe(t *testing.T) {
	t.Parallel()

	publisher := NewLoggingPublisher(logger.NewNoOp())

	calls := 0
	sub, err := publisher.Subscribe(ports.EventViewCreated, func(context.Context, ports.DomainEvent) error {
		calls++
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, publisher.Publish(context.Background(), ports.Event{Type: ports.EventViewCreated}))
	sub.Unsubscribe()
	require.NoError(t, publisher.Publish(context.Background(), ports.Event{Type: ports.EventViewCreated}))
	require.Equal(t, 1, calls)
}
