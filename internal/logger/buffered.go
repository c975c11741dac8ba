package logger

import (
	"context"
	"sync"

	"github.com/alexisbeaulieu97/partwire/internal/ports"
)

const defaultBufferLimit = 256

type bufferedLevel int

const (
	bufferedDebug bufferedLevel = iota
	bufferedInfo
	bufferedWarn
	bufferedError
)

type bufferedEntry struct {
	ctx    context.Context
	level  bufferedLevel
	msg    string
	fields []interface{}
}

// EventBuffer holds log entries written before a real logger exists. When
// full, the oldest entry is dropped.
type EventBuffer struct {
	mu      sync.Mutex
	limit   int
	entries []bufferedEntry
}

// NewEventBuffer creates a buffer holding at most limit entries (256 when limit <= 0).
func NewEventBuffer(limit int) *EventBuffer {
	if limit <= 0 {
		limit = defaultBufferLimit
	}
	return &EventBuffer{limit: limit, entries: make([]bufferedEntry, 0, limit)}
}

func (b *EventBuffer) add(entry bufferedEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.entries) == b.limit {
		copy(b.entries, b.entries[1:])
		b.entries[len(b.entries)-1] = entry
		return
	}
	b.entries = append(b.entries, entry)
}

// Len returns the number of buffered entries.
func (b *EventBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Flush replays buffered entries into delegate in order and empties the buffer.
func (b *EventBuffer) Flush(delegate ports.Logger) {
	if delegate == nil {
		return
	}
	b.mu.Lock()
	entries := make([]bufferedEntry, len(b.entries))
	copy(entries, b.entries)
	b.entries = b.entries[:0]
	b.mu.Unlock()

	for _, entry := range entries {
		switch entry.level {
		case bufferedDebug:
			delegate.Debug(entry.ctx, entry.msg, entry.fields...)
		case bufferedWarn:
			delegate.Warn(entry.ctx, entry.msg, entry.fields...)
		case bufferedError:
			delegate.Error(entry.ctx, entry.msg, entry.fields...)
		default:
			delegate.Info(entry.ctx, entry.msg, entry.fields...)
		}
	}
}

// Buffered implements ports.Logger by recording into an EventBuffer.
type Buffered struct {
	buffer *EventBuffer
	fields []interface{}
}

// NewBuffered returns a logger that records into buffer.
func NewBuffered(buffer *EventBuffer) *Buffered {
	return &Buffered{buffer: buffer}
}

func (l *Buffered) Debug(ctx context.Context, msg string, fields ...interface{}) {
	l.record(ctx, bufferedDebug, msg, fields)
}

func (l *Buffered) Info(ctx context.Context, msg string, fields ...interface{}) {
	l.record(ctx, bufferedInfo, msg, fields)
}

func (l *Buffered) Warn(ctx context.Context, msg string, fields ...interface{}) {
	l.record(ctx, bufferedWarn, msg, fields)
}

func (l *Buffered) Error(ctx context.Context, msg string, fields ...interface{}) {
	l.record(ctx, bufferedError, msg, fields)
}

// With returns a child logger sharing the buffer with extra persistent fields.
func (l *Buffered) With(fields ...interface{}) ports.Logger {
	next := append(append([]interface{}{}, l.fields...), fields...)
	return &Buffered{buffer: l.buffer, fields: next}
}

func (l *Buffered) record(ctx context.Context, level bufferedLevel, msg string, fields []interface{}) {
	if l == nil || l.buffer == nil {
		return
	}
	l.buffer.add(bufferedEntry{
		ctx:    ctx,
		level:  level,
		msg:    msg,
		fields: append(append([]interface{}{}, l.fields...), fields...),
	})
}

var _ ports.Logger = (*Buffered)(nil)
