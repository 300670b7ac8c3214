package logging

import (
	"context"
	"log/slog"
	"strings"
)

// Note bodies are private; these attribute keys never reach the output.
var sensitiveFields = map[string]struct{}{
	"text":      {},
	"body":      {},
	"note_text": {},
}

const redacted = "[REDACTED]"

// RedactingHandler masks note bodies before records reach the inner
// handler. LogValuer attributes are resolved first so a value that expands
// into a group holding text is masked too.
type RedactingHandler struct {
	inner slog.Handler
}

func NewRedactingHandler(inner slog.Handler) *RedactingHandler {
	return &RedactingHandler{inner: inner}
}

func (h *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle never lets a panicking LogValuer escape into the caller. The record
// is replaced by an error record that names the message but carries no attrs.
func (h *RedactingHandler) Handle(ctx context.Context, record slog.Record) (err error) {
	defer func() {
		if r := recover(); r != nil {
			dropped := slog.NewRecord(record.Time, slog.LevelError, "log record dropped", record.PC)
			dropped.AddAttrs(slog.String("msg_dropped", record.Message), slog.String("panic", redacted))
			err = h.inner.Handle(ctx, dropped)
		}
	}()

	clean := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	record.Attrs(func(attr slog.Attr) bool {
		clean.AddAttrs(redactAttr(attr))
		return true
	})
	return h.inner.Handle(ctx, clean)
}

func (h *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clean := make([]slog.Attr, 0, len(attrs))
	for _, attr := range attrs {
		clean = append(clean, redactAttr(attr))
	}
	return &RedactingHandler{inner: h.inner.WithAttrs(clean)}
}

func (h *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{inner: h.inner.WithGroup(name)}
}

func redactAttr(attr slog.Attr) slog.Attr {
	attr.Value = attr.Value.Resolve()
	if _, ok := sensitiveFields[strings.ToLower(attr.Key)]; ok {
		return slog.String(attr.Key, redacted)
	}

	if attr.Value.Kind() == slog.KindGroup {
		group := attr.Value.Group()
		nested := make([]slog.Attr, 0, len(group))
		for _, a := range group {
			nested = append(nested, redactAttr(a))
		}
		return slog.Attr{Key: attr.Key, Value: slog.GroupValue(nested...)}
	}
	return attr
}
