package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func spanContext(t *testing.T) (context.Context, func()) {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)

	ctx, span := otel.Tracer("test").Start(context.Background(), "test-span")
	return ctx, func() {
		span.End()
		otel.SetTracerProvider(nil)
	}
}

func decodeLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output %q: %v", buf.String(), err)
	}
	return entry
}

func TestLoggerAddsTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, slog.LevelInfo)

	ctx, done := spanContext(t)
	defer done()

	logger.InfoContext(ctx, "hello", "key", "value")

	entry := decodeLogLine(t, &buf)
	if id, _ := entry["trace_id"].(string); id == "" {
		t.Error("trace_id missing from log record")
	}
	if id, _ := entry["span_id"].(string); id == "" {
		t.Error("span_id missing from log record")
	}
	if entry["msg"] != "hello" || entry["key"] != "value" {
		t.Errorf("record fields lost: %v", entry)
	}
}

func TestLoggerWithoutActiveSpan(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, slog.LevelInfo)

	logger.InfoContext(context.Background(), "hello")

	entry := decodeLogLine(t, &buf)
	if _, present := entry["trace_id"]; present {
		t.Error("trace_id must be omitted when no span is active")
	}
	if _, present := entry["span_id"]; present {
		t.Error("span_id must be omitted when no span is active")
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, slog.LevelWarn)

	ctx := context.Background()
	logger.InfoContext(ctx, "filtered")
	if buf.Len() > 0 {
		t.Fatalf("info record should have been filtered, got %q", buf.String())
	}

	logger.WarnContext(ctx, "kept")
	if buf.Len() == 0 {
		t.Error("warn record should have been written")
	}
}

func TestLoggerPreservesWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, slog.LevelInfo).With("request_id", "req-1")

	ctx, done := spanContext(t)
	defer done()

	logger.InfoContext(ctx, "hello")

	entry := decodeLogLine(t, &buf)
	if entry["request_id"] != "req-1" {
		t.Errorf("request_id = %v, want req-1", entry["request_id"])
	}
	if id, _ := entry["trace_id"].(string); id == "" {
		t.Error("trace_id missing after With()")
	}
}
