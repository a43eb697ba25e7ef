package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestFromContextFallsBackToDefault(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatal("expected the default logger")
	}
	if FromContext(nil) == nil {
		t.Fatal("expected the default logger for a nil context")
	}
}

func TestWithLoggerRoundTrip(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
	ctx := WithLogger(context.Background(), logger)

	if FromContext(ctx) != logger {
		t.Fatal("expected the stored logger back")
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Fatalf("expected req-1, got %q", got)
	}
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Fatalf("expected empty request id, got %q", got)
	}
}

func TestStartSpanEnrichesLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	ctx := WithLogger(context.Background(), logger)

	ctx, span := StartSpan(ctx, "catalog.load")
	if TraceIDFromContext(ctx) == "" {
		t.Fatal("expected a trace id to be minted")
	}
	if SpanIDFromContext(ctx) == "" {
		t.Fatal("expected a span id to be set")
	}

	span.End()

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode log record: %v", err)
	}
	if record["span_name"] != "catalog.load" {
		t.Fatalf("expected span_name in record, got %v", record)
	}

	// A child span must reference its parent.
	buf.Reset()
	childCtx, child := StartSpan(ctx, "catalog.page")
	child.End()
	if SpanIDFromContext(childCtx) == SpanIDFromContext(ctx) {
		t.Fatal("child span must get its own id")
	}
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode child record: %v", err)
	}
	if record["parent_span_id"] == nil {
		t.Fatalf("expected parent_span_id in child record, got %v", record)
	}
}
