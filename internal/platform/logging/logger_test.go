package logging

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"go.opentelemetry.io/otel/trace"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    Level
		wantErr bool
	}{
		{raw: "", want: LevelInfo},
		{raw: "DEBUG", want: LevelDebug},
		{raw: "warning", want: LevelWarn},
		{raw: " error ", want: LevelError},
		{raw: "verbose", want: LevelInfo, wantErr: true},
	}
	for _, tc := range tests {
		got, err := ParseLevel(tc.raw)
		if (err != nil) != tc.wantErr {
			t.Fatalf("ParseLevel(%q) err=%v wantErr=%v", tc.raw, err, tc.wantErr)
		}
		if got != tc.want {
			t.Fatalf("ParseLevel(%q) got=%s want=%s", tc.raw, got, tc.want)
		}
	}
}

func TestLogger_InfoContextWritesFieldsAndTrace(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf, LevelInfo).With("service", "tournament-engine")

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.InfoContext(ctx, "fixtures generated", "tournament_id", "ipl-2026", "fixtures", 74, "error", errors.New("none"))
	logger.DebugContext(ctx, "dropped below level")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("unexpected line count: got=%d want=%d (%s)", len(lines), 1, buf.String())
	}

	var entry map[string]any
	if err := sonic.UnmarshalString(lines[0], &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["msg"] != "fixtures generated" {
		t.Fatalf("unexpected msg: %v", entry["msg"])
	}
	if entry["tournament_id"] != "ipl-2026" || entry["service"] != "tournament-engine" {
		t.Fatalf("missing fields: %v", entry)
	}
	if entry["trace_id"] != traceID.String() || entry["span_id"] != spanID.String() {
		t.Fatalf("missing trace fields: %v", entry)
	}
	if entry["error"] != "none" {
		t.Fatalf("unexpected error field: %v", entry["error"])
	}
}

func TestLogger_NilReceiverFallsBackToDefault(t *testing.T) {
	t.Parallel()

	var logger *Logger
	logger.Info("no panic")
	if err := logger.Sync(); err != nil {
		t.Fatalf("sync nil logger: %v", err)
	}
}

func TestLogger_MirrorReceivesEnabledContextLines(t *testing.T) {
	var got []string
	SetMirror(func(_ context.Context, level Level, msg string, args ...any) {
		got = append(got, level.String()+":"+msg)
	})
	t.Cleanup(func() { SetMirror(nil) })

	logger := New(io.Discard, LevelWarn)
	logger.InfoContext(context.Background(), "filtered out")
	logger.WarnContext(context.Background(), "tie policy rejected", "match_id", "m-1")
	logger.Warn("plain lines are not mirrored")

	if len(got) != 1 || got[0] != "warn:tie policy rejected" {
		t.Fatalf("unexpected mirrored lines: %v", got)
	}
}
