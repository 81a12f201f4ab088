package observability

import (
	"context"
	"testing"

	"github.com/riskibarqy/tournament-engine/internal/config"
	"github.com/riskibarqy/tournament-engine/internal/platform/logging"
)

func TestInitUptrace_Disabled(t *testing.T) {
	cfg := config.Config{
		UptraceEnabled: false,
		ServiceName:    "tournament-engine-api",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}

	shutdown, err := InitUptrace(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown uptrace: %v", err)
	}
}

func TestUptraceDisabledReason(t *testing.T) {
	if got := uptraceDisabledReason(config.Config{UptraceEnabled: false, UptraceDSN: "https://token@api.uptrace.dev"}); got != "UPTRACE_ENABLED=false" {
		t.Fatalf("unexpected reason: %q", got)
	}
	if got := uptraceDisabledReason(config.Config{UptraceEnabled: true, UptraceDSN: "  "}); got != "UPTRACE_DSN empty" {
		t.Fatalf("unexpected reason: %q", got)
	}
	if got := uptraceDisabledReason(config.Config{UptraceEnabled: true, UptraceDSN: "https://token@api.uptrace.dev"}); got != "" {
		t.Fatalf("expected uptrace enabled, got reason %q", got)
	}
}

func TestResourceAttributes(t *testing.T) {
	attrs := resourceAttributes(config.Config{StorageDriver: config.StoragePostgres, EventsDriver: "redis", EventsEnabled: false})
	got := map[string]string{}
	for _, kv := range attrs {
		got[string(kv.Key)] = kv.Value.AsString()
	}
	if got["tournament.storage_driver"] != config.StoragePostgres {
		t.Fatalf("unexpected storage driver attribute: %v", got)
	}
	if got["tournament.events_driver"] != "none" {
		t.Fatalf("disabled events should report none: %v", got)
	}
}

func TestInitPyroscope_Disabled(t *testing.T) {
	stop, err := InitPyroscope(config.Config{PyroscopeEnabled: false}, logging.NewNop())
	if err != nil {
		t.Fatalf("init pyroscope: %v", err)
	}
	if err := stop(); err != nil {
		t.Fatalf("stop pyroscope: %v", err)
	}
}

func TestStartPprofServer_Disabled(t *testing.T) {
	srv := StartPprofServer(config.Config{PprofEnabled: false}, logging.NewNop())
	if srv != nil {
		t.Fatalf("expected no pprof server when disabled")
	}
	if err := StopPprofServer(srv, nil, 0); err != nil {
		t.Fatalf("stop nil pprof server: %v", err)
	}
}
