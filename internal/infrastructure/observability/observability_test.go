package observability

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"augeo-server/services/admin-api/internal/config"
)

func TestSetupDisabledIsNoOp(t *testing.T) {
	cfg := &config.Config{ServiceName: "admin-api"}

	shutdown, err := Setup(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Setup with tracing disabled: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("no-op shutdown: %v", err)
	}
}

func TestSetupEnabledBuildsProvider(t *testing.T) {
	cfg := &config.Config{
		ServiceName:   "admin-api",
		Environment:   "development",
		EnableTracing: true,
		OTLPEndpoint:  "http://localhost:4318",
	}

	shutdown, err := Setup(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Setup with tracing enabled: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("provider shutdown: %v", err)
	}
}
