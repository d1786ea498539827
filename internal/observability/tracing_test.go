package observability

import (
	"context"
	"testing"

	"github.com/csdc6/adcs-sim/internal/logging"
)

func TestTracingConfigFromEnv_Defaults(t *testing.T) {
	t.Setenv("ADCS_TRACING_ENABLED", "")
	t.Setenv("ADCS_TRACING_EXPORTER", "")
	t.Setenv("ADCS_TRACING_SERVICE_NAME", "")
	t.Setenv("ADCS_TRACING_SAMPLE_RATIO", "")

	cfg := TracingConfigFromEnv()
	if cfg.Enabled {
		t.Errorf("tracing enabled by default, want disabled")
	}
	if cfg.ServiceName != "adcs-sim" {
		t.Errorf("service name = %q, want adcs-sim", cfg.ServiceName)
	}
	if cfg.SampleRatio != 1.0 {
		t.Errorf("sample ratio = %g, want 1.0", cfg.SampleRatio)
	}
}

func TestTracingConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("ADCS_TRACING_ENABLED", "TRUE")
	t.Setenv("ADCS_TRACING_EXPORTER", "STDOUT")
	t.Setenv("ADCS_TRACING_SERVICE_NAME", "adcs-lab")
	t.Setenv("ADCS_TRACING_SAMPLE_RATIO", "0.25")

	cfg := TracingConfigFromEnv()
	if !cfg.Enabled {
		t.Errorf("tracing disabled, want enabled")
	}
	if cfg.Exporter != "stdout" {
		t.Errorf("exporter = %q, want stdout", cfg.Exporter)
	}
	if cfg.ServiceName != "adcs-lab" {
		t.Errorf("service name = %q, want adcs-lab", cfg.ServiceName)
	}
	if cfg.SampleRatio != 0.25 {
		t.Errorf("sample ratio = %g, want 0.25", cfg.SampleRatio)
	}
}

func TestInitTracing_DisabledIsNoop(t *testing.T) {
	shutdown, err := InitTracing(context.Background(), TracingConfig{Enabled: false}, logging.Noop())
	if err != nil {
		t.Fatalf("InitTracing: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown: %v", err)
	}
}
