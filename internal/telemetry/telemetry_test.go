package telemetry

import (
	"testing"

	"github.com/LoushikLK/dynamic-pricing-food-service/internal/config"
)

func TestSetupDisabledReturnsNil(t *testing.T) {
	tel, err := Setup(t.Context(), config.TelemetryConfig{Enabled: false})
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if tel != nil {
		t.Fatalf("disabled telemetry should be nil")
	}
	if err := tel.Shutdown(t.Context()); err != nil {
		t.Fatalf("nil shutdown should be noop: %v", err)
	}
}

func TestSetupRequiresEndpoint(t *testing.T) {
	if _, err := Setup(t.Context(), config.TelemetryConfig{Enabled: true, Endpoint: "  "}); err == nil {
		t.Fatalf("expected error for empty endpoint")
	}
}

func TestSetupEnabled(t *testing.T) {
	tel, err := Setup(t.Context(), config.TelemetryConfig{
		Enabled:        true,
		Endpoint:       "http://127.0.0.1:4318/",
		ServiceName:    "dynamic-pricing",
		ServiceVersion: "test",
	})
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if tel == nil || tel.tracerProvider == nil {
		t.Fatalf("expected tracer provider")
	}
	// 无 span 时关闭不会触发导出
	if err := tel.Shutdown(t.Context()); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}
}

func TestParseHeaders(t *testing.T) {
	headers := parseHeaders("authorization=Bearer abc, x-team = pricing,broken")
	if len(headers) != 2 {
		t.Fatalf("want 2 headers got %v", headers)
	}
	if headers["authorization"] != "Bearer abc" || headers["x-team"] != "pricing" {
		t.Fatalf("unexpected headers: %v", headers)
	}
	if len(parseHeaders("")) != 0 {
		t.Fatalf("empty input should yield no headers")
	}
}
