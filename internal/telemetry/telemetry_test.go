package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupDisabled(t *testing.T) {
	p, err := Setup(context.Background(), func(string) string { return "" })
	require.NoError(t, err)

	assert.False(t, p.Enabled())
	assert.NotNil(t, p.Tracer())
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestSetupEnabled(t *testing.T) {
	env := map[string]string{
		"OTEL_EXPORTER_OTLP_ENDPOINT": "http://localhost:4318",
		"OTEL_SERVICE_NAME":           "konig-test",
	}
	p, err := Setup(context.Background(), func(k string) string { return env[k] })
	require.NoError(t, err)

	assert.True(t, p.Enabled())
	_, span := p.Tracer().Start(context.Background(), "view.init")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	// Nothing listens on the endpoint; shutting down must not hang on it.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = p.Shutdown(ctx)
}

func TestSetupExportsToCollector(t *testing.T) {
	var (
		mu    sync.Mutex
		paths []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	env := map[string]string{"OTEL_EXPORTER_OTLP_ENDPOINT": srv.URL}
	p, err := Setup(context.Background(), func(k string) string { return env[k] })
	require.NoError(t, err)

	_, span := p.Tracer().Start(context.Background(), "view.shutdown")
	span.End()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, p.Shutdown(ctx))

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, paths, "collector received no export request")
	assert.Equal(t, "/v1/traces", paths[0])
}

func TestTraceURL(t *testing.T) {
	tests := []struct {
		endpoint string
		want     string
	}{
		{"localhost:4318", "http://localhost:4318/v1/traces"},
		{"http://localhost:4318", "http://localhost:4318/v1/traces"},
		{"http://localhost:4318/", "http://localhost:4318/v1/traces"},
		{"https://collector.example:4318", "https://collector.example:4318/v1/traces"},
	}
	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			assert.Equal(t, tt.want, traceURL(tt.endpoint))
		})
	}
}

func TestNilProvider(t *testing.T) {
	var p *Provider
	assert.False(t, p.Enabled())
	assert.NoError(t, p.Shutdown(context.Background()))
}
