package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/matzehuels/dockpane/pkg/config"
	"github.com/matzehuels/dockpane/pkg/observability"
)

func recorder(t *testing.T) (*Provider, *tracetest.SpanRecorder) {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	p := New(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)))
	p.Install()
	t.Cleanup(func() { _ = p.Shutdown(context.Background()) })
	return p, rec
}

func names(rec *tracetest.SpanRecorder) []string {
	var out []string
	for _, s := range rec.Ended() {
		out = append(out, s.Name())
	}
	return out
}

func TestSetupDisabledWithoutEndpoint(t *testing.T) {
	p, err := Setup(context.Background(), config.Telemetry{})
	require.NoError(t, err)
	assert.Nil(t, p)
	// A nil provider is safe to use.
	p.Install()
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestHooksEmitSpans(t *testing.T) {
	_, rec := recorder(t)

	observability.Dock().OnDock(3, 0, "left")
	observability.Dock().OnLayout(4, time.Millisecond)
	observability.Drag().OnDragEnd("s1", 3, "inner-left", 20*time.Millisecond)
	observability.HTTP().OnResponse(context.Background(), "GET", "/health", 200, time.Millisecond)

	assert.Equal(t, []string{"dock.dock", "dock.layout", "drag.gesture", "http GET"}, names(rec))

	layout := rec.Ended()[1]
	assert.GreaterOrEqual(t, layout.EndTime().Sub(layout.StartTime()), time.Millisecond)
}

func TestStoreErrorsMarkSpans(t *testing.T) {
	_, rec := recorder(t)

	observability.Store().OnStoreGet(context.Background(), "redis", false, time.Millisecond, errors.New("dial tcp: refused"))

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "store.get", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestShutdownRestoresNoopHooks(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	p := New(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)))
	p.Install()
	require.NoError(t, p.Shutdown(context.Background()))

	observability.Dock().OnClose(1)
	assert.Empty(t, rec.Ended())
}
