// Package telemetry exports dockpane's observability events as
// OpenTelemetry spans.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/matzehuels/dockpane/pkg/config"
	"github.com/matzehuels/dockpane/pkg/observability"
)

const instrumentation = "github.com/matzehuels/dockpane"

// Provider turns hook events into spans.
type Provider struct {
	tp     *sdktrace.TracerProvider
	tracer oteltrace.Tracer
}

// Setup creates an OTLP/HTTP exporting provider. It returns nil when no
// endpoint is configured.
func Setup(ctx context.Context, cfg config.Telemetry) (*Provider, error) {
	if cfg.OTLPEndpoint == "" {
		return nil, nil
	}
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.OTLPEndpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("otlp exporter: %w", err)
	}

	name := cfg.ServiceName
	if name == "" {
		name = "dockpane"
	}
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(name),
	)
	return New(sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)), nil
}

// New wraps an existing tracer provider.
func New(tp *sdktrace.TracerProvider) *Provider {
	return &Provider{tp: tp, tracer: tp.Tracer(instrumentation)}
}

// Install registers the provider's hooks globally.
func (p *Provider) Install() {
	if p == nil {
		return
	}
	observability.SetDockHooks(dockHooks{p})
	observability.SetDragHooks(dragHooks{p})
	observability.SetStoreHooks(storeHooks{p})
	observability.SetHTTPHooks(httpHooks{p})
}

// Shutdown flushes pending spans and restores the no-op hooks.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}
	observability.Reset()
	return p.tp.Shutdown(ctx)
}

// span records a finished span that took d, ending now.
func (p *Provider) span(ctx context.Context, name string, d time.Duration, err error, attrs ...attribute.KeyValue) {
	end := time.Now()
	_, s := p.tracer.Start(ctx, name,
		oteltrace.WithTimestamp(end.Add(-d)),
		oteltrace.WithAttributes(attrs...),
	)
	if err != nil {
		s.RecordError(err)
		s.SetStatus(codes.Error, err.Error())
	}
	s.End(oteltrace.WithTimestamp(end))
}

// event records an instantaneous span.
func (p *Provider) event(name string, attrs ...attribute.KeyValue) {
	p.span(context.Background(), name, 0, nil, attrs...)
}

type dockHooks struct{ p *Provider }

func (h dockHooks) OnDock(node, target int, side string) {
	h.p.event("dock.dock", attribute.Int("dock.node", node), attribute.Int("dock.target", target), attribute.String("dock.side", side))
}

func (h dockHooks) OnUndock(node int, floating bool) {
	h.p.event("dock.undock", attribute.Int("dock.node", node), attribute.Bool("dock.floating", floating))
}

func (h dockHooks) OnMerge(host, node int) {
	h.p.event("dock.merge", attribute.Int("dock.host", host), attribute.Int("dock.node", node))
}

func (h dockHooks) OnClose(node int) {
	h.p.event("dock.close", attribute.Int("dock.node", node))
}

func (h dockHooks) OnLayout(nodes int, d time.Duration) {
	h.p.span(context.Background(), "dock.layout", d, nil, attribute.Int("dock.placements", nodes))
}

type dragHooks struct{ p *Provider }

func (h dragHooks) OnDragStart(session string, node int) {
	h.p.event("drag.start", attribute.String("drag.session", session), attribute.Int("dock.node", node))
}

func (h dragHooks) OnDragEnd(session string, node int, zone string, d time.Duration) {
	h.p.span(context.Background(), "drag.gesture", d, nil,
		attribute.String("drag.session", session), attribute.Int("dock.node", node), attribute.String("drag.zone", zone))
}

func (h dragHooks) OnSplitterDrag(node, size int) {
	h.p.event("drag.splitter", attribute.Int("dock.node", node), attribute.Int("dock.size", size))
}

type storeHooks struct{ p *Provider }

func (h storeHooks) OnStoreGet(ctx context.Context, backend string, hit bool, d time.Duration, err error) {
	h.p.span(ctx, "store.get", d, err, attribute.String("store.backend", backend), attribute.Bool("store.hit", hit))
}

func (h storeHooks) OnStoreSet(ctx context.Context, backend string, size int, d time.Duration, err error) {
	h.p.span(ctx, "store.set", d, err, attribute.String("store.backend", backend), attribute.Int("store.bytes", size))
}

type httpHooks struct{ p *Provider }

func (h httpHooks) OnRequest(context.Context, string, string) {}

func (h httpHooks) OnResponse(ctx context.Context, method, path string, status int, d time.Duration) {
	var err error
	if status >= 500 {
		err = fmt.Errorf("status %d", status)
	}
	h.p.span(ctx, "http "+method, d, err,
		attribute.String("http.method", method), attribute.String("http.target", path), attribute.Int("http.status_code", status))
}
