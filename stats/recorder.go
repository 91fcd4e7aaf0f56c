// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package stats

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"rivaas.dev/actions"
)

// meterName identifies this package's instruments to the meter provider.
const meterName = "rivaas.dev/actions/stats"

// EventType represents the severity of an internal operational event.
type EventType int

const (
	// EventError indicates an error event (e.g., failed to export metrics).
	EventError EventType = iota
	// EventWarning indicates a warning event.
	EventWarning
	// EventInfo indicates an informational event (e.g., metrics server started).
	EventInfo
	// EventDebug indicates a debug event.
	EventDebug
)

// Event represents an internal operational event from the stats package.
// Events report errors, warnings, and informational messages about the
// recorder's own operation; they never carry scan data.
type Event struct {
	Type    EventType
	Message string
	Args    []any // slog-style key-value pairs
}

// EventHandler processes internal operational events from the stats package.
type EventHandler func(Event)

// DefaultEventHandler returns an EventHandler that logs events to the
// provided slog.Logger. A nil logger yields a no-op handler.
func DefaultEventHandler(logger *slog.Logger) EventHandler {
	if logger == nil {
		return func(Event) {}
	}

	return func(e Event) {
		switch e.Type {
		case EventError:
			logger.Error(e.Message, e.Args...)
		case EventWarning:
			logger.Warn(e.Message, e.Args...)
		case EventInfo:
			logger.Info(e.Message, e.Args...)
		case EventDebug:
			logger.Debug(e.Message, e.Args...)
		}
	}
}

// Provider represents the available metrics providers.
type Provider string

const (
	// PrometheusProvider exposes metrics on a pull endpoint (default).
	PrometheusProvider Provider = "prometheus"
	// OTLPProvider pushes metrics to an OTLP HTTP collector.
	OTLPProvider Provider = "otlp"
	// StdoutProvider prints metrics to stdout (development/testing).
	StdoutProvider Provider = "stdout"
)

// Recorder counts route derivation events on OpenTelemetry instruments.
// It implements actions.ScanRecorder, so it plugs straight into a scanner
// via actions.WithRecorder. All methods are safe for concurrent use.
//
// The recorder does not set the global OpenTelemetry meter provider, so
// several instances can coexist in one process.
//
// Example:
//
//	rec, err := stats.New(stats.WithPrometheus(":9090", "/metrics"))
//	if err != nil {
//	    return err
//	}
//	defer rec.Shutdown(context.Background())
//
//	s := actions.MustNew(actions.WithRecorder(rec))
type Recorder struct {
	meter              metric.Meter
	meterProvider      metric.MeterProvider
	prometheusHandler  http.Handler
	prometheusRegistry *promclient.Registry
	eventHandler       EventHandler

	controllersScanned  metric.Int64Counter
	routesRegistered    metric.Int64Counter
	methodsSkipped      metric.Int64Counter
	routesPerController metric.Int64Histogram

	serviceName    string
	serviceVersion string
	provider       Provider
	otlpEndpoint   string
	exportInterval time.Duration

	serverAddr string
	serverPath string
	serveAuto  bool

	serviceNameAttr    attribute.KeyValue
	serviceVersionAttr attribute.KeyValue

	providerSetCount    int
	customMeterProvider bool

	serverMu       sync.Mutex
	server         *http.Server
	isStarted      atomic.Bool
	isShuttingDown atomic.Bool
}

// compile-time conformance to the scanner's recorder interface.
var _ actions.ScanRecorder = (*Recorder)(nil)

// New creates a Recorder with the given options.
// Returns an error if the metrics provider fails to initialize.
// For a version that panics on error, use MustNew.
func New(opts ...Option) (*Recorder, error) {
	r := newDefaultRecorder()

	for _, opt := range opts {
		opt(r)
	}

	if err := r.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := r.initializeProvider(); err != nil {
		return nil, fmt.Errorf("failed to initialize stats: %w", err)
	}

	return r, nil
}

// MustNew creates a Recorder and panics when initialization fails.
func MustNew(opts ...Option) *Recorder {
	r, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("stats.MustNew: %v", err))
	}
	return r
}

// newDefaultRecorder creates a Recorder with default values.
func newDefaultRecorder() *Recorder {
	return &Recorder{
		serviceName:    "rivaas-actions",
		serviceVersion: "1.0.0",
		provider:       PrometheusProvider,
		exportInterval: 30 * time.Second,
		serverAddr:     ":9090",
		serverPath:     "/metrics",
		serveAuto:      true,
	}
}

// validate checks that the configuration is valid.
func (r *Recorder) validate() error {
	if r.providerSetCount > 1 {
		return fmt.Errorf("conflicting provider options: only one of WithPrometheus, WithOTLP, or WithStdout can be used")
	}
	if r.serviceName == "" {
		return fmt.Errorf("service name cannot be empty")
	}
	if r.serviceVersion == "" {
		return fmt.Errorf("service version cannot be empty")
	}
	if r.exportInterval < time.Second {
		r.emitWarning("export interval is very low, may cause high CPU usage", "interval", r.exportInterval)
	}

	switch r.provider {
	case PrometheusProvider:
		if r.serverAddr == "" {
			return fmt.Errorf("metrics address cannot be empty for Prometheus provider")
		}
		if r.serverPath == "" {
			return fmt.Errorf("metrics path cannot be empty for Prometheus provider")
		}
	case OTLPProvider:
		if r.otlpEndpoint == "" {
			r.emitWarning("OTLP endpoint not specified, will use default", "default", "http://localhost:4318")
			r.otlpEndpoint = "http://localhost:4318"
		}
	case StdoutProvider:
	default:
		return fmt.Errorf("unsupported stats provider: %s", r.provider)
	}

	return nil
}

// initInstruments creates the scan instruments on the configured meter.
func (r *Recorder) initInstruments() error {
	r.serviceNameAttr = attribute.String("service.name", r.serviceName)
	r.serviceVersionAttr = attribute.String("service.version", r.serviceVersion)

	var err error

	r.controllersScanned, err = r.meter.Int64Counter(
		"scan_controllers_total",
		metric.WithDescription("Total number of controllers scanned"),
	)
	if err != nil {
		return fmt.Errorf("failed to create controllers counter: %w", err)
	}

	r.routesRegistered, err = r.meter.Int64Counter(
		"scan_routes_total",
		metric.WithDescription("Total number of routes derived from controller methods"),
	)
	if err != nil {
		return fmt.Errorf("failed to create routes counter: %w", err)
	}

	r.methodsSkipped, err = r.meter.Int64Counter(
		"scan_skipped_methods_total",
		metric.WithDescription("Total number of controller methods that produced no route"),
	)
	if err != nil {
		return fmt.Errorf("failed to create skipped methods counter: %w", err)
	}

	r.routesPerController, err = r.meter.Int64Histogram(
		"scan_routes_per_controller",
		metric.WithDescription("Distribution of route counts per scanned controller"),
		metric.WithExplicitBucketBoundaries(1, 2, 5, 10, 20, 50, 100),
	)
	if err != nil {
		return fmt.Errorf("failed to create routes histogram: %w", err)
	}

	return nil
}

// OnControllerScanned implements actions.ScanRecorder.
func (r *Recorder) OnControllerScanned(controller string, routes int) {
	ctx := context.Background()
	attrs := metric.WithAttributes(
		r.serviceNameAttr,
		r.serviceVersionAttr,
		attribute.String("controller", controller),
	)
	r.controllersScanned.Add(ctx, 1, attrs)
	r.routesPerController.Record(ctx, int64(routes), attrs)
}

// OnRouteRegistered implements actions.ScanRecorder.
func (r *Recorder) OnRouteRegistered(controller, method, name, path string) {
	r.routesRegistered.Add(context.Background(), 1, metric.WithAttributes(
		r.serviceNameAttr,
		r.serviceVersionAttr,
		attribute.String("controller", controller),
		attribute.String("route", name),
	))
}

// OnMethodSkipped implements actions.ScanRecorder.
func (r *Recorder) OnMethodSkipped(controller, method string, reason actions.SkipReason) {
	r.methodsSkipped.Add(context.Background(), 1, metric.WithAttributes(
		r.serviceNameAttr,
		r.serviceVersionAttr,
		attribute.String("controller", controller),
		attribute.String("reason", string(reason)),
	))
}

// Handler returns the Prometheus metrics http.Handler. Use it to serve the
// metrics endpoint on an existing mux when the automatic server is
// disabled. Returns an error unless the Prometheus provider is active.
func (r *Recorder) Handler() (http.Handler, error) {
	if r.provider != PrometheusProvider || r.prometheusHandler == nil {
		return nil, fmt.Errorf("handler only available with Prometheus provider, current provider: %s", r.provider)
	}
	return r.prometheusHandler, nil
}

// Provider returns the active metrics provider.
func (r *Recorder) Provider() Provider {
	return r.provider
}

// ServiceName returns the configured service name.
func (r *Recorder) ServiceName() string {
	return r.serviceName
}

// Start launches the metrics server when the Prometheus provider is active
// and the automatic server has not been disabled. Idempotent.
func (r *Recorder) Start(ctx context.Context) error {
	if !r.isStarted.CompareAndSwap(false, true) {
		return nil
	}
	if r.provider == PrometheusProvider && r.serveAuto {
		r.startMetricsServer()
	}
	return nil
}

// Shutdown stops the metrics server and flushes and shuts down the meter
// provider. Call it before the application exits so pending metric data is
// exported. Idempotent.
func (r *Recorder) Shutdown(ctx context.Context) error {
	if !r.isShuttingDown.CompareAndSwap(false, true) {
		return nil
	}

	var errs []error

	if err := r.stopMetricsServer(ctx); err != nil {
		errs = append(errs, err)
	}

	if r.customMeterProvider {
		r.emitDebug("skipping shutdown of custom meter provider (managed by caller)")
	} else if err := r.shutdownSDKMeterProvider(ctx); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}
	return nil
}

// shutdownSDKMeterProvider flushes and shuts down the SDK meter provider.
// Flush failures are reported as warnings; only shutdown failures error.
func (r *Recorder) shutdownSDKMeterProvider(ctx context.Context) error {
	mp, ok := r.meterProvider.(*sdkmetric.MeterProvider)
	if !ok {
		return nil
	}

	if err := mp.ForceFlush(ctx); err != nil {
		r.emitWarning("stats flush warning", "error", err)
	}

	if err := mp.Shutdown(ctx); err != nil {
		return fmt.Errorf("meter provider shutdown: %w", err)
	}
	return nil
}

// ForceFlush immediately exports any pending metric data. Useful for
// push-based providers (OTLP, stdout); for Prometheus it is a no-op since
// metrics are collected when scraped.
func (r *Recorder) ForceFlush(ctx context.Context) error {
	if r.isShuttingDown.Load() {
		return nil
	}
	if mp, ok := r.meterProvider.(*sdkmetric.MeterProvider); ok {
		if err := mp.ForceFlush(ctx); err != nil {
			return fmt.Errorf("stats force flush: %w", err)
		}
	}
	return nil
}

// emitError emits an error event if an event handler is configured.
func (r *Recorder) emitError(msg string, args ...any) {
	if r.eventHandler != nil {
		r.eventHandler(Event{Type: EventError, Message: msg, Args: args})
	}
}

// emitWarning emits a warning event if an event handler is configured.
func (r *Recorder) emitWarning(msg string, args ...any) {
	if r.eventHandler != nil {
		r.eventHandler(Event{Type: EventWarning, Message: msg, Args: args})
	}
}

// emitInfo emits an info event if an event handler is configured.
func (r *Recorder) emitInfo(msg string, args ...any) {
	if r.eventHandler != nil {
		r.eventHandler(Event{Type: EventInfo, Message: msg, Args: args})
	}
}

// emitDebug emits a debug event if an event handler is configured.
func (r *Recorder) emitDebug(msg string, args ...any) {
	if r.eventHandler != nil {
		r.eventHandler(Event{Type: EventDebug, Message: msg, Args: args})
	}
}
