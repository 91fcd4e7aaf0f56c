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
	"net/http"
	"strings"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// initializeProvider initializes the metrics provider based on configuration.
func (r *Recorder) initializeProvider() error {
	if r.customMeterProvider {
		if r.meterProvider == nil {
			return fmt.Errorf("custom meter provider is nil")
		}
		r.meter = r.meterProvider.Meter(meterName)
		return r.initInstruments()
	}

	switch r.provider {
	case PrometheusProvider:
		return r.initPrometheusProvider()
	case OTLPProvider:
		return r.initOTLPProvider()
	case StdoutProvider:
		return r.initStdoutProvider()
	default:
		return fmt.Errorf("unsupported stats provider: %s", r.provider)
	}
}

// initPrometheusProvider wires a dedicated Prometheus registry so several
// recorders can coexist without global registry conflicts.
func (r *Recorder) initPrometheusProvider() error {
	r.prometheusRegistry = promclient.NewRegistry()

	exporter, err := prometheus.New(
		prometheus.WithRegisterer(r.prometheusRegistry),
	)
	if err != nil {
		return fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}

	r.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	r.prometheusHandler = promhttp.HandlerFor(
		r.prometheusRegistry,
		promhttp.HandlerOpts{},
	)

	r.meter = r.meterProvider.Meter(meterName)
	return r.initInstruments()
}

// initOTLPProvider pushes metrics to an OTLP HTTP collector on a periodic
// reader.
func (r *Recorder) initOTLPProvider() error {
	opts := []otlpmetrichttp.Option{}

	if r.otlpEndpoint != "" {
		endpoint := r.otlpEndpoint
		insecure := false

		if strings.HasPrefix(endpoint, "http://") {
			endpoint = strings.TrimPrefix(endpoint, "http://")
			insecure = true
		} else if strings.HasPrefix(endpoint, "https://") {
			endpoint = strings.TrimPrefix(endpoint, "https://")
		}
		if idx := strings.Index(endpoint, "/"); idx != -1 {
			endpoint = endpoint[:idx]
		}

		opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		if insecure {
			opts = append(opts, otlpmetrichttp.WithInsecure())
		}
	}

	exporter, err := otlpmetrichttp.New(context.Background(), opts...)
	if err != nil {
		return fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	r.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(
			exporter,
			sdkmetric.WithInterval(r.exportInterval),
		)),
	)

	r.meter = r.meterProvider.Meter(meterName)
	return r.initInstruments()
}

// initStdoutProvider prints metrics to stdout on a periodic reader.
func (r *Recorder) initStdoutProvider() error {
	exporter, err := stdoutmetric.New()
	if err != nil {
		return fmt.Errorf("failed to create stdout exporter: %w", err)
	}

	r.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(
			exporter,
			sdkmetric.WithInterval(r.exportInterval),
		)),
	)

	r.meter = r.meterProvider.Meter(meterName)
	return r.initInstruments()
}

// startMetricsServer serves the Prometheus endpoint on a dedicated server.
func (r *Recorder) startMetricsServer() {
	if r.prometheusHandler == nil || r.isShuttingDown.Load() {
		return
	}

	mux := http.NewServeMux()
	mux.Handle(r.serverPath, r.prometheusHandler)

	server := &http.Server{
		Addr:         r.serverAddr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	r.serverMu.Lock()
	r.server = server
	r.serverMu.Unlock()

	go func() {
		r.emitInfo("stats server starting", "address", r.serverAddr, "path", r.serverPath)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			r.serverMu.Lock()
			r.server = nil
			r.serverMu.Unlock()
			r.emitError("stats server error", "error", err)
		}
	}()
}

// stopMetricsServer stops the dedicated metrics server.
func (r *Recorder) stopMetricsServer(ctx context.Context) error {
	r.serverMu.Lock()
	server := r.server
	r.server = nil
	r.serverMu.Unlock()

	if server == nil {
		return nil
	}
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("stats server shutdown: %w", err)
	}
	return nil
}
