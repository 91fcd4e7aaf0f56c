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
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// Option configures a Recorder during New.
type Option func(*Recorder)

// WithPrometheus configures the Prometheus provider with the server address
// and metrics path. This is the default provider.
//
// Example:
//
//	rec, err := stats.New(stats.WithPrometheus(":9090", "/metrics"))
func WithPrometheus(addr, path string) Option {
	return func(r *Recorder) {
		r.provider = PrometheusProvider
		r.providerSetCount++
		if addr != "" {
			r.serverAddr = addr
		}
		if path != "" {
			r.serverPath = path
		}
	}
}

// WithOTLP configures the OTLP HTTP provider with a collector endpoint.
//
// Example:
//
//	rec, err := stats.New(stats.WithOTLP("http://localhost:4318"))
func WithOTLP(endpoint string) Option {
	return func(r *Recorder) {
		r.provider = OTLPProvider
		r.providerSetCount++
		r.otlpEndpoint = endpoint
	}
}

// WithStdout configures the stdout provider for development and debugging.
func WithStdout() Option {
	return func(r *Recorder) {
		r.provider = StdoutProvider
		r.providerSetCount++
	}
}

// WithMeterProvider supplies a custom OpenTelemetry meter provider instead
// of a built-in one. The caller stays responsible for its lifecycle;
// Shutdown will not flush or close it.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(r *Recorder) {
		r.meterProvider = provider
		r.customMeterProvider = true
	}
}

// WithServiceName sets the service.name attribute attached to every
// measurement.
func WithServiceName(name string) Option {
	return func(r *Recorder) {
		r.serviceName = name
	}
}

// WithServiceVersion sets the service.version attribute attached to every
// measurement.
func WithServiceVersion(version string) Option {
	return func(r *Recorder) {
		r.serviceVersion = version
	}
}

// WithExportInterval sets the export interval for OTLP and stdout
// providers.
func WithExportInterval(interval time.Duration) Option {
	return func(r *Recorder) {
		r.exportInterval = interval
	}
}

// WithServerDisabled disables the automatic Prometheus metrics server.
// Serve Handler() on an existing mux instead.
func WithServerDisabled() Option {
	return func(r *Recorder) {
		r.serveAuto = false
	}
}

// WithEventHandler sets a custom EventHandler for internal operational
// events.
//
// Example:
//
//	stats.WithEventHandler(func(e stats.Event) {
//	    if e.Type == stats.EventError {
//	        alerting.Notify(e.Message)
//	    }
//	})
func WithEventHandler(handler EventHandler) Option {
	return func(r *Recorder) {
		r.eventHandler = handler
	}
}

// WithLogger routes internal operational events to a slog.Logger using the
// default event handler.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) {
		r.eventHandler = DefaultEventHandler(logger)
	}
}
