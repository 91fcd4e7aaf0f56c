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

// Package stats records route derivation metrics on OpenTelemetry
// instruments.
//
// The Recorder implements actions.ScanRecorder: plugged into a scanner via
// actions.WithRecorder it counts scanned controllers, derived routes, and
// skipped methods, and records the route count distribution per
// controller. Measurements flow to a Prometheus endpoint, an OTLP
// collector, or stdout depending on the configured provider.
//
// # Quick Start
//
//	rec, err := stats.New(
//	    stats.WithPrometheus(":9090", "/metrics"),
//	    stats.WithServiceName("user-api"),
//	)
//	if err != nil {
//	    return err
//	}
//	defer rec.Shutdown(context.Background())
//
//	s := actions.MustNew(actions.WithRecorder(rec))
//
// # Instruments
//
//   - scan_controllers_total: controllers scanned, by controller
//   - scan_routes_total: routes derived, by controller and route name
//   - scan_skipped_methods_total: methods producing no route, by reason
//   - scan_routes_per_controller: route count distribution
//
// Scans happen once at startup, so cardinality is bounded by the size of
// the codebase rather than by traffic.
//
// # Providers
//
// The default Prometheus provider serves a pull endpoint on its own server
// (disable with WithServerDisabled and mount Handler() yourself). WithOTLP
// pushes to a collector on the export interval; WithStdout prints to
// stdout for development. The global OpenTelemetry meter provider is never
// touched, so multiple recorders can coexist.
package stats
