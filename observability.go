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

package actions

import (
	"io"
	"log/slog"
)

// noopLogger is a singleton no-op logger used when no logger is configured.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// NoopLogger returns the singleton no-op logger.
func NoopLogger() *slog.Logger {
	return noopLogger
}

// SkipReason says why a controller method produced no route.
type SkipReason string

const (
	// SkipSignature: the method's signature does not conform to an action
	// handler (func(*Context, ...string) with an optional error return).
	SkipSignature SkipReason = "signature_mismatch"

	// SkipSuppressed: an override with None set suppressed the route.
	SkipSuppressed SkipReason = "route_suppressed"

	// SkipNoResource: the name carries no resource tokens and none could
	// be inferred from the controller.
	SkipNoResource SkipReason = "no_resource"
)

// ScanRecorder receives scan lifecycle events for metrics collection.
// Implementations must be safe for concurrent use; the stats package
// provides an OpenTelemetry-backed implementation.
//
// All methods are called synchronously during Scan, so implementations
// should be fast and must not block.
type ScanRecorder interface {
	// OnControllerScanned is called once per controller after its methods
	// have been read, with the number of routes the controller produced.
	OnControllerScanned(controller string, routes int)

	// OnRouteRegistered is called for every route added to the collection.
	OnRouteRegistered(controller, method, name, path string)

	// OnMethodSkipped is called for every method that produced no route.
	OnMethodSkipped(controller, method string, reason SkipReason)
}

// noopRecorder discards all scan events.
type noopRecorder struct{}

func (noopRecorder) OnControllerScanned(string, int)                  {}
func (noopRecorder) OnRouteRegistered(string, string, string, string) {}
func (noopRecorder) OnMethodSkipped(string, string, SkipReason)       {}
