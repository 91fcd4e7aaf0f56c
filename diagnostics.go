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

// DiagnosticEvent represents a scan diagnostic or anomaly.
// These are informational events that may indicate configuration issues,
// such as a route name silently replacing an earlier one.
//
// Diagnostic events are optional - scanning behaves identically whether
// they are collected or not. They provide visibility into edge cases for
// observability systems.
type DiagnosticEvent struct {
	Kind    DiagnosticKind
	Message string
	Fields  map[string]any // Structured context
}

// DiagnosticKind categorizes diagnostic events.
type DiagnosticKind string

const (
	// DiagRouteRegistered is emitted for every route added to a collection.
	DiagRouteRegistered DiagnosticKind = "route_registered"

	// DiagRouteReplaced is emitted when a registered name displaces an
	// earlier route with the same name.
	DiagRouteReplaced DiagnosticKind = "route_replaced"

	// DiagMethodSkipped is emitted when a controller method produces no
	// route (signature mismatch, suppressed, or no resolvable resource).
	DiagMethodSkipped DiagnosticKind = "method_skipped"

	// DiagDualRegistration is emitted when a collection route's resource
	// does not inflect and the route registers under a second,
	// collection-prefixed name.
	DiagDualRegistration DiagnosticKind = "dual_registration"
)

// DiagnosticHandler receives diagnostic events from the scanner.
// Implementations may log, emit metrics, or ignore them.
//
// This interface is optional - if not provided, diagnostics are silently
// dropped.
//
// Example with logging:
//
//	import "log/slog"
//
//	handler := actions.DiagnosticHandlerFunc(func(e actions.DiagnosticEvent) {
//	    slog.Warn(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	s := actions.MustNew(actions.WithDiagnostics(handler))
//
// Example with metrics:
//
//	handler := actions.DiagnosticHandlerFunc(func(e actions.DiagnosticEvent) {
//	    metrics.Increment("actions.diagnostics", "kind", string(e.Kind))
//	})
type DiagnosticHandler interface {
	OnDiagnostic(DiagnosticEvent)
}

// DiagnosticHandlerFunc is a function adapter for DiagnosticHandler.
type DiagnosticHandlerFunc func(DiagnosticEvent)

func (f DiagnosticHandlerFunc) OnDiagnostic(e DiagnosticEvent) {
	f(e)
}
