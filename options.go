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
	"log/slog"

	"rivaas.dev/actions/inflect"
	"rivaas.dev/actions/version"
)

// Option defines functional options for scanner configuration.
type Option func(*Scanner)

// WithPrefix sets a path prefix prepended to every derived route. The
// prefix may contain placeholders, including {version}:
//
//	s := actions.MustNew(actions.WithPrefix("/api/{version}"))
func WithPrefix(prefix string) Option {
	return func(s *Scanner) {
		s.prefix = prefix
	}
}

// WithNamePrefix sets a prefix prepended to every derived route name.
//
//	s := actions.MustNew(actions.WithNamePrefix("api_"))
//	// GetUser on UsersController registers as "api_get_user"
func WithNamePrefix(prefix string) Option {
	return func(s *Scanner) {
		s.namePrefix = prefix
	}
}

// WithInflector replaces the default English inflector used for
// pluralizing collection resources and singularizing placeholder names.
//
//	s := actions.MustNew(actions.WithInflector(inflect.Map(
//	    map[string]string{"schema": "schemata"}, nil,
//	)))
func WithInflector(inf inflect.Inflector) Option {
	return func(s *Scanner) {
		s.inflector = inf
	}
}

// WithVersioning declares the API version set routes are constrained to.
// Paths carrying {version} receive a requirement restricting the parameter
// to the declared versions; paths without it receive a request-matching
// condition.
//
//	s, err := actions.New(
//	    actions.WithPrefix("/api/{version}"),
//	    actions.WithVersioning(
//	        version.WithVersions("v1", "v2"),
//	        version.WithDefault("v2"),
//	    ),
//	)
func WithVersioning(opts ...version.Option) Option {
	return func(s *Scanner) {
		s.versionOpts = opts
	}
}

// WithVersionConfig supplies a pre-built version configuration instead of
// WithVersioning options. Useful when the same Config also drives the
// mount layer.
func WithVersionConfig(cfg *version.Config) Option {
	return func(s *Scanner) {
		s.versionCfg = cfg
	}
}

// WithFormats enables format suffixes: every derived route gains a trailing
// ".{_format}" on its final path segment, constrained to the given formats.
//
//	s := actions.MustNew(actions.WithFormats("json", "xml"))
//	// GetUser registers /users/{user}.{_format} alongside /users/{user}
func WithFormats(formats ...string) Option {
	return func(s *Scanner) {
		s.formats = formats
	}
}

// WithDefaultFormat sets the format assumed when a request carries no
// format suffix. Must be one of the formats given to WithFormats.
func WithDefaultFormat(format string) Option {
	return func(s *Scanner) {
		s.defaultFormat = format
	}
}

// WithLogger sets the structured logger used during scanning and by the
// handlers the scanner binds. Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		s.logger = logger
	}
}

// WithDiagnostics sets a diagnostic handler for the scanner.
//
// Diagnostic events are optional informational events that may indicate
// configuration issues, such as one route name displacing another.
// Scanning behaves identically whether diagnostics are collected or not.
//
//	handler := actions.DiagnosticHandlerFunc(func(e actions.DiagnosticEvent) {
//	    slog.Warn(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	s := actions.MustNew(actions.WithDiagnostics(handler))
func WithDiagnostics(handler DiagnosticHandler) Option {
	return func(s *Scanner) {
		s.diagnostics = handler
	}
}

// WithRecorder sets the scan recorder receiving controller, route, and
// skip events. The stats package provides an OpenTelemetry-backed
// implementation.
func WithRecorder(recorder ScanRecorder) Option {
	return func(s *Scanner) {
		s.recorder = recorder
	}
}

// ScanOption adjusts a single Scan call.
type ScanOption func(*scanConfig)

// scanConfig carries per-scan settings.
type scanConfig struct {
	parents   []string
	resource  string
	overrides map[string][]Override
}

// WithParents nests every derived route under the given parent resources:
// each parent contributes a plural segment and a singular placeholder, so
// parents "users" yield paths under /users/{user}/... and names carrying
// the singular parent ("get_user_comments").
func WithParents(parents ...string) ScanOption {
	return func(c *scanConfig) {
		c.parents = parents
	}
}

// WithResource sets the resource name used when an action name carries no
// resource tokens, instead of inferring it from the controller type name.
func WithResource(name string) ScanOption {
	return func(c *scanConfig) {
		c.resource = name
	}
}

// WithOverrides supplies per-method route overrides without the controller
// implementing OverrideProvider. Overrides from the provider, when both are
// present, run before these.
func WithOverrides(overrides map[string][]Override) ScanOption {
	return func(c *scanConfig) {
		c.overrides = overrides
	}
}
