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
	"strings"

	"rivaas.dev/actions/route"
)

// Override adjusts or replaces the route derived from one action method.
// Zero-value fields leave the derived value in place; a method with several
// overrides produces one route per override.
type Override struct {
	// None suppresses route generation for the method entirely.
	None bool

	// Name replaces the derived route name. The scanner's name prefix
	// still applies.
	Name string

	// Path replaces the derived resource path. The scanner's path prefix
	// still applies. May contain {placeholders}, including {version}.
	Path string

	// Methods replaces the derived HTTP methods.
	Methods []string

	// Requirements adds param → pattern constraints. An override pattern
	// wins over a derived one for the same param.
	Requirements map[string]string

	// Defaults merges into the derived defaults, override values winning.
	Defaults map[string]any

	// Host restricts the route to a host.
	Host string

	// Schemes restricts the route to URL schemes.
	Schemes []string

	// Condition replaces the derived request-matching condition.
	Condition string
}

// OverrideProvider is implemented by controllers that adjust derived routes.
// RouteOverrides is consulted once per action method, with the method's
// name; returning nil leaves the derivation untouched.
type OverrideProvider interface {
	RouteOverrides(method string) []Override
}

// ResourceNamer is implemented by controllers whose resource name differs
// from the one inferred from the controller type name.
type ResourceNamer interface {
	ResourceName() string
}

// apply folds the override into a derived descriptor. Path and Name are
// handled by the scanner before the descriptor exists; everything else
// lands here.
func (o Override) apply(d *route.Descriptor) {
	if len(o.Methods) > 0 {
		d.SetMethods(o.Methods...)
	}
	for param, pattern := range o.Requirements {
		d.Where(param, pattern)
	}
	if len(o.Defaults) > 0 {
		d.MergeDefaults(o.Defaults)
	}
	if o.Host != "" {
		d.SetHost(o.Host)
	}
	if len(o.Schemes) > 0 {
		d.SetSchemes(o.Schemes...)
	}
	if o.Condition != "" {
		d.SetCondition(o.Condition)
	}
}

// pathSegments splits an override path into segments, dropping empties, so
// "/users/{id}/" and "users/{id}" are the same path.
func (o Override) pathSegments() []string {
	parts := strings.Split(strings.Trim(o.Path, "/"), "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}
