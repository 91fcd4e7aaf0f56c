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

package route

import (
	"maps"
	"slices"
	"strings"
)

// Handler is an opaque handler value carried by a Descriptor.
// The scanner stores its bound handler here; mount targets assert it back
// to the concrete handler type. Using an alias avoids an import cycle
// between this package and the scanner package.
type Handler = any

// Descriptor describes one derived route: a name, an HTTP method set, an
// ordered sequence of path segments, parameter requirements, and defaults.
//
// Descriptors use a fluent builder interface during derivation and become
// immutable once added to a Collection. Mutating a sealed descriptor panics;
// derivation happens once at startup, so a bad mutation is a programming
// error worth failing loudly on.
type Descriptor struct {
	name         string
	methods      []string // uppercase, insertion order, unique
	segments     []string // path segments without slashes, e.g. "users", "{user}"
	requirements map[string]Requirement
	defaults     map[string]any
	host         string
	schemes      []string
	condition    string
	collection   bool
	handler      Handler
	reverse      *ReversePattern // compiled on seal for URL building
	sealed       bool
}

// NewDescriptor creates an empty route descriptor.
// Builders are chainable:
//
//	d := route.NewDescriptor().
//	    AddMethods("GET").
//	    AppendSegments("users", "{user}").
//	    Where("user", `\d+`)
func NewDescriptor() *Descriptor {
	return &Descriptor{
		requirements: make(map[string]Requirement),
		defaults:     make(map[string]any),
	}
}

// SetName assigns the route name used for registration and reverse routing.
func (d *Descriptor) SetName(name string) *Descriptor {
	d.checkSealed()
	d.name = name
	return d
}

// AddMethods appends HTTP methods to the descriptor's method set.
// Methods are uppercased and deduplicated while preserving insertion order.
func (d *Descriptor) AddMethods(methods ...string) *Descriptor {
	d.checkSealed()
	for _, m := range methods {
		m = strings.ToUpper(m)
		if m == "" || slices.Contains(d.methods, m) {
			continue
		}
		d.methods = append(d.methods, m)
	}
	return d
}

// SetMethods replaces the descriptor's method set.
func (d *Descriptor) SetMethods(methods ...string) *Descriptor {
	d.checkSealed()
	d.methods = d.methods[:0]
	return d.AddMethods(methods...)
}

// AppendSegments appends path segments in order.
// Segments must not contain slashes; parameters use "{name}" syntax.
func (d *Descriptor) AppendSegments(segments ...string) *Descriptor {
	d.checkSealed()
	for _, s := range segments {
		if s == "" {
			continue
		}
		d.segments = append(d.segments, s)
	}
	return d
}

// SetSegments replaces all path segments.
func (d *Descriptor) SetSegments(segments ...string) *Descriptor {
	d.checkSealed()
	d.segments = d.segments[:0]
	return d.AppendSegments(segments...)
}

// Where adds a parameter requirement from a regex pattern.
// The pattern is compiled and anchored immediately and panics when invalid,
// matching the startup-time validation style of the typed constructors.
// Use SetRequirement with TryPattern for requirements sourced from data files.
func (d *Descriptor) Where(param, pattern string) *Descriptor {
	d.checkSealed()
	d.requirements[param] = RequirementFromPattern(param, pattern)
	return d
}

// SetRequirement stores a pre-built parameter requirement.
func (d *Descriptor) SetRequirement(r Requirement) *Descriptor {
	d.checkSealed()
	d.requirements[r.Param] = r
	return d
}

// SetDefault stores a default value under the given key.
func (d *Descriptor) SetDefault(key string, value any) *Descriptor {
	d.checkSealed()
	d.defaults[key] = value
	return d
}

// MergeDefaults merges the given defaults into the descriptor,
// overwriting existing keys.
func (d *Descriptor) MergeDefaults(defaults map[string]any) *Descriptor {
	d.checkSealed()
	maps.Copy(d.defaults, defaults)
	return d
}

// SetHost restricts the route to a host pattern (empty = any host).
func (d *Descriptor) SetHost(host string) *Descriptor {
	d.checkSealed()
	d.host = host
	return d
}

// SetSchemes restricts the route to the given URL schemes.
func (d *Descriptor) SetSchemes(schemes ...string) *Descriptor {
	d.checkSealed()
	d.schemes = append(d.schemes[:0], schemes...)
	return d
}

// SetCondition stores a request-matching condition expression.
// The expression is informational metadata; enforcement happens in the
// mount layer, which knows how to evaluate it against live requests.
func (d *Descriptor) SetCondition(condition string) *Descriptor {
	d.checkSealed()
	d.condition = condition
	return d
}

// SetCollection marks the route as collection-scoped
// (addressing the resource set rather than one element).
func (d *Descriptor) SetCollection(collection bool) *Descriptor {
	d.checkSealed()
	d.collection = collection
	return d
}

// SetHandler attaches the handler invoked when the route matches.
func (d *Descriptor) SetHandler(h Handler) *Descriptor {
	d.checkSealed()
	d.handler = h
	return d
}

// Name returns the route name (empty if not named yet).
func (d *Descriptor) Name() string {
	return d.name
}

// Methods returns a copy of the HTTP method set in insertion order.
func (d *Descriptor) Methods() []string {
	return slices.Clone(d.methods)
}

// Segments returns a copy of the ordered path segments.
func (d *Descriptor) Segments() []string {
	return slices.Clone(d.segments)
}

// Path returns the URL path pattern, segments joined by "/" with a leading
// slash. A descriptor without segments maps to "/".
func (d *Descriptor) Path() string {
	if len(d.segments) == 0 {
		return "/"
	}
	return "/" + strings.Join(d.segments, "/")
}

// Params returns the parameter names appearing in the path, in order.
// Compound segments like "{user}.{_format}" contribute each parameter.
func (d *Descriptor) Params() []string {
	var params []string
	for _, seg := range d.segments {
		params = append(params, segmentParams(seg)...)
	}
	return params
}

// Requirement returns the requirement for a parameter, if set.
func (d *Descriptor) Requirement(param string) (Requirement, bool) {
	r, ok := d.requirements[param]
	return r, ok
}

// Requirements returns the parameter requirements as pattern strings,
// keyed by parameter name. The patterns are reported without the anchors
// added during compilation.
func (d *Descriptor) Requirements() map[string]string {
	if len(d.requirements) == 0 {
		return nil
	}
	out := make(map[string]string, len(d.requirements))
	for param, r := range d.requirements {
		out[param] = r.Source()
	}
	return out
}

// Default returns the default value stored under key.
func (d *Descriptor) Default(key string) (any, bool) {
	v, ok := d.defaults[key]
	return v, ok
}

// Defaults returns a copy of the defaults map.
func (d *Descriptor) Defaults() map[string]any {
	if len(d.defaults) == 0 {
		return nil
	}
	out := make(map[string]any, len(d.defaults))
	maps.Copy(out, d.defaults)
	return out
}

// Host returns the host restriction (empty if unrestricted).
func (d *Descriptor) Host() string {
	return d.host
}

// Schemes returns a copy of the scheme restrictions.
func (d *Descriptor) Schemes() []string {
	return slices.Clone(d.schemes)
}

// Condition returns the request-matching condition expression.
func (d *Descriptor) Condition() string {
	return d.condition
}

// Collection reports whether the route is collection-scoped.
func (d *Descriptor) Collection() bool {
	return d.collection
}

// Handler returns the attached handler value.
func (d *Descriptor) Handler() Handler {
	return d.handler
}

// ReversePattern returns the compiled pattern for URL building.
// It is available after the descriptor has been added to a Collection.
func (d *Descriptor) ReversePattern() *ReversePattern {
	return d.reverse
}

// Clone returns an independent, unsealed copy of the descriptor.
// Maps and slices are copied; the handler is shared, since clones point
// at the same controller action.
func (d *Descriptor) Clone() *Descriptor {
	c := &Descriptor{
		name:         d.name,
		methods:      slices.Clone(d.methods),
		segments:     slices.Clone(d.segments),
		requirements: make(map[string]Requirement, len(d.requirements)),
		defaults:     make(map[string]any, len(d.defaults)),
		host:         d.host,
		schemes:      slices.Clone(d.schemes),
		condition:    d.condition,
		collection:   d.collection,
		handler:      d.handler,
	}
	maps.Copy(c.requirements, d.requirements)
	maps.Copy(c.defaults, d.defaults)
	return c
}

// Match reports whether the given parameter values satisfy every
// requirement set on the descriptor. Parameters without a requirement
// always pass.
func (d *Descriptor) Match(params map[string]string) bool {
	for param, r := range d.requirements {
		value, ok := params[param]
		if !ok {
			continue // absent parameters are the mount layer's concern
		}
		if !r.Match(value) {
			return false
		}
	}
	return true
}

// seal freezes the descriptor and compiles its reverse pattern.
// Called by Collection.Add.
func (d *Descriptor) seal() {
	if d.sealed {
		return
	}
	d.reverse = ParseReversePattern(d.Path())
	d.sealed = true
}

func (d *Descriptor) checkSealed() {
	if d.sealed {
		panic("route: descriptor is sealed after registration")
	}
}

// segmentParams extracts "{name}" parameter names from one path segment.
// A segment may embed several parameters ("{user}.{_format}").
func segmentParams(segment string) []string {
	var params []string
	for {
		open := strings.IndexByte(segment, '{')
		if open == -1 {
			return params
		}
		end := strings.IndexByte(segment[open:], '}')
		if end == -1 {
			return params
		}
		params = append(params, segment[open+1:open+end])
		segment = segment[open+end+1:]
	}
}
