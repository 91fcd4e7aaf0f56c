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
	"fmt"
	"net/url"
	"slices"
)

// Collection holds derived routes under unique names, preserving insertion
// order for deterministic mounting and introspection.
//
// Adding a descriptor seals it: the collection is the registration boundary
// after which descriptors are read-only. A Collection is not safe for
// concurrent mutation; once the build pass finishes it is safe for
// concurrent reads.
type Collection struct {
	names  []string
	byName map[string]*Descriptor
}

// NewCollection creates an empty route collection.
func NewCollection() *Collection {
	return &Collection{
		byName: make(map[string]*Descriptor),
	}
}

// Add registers a descriptor under the given name and seals it.
// Registering a name that already exists replaces the previous descriptor
// in place (its position in iteration order is preserved) and returns it;
// otherwise Add returns nil.
//
// Add panics on a nil descriptor or empty name: registration happens at
// startup, and both indicate a bug in the calling code.
func (c *Collection) Add(name string, d *Descriptor) *Descriptor {
	if d == nil {
		panic("route: cannot add nil descriptor")
	}
	if name == "" {
		panic("route: cannot add descriptor without a name")
	}

	d.name = name
	d.seal()

	prev, replaced := c.byName[name]
	if !replaced {
		c.names = append(c.names, name)
		prev = nil
	}
	c.byName[name] = d
	return prev
}

// Get returns the descriptor registered under name, or nil.
func (c *Collection) Get(name string) *Descriptor {
	return c.byName[name]
}

// Has reports whether a descriptor is registered under name.
func (c *Collection) Has(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// All returns the descriptors in insertion order.
func (c *Collection) All() []*Descriptor {
	out := make([]*Descriptor, 0, len(c.names))
	for _, name := range c.names {
		out = append(out, c.byName[name])
	}
	return out
}

// Names returns the registered route names in insertion order.
func (c *Collection) Names() []string {
	return slices.Clone(c.names)
}

// Len returns the number of registered routes.
func (c *Collection) Len() int {
	return len(c.names)
}

// URL builds a URL for the named route from the given parameters, falling
// back to the descriptor's defaults for missing parameters when the default
// is a non-empty string. Query values are appended when provided.
//
// Example:
//
//	u, err := col.URL("get_user", map[string]string{"user": "42"}, nil)
//	// "/users/42"
func (c *Collection) URL(name string, params map[string]string, query url.Values) (string, error) {
	d := c.byName[name]
	if d == nil {
		return "", fmt.Errorf("%w: %q", ErrRouteNotFound, name)
	}
	return d.reverse.BuildURL(params, d.defaults, query)
}
