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

package manifest

import (
	"fmt"
	"slices"
)

// Constructor builds a controller instance for one manifest entry.
type Constructor func() any

// Registry maps manifest controller names to constructors. Registration
// happens at startup before Build; the registry is not synchronized.
type Registry struct {
	constructors map[string]Constructor
}

// NewRegistry creates an empty constructor registry.
func NewRegistry() *Registry {
	return &Registry{
		constructors: make(map[string]Constructor),
	}
}

// Register stores a constructor under the given name. Registering a name
// again replaces the previous constructor.
func (r *Registry) Register(name string, ctor Constructor) {
	r.constructors[name] = ctor
}

// Resolve returns the constructor registered under name.
func (r *Registry) Resolve(name string) (Constructor, error) {
	ctor, ok := r.constructors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownController, name)
	}
	return ctor, nil
}

// Names returns the registered controller names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.constructors))
	for name := range r.constructors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
