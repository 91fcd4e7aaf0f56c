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

// Package route provides the route model produced by convention scanning:
// descriptors, parameter requirements, and the named collection they are
// registered into.
//
// This package contains:
//   - Descriptor: One derived route (name, method set, path segments,
//     requirements, defaults, handler)
//   - Collection: Named, ordered registration target with replace semantics
//   - Requirement: Compiled parameter constraints (int, UUID, enum, regex, etc.)
//   - ReversePattern: Compiled patterns for URL building from route names
//
// # Descriptor Lifecycle
//
// Descriptors are built fluently during a scan and sealed when added to a
// Collection. After sealing they are read-only; mutation panics:
//
//	d := route.NewDescriptor().
//	    AddMethods("GET").
//	    AppendSegments("users", "{user}").
//	    Where("user", `\d+`)
//	col.Add("get_user", d)
//
// # Reverse Routing
//
// Registered routes can be turned back into URLs by name:
//
//	u, err := col.URL("get_user", map[string]string{"user": "42"}, nil)
//	// "/users/42"
//
// All operations in this package occur at startup during route derivation.
// After the build pass completes, a Collection is safe for concurrent reads.
package route
