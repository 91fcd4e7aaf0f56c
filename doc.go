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

// Package actions derives REST routes from controller method names.
//
// Instead of registering every route by hand, controllers follow a naming
// convention: an action method is named after an HTTP verb and the
// resources it addresses, and the scanner reflects over the controller to
// produce a route collection. The collection then mounts on the standard
// library mux, gin, or echo.
//
// # Key Features
//
//   - Route derivation from method names (GetUser -> GET /users/{user})
//   - Collection scoping with automatic pluralization (CgetUsers -> GET /users)
//   - Conventional actions (NewUser, EditUser, RemoveUser) mapped to GET forms
//   - Custom verbs mapped to GET or PATCH based on their parameters
//   - Parent resources nesting routes under /parents/{parent}/...
//   - Per-method overrides for path, name, methods, requirements, and defaults
//   - API versioning as path requirements or request-matching conditions
//   - Optional format suffixes (.json, .xml) with a default format
//   - Reverse URL building from route names
//   - Mount adapters for *http.ServeMux, gin, and echo
//
// # Naming Convention
//
// A method name splits on camel-case boundaries into a verb followed by
// resource tokens. The verb picks the HTTP method, the resources build the
// path and route name:
//
//	GetUser(c, id)            GET    /users/{user}         get_user
//	CgetUsers(c)              GET    /users                get_users
//	PostUsers(c)              POST   /users                post_users
//	NewUsers(c)               GET    /users/new            new_users
//	EditUser(c, id)           GET    /users/{user}/edit    edit_user
//	BanUser(c, id)            PATCH  /users/{user}/ban     ban_user
//	GetUserComments(c, id)    GET    /users/{user}/comments get_user_comments
//	GetUserByName(c, name)    GET    /users/{name}         get_user
//
// A leading "C" marks a collection action: the trailing resource
// pluralizes and the route addresses the resource set. A trailing "By"
// clause renames the final placeholder. Methods whose signature does not
// match an action handler are skipped.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "net/http"
//
//	    "rivaas.dev/actions"
//	)
//
//	type UsersController struct{}
//
//	func (uc *UsersController) CgetUsers(c *actions.Context) {
//	    c.JSON(http.StatusOK, []string{"alice", "bob"})
//	}
//
//	func (uc *UsersController) GetUser(c *actions.Context, id string) {
//	    c.JSON(http.StatusOK, map[string]string{"id": id})
//	}
//
//	func main() {
//	    s := actions.MustNew(actions.WithPrefix("/api"))
//
//	    col, err := s.Infer(&UsersController{})
//	    if err != nil {
//	        panic(err)
//	    }
//
//	    mux, err := actions.MountServeMux(col)
//	    if err != nil {
//	        panic(err)
//	    }
//
//	    http.ListenAndServe(":8080", mux)
//	}
//
// # Constructor Pattern
//
// New validates configuration eagerly and returns an error, because
// options such as WithVersioning and WithDefaultFormat can carry invalid
// input; MustNew panics instead for top-of-main wiring. All options use
// the "With" prefix.
//
// # Action Handlers
//
// An action method takes *Context first, then any number of string
// parameters fed from path placeholders in order, and optionally returns
// an error:
//
//	func (uc *UsersController) GetUser(c *actions.Context, id string)
//	func (uc *UsersController) PutUser(c *actions.Context, id string) error
//
// A returned error is logged and answered with a 500 JSON body unless the
// handler already wrote a response.
//
// # Overrides
//
// Controllers fine-tune derived routes per method, either by implementing
// OverrideProvider or through WithOverrides at scan time. An override can
// replace the path, name, or HTTP methods, merge requirements and
// defaults, or suppress the route entirely. A method carrying several
// overrides registers one route per override.
//
// # API Versioning
//
// WithVersioning constrains derived routes to a version set. Routes whose
// path carries a {version} placeholder receive a parameter requirement;
// all other routes receive a request-matching condition enforced at the
// mount layer:
//
//	s := actions.MustNew(
//	    actions.WithPrefix("/api/{version}"),
//	    actions.WithVersioning(
//	        version.WithVersions("v1", "v2"),
//	        version.WithDefault("v2"),
//	    ),
//	)
//
// Deprecation and sunset metadata registered through version.WithLifecycle
// surfaces as response headers when mounting with WithVersionMatching.
//
// # Format Suffixes
//
// WithFormats appends ".{_format}" to every derived path so clients pick a
// representation by extension. With WithDefaultFormat the suffix is
// optional and the default applies:
//
//	s := actions.MustNew(
//	    actions.WithFormats("json", "xml"),
//	    actions.WithDefaultFormat("json"),
//	)
//	// GET /users/42.xml -> Format() == "xml"
//	// GET /users/42     -> Format() == "json"
//
// # Mounting
//
// Mount registers a collection on any Registrar. Adapters ship for the
// standard library mux, gin, and echo:
//
//	mux := http.NewServeMux()
//	err := actions.Mount(actions.NewServeMuxTarget(mux), col,
//	    actions.WithVersionMatching(s.VersionConfig()),
//	)
//
// # Observability
//
// WithLogger attaches structured logging, WithDiagnostics streams
// registration events (routes registered, replaced, methods skipped), and
// WithRecorder feeds scan counters to a metrics backend such as the stats
// package.
package actions
