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

// Package manifest drives route derivation from YAML or TOML files.
//
// A manifest declares scanner settings (prefix, formats, versions) and the
// controllers to scan, each referencing a constructor registered in a
// Registry. Build resolves the constructors and produces the same
// collection a hand-wired scanner would, so deployments can reshape their
// route surface without recompiling.
//
//	prefix: /api
//	versions:
//	  valid: [v1, v2]
//	  default: v2
//	controllers:
//	  - name: users
//	  - name: comments
//	    parents: [users]
//	    overrides:
//	      GetComment:
//	        - requirements:
//	            comment: '\d+'
//
// Constructors are plain functions so controllers keep their own wiring:
//
//	reg := manifest.NewRegistry()
//	reg.Register("users", func() any { return &UsersController{store: store} })
//	reg.Register("comments", func() any { return &CommentsController{store: store} })
//
//	m, err := manifest.Load("routes.yaml")
//	if err != nil {
//	    return err
//	}
//	col, err := manifest.Build(m, reg)
package manifest
