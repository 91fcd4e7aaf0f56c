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

// Package inflect pluralizes and singularizes resource names for route
// derivation.
//
// Collection routes pluralize their trailing resource ("user" → "users"),
// parent resources contribute singular placeholders ("users" → "{user}"),
// and resources whose plural equals their singular ("sheep", "news") force
// dual route registration. The Inflector interface is the seam for all of
// it:
//
//	inf := inflect.Default()                         // English rules
//	inf = inflect.Static()                           // no inflection
//	inf = inflect.Map(map[string]string{
//	    "schema": "schemata",
//	}, inflect.Default())                            // custom vocabulary
package inflect
