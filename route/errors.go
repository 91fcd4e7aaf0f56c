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

import "errors"

var (
	// ErrRouteNotFound indicates that no route is registered under the requested name.
	ErrRouteNotFound = errors.New("route not found")

	// ErrMissingRouteParameter indicates that a required parameter for URL building is missing.
	ErrMissingRouteParameter = errors.New("missing required parameter")

	// ErrInvalidRequirement indicates that a requirement pattern does not compile.
	ErrInvalidRequirement = errors.New("invalid requirement pattern")
)
