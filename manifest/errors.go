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

import "errors"

var (
	// ErrUnknownFormat indicates that the manifest format could not be
	// determined or is not supported.
	ErrUnknownFormat = errors.New("unknown manifest format")

	// ErrNoControllers indicates that the manifest declares no controllers.
	ErrNoControllers = errors.New("manifest declares no controllers")

	// ErrMissingControllerName indicates a controller entry without a name.
	ErrMissingControllerName = errors.New("controller entry is missing a name")

	// ErrInvalidManifest indicates a structurally invalid manifest.
	ErrInvalidManifest = errors.New("invalid manifest")

	// ErrUnknownController indicates that no constructor is registered for
	// a controller name the manifest references.
	ErrUnknownController = errors.New("no constructor registered for controller")

	// ErrNilManifest indicates that the manifest is nil.
	ErrNilManifest = errors.New("manifest is nil")

	// ErrNilRegistry indicates that the constructor registry is nil.
	ErrNilRegistry = errors.New("constructor registry is nil")
)
