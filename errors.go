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

import "errors"

var (
	// ErrNilCollection indicates that the route collection is nil.
	ErrNilCollection = errors.New("route collection is nil")

	// ErrNilController indicates that the controller is nil.
	ErrNilController = errors.New("controller is nil")

	// ErrNilTarget indicates that the mount target is nil.
	ErrNilTarget = errors.New("mount target is nil")

	// ErrInvalidParent indicates that a parent resource name is empty or
	// carries a path separator.
	ErrInvalidParent = errors.New("invalid parent resource")

	// ErrInvalidFormat indicates that the format configuration is invalid.
	ErrInvalidFormat = errors.New("invalid format configuration")

	// ErrUnsupportedHandler indicates that a descriptor's handler has a type
	// the mount layer cannot serve.
	ErrUnsupportedHandler = errors.New("unsupported handler type")

	// ErrUnmountableSegment indicates that a path segment mixes literals and
	// parameters in a way no mount target can express.
	ErrUnmountableSegment = errors.New("unmountable path segment")

	// ErrContextResponseNil indicates that the context response is nil.
	ErrContextResponseNil = errors.New("context response is nil")
)
