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

// Package version describes API version sets and how versions are detected
// on incoming requests.
//
// A Config declares the allowed versions and zero or more detection
// strategies (path, header, query parameter, Accept media type, or custom).
// Route derivation uses the Config to constrain generated routes: paths
// carrying the {version} placeholder receive a requirement restricting the
// parameter to the declared versions, and paths without it receive a
// request-matching condition evaluated by Matches at serve time.
//
// # Declaring Versions
//
//	cfg, err := version.NewConfig(
//	    version.WithVersions("v1", "v2"),
//	    version.WithDefault("v2"),
//	    version.WithHeaderDetection("X-API-Version"),
//	    version.WithQueryDetection("version"),
//	)
//
// Detectors are evaluated in registration order; custom detectors are
// prepended so they run first. The first detector returning a declared
// version wins. When nothing matches, the default version applies.
//
// # Lifecycle
//
// Individual versions can carry deprecation metadata. The mount layer calls
// ApplyLifecycle to emit Deprecation, Sunset, Link, and Warning headers, and
// to turn requests for sunset versions into 410 Gone when enforcement is
// enabled:
//
//	cfg, err := version.NewConfig(
//	    version.WithVersions("v1", "v2"),
//	    version.WithLifecycle("v1",
//	        version.Deprecated(),
//	        version.Sunset(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)),
//	        version.MigrationDocs("https://docs.example.com/migrate"),
//	    ),
//	    version.WithSunsetEnforcement(),
//	)
//
// Configs are immutable after NewConfig and safe for concurrent use.
package version
