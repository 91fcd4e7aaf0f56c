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

	"rivaas.dev/actions"
	"rivaas.dev/actions/route"
	"rivaas.dev/actions/version"
)

// Build scans every controller the manifest declares into one collection.
// Constructors resolve through the registry; extra options append to the
// scanner configuration the manifest implies, so callers can attach
// loggers, diagnostics, or a stats recorder.
//
// Example:
//
//	reg := manifest.NewRegistry()
//	reg.Register("users", func() any { return &UsersController{store: store} })
//
//	m, err := manifest.Load("routes.yaml")
//	if err != nil {
//	    return err
//	}
//	col, err := manifest.Build(m, reg)
func Build(m *Manifest, reg *Registry, extra ...actions.Option) (*route.Collection, error) {
	if m == nil {
		return nil, ErrNilManifest
	}
	if reg == nil {
		return nil, ErrNilRegistry
	}

	scanner, err := actions.New(append(m.scannerOptions(), extra...)...)
	if err != nil {
		return nil, fmt.Errorf("building scanner from manifest: %w", err)
	}

	col := route.NewCollection()
	for _, c := range m.Controllers {
		ctor, err := reg.Resolve(c.Name)
		if err != nil {
			return nil, err
		}
		if err := scanner.Scan(col, ctor(), c.scanOptions()...); err != nil {
			return nil, fmt.Errorf("scanning controller %q: %w", c.Name, err)
		}
	}
	return col, nil
}

// scannerOptions translates manifest settings into scanner options.
func (m *Manifest) scannerOptions() []actions.Option {
	var opts []actions.Option

	if m.Prefix != "" {
		opts = append(opts, actions.WithPrefix(m.Prefix))
	}
	if m.NamePrefix != "" {
		opts = append(opts, actions.WithNamePrefix(m.NamePrefix))
	}
	if len(m.Formats) > 0 {
		opts = append(opts, actions.WithFormats(m.Formats...))
	}
	if m.DefaultFormat != "" {
		opts = append(opts, actions.WithDefaultFormat(m.DefaultFormat))
	}
	if m.Versions != nil {
		vopts := []version.Option{version.WithVersions(m.Versions.Valid...)}
		if m.Versions.Default != "" {
			vopts = append(vopts, version.WithDefault(m.Versions.Default))
		}
		opts = append(opts, actions.WithVersioning(vopts...))
	}

	return opts
}

// scanOptions translates one controller entry into scan options.
func (c *Controller) scanOptions() []actions.ScanOption {
	var opts []actions.ScanOption

	if len(c.Parents) > 0 {
		opts = append(opts, actions.WithParents(c.Parents...))
	}
	if c.Resource != "" {
		opts = append(opts, actions.WithResource(c.Resource))
	}
	if len(c.Overrides) > 0 {
		overrides := make(map[string][]actions.Override, len(c.Overrides))
		for method, entries := range c.Overrides {
			converted := make([]actions.Override, 0, len(entries))
			for _, o := range entries {
				converted = append(converted, actions.Override{
					None:         o.None,
					Name:         o.Name,
					Path:         o.Path,
					Methods:      o.Methods,
					Requirements: o.Requirements,
					Defaults:     o.Defaults,
					Host:         o.Host,
					Schemes:      o.Schemes,
					Condition:    o.Condition,
				})
			}
			overrides[method] = converted
		}
		opts = append(opts, actions.WithOverrides(overrides))
	}

	return opts
}
