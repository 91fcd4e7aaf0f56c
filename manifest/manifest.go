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
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

// Format identifies a manifest encoding.
type Format string

const (
	// FormatYAML decodes manifests with the YAML codec.
	FormatYAML Format = "yaml"
	// FormatTOML decodes manifests with the TOML codec.
	FormatTOML Format = "toml"
)

// extensionFormats maps file extensions to formats for automatic detection.
var extensionFormats = map[string]Format{
	".yaml": FormatYAML,
	".yml":  FormatYAML,
	".toml": FormatTOML,
}

// Manifest declares which controllers to scan and how, so route derivation
// is driven from a data file instead of wiring code. Controller entries
// reference constructors by name in a Registry.
type Manifest struct {
	// Prefix is prepended to every derived path.
	Prefix string `yaml:"prefix" toml:"prefix"`

	// NamePrefix is prepended to every derived route name.
	NamePrefix string `yaml:"name_prefix" toml:"name_prefix"`

	// Formats enables format suffixes with the given set.
	Formats []string `yaml:"formats" toml:"formats"`

	// DefaultFormat applies when a request carries no format suffix.
	DefaultFormat string `yaml:"default_format" toml:"default_format"`

	// Versions constrains routes to an API version set.
	Versions *Versions `yaml:"versions" toml:"versions"`

	// Controllers lists the controllers to scan, in order.
	Controllers []Controller `yaml:"controllers" toml:"controllers"`
}

// Versions declares the API version set for derived routes.
type Versions struct {
	Valid   []string `yaml:"valid" toml:"valid"`
	Default string   `yaml:"default" toml:"default"`
}

// Controller declares one scan: the registry name of its constructor plus
// the per-scan settings the scanner accepts.
type Controller struct {
	// Name resolves the controller constructor in the Registry.
	Name string `yaml:"name" toml:"name"`

	// Resource overrides the fallback resource for bare-verb methods.
	Resource string `yaml:"resource" toml:"resource"`

	// Parents nests every derived route under parent resources.
	Parents []string `yaml:"parents" toml:"parents"`

	// Overrides adjusts derived routes per method name.
	Overrides map[string][]Override `yaml:"overrides" toml:"overrides"`
}

// Override mirrors the scanner's per-method route override.
type Override struct {
	None         bool              `yaml:"none" toml:"none"`
	Name         string            `yaml:"route_name" toml:"route_name"`
	Path         string            `yaml:"path" toml:"path"`
	Methods      []string          `yaml:"methods" toml:"methods"`
	Requirements map[string]string `yaml:"requirements" toml:"requirements"`
	Defaults     map[string]any    `yaml:"defaults" toml:"defaults"`
	Host         string            `yaml:"host" toml:"host"`
	Schemes      []string          `yaml:"schemes" toml:"schemes"`
	Condition    string            `yaml:"condition" toml:"condition"`
}

// Load reads and parses a manifest file, detecting the format from the
// file extension (.yaml, .yml, .toml).
func Load(path string) (*Manifest, error) {
	format, err := detectFormat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	m, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return m, nil
}

// Parse decodes and validates a manifest in the given format.
func Parse(data []byte, format Format) (*Manifest, error) {
	var m Manifest

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decoding YAML manifest: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decoding TOML manifest: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// validate checks the manifest structure before any constructor runs.
func (m *Manifest) validate() error {
	if len(m.Controllers) == 0 {
		return ErrNoControllers
	}
	for i, c := range m.Controllers {
		if c.Name == "" {
			return fmt.Errorf("%w: controllers[%d]", ErrMissingControllerName, i)
		}
	}
	if m.DefaultFormat != "" && !slices.Contains(m.Formats, m.DefaultFormat) {
		return fmt.Errorf("%w: default format %q not among %v",
			ErrInvalidManifest, m.DefaultFormat, m.Formats)
	}
	if m.Versions != nil {
		if len(m.Versions.Valid) == 0 {
			return fmt.Errorf("%w: versions block without valid versions", ErrInvalidManifest)
		}
		if m.Versions.Default != "" && !slices.Contains(m.Versions.Valid, m.Versions.Default) {
			return fmt.Errorf("%w: default version %q not among %v",
				ErrInvalidManifest, m.Versions.Default, m.Versions.Valid)
		}
	}
	return nil
}

// detectFormat resolves the manifest format from the file extension.
func detectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if format, ok := extensionFormats[ext]; ok {
		return format, nil
	}
	return "", fmt.Errorf("%w: extension %q", ErrUnknownFormat, ext)
}
