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

package version

import (
	"fmt"
	"net/http"
	"regexp"
	"slices"
	"strings"
	"time"
)

// Placeholder is the path parameter used for version-constrained routes.
// A derived path containing Placeholder receives a requirement restricting
// it to the configured versions; paths without it receive a request
// condition instead.
const Placeholder = "{version}"

// Param is the parameter name inside Placeholder.
const Param = "version"

// Config describes an API version set and how versions are detected on
// requests. The scanner uses it to inject version constraints into derived
// routes; the mount layer uses it to evaluate those constraints per request.
type Config struct {
	versions       []string // allowed versions, in declaration order
	defaultVersion string   // assumed when no detector matches (optional)

	// Detection strategies, checked in order. Custom detectors are
	// prepended so they take priority.
	detectors []Detector

	// Response behavior
	sendVersionHeader bool // X-API-Version on matched responses
	sendWarning299    bool // Warning: 299 for deprecated versions
	enforceSunset     bool // 410 Gone past the sunset date

	// Per-version lifecycle configurations
	lifecycles map[string]*LifecycleConfig

	// Observer for detection events
	observer *Observer

	// Clock function for sunset checks, injectable for testing
	now func() time.Time
}

// Detector is one version detection strategy.
type Detector interface {
	// Detect attempts to extract a version from the request.
	// Returns the detected version and true when found.
	Detect(req *http.Request) (version string, found bool)

	// Method returns the detection method name for observability.
	Method() string
}

// Observer holds callbacks for version detection events.
type Observer struct {
	// OnDetected is called when a version is successfully detected.
	OnDetected func(version, method string)

	// OnMissing is called when no version is detected (using default).
	OnMissing func()

	// OnInvalid is called when a detected version fails validation.
	OnInvalid func(attempted string)

	// OnDeprecatedUse is called when a deprecated version is accessed.
	OnDeprecatedUse func(version, route string)
}

// Option configures a version Config.
type Option func(*Config) error

// NewConfig creates a Config from the given options.
// At least one version is required; the default version, when set, must be
// one of the configured versions.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		lifecycles: make(map[string]*LifecycleConfig),
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustNewConfig is like NewConfig but panics on error.
// Useful for static configuration where errors are programming mistakes.
func MustNewConfig(opts ...Option) *Config {
	cfg, err := NewConfig(opts...)
	if err != nil {
		panic("version: " + err.Error())
	}
	return cfg
}

func (c *Config) validate() error {
	if len(c.versions) == 0 {
		return fmt.Errorf("%w: use version.WithVersions(\"v1\", ...)", ErrNoVersions)
	}
	if c.defaultVersion != "" && !slices.Contains(c.versions, c.defaultVersion) {
		return fmt.Errorf("%w: %q", ErrUnknownDefaultVersion, c.defaultVersion)
	}
	for v := range c.lifecycles {
		if !slices.Contains(c.versions, v) {
			return fmt.Errorf("%w: lifecycle for %q", ErrUnknownVersion, v)
		}
	}
	return nil
}

// Versions returns the allowed versions in declaration order.
func (c *Config) Versions() []string {
	return slices.Clone(c.versions)
}

// DefaultVersion returns the configured default version (may be empty).
func (c *Config) DefaultVersion() string {
	return c.defaultVersion
}

// Contains reports whether v is one of the allowed versions.
func (c *Config) Contains(v string) bool {
	return slices.Contains(c.versions, v)
}

// Requirement returns the regex alternation restricting the version path
// parameter, e.g. "v1|v2|v3". Versions are escaped so they match literally.
func (c *Config) Requirement() string {
	escaped := make([]string, 0, len(c.versions))
	for _, v := range c.versions {
		escaped = append(escaped, regexp.QuoteMeta(v))
	}
	return strings.Join(escaped, "|")
}

// Condition returns the request-matching condition expression recorded on
// routes whose paths carry no version placeholder, e.g.
// `version in ("v1", "v2")`. The expression is introspection metadata; the
// executable check is Matches.
func (c *Config) Condition() string {
	quoted := make([]string, 0, len(c.versions))
	for _, v := range c.versions {
		quoted = append(quoted, `"`+v+`"`)
	}
	return "version in (" + strings.Join(quoted, ", ") + ")"
}

// Detect resolves the request's version: the first detector that finds a
// valid version wins, otherwise the default version is returned (which may
// be empty when no default is configured).
func (c *Config) Detect(req *http.Request) string {
	if req == nil {
		return c.defaultVersion
	}

	for _, d := range c.detectors {
		v, found := d.Detect(req)
		if !found {
			continue
		}
		if c.Contains(v) {
			c.notifyDetected(v, d.Method())
			return v
		}
		c.notifyInvalid(v)
	}

	c.notifyMissing()
	return c.defaultVersion
}

// Matches reports whether the request resolves to one of the allowed
// versions. Requests resolving to no version (no detector match and no
// default) do not match.
func (c *Config) Matches(req *http.Request) bool {
	return c.Contains(c.Detect(req))
}

// Lifecycle returns the lifecycle configuration for a version, or nil.
func (c *Config) Lifecycle(version string) *LifecycleConfig {
	return c.lifecycles[version]
}

// Detectors returns the configured detectors in evaluation order.
func (c *Config) Detectors() []Detector {
	return slices.Clone(c.detectors)
}

// Now returns the current time (injectable for testing).
func (c *Config) Now() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}

func (c *Config) notifyDetected(version, method string) {
	if c.observer != nil && c.observer.OnDetected != nil {
		c.observer.OnDetected(version, method)
	}
}

func (c *Config) notifyMissing() {
	if c.observer != nil && c.observer.OnMissing != nil {
		c.observer.OnMissing()
	}
}

func (c *Config) notifyInvalid(version string) {
	if c.observer != nil && c.observer.OnInvalid != nil {
		c.observer.OnInvalid(version)
	}
}

// ApplyLifecycle sets response headers reflecting the version's lifecycle
// (X-API-Version, Deprecation, Sunset, Link, Warning) and reports whether
// the version is past its sunset date, in which case the caller should
// respond 410 Gone instead of invoking the handler.
func (c *Config) ApplyLifecycle(w http.ResponseWriter, version, routeName string) (gone bool) {
	if w == nil {
		return false
	}

	if c.sendVersionHeader && version != "" {
		w.Header().Set("X-API-Version", version)
	}

	lc := c.lifecycles[version]
	if lc == nil || !lc.Deprecated {
		return false
	}

	now := c.Now()

	if c.enforceSunset && !lc.SunsetDate.IsZero() && now.After(lc.SunsetDate) {
		w.Header().Set("Sunset", lc.SunsetDate.UTC().Format(http.TimeFormat))
		if lc.MigrationURL != "" {
			w.Header().Set("Link", fmt.Sprintf("<%s>; rel=%q", lc.MigrationURL, "sunset"))
		}
		return true
	}

	w.Header().Set("Deprecation", "true")
	if !lc.SunsetDate.IsZero() {
		w.Header().Set("Sunset", lc.SunsetDate.UTC().Format(http.TimeFormat))
	}
	if lc.MigrationURL != "" {
		w.Header().Set("Link", fmt.Sprintf("<%s>; rel=%q", lc.MigrationURL, "deprecation"))
	}

	if c.sendWarning299 {
		text := "API " + version + " is deprecated. Please upgrade to a supported version."
		if !lc.SunsetDate.IsZero() {
			text = fmt.Sprintf(
				"API %s is deprecated and will be removed on %s. Please upgrade to a supported version.",
				version, lc.SunsetDate.Format(time.RFC3339),
			)
		}
		w.Header().Set("Warning", fmt.Sprintf("299 - %q", text))
	}

	if c.observer != nil && c.observer.OnDeprecatedUse != nil {
		c.observer.OnDeprecatedUse(version, routeName)
	}

	return false
}
