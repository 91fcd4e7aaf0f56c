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

import (
	"fmt"
	"regexp"
	"strings"
)

// Requirement restricts the values a route parameter may take.
// The pattern is compiled once, anchored to match the full parameter value.
type Requirement struct {
	Param   string         // parameter name
	Pattern *regexp.Regexp // compiled, anchored pattern
	source  string         // pattern as provided, without anchors
}

// RequirementFromPattern builds a requirement from a regex pattern.
//
// IMPORTANT: This function panics if the pattern is invalid. Requirements
// built in code are startup-time configuration, and an invalid pattern is
// a programming error best caught immediately. For patterns sourced from
// data files, use TryPattern instead.
//
// Common patterns:
//   - Numeric: `\d+`
//   - Slug: `[a-z0-9-]+`
//   - Version: `v1|v2`
func RequirementFromPattern(param, pattern string) Requirement {
	r, err := TryPattern(param, pattern)
	if err != nil {
		panic(err.Error())
	}
	return r
}

// TryPattern builds a requirement from a regex pattern, returning an error
// when the pattern does not compile. Use this for patterns read from
// manifests or other external data.
func TryPattern(param, pattern string) (Requirement, error) {
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return Requirement{}, fmt.Errorf("%w: parameter %q pattern %q: %v",
			ErrInvalidRequirement, param, pattern, err)
	}
	return Requirement{Param: param, Pattern: re, source: pattern}, nil
}

// Int requires the parameter to be one or more digits.
func Int(param string) Requirement {
	return RequirementFromPattern(param, `\d+`)
}

// Float requires the parameter to be a floating-point number.
func Float(param string) Requirement {
	return RequirementFromPattern(param, `-?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)
}

// UUID requires the parameter to be an RFC 4122 UUID.
func UUID(param string) Requirement {
	return RequirementFromPattern(param,
		`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[1-5][0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}`)
}

// Enum requires the parameter to equal one of the given values.
// Values are escaped, so regex metacharacters match literally.
func Enum(param string, values ...string) Requirement {
	escaped := make([]string, 0, len(values))
	for _, v := range values {
		escaped = append(escaped, regexp.QuoteMeta(v))
	}
	return RequirementFromPattern(param, strings.Join(escaped, "|"))
}

// Date requires the parameter to be an RFC 3339 full-date (2025-01-31).
func Date(param string) Requirement {
	return RequirementFromPattern(param, `\d{4}-\d{2}-\d{2}`)
}

// DateTime requires the parameter to be an RFC 3339 date-time.
func DateTime(param string) Requirement {
	return RequirementFromPattern(param,
		`\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:\d{2})`)
}

// Match reports whether the value satisfies the requirement.
// A zero requirement matches nothing.
func (r Requirement) Match(value string) bool {
	return r.Pattern != nil && r.Pattern.MatchString(value)
}

// Source returns the pattern as provided, without the anchors added during
// compilation. Useful for introspection and documentation output.
func (r Requirement) Source() string {
	return r.source
}

// String renders the requirement as "param=pattern".
func (r Requirement) String() string {
	return r.Param + "=" + r.source
}
