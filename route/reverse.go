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
	"net/url"
	"strings"
)

// ReversePattern is a compiled route pattern for URL building (reverse
// routing). It stores the parameter positions so building a URL is pure
// concatenation, with no string replacement.
type ReversePattern struct {
	Segments []Segment
}

// Segment is one piece of a route pattern: either static text (including
// any separators) or a parameter reference.
type Segment struct {
	Static bool   // true if static text, false if parameter
	Value  string // static text or parameter name
}

// ParseReversePattern parses a path pattern into segments for URL building.
// Parameters use "{name}" syntax and may appear mid-segment, so compound
// segments like "/users/{user}.{_format}" parse into alternating static and
// parameter pieces.
//
// Example: "/users/{user}/comments/{comment}" ->
// [static "/users/", param "user", static "/comments/", param "comment"]
func ParseReversePattern(path string) *ReversePattern {
	segments := make([]Segment, 0, 4)

	for len(path) > 0 {
		open := strings.IndexByte(path, '{')
		if open == -1 {
			segments = append(segments, Segment{Static: true, Value: path})
			break
		}
		end := strings.IndexByte(path[open:], '}')
		if end == -1 {
			// Unbalanced brace, treat the rest as static text
			segments = append(segments, Segment{Static: true, Value: path})
			break
		}
		if open > 0 {
			segments = append(segments, Segment{Static: true, Value: path[:open]})
		}
		segments = append(segments, Segment{Static: false, Value: path[open+1 : open+end]})
		path = path[open+end+1:]
	}

	return &ReversePattern{Segments: segments}
}

// BuildURL builds a URL from the pattern, the given parameters, and a
// defaults map consulted for missing parameters (only non-empty string
// defaults are used). A query string is appended when query is non-empty.
func (p *ReversePattern) BuildURL(params map[string]string, defaults map[string]any, query url.Values) (string, error) {
	var buf strings.Builder

	for _, seg := range p.Segments {
		if seg.Static {
			buf.WriteString(seg.Value)
			continue
		}

		val, ok := params[seg.Value]
		if !ok {
			if s, isString := defaults[seg.Value].(string); isString && s != "" {
				val = s
			} else {
				return "", fmt.Errorf("%w: %s", ErrMissingRouteParameter, seg.Value)
			}
		}
		buf.WriteString(url.PathEscape(val))
	}

	if len(query) > 0 {
		buf.WriteByte('?')
		buf.WriteString(query.Encode())
	}

	return buf.String(), nil
}
