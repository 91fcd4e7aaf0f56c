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
	"net/http"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════════
// Path Detector
// ═══════════════════════════════════════════════════════════════════════════════

// pathDetector extracts the path segment occupying the {version} placeholder
// position in its pattern. The placeholder must be a full segment, e.g.
// "/api/{version}".
type pathDetector struct {
	prefix string // pattern text before {version}
}

func newPathDetector(pattern string) *pathDetector {
	idx := strings.Index(pattern, Placeholder)
	prefix := ""
	if idx > 0 {
		prefix = pattern[:idx]
	}

	return &pathDetector{prefix: prefix}
}

func (d *pathDetector) Detect(req *http.Request) (string, bool) {
	if req == nil || req.URL == nil {
		return "", false
	}

	path := req.URL.Path
	if d.prefix == "" || !strings.HasPrefix(path, d.prefix) {
		return "", false
	}

	// The version segment runs from the prefix to the next "/" or the end.
	segment := path[len(d.prefix):]
	if end := strings.IndexByte(segment, '/'); end != -1 {
		segment = segment[:end]
	}

	return segment, segment != ""
}

func (d *pathDetector) Method() string {
	return "path"
}

// ═══════════════════════════════════════════════════════════════════════════════
// Header Detector
// ═══════════════════════════════════════════════════════════════════════════════

type headerDetector struct {
	header string
}

func (d *headerDetector) Detect(req *http.Request) (string, bool) {
	if req == nil {
		return "", false
	}
	v := req.Header.Get(d.header)

	return v, v != ""
}

func (d *headerDetector) Method() string {
	return "header"
}

// ═══════════════════════════════════════════════════════════════════════════════
// Query Detector
// ═══════════════════════════════════════════════════════════════════════════════

type queryDetector struct {
	param string
}

func (d *queryDetector) Detect(req *http.Request) (string, bool) {
	if req == nil || req.URL == nil {
		return "", false
	}
	v := req.URL.Query().Get(d.param)

	return v, v != ""
}

func (d *queryDetector) Method() string {
	return "query"
}

// ═══════════════════════════════════════════════════════════════════════════════
// Accept Detector
// ═══════════════════════════════════════════════════════════════════════════════

// acceptDetector matches vendor media types like
// "application/vnd.myapi.{version}+json" against the Accept header.
type acceptDetector struct {
	prefix string // pattern text before {version}
	suffix string // pattern text after {version}
}

func newAcceptDetector(pattern string) *acceptDetector {
	idx := strings.Index(pattern, Placeholder)
	if idx < 0 {
		return &acceptDetector{}
	}

	return &acceptDetector{
		prefix: pattern[:idx],
		suffix: pattern[idx+len(Placeholder):],
	}
}

func (d *acceptDetector) Detect(req *http.Request) (string, bool) {
	if req == nil {
		return "", false
	}

	accept := req.Header.Get("Accept")
	if accept == "" {
		return "", false
	}

	for mediaType := range strings.SplitSeq(accept, ",") {
		mediaType = strings.TrimSpace(mediaType)

		// Remove quality parameter if present
		if semi := strings.IndexByte(mediaType, ';'); semi >= 0 {
			mediaType = mediaType[:semi]
		}

		rest, ok := strings.CutPrefix(mediaType, d.prefix)
		if !ok {
			continue
		}
		version, ok := strings.CutSuffix(rest, d.suffix)
		if !ok || version == "" {
			continue
		}

		return version, true
	}

	return "", false
}

func (d *acceptDetector) Method() string {
	return "accept"
}

// ═══════════════════════════════════════════════════════════════════════════════
// Custom Detector
// ═══════════════════════════════════════════════════════════════════════════════

type customDetector struct {
	fn func(*http.Request) string
}

func (d *customDetector) Detect(req *http.Request) (string, bool) {
	if d.fn == nil {
		return "", false
	}
	v := d.fn(req)

	return v, v != ""
}

func (d *customDetector) Method() string {
	return "custom"
}
