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

import (
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"rivaas.dev/actions/route"
	"rivaas.dev/actions/version"
)

// ParamHandler is the request handler a Registrar invokes once the target
// framework has matched a route and extracted its path parameters.
type ParamHandler func(w http.ResponseWriter, r *http.Request, params map[string]string)

// Registrar registers routes on an HTTP framework. Adapters exist for
// *http.ServeMux (NewServeMuxTarget), gin (NewGinTarget), and echo
// (NewEchoTarget); implement the interface to mount on anything else.
//
// Paths use "{name}" placeholder syntax and every placeholder spans a full
// segment; adapters translate to their framework's own syntax.
type Registrar interface {
	Register(method, path string, params []string, h ParamHandler) error
}

// mounter holds the Mount configuration shared by all wrapped handlers.
type mounter struct {
	versionCfg *version.Config
	notFound   http.Handler
	logger     *slog.Logger
}

// MountOption configures a Mount call.
type MountOption func(*mounter)

// WithVersionMatching enforces version constraints while serving: routes
// carrying a version condition only match requests whose detected version
// is valid, and deprecated or sunset versions receive lifecycle headers.
// Pass the scanner's config (Scanner.VersionConfig) so derivation and
// serving agree on the version set.
func WithVersionMatching(cfg *version.Config) MountOption {
	return func(m *mounter) {
		m.versionCfg = cfg
	}
}

// WithNotFound replaces the handler invoked when a matched route's
// requirements or version constraints reject the request.
func WithNotFound(h http.Handler) MountOption {
	return func(m *mounter) {
		if h != nil {
			m.notFound = h
		}
	}
}

// WithRequestLogger attaches a logger to every request context.
func WithRequestLogger(logger *slog.Logger) MountOption {
	return func(m *mounter) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// Mount registers every route in the collection on the target framework.
//
// Each registered handler enforces what the framework's matcher cannot:
// parameter requirement patterns, version conditions and lifecycle headers,
// and format suffix splitting. Rejected requests go to the not-found
// handler rather than surfacing a framework error.
//
// Returns an error when a route carries a handler type the mount layer
// cannot serve or a path shape the target cannot express.
func Mount(target Registrar, col *route.Collection, opts ...MountOption) error {
	if target == nil {
		return ErrNilTarget
	}
	if col == nil {
		return ErrNilCollection
	}

	m := &mounter{
		notFound: http.NotFoundHandler(),
		logger:   noopLogger,
	}
	for _, opt := range opts {
		opt(m)
	}

	for _, name := range col.Names() {
		desc := col.Get(name)

		invoke, err := adaptHandler(name, desc.Handler())
		if err != nil {
			return err
		}
		patterns, err := m.plan(name, desc)
		if err != nil {
			return err
		}

		methods := desc.Methods()
		if len(methods) == 0 {
			methods = []string{http.MethodGet}
		}

		for _, mp := range patterns {
			h := m.wrap(name, desc, mp, invoke)
			for _, method := range methods {
				if err := target.Register(method, mp.path, mp.params, h); err != nil {
					return fmt.Errorf("mounting route %q at %q: %w", name, mp.path, err)
				}
			}
		}
	}

	return nil
}

// adaptHandler normalizes the supported handler shapes onto func(*Context).
// Errors returned by an action surface as a 500 JSON body unless the
// handler already wrote a response.
func adaptHandler(name string, h route.Handler) (func(*Context), error) {
	switch fn := h.(type) {
	case nil:
		return nil, fmt.Errorf("route %q: %w: no handler attached", name, ErrUnsupportedHandler)
	case HandlerFunc:
		return fn, nil
	case func(*Context):
		return fn, nil
	case func(*Context) error:
		return func(c *Context) {
			if err := fn(c); err != nil {
				c.Logger().Error("action handler failed", "route", c.RouteName(), "err", err)
				if rw, ok := c.Response.(*responseWriter); !ok || !rw.Written() {
					_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
				}
			}
		}, nil
	case http.Handler:
		return func(c *Context) { fn.ServeHTTP(c.Response, c.Request) }, nil
	case func(http.ResponseWriter, *http.Request):
		return func(c *Context) { fn(c.Response, c.Request) }, nil
	default:
		return nil, fmt.Errorf("route %q: %w: %T", name, ErrUnsupportedHandler, h)
	}
}

// mountPattern is one registered pattern for a route. A single descriptor
// can mount several: static format variants each register their own.
type mountPattern struct {
	path      string
	segments  []string
	params    []string          // placeholder names in path order
	compounds []compoundSegment // captured segments needing a split
	inject    map[string]string // parameter values implied by this variant
	format    *formatSplit      // extension handling on the final parameter
}

func (mp *mountPattern) clone() *mountPattern {
	return &mountPattern{
		segments:  slices.Clone(mp.segments),
		params:    slices.Clone(mp.params),
		compounds: slices.Clone(mp.compounds),
		inject:    maps.Clone(mp.inject),
		format:    mp.format,
	}
}

func (mp *mountPattern) finalize() mountPattern {
	mp.path = "/"
	if len(mp.segments) > 0 {
		mp.path = "/" + strings.Join(mp.segments, "/")
	}
	return *mp
}

// formatSplit strips a ".ext" suffix from the final path parameter when the
// extension satisfies the format requirement. Without a default format the
// extension is mandatory.
type formatSplit struct {
	param string
	req   route.Requirement
	def   string
}

// plan translates a descriptor's segments into patterns the target can
// register. Full-segment placeholders pass through; a format suffix on a
// parameter becomes a request-time split; a format suffix on a literal
// expands into per-format static variants (plus a bare variant when a
// default format applies); any other literal/parameter mix is captured as
// one segment and split by regex.
func (m *mounter) plan(name string, desc *route.Descriptor) ([]mountPattern, error) {
	segments := desc.Segments()

	var fs *formatSplit
	var formatValues []string
	formatCore := ""
	formatDefault := ""

	suffix := ".{" + FormatParam + "}"
	if n := len(segments); n > 0 && strings.HasSuffix(segments[n-1], suffix) {
		core := strings.TrimSuffix(segments[n-1], suffix)
		req, hasReq := desc.Requirement(FormatParam)
		if def, ok := desc.Default(FormatParam); ok {
			formatDefault, _ = def.(string)
		}
		switch {
		case hasReq && isParamSegment(core):
			fs = &formatSplit{param: core[1 : len(core)-1], req: req, def: formatDefault}
			segments = append(slices.Clone(segments[:n-1]), core)
		case hasReq && !strings.Contains(core, "{"):
			vals, ok := alternationValues(req.Source())
			if !ok {
				return nil, fmt.Errorf("route %q: %w: cannot enumerate formats from %q",
					name, ErrUnmountableSegment, req.Source())
			}
			formatValues = vals
			formatCore = core
			segments = slices.Clone(segments[:n-1])
		}
	}

	pats := []*mountPattern{{inject: map[string]string{}}}

	for _, seg := range segments {
		switch {
		case !strings.ContainsAny(seg, "{}"):
			for _, mp := range pats {
				mp.segments = append(mp.segments, seg)
			}
		case isParamSegment(seg):
			for _, mp := range pats {
				mp.segments = append(mp.segments, seg)
				mp.params = append(mp.params, seg[1:len(seg)-1])
			}
		default:
			parts, ok := parseSegmentParts(seg)
			if !ok {
				return nil, fmt.Errorf("route %q: %w: %q", name, ErrUnmountableSegment, seg)
			}
			if parts[0].param == "" {
				variants, ok := expandStatic(parts, desc)
				if !ok {
					return nil, fmt.Errorf("route %q: %w: %q mixes a literal prefix with open-ended parameters",
						name, ErrUnmountableSegment, seg)
				}
				next := make([]*mountPattern, 0, len(pats)*len(variants))
				for _, mp := range pats {
					for _, v := range variants {
						nv := mp.clone()
						nv.segments = append(nv.segments, v.text)
						maps.Copy(nv.inject, v.inject)
						next = append(next, nv)
					}
				}
				pats = next
			} else {
				cs, err := compileCompound(parts, desc)
				if err != nil {
					return nil, fmt.Errorf("route %q: segment %q: %w", name, seg, err)
				}
				for _, mp := range pats {
					mp.segments = append(mp.segments, "{"+cs.capture+"}")
					mp.params = append(mp.params, cs.capture)
					mp.compounds = append(mp.compounds, cs)
				}
			}
		}
	}

	out := make([]mountPattern, 0, len(pats))
	for _, mp := range pats {
		if formatValues != nil {
			for _, f := range formatValues {
				v := mp.clone()
				v.segments = append(v.segments, formatCore+"."+f)
				v.inject[FormatParam] = f
				out = append(out, v.finalize())
			}
			if formatDefault != "" {
				v := mp.clone()
				v.segments = append(v.segments, formatCore)
				v.inject[FormatParam] = formatDefault
				out = append(out, v.finalize())
			}
			continue
		}
		mp.format = fs
		out = append(out, mp.finalize())
	}

	return out, nil
}

// wrap builds the request-time pipeline for one mounted pattern: compound
// splits, format suffix handling, requirement matching, version matching
// and lifecycle headers, then context construction and dispatch.
func (m *mounter) wrap(name string, desc *route.Descriptor, mp mountPattern, invoke func(*Context)) ParamHandler {
	return func(w http.ResponseWriter, r *http.Request, params map[string]string) {
		if params == nil {
			params = make(map[string]string, len(mp.inject)+1)
		}

		for _, cs := range mp.compounds {
			if !cs.resolve(params[cs.capture], params) {
				m.notFound.ServeHTTP(w, r)
				return
			}
		}

		if mp.format != nil {
			raw := params[mp.format.param]
			if idx := strings.LastIndexByte(raw, '.'); idx > 0 && mp.format.req.Match(raw[idx+1:]) {
				params[mp.format.param] = raw[:idx]
				params[FormatParam] = raw[idx+1:]
			} else if mp.format.def != "" {
				params[FormatParam] = mp.format.def
			} else {
				m.notFound.ServeHTTP(w, r)
				return
			}
		}

		maps.Copy(params, mp.inject)

		if !desc.Match(params) {
			m.notFound.ServeHTTP(w, r)
			return
		}

		vers := ""
		if m.versionCfg != nil {
			if pv, ok := params[version.Param]; ok && pv != "" {
				vers = pv
			} else {
				vers = m.versionCfg.Detect(r)
			}
			if desc.Condition() != "" && !m.versionCfg.Contains(vers) {
				m.notFound.ServeHTTP(w, r)
				return
			}
		}

		rw := &responseWriter{ResponseWriter: w}
		if m.versionCfg != nil && m.versionCfg.ApplyLifecycle(rw, vers, name) {
			rw.Header().Set("Content-Type", "application/json; charset=utf-8")
			rw.WriteHeader(http.StatusGone)
			_, _ = fmt.Fprintf(rw, `{"error":"API version %s has been sunset"}`+"\n", vers)
			return
		}

		c := NewContext(rw, r)
		c.routeName = name
		c.version = vers
		c.logger = m.logger
		for k, v := range params {
			c.setParam(k, v)
		}

		invoke(c)
	}
}

// segPart is one run of a compound segment: either a literal or a
// parameter, never both.
type segPart struct {
	literal string
	param   string
}

// parseSegmentParts splits a segment like "{user}.{_format}" into literal
// and parameter runs. Reports false on unbalanced or empty placeholders.
func parseSegmentParts(segment string) ([]segPart, bool) {
	var parts []segPart
	rest := segment
	for rest != "" {
		open := strings.IndexByte(rest, '{')
		if open == -1 {
			if strings.IndexByte(rest, '}') != -1 {
				return nil, false
			}
			parts = append(parts, segPart{literal: rest})
			break
		}
		if open > 0 {
			parts = append(parts, segPart{literal: rest[:open]})
		}
		end := strings.IndexByte(rest[open:], '}')
		if end == -1 {
			return nil, false
		}
		name := rest[open+1 : open+end]
		if name == "" {
			return nil, false
		}
		parts = append(parts, segPart{param: name})
		rest = rest[open+end+1:]
	}
	return parts, true
}

// compoundSegment resolves one captured path segment into several
// parameters by regex.
type compoundSegment struct {
	capture string // placeholder name registered with the target
	re      *regexp.Regexp
	params  []string
	groups  []string
}

// compileCompound builds the splitting regex for a parameter-first compound
// segment. Parameters use their requirement pattern when one is set;
// otherwise non-final parameters match lazily so literals bind as early as
// possible.
func compileCompound(parts []segPart, desc *route.Descriptor) (compoundSegment, error) {
	cs := compoundSegment{}

	lastParam := -1
	for i, p := range parts {
		if p.param != "" {
			lastParam = i
		}
	}

	var b strings.Builder
	b.WriteString("^")
	for i, p := range parts {
		if p.param == "" {
			b.WriteString(regexp.QuoteMeta(p.literal))
			continue
		}
		if cs.capture == "" {
			cs.capture = p.param
		}
		pattern := ".+?"
		if i == lastParam {
			pattern = ".+"
		}
		if req, ok := desc.Requirement(p.param); ok {
			pattern = req.Source()
		}
		group := "g" + strconv.Itoa(len(cs.groups))
		b.WriteString("(?P<" + group + ">(?:" + pattern + "))")
		cs.params = append(cs.params, p.param)
		cs.groups = append(cs.groups, group)
	}
	b.WriteString("$")

	re, err := regexp.Compile(b.String())
	if err != nil {
		return compoundSegment{}, fmt.Errorf("compiling segment pattern: %w", err)
	}
	cs.re = re
	return cs, nil
}

// resolve splits the raw captured value into its parameters.
func (cs compoundSegment) resolve(raw string, params map[string]string) bool {
	match := cs.re.FindStringSubmatch(raw)
	if match == nil {
		return false
	}
	for i, p := range cs.params {
		params[p] = match[cs.re.SubexpIndex(cs.groups[i])]
	}
	return true
}

// staticVariant is one concrete spelling of a literal-first compound
// segment, produced by enumerating its parameters' requirement values.
type staticVariant struct {
	text   string
	inject map[string]string
}

// expandStatic enumerates a literal-first compound segment into static
// variants. Every parameter needs a requirement that is a plain
// alternation of literals; the cross product is capped to keep pattern
// explosion in check.
func expandStatic(parts []segPart, desc *route.Descriptor) ([]staticVariant, bool) {
	variants := []staticVariant{{inject: map[string]string{}}}
	for _, p := range parts {
		if p.param == "" {
			for i := range variants {
				variants[i].text += p.literal
			}
			continue
		}
		req, ok := desc.Requirement(p.param)
		if !ok {
			return nil, false
		}
		vals, ok := alternationValues(req.Source())
		if !ok {
			return nil, false
		}
		next := make([]staticVariant, 0, len(variants)*len(vals))
		for _, v := range variants {
			for _, val := range vals {
				nv := staticVariant{text: v.text + val, inject: maps.Clone(v.inject)}
				nv.inject[p.param] = val
				next = append(next, nv)
			}
		}
		if len(next) > 64 {
			return nil, false
		}
		variants = next
	}
	return variants, true
}

// alternationValues recovers the literal values from a pattern like
// "json|xml" or "1\.0|2\.0". Reports false when the pattern uses any
// regex construct beyond escaped literals and top-level alternation.
func alternationValues(pattern string) ([]string, bool) {
	if pattern == "" {
		return nil, false
	}
	var values []string
	for _, alt := range strings.Split(pattern, "|") {
		var b strings.Builder
		for i := 0; i < len(alt); i++ {
			ch := alt[i]
			if ch == '\\' {
				i++
				if i >= len(alt) {
					return nil, false
				}
				b.WriteByte(alt[i])
				continue
			}
			if strings.ContainsRune(`.[]{}()*+?^$`, rune(ch)) {
				return nil, false
			}
			b.WriteByte(ch)
		}
		if b.Len() == 0 {
			return nil, false
		}
		values = append(values, b.String())
	}
	return values, true
}

// isParamSegment reports whether a segment is exactly one "{name}"
// placeholder.
func isParamSegment(segment string) bool {
	return len(segment) > 2 &&
		segment[0] == '{' &&
		segment[len(segment)-1] == '}' &&
		!strings.ContainsAny(segment[1:len(segment)-1], "{}")
}

// colonParamPath converts "{name}" placeholders to the ":name" syntax gin
// and echo share. Mount only ever emits full-segment placeholders, so the
// conversion is segment-wise.
func colonParamPath(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if isParamSegment(seg) {
			segments[i] = ":" + seg[1:len(seg)-1]
		}
	}
	return strings.Join(segments, "/")
}

// serveMuxTarget registers routes on the standard library mux, whose
// pattern syntax already matches the descriptor placeholder syntax.
type serveMuxTarget struct {
	mux *http.ServeMux
}

// NewServeMuxTarget adapts an *http.ServeMux into a mount target.
//
// ServeMux resolves overlaps by specificity and panics on conflicting
// patterns, so two routes mounting the same method and path shape fail
// loudly at mount time.
func NewServeMuxTarget(mux *http.ServeMux) Registrar {
	return &serveMuxTarget{mux: mux}
}

// Register implements Registrar.
func (t *serveMuxTarget) Register(method, path string, params []string, h ParamHandler) error {
	pattern := path
	if pattern == "/" {
		pattern = "/{$}"
	}
	t.mux.HandleFunc(method+" "+pattern, func(w http.ResponseWriter, r *http.Request) {
		values := make(map[string]string, len(params))
		for _, p := range params {
			values[p] = r.PathValue(p)
		}
		h(w, r, values)
	})
	return nil
}

// MountServeMux mounts the collection on a fresh standard library mux.
func MountServeMux(col *route.Collection, opts ...MountOption) (*http.ServeMux, error) {
	mux := http.NewServeMux()
	if err := Mount(NewServeMuxTarget(mux), col, opts...); err != nil {
		return nil, err
	}
	return mux, nil
}
