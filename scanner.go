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
	"net/http"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"rivaas.dev/actions/inflect"
	"rivaas.dev/actions/route"
	"rivaas.dev/actions/version"
)

// FormatParam is the path parameter carrying the response format when
// format suffixes are enabled.
const FormatParam = "_format"

// ControllerDefault is the defaults key recording which controller method
// a derived route dispatches to, as "TypeName.MethodName".
const ControllerDefault = "controller"

// contextType is the required first parameter of every action method.
var contextType = reflect.TypeOf((*Context)(nil))

// errorType is the optional sole return of an action method.
var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Scanner derives REST routes from controller method names.
//
// A controller is any value whose exported methods follow the
// verb+resources naming idiom and the action handler signature
// (func(*Context, ...string params) with an optional error return).
// Scan reads the controller reflectively and adds one route per action
// method to a collection; Mount then serves the collection on an HTTP
// framework.
//
// The Scanner itself is immutable after New and safe for concurrent use;
// a single route.Collection must not be scanned into concurrently.
//
// Example:
//
//	type UsersController struct{ store *UserStore }
//
//	func (uc *UsersController) CgetUsers(c *actions.Context) {        // GET /users
//	    _ = c.JSON(http.StatusOK, uc.store.All())
//	}
//
//	func (uc *UsersController) GetUser(c *actions.Context, id string) { // GET /users/{user}
//	    _ = c.JSON(http.StatusOK, uc.store.Get(id))
//	}
//
//	s := actions.MustNew(actions.WithPrefix("/api"))
//	col, err := s.Infer(&UsersController{store: store})
type Scanner struct {
	prefix        string
	namePrefix    string
	inflector     inflect.Inflector
	versionOpts   []version.Option
	versionCfg    *version.Config
	formats       []string
	defaultFormat string
	logger        *slog.Logger
	diagnostics   DiagnosticHandler
	recorder      ScanRecorder

	prefixSegments []string // prefix split once at construction
}

// New creates a scanner with optional configuration.
//
// Returns an error if the configuration is invalid. Configuration is
// validated immediately at startup rather than at scan time.
//
// For a version that panics instead of returning an error, use MustNew.
func New(opts ...Option) (*Scanner, error) {
	s := &Scanner{}

	for _, opt := range opts {
		opt(s)
	}

	if s.inflector == nil {
		s.inflector = inflect.Default()
	}
	if s.logger == nil {
		s.logger = noopLogger
	}
	if s.recorder == nil {
		s.recorder = noopRecorder{}
	}

	if s.versionCfg == nil && len(s.versionOpts) > 0 {
		cfg, err := version.NewConfig(s.versionOpts...)
		if err != nil {
			return nil, fmt.Errorf("scanner configuration validation failed: %w", err)
		}
		s.versionCfg = cfg
	}

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("scanner configuration validation failed: %w", err)
	}

	s.prefixSegments = splitPath(s.prefix)

	return s, nil
}

// MustNew creates a scanner and panics if configuration is invalid.
// This is a convenience wrapper around New for cases where configuration
// errors should cause the application to fail immediately at startup.
func MustNew(opts ...Option) *Scanner {
	s, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("actions.MustNew: %v", err))
	}
	return s
}

// validate checks the scanner configuration for common errors.
func (s *Scanner) validate() error {
	for _, f := range s.formats {
		if f == "" {
			return fmt.Errorf("%w: empty format entry", ErrInvalidFormat)
		}
	}
	if s.defaultFormat != "" {
		if len(s.formats) == 0 {
			return fmt.Errorf("%w: default format %q without WithFormats", ErrInvalidFormat, s.defaultFormat)
		}
		if !slices.Contains(s.formats, s.defaultFormat) {
			return fmt.Errorf("%w: default format %q not among %v", ErrInvalidFormat, s.defaultFormat, s.formats)
		}
	}
	return nil
}

// VersionConfig returns the version configuration routes are constrained
// to, or nil. The same Config drives version matching at the mount layer.
func (s *Scanner) VersionConfig() *version.Config {
	return s.versionCfg
}

// Infer scans a controller into a fresh collection.
func (s *Scanner) Infer(controller any, opts ...ScanOption) (*route.Collection, error) {
	col := route.NewCollection()
	if err := s.Scan(col, controller, opts...); err != nil {
		return nil, err
	}
	return col, nil
}

// Scan reads the controller's action methods and adds one route per method
// (or per override, for methods carrying several) to the collection.
//
// Methods that are not actions are skipped silently: unexported methods are
// invisible to reflection, and exported methods whose signature does not
// conform to an action handler produce a diagnostic but no error. Pass a
// pointer so pointer-receiver methods are seen.
func (s *Scanner) Scan(col *route.Collection, controller any, opts ...ScanOption) error {
	if col == nil {
		return ErrNilCollection
	}
	v := reflect.ValueOf(controller)
	if !v.IsValid() || (v.Kind() == reflect.Pointer && v.IsNil()) {
		return ErrNilController
	}

	cfg := scanConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := validateParents(cfg.parents); err != nil {
		return err
	}

	t := v.Type()
	ctrlName := controllerName(t)
	fallback := s.fallbackResource(controller, cfg, ctrlName)

	routes := 0
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		if isProviderMethod(m.Name) {
			continue
		}

		shape, ok := handlerShape(v.Method(i).Type())
		if !ok {
			s.skip(ctrlName, m.Name, SkipSignature)
			continue
		}

		an, ok := parseActionName(m.Name)
		if !ok {
			s.skip(ctrlName, m.Name, SkipSignature)
			continue
		}

		resources := an.resources
		if len(resources) == 0 && fallback != "" {
			resources = []string{fallback}
		}
		if len(resources) == 0 {
			s.skip(ctrlName, m.Name, SkipNoResource)
			continue
		}

		d := s.derive(an, resources, cfg.parents, shape.args)
		added := s.register(col, d, registration{
			controller: controller,
			ctrlName:   ctrlName,
			method:     m.Name,
			handler:    v.Method(i),
			shape:      shape,
			overrides:  methodOverrides(controller, cfg, m.Name),
		})
		if added == 0 {
			s.skip(ctrlName, m.Name, SkipSuppressed)
			continue
		}
		routes += added
	}

	s.recorder.OnControllerScanned(ctrlName, routes)
	s.logger.Debug("controller scanned", "controller", ctrlName, "routes", routes)

	return nil
}

// handlerSignature describes a conforming action method.
type handlerSignature struct {
	args         int  // trailing string parameters
	returnsError bool // sole error return
}

// handlerShape reports whether a bound method type conforms to an action
// handler: func(*Context, ...string params) with an optional error return.
func handlerShape(mt reflect.Type) (handlerSignature, bool) {
	if mt.Kind() != reflect.Func || mt.IsVariadic() {
		return handlerSignature{}, false
	}
	if mt.NumIn() < 1 || mt.In(0) != contextType {
		return handlerSignature{}, false
	}
	for i := 1; i < mt.NumIn(); i++ {
		if mt.In(i).Kind() != reflect.String {
			return handlerSignature{}, false
		}
	}
	switch mt.NumOut() {
	case 0:
		return handlerSignature{args: mt.NumIn() - 1}, true
	case 1:
		if mt.Out(0) != errorType {
			return handlerSignature{}, false
		}
		return handlerSignature{args: mt.NumIn() - 1, returnsError: true}, true
	default:
		return handlerSignature{}, false
	}
}

// derivation is the route inferred from one action name before overrides,
// prefixes, and constraint injection apply.
type derivation struct {
	name        string
	segments    []string
	httpMethod  string
	collection  bool
	inflectable bool
	argParams   []string // placeholder names bound to string params, in order
}

// derive applies the naming rules: parents contribute plural/{singular}
// leading pairs, resources pair index-wise with the method's string params
// (paired resources pluralize and gain a placeholder, unpaired ones appear
// as written), collection scope pluralizes the trailing resource, and
// conventional or custom verbs append themselves as a trailing segment.
func (s *Scanner) derive(an actionName, resources []string, parents []string, args int) derivation {
	resources = slices.Clone(resources)

	d := derivation{collection: an.collection, inflectable: true}

	if an.collection {
		trailing := resources[len(resources)-1]
		plural := s.inflector.Pluralize(trailing)
		d.inflectable = plural != trailing
		resources[len(resources)-1] = plural
	}

	nameParts := make([]string, 0, 1+len(parents)+len(resources))
	nameParts = append(nameParts, an.verb)
	for _, p := range parents {
		nameParts = append(nameParts, s.inflector.Singularize(strings.ToLower(p)))
	}
	nameParts = append(nameParts, resources...)
	d.name = strings.Join(nameParts, "_")

	switch an.kind {
	case verbCustom:
		// Custom verbs read when they address fewer things than they name.
		if args < len(resources) {
			d.httpMethod = http.MethodGet
		} else {
			d.httpMethod = http.MethodPatch
		}
	default:
		d.httpMethod = an.httpMethod
	}

	for _, p := range parents {
		lower := strings.ToLower(p)
		singular := s.inflector.Singularize(lower)
		d.segments = append(d.segments, s.inflector.Pluralize(lower), "{"+singular+"}")
		d.argParams = append(d.argParams, singular)
	}

	ownArgs := max(args-len(parents), 0)
	for i, r := range resources {
		if i >= ownArgs {
			d.segments = append(d.segments, r)
			continue
		}
		placeholder := s.inflector.Singularize(r)
		if i == len(resources)-1 && an.paramName != "" {
			placeholder = an.paramName
		}
		d.segments = append(d.segments, s.inflector.Pluralize(r), "{"+placeholder+"}")
		d.argParams = append(d.argParams, placeholder)
	}

	if an.kind == verbConventional || an.kind == verbCustom {
		d.segments = append(d.segments, an.verb)
	}

	return d
}

// registration carries everything register needs beyond the derivation.
type registration struct {
	controller any
	ctrlName   string
	method     string
	handler    reflect.Value
	shape      handlerSignature
	overrides  []Override
}

// register turns one derivation into descriptors - one per override, or a
// single one - and adds them to the collection. Returns how many routes
// were added.
func (s *Scanner) register(col *route.Collection, d derivation, reg registration) int {
	overrides := reg.overrides
	if len(overrides) == 0 {
		overrides = []Override{{}}
	}

	added := 0
	for _, o := range overrides {
		if o.None {
			continue
		}

		name := s.namePrefix + d.name
		if o.Name != "" {
			name = s.namePrefix + o.Name
		}

		segments := d.segments
		if o.Path != "" {
			segments = o.pathSegments()
		}

		desc := route.NewDescriptor().
			AddMethods(d.httpMethod).
			AppendSegments(s.prefixSegments...).
			AppendSegments(segments...).
			SetCollection(d.collection).
			SetDefault(ControllerDefault, reg.ctrlName+"."+reg.method).
			SetHandler(s.bindHandler(reg.handler, reg.shape, d.argParams, name))

		s.applyVersionConstraint(desc)
		o.apply(desc)
		s.applyFormatSuffix(desc)

		s.add(col, name, desc, d, reg)
		added++
	}

	return added
}

// add registers the descriptor and, for non-inflectable collection routes,
// a collection-prefixed clone, so both spellings resolve.
func (s *Scanner) add(col *route.Collection, name string, desc *route.Descriptor, d derivation, reg registration) {
	if prev := col.Add(name, desc); prev != nil {
		s.emit(DiagRouteReplaced, "route name replaced an earlier route", map[string]any{
			"name":       name,
			"controller": reg.ctrlName,
			"method":     reg.method,
		})
	}
	s.recorder.OnRouteRegistered(reg.ctrlName, reg.method, name, desc.Path())
	s.emit(DiagRouteRegistered, "route registered", map[string]any{
		"name":    name,
		"methods": desc.Methods(),
		"path":    desc.Path(),
	})
	s.logger.Debug("route registered",
		"name", name, "methods", desc.Methods(), "path", desc.Path())

	if d.collection && !d.inflectable {
		prefixed := CollectionPrefix + name
		col.Add(prefixed, desc.Clone())
		s.recorder.OnRouteRegistered(reg.ctrlName, reg.method, prefixed, desc.Path())
		s.emit(DiagDualRegistration, "resource does not inflect, registered under both names", map[string]any{
			"name":       name,
			"collection": prefixed,
		})
	}
}

// applyVersionConstraint injects the version constraint in its two forms:
// a {version} placeholder in the path takes a requirement, anything else
// takes a request-matching condition.
func (s *Scanner) applyVersionConstraint(desc *route.Descriptor) {
	if s.versionCfg == nil {
		return
	}
	if strings.Contains(desc.Path(), version.Placeholder) {
		desc.Where(version.Param, s.versionCfg.Requirement())
		return
	}
	if desc.Condition() == "" {
		desc.SetCondition(s.versionCfg.Condition())
	}
}

// applyFormatSuffix appends ".{_format}" to the final path segment with a
// requirement restricting it to the configured formats.
func (s *Scanner) applyFormatSuffix(desc *route.Descriptor) {
	if len(s.formats) == 0 {
		return
	}

	segments := desc.Segments()
	if len(segments) == 0 {
		return
	}
	suffix := ".{" + FormatParam + "}"
	if !strings.HasSuffix(segments[len(segments)-1], suffix) {
		segments[len(segments)-1] += suffix
		desc.SetSegments(segments...)
	}

	// Overrides that constrain _format themselves keep their say.
	if _, ok := desc.Requirement(FormatParam); !ok {
		escaped := make([]string, 0, len(s.formats))
		for _, f := range s.formats {
			escaped = append(escaped, regexp.QuoteMeta(f))
		}
		desc.Where(FormatParam, strings.Join(escaped, "|"))
	}

	if s.defaultFormat != "" {
		if _, ok := desc.Default(FormatParam); !ok {
			desc.SetDefault(FormatParam, s.defaultFormat)
		}
	}
}

// bindHandler adapts a reflected action method onto HandlerFunc, feeding
// its string parameters from path placeholders in declaration order.
func (s *Scanner) bindHandler(method reflect.Value, shape handlerSignature, argParams []string, routeName string) HandlerFunc {
	logger := s.logger

	return func(c *Context) {
		args := make([]reflect.Value, 0, shape.args+1)
		args = append(args, reflect.ValueOf(c))
		for i := 0; i < shape.args; i++ {
			val := ""
			if i < len(argParams) {
				val = c.Param(argParams[i])
			}
			args = append(args, reflect.ValueOf(val))
		}

		out := method.Call(args)
		if !shape.returnsError || out[0].IsNil() {
			return
		}

		err := out[0].Interface().(error)
		logger.Error("action handler failed", "route", routeName, "err", err)
		if rw, ok := c.Response.(*responseWriter); !ok || !rw.Written() {
			_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
	}
}

// skip records one skipped method with both the recorder and diagnostics.
func (s *Scanner) skip(ctrl, method string, reason SkipReason) {
	s.recorder.OnMethodSkipped(ctrl, method, reason)
	s.emit(DiagMethodSkipped, "method produced no route", map[string]any{
		"controller": ctrl,
		"method":     method,
		"reason":     string(reason),
	})
}

// emit sends a diagnostic event if a handler is configured.
func (s *Scanner) emit(kind DiagnosticKind, message string, fields map[string]any) {
	if s.diagnostics != nil {
		s.diagnostics.OnDiagnostic(DiagnosticEvent{
			Kind:    kind,
			Message: message,
			Fields:  fields,
		})
	}
}

// fallbackResource resolves the resource used for bare-verb action names:
// the per-scan override, the controller's ResourceNamer, or the controller
// type name without its "Controller" suffix.
func (s *Scanner) fallbackResource(controller any, cfg scanConfig, ctrlName string) string {
	if cfg.resource != "" {
		return strings.ToLower(cfg.resource)
	}
	if rn, ok := controller.(ResourceNamer); ok {
		return strings.ToLower(rn.ResourceName())
	}
	base := strings.TrimSuffix(ctrlName, "Controller")
	if base == ctrlName && strings.Contains(ctrlName, ".") {
		return ""
	}
	return strings.ToLower(base)
}

// methodOverrides merges overrides from the controller's OverrideProvider
// with the per-scan table, provider results first.
func methodOverrides(controller any, cfg scanConfig, method string) []Override {
	var overrides []Override
	if p, ok := controller.(OverrideProvider); ok {
		overrides = append(overrides, p.RouteOverrides(method)...)
	}
	if cfg.overrides != nil {
		overrides = append(overrides, cfg.overrides[method]...)
	}
	return overrides
}

// validateParents rejects empty parents and parents spelled as paths.
func validateParents(parents []string) error {
	for _, p := range parents {
		if p == "" {
			return fmt.Errorf("%w: empty parent name", ErrInvalidParent)
		}
		if strings.HasSuffix(p, "/") {
			return fmt.Errorf("%w: %q has a trailing slash", ErrInvalidParent, p)
		}
	}
	return nil
}

// isProviderMethod exempts the controller marker interfaces from action
// derivation.
func isProviderMethod(name string) bool {
	return name == "RouteOverrides" || name == "ResourceName"
}

// controllerName names a controller for defaults and observability.
func controllerName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

// splitPath splits a path into segments, dropping empties.
func splitPath(path string) []string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}
