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
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/actions/inflect"
	"rivaas.dev/actions/route"
	"rivaas.dev/actions/version"
)

// widgetsController exercises the whole verb table: known verbs, the WebDAV
// set, conventional actions, and custom verbs in both argument shapes.
type widgetsController struct{}

func (*widgetsController) CgetWidgets(c *Context)                {}
func (*widgetsController) GetWidget(c *Context, id string)       {}
func (*widgetsController) PostWidgets(c *Context)                {}
func (*widgetsController) PutWidget(c *Context, id string)       {}
func (*widgetsController) PatchWidget(c *Context, id string)     {}
func (*widgetsController) DeleteWidget(c *Context, id string)    {}
func (*widgetsController) HeadWidget(c *Context, id string)      {}
func (*widgetsController) CopyWidget(c *Context, id string)      {}
func (*widgetsController) LockWidget(c *Context, id string)      {}
func (*widgetsController) OptionsWidgets(c *Context)             {}
func (*widgetsController) NewWidgets(c *Context)                 {}
func (*widgetsController) EditWidget(c *Context, id string)      {}
func (*widgetsController) RemoveWidget(c *Context, id string)    {}
func (*widgetsController) BanWidget(c *Context, id string)       {}
func (*widgetsController) SendWidgetEmail(c *Context, id string) {}

func TestScanVerbTable(t *testing.T) {
	t.Parallel()

	col, err := MustNew().Infer(&widgetsController{})
	require.NoError(t, err)

	tests := []struct {
		name       string
		methods    []string
		path       string
		collection bool
	}{
		// "widgets" is already plural, so the collection actions register
		// under both spellings.
		{"get_widgets", []string{"GET"}, "/widgets", true},
		{"cget_widgets", []string{"GET"}, "/widgets", true},
		{"options_widgets", []string{"OPTIONS"}, "/widgets", true},
		{"coptions_widgets", []string{"OPTIONS"}, "/widgets", true},

		{"get_widget", []string{"GET"}, "/widgets/{widget}", false},
		{"post_widgets", []string{"POST"}, "/widgets", false},
		{"put_widget", []string{"PUT"}, "/widgets/{widget}", false},
		{"patch_widget", []string{"PATCH"}, "/widgets/{widget}", false},
		{"delete_widget", []string{"DELETE"}, "/widgets/{widget}", false},
		{"head_widget", []string{"HEAD"}, "/widgets/{widget}", false},

		// WebDAV verbs map to their literal methods; "copy" starts with the
		// collection prefix but stays a plain verb because "opy" is unknown.
		{"copy_widget", []string{"COPY"}, "/widgets/{widget}", false},
		{"lock_widget", []string{"LOCK"}, "/widgets/{widget}", false},

		// Conventional actions serve over GET with a trailing verb segment.
		{"new_widgets", []string{"GET"}, "/widgets/new", false},
		{"edit_widget", []string{"GET"}, "/widgets/{widget}/edit", false},
		{"remove_widget", []string{"GET"}, "/widgets/{widget}/remove", false},

		// Custom verbs: one argument for one resource mutates (PATCH), one
		// argument for two resources reads (GET).
		{"ban_widget", []string{"PATCH"}, "/widgets/{widget}/ban", false},
		{"send_widget_email", []string{"GET"}, "/widgets/{widget}/email/send", false},
	}

	require.Equal(t, len(tests), col.Len())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := col.Get(tt.name)
			require.NotNil(t, d, "route %q not registered", tt.name)
			assert.Equal(t, tt.methods, d.Methods())
			assert.Equal(t, tt.path, d.Path())
			assert.Equal(t, tt.collection, d.Collection())

			ctrl, ok := d.Default(ControllerDefault)
			require.True(t, ok)
			assert.Contains(t, ctrl.(string), "widgetsController.")
		})
	}
}

type sheepController struct{}

func (*sheepController) CgetSheep(c *Context) {}

type accountController struct{}

func (*accountController) CgetAccount(c *Context) {}

func TestScanCollectionInflection(t *testing.T) {
	t.Parallel()

	t.Run("uncountable resource registers under both names", func(t *testing.T) {
		t.Parallel()

		var events []DiagnosticEvent
		s := MustNew(WithDiagnostics(DiagnosticHandlerFunc(func(e DiagnosticEvent) {
			events = append(events, e)
		})))

		col, err := s.Infer(&sheepController{})
		require.NoError(t, err)
		require.Equal(t, 2, col.Len())

		plain := col.Get("get_sheep")
		prefixed := col.Get("cget_sheep")
		require.NotNil(t, plain)
		require.NotNil(t, prefixed)

		assert.NotSame(t, plain, prefixed)
		assert.Equal(t, plain.Path(), prefixed.Path())
		assert.Equal(t, plain.Methods(), prefixed.Methods())
		assert.True(t, plain.Collection())
		assert.True(t, prefixed.Collection())

		kinds := diagnosticKinds(events)
		assert.Contains(t, kinds, DiagDualRegistration)
	})

	t.Run("singular spelling pluralizes without dual registration", func(t *testing.T) {
		t.Parallel()

		col, err := MustNew().Infer(&accountController{})
		require.NoError(t, err)

		require.Equal(t, 1, col.Len())
		d := col.Get("get_accounts")
		require.NotNil(t, d)
		assert.Equal(t, "/accounts", d.Path())
		assert.False(t, col.Has("cget_accounts"))
	})

	t.Run("static inflector always dual registers", func(t *testing.T) {
		t.Parallel()

		col, err := MustNew(WithInflector(inflect.Static())).Infer(&accountController{})
		require.NoError(t, err)

		assert.True(t, col.Has("get_account"))
		assert.True(t, col.Has("cget_account"))
		assert.Equal(t, "/account", col.Get("get_account").Path())
	})
}

type lookupController struct{}

func (*lookupController) GetUserByName(c *Context, name string) {}

func TestScanByClause(t *testing.T) {
	t.Parallel()

	col, err := MustNew().Infer(&lookupController{})
	require.NoError(t, err)

	d := col.Get("get_user")
	require.NotNil(t, d)
	assert.Equal(t, "/users/{name}", d.Path())
}

type collisionController struct{}

func (*collisionController) GetUser(c *Context, id string)         {}
func (*collisionController) GetUserByName(c *Context, name string) {}

func TestScanNameCollision(t *testing.T) {
	t.Parallel()

	var events []DiagnosticEvent
	s := MustNew(WithDiagnostics(DiagnosticHandlerFunc(func(e DiagnosticEvent) {
		events = append(events, e)
	})))

	// Both methods derive "get_user"; methods scan in lexical order, so the
	// By variant lands last and wins.
	col, err := s.Infer(&collisionController{})
	require.NoError(t, err)

	require.Equal(t, 1, col.Len())
	assert.Equal(t, "/users/{name}", col.Get("get_user").Path())
	assert.Contains(t, diagnosticKinds(events), DiagRouteReplaced)
}

type commentsController struct{}

func (*commentsController) GetComment(c *Context, userID, commentID string) {}
func (*commentsController) CgetComments(c *Context, userID string)          {}
func (*commentsController) PostComments(c *Context, userID string)          {}

type repliesController struct{}

func (*repliesController) GetReply(c *Context, siteID, userID, replyID string) {}

func TestScanParents(t *testing.T) {
	t.Parallel()

	t.Run("parents nest paths and names", func(t *testing.T) {
		t.Parallel()

		s := MustNew()
		col, err := s.Infer(&commentsController{}, WithParents("users"))
		require.NoError(t, err)

		tests := []struct {
			name string
			path string
		}{
			{"get_user_comment", "/users/{user}/comments/{comment}"},
			{"get_user_comments", "/users/{user}/comments"},
			{"cget_user_comments", "/users/{user}/comments"},
			{"post_user_comments", "/users/{user}/comments"},
		}
		require.Equal(t, len(tests), col.Len())
		for _, tt := range tests {
			d := col.Get(tt.name)
			require.NotNil(t, d, "route %q not registered", tt.name)
			assert.Equal(t, tt.path, d.Path())
		}
	})

	t.Run("multiple parents nest in order", func(t *testing.T) {
		t.Parallel()

		col, err := MustNew().Infer(&repliesController{}, WithParents("sites", "users"))
		require.NoError(t, err)

		d := col.Get("get_site_user_reply")
		require.NotNil(t, d)
		assert.Equal(t, "/sites/{site}/users/{user}/replies/{reply}", d.Path())
	})

	t.Run("parents consume leading arguments", func(t *testing.T) {
		t.Parallel()

		// Two parents claim both arguments, so the own resource keeps no
		// placeholder.
		col, err := MustNew().Infer(&commentsController{}, WithParents("sites", "users"))
		require.NoError(t, err)

		d := col.Get("get_site_user_comment")
		require.NotNil(t, d)
		assert.Equal(t, "/sites/{site}/users/{user}/comment", d.Path())
	})

	t.Run("empty parent", func(t *testing.T) {
		t.Parallel()

		err := MustNew().Scan(route.NewCollection(), &commentsController{}, WithParents(""))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidParent)
	})

	t.Run("parent with trailing slash", func(t *testing.T) {
		t.Parallel()

		err := MustNew().Scan(route.NewCollection(), &commentsController{}, WithParents("users/"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidParent)
	})
}

type ordersController struct{}

func (*ordersController) Get(c *Context, id string) {}

type inventoryController struct{}

func (*inventoryController) ResourceName() string      { return "part" }
func (*inventoryController) Get(c *Context, id string) {}
func (*inventoryController) Cget(c *Context)           {}

type unnamedController struct{}

func (*unnamedController) ResourceName() string      { return "" }
func (*unnamedController) Get(c *Context, id string) {}

func TestScanFallbackResource(t *testing.T) {
	t.Parallel()

	t.Run("controller type name", func(t *testing.T) {
		t.Parallel()

		col, err := MustNew().Infer(&ordersController{})
		require.NoError(t, err)

		d := col.Get("get_orders")
		require.NotNil(t, d)
		assert.Equal(t, "/orders/{order}", d.Path())
	})

	t.Run("resource namer", func(t *testing.T) {
		t.Parallel()

		col, err := MustNew().Infer(&inventoryController{})
		require.NoError(t, err)

		require.NotNil(t, col.Get("get_part"))
		assert.Equal(t, "/parts/{part}", col.Get("get_part").Path())
		require.NotNil(t, col.Get("get_parts"))
		assert.Equal(t, "/parts", col.Get("get_parts").Path())

		// The marker method itself derives nothing.
		assert.False(t, col.Has("resource_name"))
	})

	t.Run("scan option wins over namer", func(t *testing.T) {
		t.Parallel()

		col, err := MustNew().Infer(&inventoryController{}, WithResource("Item"))
		require.NoError(t, err)

		require.NotNil(t, col.Get("get_item"))
		assert.Equal(t, "/items/{item}", col.Get("get_item").Path())
	})

	t.Run("empty namer suppresses bare verbs", func(t *testing.T) {
		t.Parallel()

		var skipped []SkipReason
		s := MustNew(WithDiagnostics(DiagnosticHandlerFunc(func(e DiagnosticEvent) {
			if e.Kind == DiagMethodSkipped {
				skipped = append(skipped, SkipReason(e.Fields["reason"].(string)))
			}
		})))

		col, err := s.Infer(&unnamedController{})
		require.NoError(t, err)

		assert.Equal(t, 0, col.Len())
		assert.Equal(t, []SkipReason{SkipNoResource}, skipped)
	})
}

// helperController mixes one action with the method shapes the scanner must
// skip without failing the scan.
type helperController struct{}

func (*helperController) GetThing(c *Context, id string)     {}
func (*helperController) Compute(a int) int                  { return a }
func (*helperController) GetCount(c *Context, n int)         {}
func (*helperController) GetAll(c *Context, ids ...string)   {}
func (*helperController) GetPair(c *Context) (string, error) { return "", nil }
func (*helperController) GetValue(c *Context) string         { return "" }

func TestScanSkipsNonConforming(t *testing.T) {
	t.Parallel()

	t.Run("signature mismatches produce diagnostics not errors", func(t *testing.T) {
		t.Parallel()

		var skipped []string
		s := MustNew(WithDiagnostics(DiagnosticHandlerFunc(func(e DiagnosticEvent) {
			if e.Kind == DiagMethodSkipped {
				skipped = append(skipped, e.Fields["method"].(string))
			}
		})))

		col, err := s.Infer(&helperController{})
		require.NoError(t, err)

		require.Equal(t, 1, col.Len())
		assert.True(t, col.Has("get_thing"))
		assert.ElementsMatch(t,
			[]string{"Compute", "GetAll", "GetCount", "GetPair", "GetValue"},
			skipped)
	})

	t.Run("pointer receivers need a pointer controller", func(t *testing.T) {
		t.Parallel()

		col, err := MustNew().Infer(widgetsController{})
		require.NoError(t, err)
		assert.Equal(t, 0, col.Len())
	})
}

type profileController struct{}

func (*profileController) GetProfile(c *Context, id string) {}

func TestScanOverrides(t *testing.T) {
	t.Parallel()

	scan := func(t *testing.T, overrides []Override, opts ...Option) *routeCollection {
		t.Helper()
		s := MustNew(opts...)
		col, err := s.Infer(&profileController{}, WithOverrides(map[string][]Override{
			"GetProfile": overrides,
		}))
		require.NoError(t, err)
		return &routeCollection{t: t, col: col}
	}

	t.Run("none suppresses the route", func(t *testing.T) {
		t.Parallel()

		var skipped []SkipReason
		s := MustNew(WithDiagnostics(DiagnosticHandlerFunc(func(e DiagnosticEvent) {
			if e.Kind == DiagMethodSkipped {
				skipped = append(skipped, SkipReason(e.Fields["reason"].(string)))
			}
		})))

		col, err := s.Infer(&profileController{}, WithOverrides(map[string][]Override{
			"GetProfile": {{None: true}},
		}))
		require.NoError(t, err)

		assert.Equal(t, 0, col.Len())
		assert.Equal(t, []SkipReason{SkipSuppressed}, skipped)
	})

	t.Run("name override keeps the name prefix", func(t *testing.T) {
		t.Parallel()

		rc := scan(t, []Override{{Name: "profile_show"}}, WithNamePrefix("api_"))
		rc.route("api_profile_show")
	})

	t.Run("path override keeps the path prefix", func(t *testing.T) {
		t.Parallel()

		rc := scan(t, []Override{{Path: "/people/{profile}"}}, WithPrefix("/api"))
		d := rc.route("get_profile")
		assert.Equal(t, "/api/people/{profile}", d.Path())
	})

	t.Run("methods override replaces the derived method", func(t *testing.T) {
		t.Parallel()

		d := scan(t, []Override{{Methods: []string{"POST", "PUT"}}}).route("get_profile")
		assert.Equal(t, []string{"POST", "PUT"}, d.Methods())
	})

	t.Run("requirements defaults host schemes condition", func(t *testing.T) {
		t.Parallel()

		d := scan(t, []Override{{
			Requirements: map[string]string{"profile": `\d+`},
			Defaults:     map[string]any{"role": "admin"},
			Host:         "api.example.com",
			Schemes:      []string{"https"},
			Condition:    `request.headers has "X-Beta"`,
		}}).route("get_profile")

		req, ok := d.Requirement("profile")
		require.True(t, ok)
		assert.True(t, req.Match("42"))
		assert.False(t, req.Match("jo"))

		role, ok := d.Default("role")
		require.True(t, ok)
		assert.Equal(t, "admin", role)

		ctrl, ok := d.Default(ControllerDefault)
		require.True(t, ok)
		assert.Equal(t, "profileController.GetProfile", ctrl)

		assert.Equal(t, "api.example.com", d.Host())
		assert.Equal(t, []string{"https"}, d.Schemes())
		assert.Equal(t, `request.headers has "X-Beta"`, d.Condition())
	})

	t.Run("several overrides register several routes", func(t *testing.T) {
		t.Parallel()

		rc := scan(t, []Override{
			{},
			{Name: "get_profile_legacy", Path: "/members/{profile}"},
		})

		assert.Equal(t, "/profiles/{profile}", rc.route("get_profile").Path())
		assert.Equal(t, "/members/{profile}", rc.route("get_profile_legacy").Path())
		assert.Equal(t, 2, rc.col.Len())
	})

	t.Run("suppressing override among route-bearing ones", func(t *testing.T) {
		t.Parallel()

		rc := scan(t, []Override{{None: true}, {Name: "get_profile_alt"}})
		rc.route("get_profile_alt")
		assert.Equal(t, 1, rc.col.Len())
	})
}

type itemsController struct {
	taggedMethods map[string][]Override
}

func (ic *itemsController) GetItem(c *Context, id string) {}

func (ic *itemsController) RouteOverrides(method string) []Override {
	return ic.taggedMethods[method]
}

func TestScanOverrideProvider(t *testing.T) {
	t.Parallel()

	t.Run("provider overrides apply", func(t *testing.T) {
		t.Parallel()

		ctrl := &itemsController{taggedMethods: map[string][]Override{
			"GetItem": {{Requirements: map[string]string{"item": `\d+`}}},
		}}
		col, err := MustNew().Infer(ctrl)
		require.NoError(t, err)

		d := col.Get("get_item")
		require.NotNil(t, d)
		req, ok := d.Requirement("item")
		require.True(t, ok)
		assert.True(t, req.Match("7"))

		// The provider method itself is exempt from derivation.
		assert.Equal(t, 1, col.Len())
	})

	t.Run("provider and scan overrides both register", func(t *testing.T) {
		t.Parallel()

		ctrl := &itemsController{taggedMethods: map[string][]Override{
			"GetItem": {{}},
		}}
		col, err := MustNew().Infer(ctrl, WithOverrides(map[string][]Override{
			"GetItem": {{Name: "get_item_legacy", Path: "/legacy/items/{item}"}},
		}))
		require.NoError(t, err)

		assert.True(t, col.Has("get_item"))
		assert.True(t, col.Has("get_item_legacy"))
		assert.Equal(t, 2, col.Len())
	})
}

func TestScanVersionConstraints(t *testing.T) {
	t.Parallel()

	versioned := func(t *testing.T, opts ...Option) *Scanner {
		t.Helper()
		all := append([]Option{WithVersioning(
			version.WithVersions("v1", "v2"),
		)}, opts...)
		s, err := New(all...)
		require.NoError(t, err)
		return s
	}

	t.Run("placeholder path takes a requirement", func(t *testing.T) {
		t.Parallel()

		s := versioned(t, WithPrefix("/api/{version}"))
		col, err := s.Infer(&profileController{})
		require.NoError(t, err)

		d := col.Get("get_profile")
		require.NotNil(t, d)
		assert.Equal(t, "/api/{version}/profiles/{profile}", d.Path())

		req, ok := d.Requirement(version.Param)
		require.True(t, ok)
		assert.True(t, req.Match("v1"))
		assert.True(t, req.Match("v2"))
		assert.False(t, req.Match("v3"))
		assert.Empty(t, d.Condition())
	})

	t.Run("plain path takes a condition", func(t *testing.T) {
		t.Parallel()

		col, err := versioned(t).Infer(&profileController{})
		require.NoError(t, err)

		d := col.Get("get_profile")
		require.NotNil(t, d)
		assert.Equal(t, `version in ("v1", "v2")`, d.Condition())
		_, ok := d.Requirement(version.Param)
		assert.False(t, ok)
	})

	t.Run("override condition wins", func(t *testing.T) {
		t.Parallel()

		col, err := versioned(t).Infer(&profileController{}, WithOverrides(map[string][]Override{
			"GetProfile": {{Condition: "custom"}},
		}))
		require.NoError(t, err)

		assert.Equal(t, "custom", col.Get("get_profile").Condition())
	})

	t.Run("version config exposed for mounting", func(t *testing.T) {
		t.Parallel()

		assert.NotNil(t, versioned(t).VersionConfig())
		assert.Nil(t, MustNew().VersionConfig())
	})
}

func TestScanFormatSuffix(t *testing.T) {
	t.Parallel()

	t.Run("suffix lands on the final segment", func(t *testing.T) {
		t.Parallel()

		col, err := MustNew(WithFormats("json", "xml")).Infer(&profileController{})
		require.NoError(t, err)

		d := col.Get("get_profile")
		require.NotNil(t, d)
		assert.Equal(t, "/profiles/{profile}.{_format}", d.Path())

		req, ok := d.Requirement(FormatParam)
		require.True(t, ok)
		assert.True(t, req.Match("json"))
		assert.True(t, req.Match("xml"))
		assert.False(t, req.Match("yaml"))

		_, ok = d.Default(FormatParam)
		assert.False(t, ok)
	})

	t.Run("default format recorded", func(t *testing.T) {
		t.Parallel()

		col, err := MustNew(
			WithFormats("json", "xml"),
			WithDefaultFormat("json"),
		).Infer(&profileController{})
		require.NoError(t, err)

		def, ok := col.Get("get_profile").Default(FormatParam)
		require.True(t, ok)
		assert.Equal(t, "json", def)
	})
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts []Option
	}{
		{"empty format entry", []Option{WithFormats("json", "")}},
		{"default format without formats", []Option{WithDefaultFormat("json")}},
		{"default format not among formats", []Option{WithFormats("json"), WithDefaultFormat("xml")}},
		{"invalid version set", []Option{WithVersioning(version.WithDefault("v9"))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := New(tt.opts...)
			require.Error(t, err)
			assert.Panics(t, func() { MustNew(tt.opts...) })
		})
	}
}

func TestScanPrefixes(t *testing.T) {
	t.Parallel()

	t.Run("path prefix tolerates slashes", func(t *testing.T) {
		t.Parallel()

		col, err := MustNew(WithPrefix("/api/")).Infer(&profileController{})
		require.NoError(t, err)
		assert.Equal(t, "/api/profiles/{profile}", col.Get("get_profile").Path())
	})

	t.Run("name prefix applies to derived names", func(t *testing.T) {
		t.Parallel()

		col, err := MustNew(WithNamePrefix("api_")).Infer(&profileController{})
		require.NoError(t, err)
		assert.True(t, col.Has("api_get_profile"))
	})
}

func TestScanNilInputs(t *testing.T) {
	t.Parallel()

	s := MustNew()

	err := s.Scan(nil, &profileController{})
	assert.ErrorIs(t, err, ErrNilCollection)

	err = s.Scan(route.NewCollection(), nil)
	assert.ErrorIs(t, err, ErrNilController)

	var typed *profileController
	err = s.Scan(route.NewCollection(), typed)
	assert.ErrorIs(t, err, ErrNilController)
}

type greetController struct{}

func (*greetController) GetGreeting(c *Context, id string) {
	_ = c.String(http.StatusOK, "id="+id)
}

type statController struct{}

func (*statController) GetStat(c *Context, a, b string) {
	_ = c.String(http.StatusOK, "a="+a+",b="+b)
}

type failController struct{}

func (*failController) GetJob(c *Context, id string) error {
	return errors.New("boom")
}

type partialController struct{}

func (*partialController) GetTask(c *Context, id string) error {
	c.Status(http.StatusAccepted)
	return errors.New("late failure")
}

func TestBoundHandler(t *testing.T) {
	t.Parallel()

	invoke := func(t *testing.T, controller any, name, target string, params map[string]string) *httptest.ResponseRecorder {
		t.Helper()

		col, err := MustNew().Infer(controller)
		require.NoError(t, err)
		d := col.Get(name)
		require.NotNil(t, d)

		h, ok := d.Handler().(HandlerFunc)
		require.True(t, ok)

		w := httptest.NewRecorder()
		c := NewContext(&responseWriter{ResponseWriter: w}, httptest.NewRequest(http.MethodGet, target, nil))
		for k, v := range params {
			c.setParam(k, v)
		}
		h(c)
		return w
	}

	t.Run("path parameters feed string arguments", func(t *testing.T) {
		t.Parallel()

		w := invoke(t, &greetController{}, "get_greeting", "/greetings/jo",
			map[string]string{"greeting": "jo"})
		assert.Equal(t, "id=jo", w.Body.String())
	})

	t.Run("surplus arguments receive empty strings", func(t *testing.T) {
		t.Parallel()

		// GetStat declares two string parameters but derives only one
		// placeholder.
		w := invoke(t, &statController{}, "get_stat", "/stats/cpu",
			map[string]string{"stat": "cpu"})
		assert.Equal(t, "a=cpu,b=", w.Body.String())
	})

	t.Run("handler error becomes a 500 JSON body", func(t *testing.T) {
		t.Parallel()

		w := invoke(t, &failController{}, "get_job", "/jobs/1",
			map[string]string{"job": "1"})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"boom"}`, w.Body.String())
	})

	t.Run("written responses are left alone on error", func(t *testing.T) {
		t.Parallel()

		w := invoke(t, &partialController{}, "get_task", "/tasks/1",
			map[string]string{"task": "1"})
		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Empty(t, w.Body.String())
	})
}

// fakeRecorder collects scan events for assertions.
type fakeRecorder struct {
	scanned map[string]int
	routes  []string
	skips   []string
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{scanned: make(map[string]int)}
}

func (f *fakeRecorder) OnControllerScanned(controller string, routes int) {
	f.scanned[controller] = routes
}

func (f *fakeRecorder) OnRouteRegistered(controller, method, name, path string) {
	f.routes = append(f.routes, name)
}

func (f *fakeRecorder) OnMethodSkipped(controller, method string, reason SkipReason) {
	f.skips = append(f.skips, method+":"+string(reason))
}

func TestScanRecorderEvents(t *testing.T) {
	t.Parallel()

	rec := newFakeRecorder()
	s := MustNew(WithRecorder(rec))

	_, err := s.Infer(&helperController{})
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"helperController": 1}, rec.scanned)
	assert.Equal(t, []string{"get_thing"}, rec.routes)
	assert.ElementsMatch(t, []string{
		"Compute:signature_mismatch",
		"GetAll:signature_mismatch",
		"GetCount:signature_mismatch",
		"GetPair:signature_mismatch",
		"GetValue:signature_mismatch",
	}, rec.skips)
}

// routeCollection wraps a collection with require-style lookups.
type routeCollection struct {
	t   *testing.T
	col *route.Collection
}

func (rc *routeCollection) route(name string) *route.Descriptor {
	rc.t.Helper()
	d := rc.col.Get(name)
	require.NotNil(rc.t, d, "route %q not registered", name)
	return d
}

func diagnosticKinds(events []DiagnosticEvent) []DiagnosticKind {
	kinds := make([]DiagnosticKind, 0, len(events))
	for _, e := range events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}
