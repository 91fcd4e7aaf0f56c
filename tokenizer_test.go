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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitCamel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want []string
	}{
		{"", nil},
		{"get", []string{"get"}},
		{"GetUser", []string{"Get", "User"}},
		{"cgetUsers", []string{"cget", "Users"}},
		{"getUserByName", []string{"get", "User", "By", "Name"}},
		// Acronyms split letter-wise.
		{"GetACL", []string{"Get", "A", "C", "L"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, splitCamel(tt.name))
		})
	}
}

func TestParseActionName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		verb       string
		kind       verbKind
		httpMethod string
		resources  []string
		paramName  string
		collection bool
	}{
		{
			name: "GetUser", verb: "get", kind: verbKnown, httpMethod: "GET",
			resources: []string{"user"},
		},
		{
			name: "CgetUsers", verb: "get", kind: verbKnown, httpMethod: "GET",
			resources: []string{"users"}, collection: true,
		},
		{
			name: "Cget", verb: "get", kind: verbKnown, httpMethod: "GET",
			resources: []string{}, collection: true,
		},
		{
			// "c" only strips when the remainder is a known verb.
			name: "CopyUser", verb: "copy", kind: verbKnown, httpMethod: "COPY",
			resources: []string{"user"},
		},
		{
			name: "CustomUser", verb: "custom", kind: verbCustom,
			resources: []string{"user"},
		},
		{
			name: "OptionsUsers", verb: "options", kind: verbKnown, httpMethod: "OPTIONS",
			resources: []string{"users"}, collection: true,
		},
		{
			name: "CoptionsUsers", verb: "options", kind: verbKnown, httpMethod: "OPTIONS",
			resources: []string{"users"}, collection: true,
		},
		{
			name: "NewUsers", verb: "new", kind: verbConventional, httpMethod: "GET",
			resources: []string{"users"},
		},
		{
			name: "EditUser", verb: "edit", kind: verbConventional, httpMethod: "GET",
			resources: []string{"user"},
		},
		{
			name: "BanUser", verb: "ban", kind: verbCustom,
			resources: []string{"user"},
		},
		{
			name: "MkcolCalendar", verb: "mkcol", kind: verbKnown, httpMethod: "MKCOL",
			resources: []string{"calendar"},
		},
		{
			name: "GetUserAction", verb: "get", kind: verbKnown, httpMethod: "GET",
			resources: []string{"user"},
		},
		{
			// "Action" only drops as a whole trailing token.
			name: "GetTransaction", verb: "get", kind: verbKnown, httpMethod: "GET",
			resources: []string{"transaction"},
		},
		{
			name: "Action", verb: "action", kind: verbCustom,
			resources: []string{},
		},
		{
			name: "GetUserByName", verb: "get", kind: verbKnown, httpMethod: "GET",
			resources: []string{"user"}, paramName: "name",
		},
		{
			name: "GetUserByFirstName", verb: "get", kind: verbKnown, httpMethod: "GET",
			resources: []string{"user"}, paramName: "firstName",
		},
		{
			// A bare verb with a By clause carries no resources; the scanner
			// falls back to the controller resource.
			name: "GetByName", verb: "get", kind: verbKnown, httpMethod: "GET",
			resources: []string{}, paramName: "name",
		},
		{
			// Trailing "By" with nothing after it stays a resource.
			name: "GetUserBy", verb: "get", kind: verbKnown, httpMethod: "GET",
			resources: []string{"user", "by"},
		},
		{
			// Only the last By clause names the placeholder.
			name: "GetUserByGroupByName", verb: "get", kind: verbKnown, httpMethod: "GET",
			resources: []string{"user", "by", "group"}, paramName: "name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			an, ok := parseActionName(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.verb, an.verb)
			assert.Equal(t, tt.kind, an.kind)
			assert.Equal(t, tt.httpMethod, an.httpMethod)
			assert.Equal(t, tt.resources, an.resources)
			assert.Equal(t, tt.paramName, an.paramName)
			assert.Equal(t, tt.collection, an.collection)
		})
	}

	t.Run("empty name does not parse", func(t *testing.T) {
		t.Parallel()
		_, ok := parseActionName("")
		assert.False(t, ok)
	})
}

func TestLowerCamelJoin(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", lowerCamelJoin(nil))
	assert.Equal(t, "name", lowerCamelJoin([]string{"Name"}))
	assert.Equal(t, "firstName", lowerCamelJoin([]string{"First", "Name"}))
	assert.Equal(t, "aBC", lowerCamelJoin([]string{"A", "B", "C"}))
}

func FuzzParseActionName(f *testing.F) {
	for _, seed := range []string{
		"", "GetUser", "CgetUsers", "GetUserByName", "OptionsUsers",
		"GetUserAction", "X", "ABCaction", "摂取Get", "getÜser",
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, name string) {
		an, ok := parseActionName(name)
		if !ok {
			if name != "" {
				t.Fatalf("only the empty name may fail to parse, got %q", name)
			}
			return
		}

		if an.verb == "" {
			t.Fatalf("parsed %q into an empty verb", name)
		}
		if an.verb != strings.ToLower(an.verb) {
			t.Fatalf("verb %q from %q is not lowercase", an.verb, name)
		}
		// Some uppercase runes have no lowercase form, so only ASCII is
		// checked.
		for _, r := range an.resources {
			for _, ch := range r {
				if ch >= 'A' && ch <= 'Z' {
					t.Fatalf("resource %q from %q keeps an uppercase letter", r, name)
				}
			}
		}
	})
}
