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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ParseReversePattern Tests

func TestParseReversePattern_Static(t *testing.T) {
	t.Parallel()

	pattern := ParseReversePattern("/users")

	require.Len(t, pattern.Segments, 1)
	assert.True(t, pattern.Segments[0].Static)
	assert.Equal(t, "/users", pattern.Segments[0].Value)
}

func TestParseReversePattern_WithParameter(t *testing.T) {
	t.Parallel()

	pattern := ParseReversePattern("/users/{user}")

	require.Len(t, pattern.Segments, 2)

	assert.True(t, pattern.Segments[0].Static)
	assert.Equal(t, "/users/", pattern.Segments[0].Value)

	assert.False(t, pattern.Segments[1].Static)
	assert.Equal(t, "user", pattern.Segments[1].Value)
}

func TestParseReversePattern_Nested(t *testing.T) {
	t.Parallel()

	pattern := ParseReversePattern("/users/{user}/comments/{comment}")

	require.Len(t, pattern.Segments, 4)
	assert.Equal(t, "user", pattern.Segments[1].Value)
	assert.Equal(t, "/comments/", pattern.Segments[2].Value)
	assert.Equal(t, "comment", pattern.Segments[3].Value)
}

func TestParseReversePattern_CompoundSegment(t *testing.T) {
	t.Parallel()

	pattern := ParseReversePattern("/users/{user}.{_format}")

	require.Len(t, pattern.Segments, 4)
	assert.Equal(t, "user", pattern.Segments[1].Value)
	assert.True(t, pattern.Segments[2].Static)
	assert.Equal(t, ".", pattern.Segments[2].Value)
	assert.Equal(t, "_format", pattern.Segments[3].Value)
}

func TestParseReversePattern_UnbalancedBrace(t *testing.T) {
	t.Parallel()

	pattern := ParseReversePattern("/users/{user")

	require.Len(t, pattern.Segments, 1)
	assert.True(t, pattern.Segments[0].Static)
	assert.Equal(t, "/users/{user", pattern.Segments[0].Value)
}

// BuildURL Tests

func TestBuildURL_Simple(t *testing.T) {
	t.Parallel()

	pattern := ParseReversePattern("/users/{user}")

	u, err := pattern.BuildURL(map[string]string{"user": "42"}, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, "/users/42", u)
}

func TestBuildURL_MissingParameter(t *testing.T) {
	t.Parallel()

	pattern := ParseReversePattern("/users/{user}")

	_, err := pattern.BuildURL(nil, nil, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingRouteParameter)
}

func TestBuildURL_DefaultsIgnoreNonStrings(t *testing.T) {
	t.Parallel()

	pattern := ParseReversePattern("/users/{user}")

	_, err := pattern.BuildURL(nil, map[string]any{"user": 42}, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingRouteParameter)
}
