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
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
)

// Context carries one HTTP request through an action handler: the request
// and response objects, the extracted path parameters, and the route
// metadata the mount layer resolved (route name, API version).
//
// ⚠️ THREAD SAFETY: Context is NOT thread-safe. A Context is bound to a
// single request and must only be accessed by the goroutine handling it.
// For async work, copy the needed values before starting goroutines.
type Context struct {
	Request  *http.Request
	Response http.ResponseWriter

	paramCount int32

	// Parameter storage: fixed arrays cover typical routes; the Params map
	// is only allocated past eight parameters.
	paramKeys   [8]string
	paramValues [8]string
	Params      map[string]string

	routeName string
	version   string
	logger    *slog.Logger
}

// HandlerFunc is the plain action handler signature. Controller methods may
// additionally take trailing string parameters (filled from path
// placeholders in order) and may return an error; the scanner adapts those
// shapes onto HandlerFunc.
type HandlerFunc func(*Context)

// NewContext creates a context for the given response writer and request.
// Primarily used internally by mount targets, but useful for testing
// handlers directly.
func NewContext(w http.ResponseWriter, r *http.Request) *Context {
	return &Context{Request: r, Response: w}
}

// Param returns the value of a path parameter, or "" when absent.
func (c *Context) Param(key string) string {
	// Array lookup first
	for i := range c.paramCount {
		if c.paramKeys[i] == key {
			return c.paramValues[i]
		}
	}
	// Fallback to map for >8 parameters (rare case)
	return c.Params[key]
}

// setParam stores a path parameter, overflowing to the map past the array
// capacity.
func (c *Context) setParam(key, value string) {
	if int(c.paramCount) < len(c.paramKeys) {
		c.paramKeys[c.paramCount] = key
		c.paramValues[c.paramCount] = value
		c.paramCount++
		return
	}
	if c.Params == nil {
		c.Params = make(map[string]string)
	}
	c.Params[key] = value
}

// RouteName returns the name of the matched route.
func (c *Context) RouteName() string {
	return c.routeName
}

// Version returns the API version resolved for this request, or "" when
// version matching is not configured.
func (c *Context) Version() string {
	return c.version
}

// Format returns the response format extracted from the request path's
// format suffix, falling back to "" when format suffixes are not enabled.
func (c *Context) Format() string {
	return c.Param(FormatParam)
}

// Logger returns the request-scoped logger, never nil.
func (c *Context) Logger() *slog.Logger {
	if c.logger == nil {
		return NoopLogger()
	}
	return c.logger
}

// JSON sends a JSON response with the specified status code.
// Returns an error if encoding or writing fails.
func (c *Context) JSON(code int, obj any) error {
	// Encode to a buffer first so encoding failures never leave a
	// half-written response.
	var buf strings.Builder
	buf.Grow(256)

	if err := json.NewEncoder(&buf).Encode(obj); err != nil {
		return fmt.Errorf("JSON encoding failed for type %T: %w", obj, err)
	}

	if c.Response == nil {
		return ErrContextResponseNil
	}
	c.Response.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.writeHeaderOnce(code)

	_, writeErr := c.Response.Write([]byte(buf.String()))

	return writeErr
}

// String sends a plain text response with the specified status code.
func (c *Context) String(code int, value string) error {
	if c.Response == nil {
		return ErrContextResponseNil
	}
	if c.Response.Header().Get("Content-Type") == "" {
		c.Response.Header().Set("Content-Type", "text/plain")
	}
	c.writeHeaderOnce(code)

	if _, err := c.Response.Write([]byte(value)); err != nil {
		return fmt.Errorf("writing string response: %w", err)
	}

	return nil
}

// Status sends a status code with no body.
func (c *Context) Status(code int) {
	if c.Response != nil {
		c.writeHeaderOnce(code)
	}
}

// writeHeaderOnce avoids "superfluous response.WriteHeader call" when the
// response writer tracks written state.
func (c *Context) writeHeaderOnce(code int) {
	if rw, ok := c.Response.(*responseWriter); ok {
		if !rw.Written() {
			c.Response.WriteHeader(code)
		}
		return
	}
	c.Response.WriteHeader(code)
}

// responseWriter wraps http.ResponseWriter to capture status code and size.
// It also prevents duplicate WriteHeader calls.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	size       int64
	written    bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.ResponseWriter.WriteHeader(code)
		rw.written = true
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.written = true
	}
	if rw.statusCode == 0 {
		rw.statusCode = http.StatusOK
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.size += int64(n)
	return n, err
}

// StatusCode returns the HTTP status code, defaulting to 200.
func (rw *responseWriter) StatusCode() int {
	if rw.statusCode == 0 {
		return http.StatusOK
	}
	return rw.statusCode
}

// Size returns the response size in bytes.
func (rw *responseWriter) Size() int64 {
	return rw.size
}

// Written reports whether headers have been written.
func (rw *responseWriter) Written() bool {
	return rw.written
}

// Flush implements http.Flusher.
func (rw *responseWriter) Flush() {
	if flusher, ok := rw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}
