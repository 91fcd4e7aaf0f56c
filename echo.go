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
	"github.com/labstack/echo/v4"
)

// echoTarget registers routes on an echo instance.
type echoTarget struct {
	e *echo.Echo
}

// NewEchoTarget adapts an echo instance into a mount target.
// Descriptor placeholders translate to echo's ":name" syntax.
//
// Example:
//
//	e := echo.New()
//	err := actions.Mount(actions.NewEchoTarget(e), col)
func NewEchoTarget(e *echo.Echo) Registrar {
	return &echoTarget{e: e}
}

// Register implements Registrar.
func (t *echoTarget) Register(method, path string, params []string, h ParamHandler) error {
	t.e.Add(method, colonParamPath(path), func(c echo.Context) error {
		names := c.ParamNames()
		paramValues := c.ParamValues()
		values := make(map[string]string, len(names))
		for i, name := range names {
			if i < len(paramValues) {
				values[name] = paramValues[i]
			}
		}
		h(c.Response(), c.Request(), values)
		return nil
	})
	return nil
}
