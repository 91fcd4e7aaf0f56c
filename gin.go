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
	"github.com/gin-gonic/gin"
)

// ginTarget registers routes on a gin engine or route group.
type ginTarget struct {
	routes gin.IRoutes
}

// NewGinTarget adapts a gin engine or route group into a mount target.
// Descriptor placeholders translate to gin's ":name" syntax. Gin panics on
// conflicting route registrations, so collisions surface at mount time.
//
// Example:
//
//	engine := gin.New()
//	err := actions.Mount(actions.NewGinTarget(engine), col)
func NewGinTarget(routes gin.IRoutes) Registrar {
	return &ginTarget{routes: routes}
}

// Register implements Registrar.
func (t *ginTarget) Register(method, path string, params []string, h ParamHandler) error {
	t.routes.Handle(method, colonParamPath(path), func(c *gin.Context) {
		values := make(map[string]string, len(c.Params))
		for _, p := range c.Params {
			values[p.Key] = p.Value
		}
		h(c.Writer, c.Request, values)
	})
	return nil
}
