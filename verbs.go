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

import "net/http"

// CollectionPrefix marks a leading method-name token as collection-scoped
// ("CgetUsers") and prefixes the extra route name registered for resources
// whose plural equals their singular.
const CollectionPrefix = "c"

// verbKind classifies the leading verb token of an action method name.
type verbKind int

const (
	// verbKnown maps directly to an HTTP method ("Get", "Post", "Lock").
	verbKnown verbKind = iota

	// verbConventional is one of the new/edit/remove idioms: served over
	// GET with the verb appended as a trailing path segment.
	verbConventional

	// verbCustom is any other leading token: appended as a trailing path
	// segment and served over GET or PATCH depending on the method's
	// argument count.
	verbCustom
)

// httpMethodByVerb maps known verb tokens to their HTTP methods, including
// the WebDAV set.
var httpMethodByVerb = map[string]string{
	"get":       http.MethodGet,
	"post":      http.MethodPost,
	"put":       http.MethodPut,
	"patch":     http.MethodPatch,
	"delete":    http.MethodDelete,
	"head":      http.MethodHead,
	"options":   http.MethodOptions,
	"link":      "LINK",
	"unlink":    "UNLINK",
	"mkcol":     "MKCOL",
	"propfind":  "PROPFIND",
	"proppatch": "PROPPATCH",
	"move":      "MOVE",
	"copy":      "COPY",
	"lock":      "LOCK",
	"unlock":    "UNLOCK",
}

// conventionalVerbs are action idioms served over GET with the verb as a
// trailing path segment: NewUsers → GET /users/new.
var conventionalVerbs = map[string]bool{
	"new":    true,
	"edit":   true,
	"remove": true,
}

// collectionVerbs are verbs that always address the collection rather than
// a single resource, even without the collection prefix.
var collectionVerbs = map[string]bool{
	"options": true,
}

// classifyVerb returns the verb's kind and, for known verbs, its HTTP method.
func classifyVerb(verb string) (verbKind, string) {
	if m, ok := httpMethodByVerb[verb]; ok {
		return verbKnown, m
	}
	if conventionalVerbs[verb] {
		return verbConventional, http.MethodGet
	}
	return verbCustom, ""
}
