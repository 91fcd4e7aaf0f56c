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
	"unicode"
)

// actionName is the parsed form of an action method name.
type actionName struct {
	verb       string   // lowercased leading verb token, collection prefix stripped
	kind       verbKind
	httpMethod string   // resolved HTTP method for known and conventional verbs
	resources  []string // lowercased resource tokens, in order
	paramName  string   // placeholder name from a trailing By clause, "" when absent
	collection bool
}

// parseActionName interprets a method name as verb + resources.
//
// The name is camel-split into tokens. The leading token is the verb; a
// CollectionPrefix on a known verb marks the action collection-scoped
// ("CgetUsers" → get, collection). A trailing "Action" token is dropped
// ("GetUserAction" ≡ "GetUser"), and a trailing "By<Name>" clause names the
// trailing placeholder instead of contributing resources
// ("GetUserByName" → resources [user], placeholder "name").
//
// Every name parses: verbs outside the known and conventional tables are
// custom verbs. Reports false only for empty names.
func parseActionName(name string) (actionName, bool) {
	tokens := splitCamel(name)
	if len(tokens) == 0 {
		return actionName{}, false
	}

	// "Action" only counts as a suffix marker when it is a whole token, so
	// GetTransaction keeps its resource.
	if len(tokens) > 1 && tokens[len(tokens)-1] == "Action" {
		tokens = tokens[:len(tokens)-1]
	}

	an := actionName{verb: strings.ToLower(tokens[0])}

	if stripped, ok := strings.CutPrefix(an.verb, CollectionPrefix); ok {
		if _, known := httpMethodByVerb[stripped]; known {
			an.verb = stripped
			an.collection = true
		}
	}
	if collectionVerbs[an.verb] {
		an.collection = true
	}

	an.kind, an.httpMethod = classifyVerb(an.verb)

	rest := tokens[1:]
	if i := lastByClause(rest); i >= 0 {
		an.paramName = lowerCamelJoin(rest[i+1:])
		rest = rest[:i]
	}

	an.resources = make([]string, 0, len(rest))
	for _, token := range rest {
		an.resources = append(an.resources, strings.ToLower(token))
	}

	return an, true
}

// splitCamel splits a method name into camel-case tokens. Every uppercase
// rune starts a new token, so acronyms split letter-wise ("GetACL" → Get, A,
// C, L), matching how resource words are expected to be written.
func splitCamel(name string) []string {
	if name == "" {
		return nil
	}

	var tokens []string
	start := 0
	for i, r := range name {
		if i > 0 && unicode.IsUpper(r) {
			tokens = append(tokens, name[start:i])
			start = i
		}
	}

	return append(tokens, name[start:])
}

// lastByClause returns the index of the last "By" token that has at least
// one token after it, or -1.
func lastByClause(tokens []string) int {
	for i := len(tokens) - 2; i >= 0; i-- {
		if tokens[i] == "By" {
			return i
		}
	}
	return -1
}

// lowerCamelJoin joins tokens into a lowerCamel identifier: ["First",
// "Name"] → "firstName".
func lowerCamelJoin(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}

	var b strings.Builder
	for i, token := range tokens {
		if i == 0 {
			b.WriteString(strings.ToLower(token[:1]) + token[1:])
			continue
		}
		b.WriteString(token)
	}

	return b.String()
}
