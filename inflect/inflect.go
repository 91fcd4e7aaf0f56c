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

package inflect

import "github.com/jinzhu/inflection"

// Inflector converts resource names between singular and plural forms.
// Words are expected in lowercase; route derivation lowercases resource
// names before inflecting them.
type Inflector interface {
	// Pluralize returns the plural form of word, or word unchanged when no
	// plural form exists (uncountables like "sheep" or "equipment").
	Pluralize(word string) string

	// Singularize returns the singular form of word, or word unchanged.
	Singularize(word string) string
}

// Default returns an Inflector backed by the inflection library's English
// ruleset.
func Default() Inflector {
	return defaultInflector{}
}

type defaultInflector struct{}

func (defaultInflector) Pluralize(word string) string {
	return inflection.Plural(word)
}

func (defaultInflector) Singularize(word string) string {
	return inflection.Singular(word)
}

// Static returns an Inflector that leaves every word unchanged. Resource
// names then appear in routes exactly as written, and every collection
// route registers under both its plain and collection-prefixed names.
func Static() Inflector {
	return staticInflector{}
}

type staticInflector struct{}

func (staticInflector) Pluralize(word string) string   { return word }
func (staticInflector) Singularize(word string) string { return word }

// Map returns an Inflector that consults explicit singular→plural pairs
// first and falls back to next for anything not listed. A nil next falls
// back to Default.
func Map(plurals map[string]string, next Inflector) Inflector {
	if next == nil {
		next = Default()
	}

	singulars := make(map[string]string, len(plurals))
	for singular, plural := range plurals {
		singulars[plural] = singular
	}

	return &mapInflector{
		plurals:   plurals,
		singulars: singulars,
		next:      next,
	}
}

type mapInflector struct {
	plurals   map[string]string
	singulars map[string]string
	next      Inflector
}

func (m *mapInflector) Pluralize(word string) string {
	if plural, ok := m.plurals[word]; ok {
		return plural
	}
	return m.next.Pluralize(word)
}

func (m *mapInflector) Singularize(word string) string {
	if singular, ok := m.singulars[word]; ok {
		return singular
	}
	return m.next.Singularize(word)
}
