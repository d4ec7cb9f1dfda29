// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

package backend

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strings"
)

// # URL Building

/*
BuildURL renders a URL template into a path with an encoded query string.

Description: Substitutes {placeholder} segments from pathParams and appends the
flattened query. Placeholders without a matching parameter are left untouched.

Parameters:
  - template: string (e.g. "/users/{id}/threads")
  - pathParams: map[string]any (values are stringified and path-escaped)
  - query: map[string]any (flattened recursively; nil values omitted)

Returns:
  - string: The relative URL, query string included when non-empty
*/
func BuildURL(template string, pathParams map[string]any, query map[string]any) string {
	path := substitutePath(template, pathParams)

	encoded := EncodeQuery(query)
	if encoded == "" {
		return path
	}

	return path + "?" + encoded
}

// substitutePath replaces each {name} segment with its path-escaped value.
func substitutePath(template string, pathParams map[string]any) string {
	if len(pathParams) == 0 {
		return template
	}

	result := template
	for name, value := range pathParams {
		placeholder := "{" + name + "}"
		if !strings.Contains(result, placeholder) {
			continue
		}
		result = strings.ReplaceAll(result, placeholder, url.PathEscape(stringify(value)))
	}

	return result
}

// # Query Flattening

// EncodeQuery serializes a query map by recursively flattening nested maps as
// parent[child]=value and repeating array keys once per element. Nil values
// are omitted entirely. Keys are emitted in sorted order for determinism.
func EncodeQuery(query map[string]any) string {
	if len(query) == 0 {
		return ""
	}

	values := url.Values{}
	for _, key := range sortedKeys(query) {
		flattenInto(values, key, query[key])
	}

	return values.Encode()
}

// flattenInto appends one query entry, recursing through maps and slices.
func flattenInto(values url.Values, key string, value any) {
	if value == nil {
		return
	}

	switch typed := value.(type) {
	case map[string]any:
		for _, sub := range sortedKeys(typed) {
			flattenInto(values, key+"["+sub+"]", typed[sub])
		}
		return
	}

	// Slices and arrays repeat the key once per element.
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		for i := 0; i < rv.Len(); i++ {
			flattenInto(values, key, rv.Index(i).Interface())
		}
		return
	}

	values.Add(key, stringify(value))
}

// sortedKeys returns map keys in lexical order so encoded output is stable.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// stringify renders scalars without introducing Go-specific formatting.
func stringify(value any) string {
	switch typed := value.(type) {
	case string:
		return typed
	case fmt.Stringer:
		return typed.String()
	default:
		return fmt.Sprintf("%v", typed)
	}
}
