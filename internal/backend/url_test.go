// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestBuildURL_PathSubstitution verifies {placeholder} handling.
*/
func TestBuildURL_PathSubstitution(t *testing.T) {
	// 1. A matched placeholder is substituted
	assert.Equal(t, "/users/5", BuildURL("/users/{id}", map[string]any{"id": 5}, nil))

	// 2. Unmatched placeholders are left untouched
	assert.Equal(t, "/users/5/threads/{threadID}",
		BuildURL("/users/{id}/threads/{threadID}", map[string]any{"id": 5}, nil))

	// 3. Values are path-escaped
	assert.Equal(t, "/players/a%2Fb", BuildURL("/players/{steam}", map[string]any{"steam": "a/b"}, nil))

	// 4. No params means the template passes through verbatim
	assert.Equal(t, "/forum/{slug}", BuildURL("/forum/{slug}", nil, nil))
}

/*
TestEncodeQuery_Flattening verifies the recursive query serialization rules.
*/
func TestEncodeQuery_Flattening(t *testing.T) {
	// 1. Nested maps flatten as parent[child]=value
	encoded := EncodeQuery(map[string]any{
		"filter": map[string]any{"role": "admin"},
	})
	assert.Equal(t, "filter%5Brole%5D=admin", encoded)

	// 2. Arrays repeat the key once per element
	encoded = EncodeQuery(map[string]any{"tag": []string{"a", "b"}})
	assert.Equal(t, "tag=a&tag=b", encoded)

	// 3. Nil values are omitted entirely
	encoded = EncodeQuery(map[string]any{"page": 2, "search": nil})
	assert.Equal(t, "page=2", encoded)

	// 4. Deep nesting composes bracket paths
	encoded = EncodeQuery(map[string]any{
		"sort": map[string]any{"created": map[string]any{"dir": "desc"}},
	})
	assert.Equal(t, "sort%5Bcreated%5D%5Bdir%5D=desc", encoded)

	// 5. Empty query produces no string at all
	assert.Equal(t, "", EncodeQuery(nil))
	assert.Equal(t, "/threads", BuildURL("/threads", nil, map[string]any{"q": nil}))
}

/*
TestEncodeQuery_Determinism verifies the stable key ordering.
*/
func TestEncodeQuery_Determinism(t *testing.T) {
	query := map[string]any{"b": 2, "a": 1, "c": 3}

	first := EncodeQuery(query)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, EncodeQuery(query))
	}

	assert.Equal(t, "a=1&b=2&c=3", first)
}
