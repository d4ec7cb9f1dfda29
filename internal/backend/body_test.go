// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

package backend

import (
	"io"
	"mime"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestEncodeBody_JSON verifies that plain objects are JSON-encoded.
*/
func TestEncodeBody_JSON(t *testing.T) {
	reader, contentType, err := encodeBody(Request{Body: map[string]any{"username": "jsmith"}})
	require.NoError(t, err)

	assert.Equal(t, "application/json", contentType)

	raw, _ := io.ReadAll(reader)
	assert.JSONEq(t, `{"username":"jsmith"}`, string(raw))
}

/*
TestEncodeBody_PlainText verifies that raw strings are sent as text/plain.
*/
func TestEncodeBody_PlainText(t *testing.T) {
	reader, contentType, err := encodeBody(Request{Body: "hello"})
	require.NoError(t, err)

	assert.Equal(t, "text/plain", contentType)

	raw, _ := io.ReadAll(reader)
	assert.Equal(t, "hello", string(raw))
}

/*
TestEncodeBody_Empty verifies that body-less requests carry no content type.
*/
func TestEncodeBody_Empty(t *testing.T) {
	reader, contentType, err := encodeBody(Request{})
	require.NoError(t, err)

	assert.Nil(t, reader)
	assert.Equal(t, "", contentType)
}

/*
TestEncodeBody_Multipart verifies the form-data encoding rules: strings pass
through, files keep their filename, everything else is JSON-stringified.
*/
func TestEncodeBody_Multipart(t *testing.T) {
	reader, contentType, err := encodeBody(Request{
		FormData: map[string]any{
			"title":  "Hello",
			"avatar": File{Name: "avatar.png", Reader: strings.NewReader("png-bytes")},
			"tags":   []string{"a", "b"},
			"empty":  nil,
		},
	})
	require.NoError(t, err)

	mediaType, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	assert.Equal(t, "multipart/form-data", mediaType)

	// Walk the parts and collect them by field name
	parts := map[string]string{}
	filenames := map[string]string{}
	mr := multipart.NewReader(reader, params["boundary"])
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)

		content, _ := io.ReadAll(part)
		parts[part.FormName()] = string(content)
		filenames[part.FormName()] = part.FileName()
	}

	// 1. String values are appended as plain fields
	assert.Equal(t, "Hello", parts["title"])

	// 2. Files keep their declared name and raw contents
	assert.Equal(t, "avatar.png", filenames["avatar"])
	assert.Equal(t, "png-bytes", parts["avatar"])

	// 3. Non-string, non-file values are JSON-stringified
	assert.JSONEq(t, `["a","b"]`, parts["tags"])

	// 4. Nil values are skipped
	_, found := parts["empty"]
	assert.False(t, found)
}
