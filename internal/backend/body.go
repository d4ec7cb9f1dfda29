// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
)

// # Multipart Files

// File is a named binary part for multipart uploads (e.g. avatar images).
type File struct {
	// Name is the filename sent in the Content-Disposition header.
	Name string
	// Reader supplies the file contents.
	Reader io.Reader
}

// # Body Encoding

/*
encodeBody serializes the request body according to its shape.

Description: Multipart form when FormData is present; raw strings are sent as
text/plain; anything else is JSON-encoded. Returns a nil reader for body-less
requests.

Returns:
  - io.Reader: The encoded body, or nil
  - string: The Content-Type, or "" when no body is sent
  - error: Encoding failures
*/
func encodeBody(request Request) (io.Reader, string, error) {
	if request.FormData != nil {
		return encodeMultipart(request.FormData)
	}

	if request.Body == nil {
		return nil, "", nil
	}

	// Raw strings pass through as plain text.
	if text, ok := request.Body.(string); ok {
		return bytes.NewBufferString(text), "text/plain", nil
	}

	encoded, err := json.Marshal(request.Body)
	if err != nil {
		return nil, "", fmt.Errorf("json_encode_failed: %w", err)
	}

	return bytes.NewBuffer(encoded), "application/json", nil
}

// encodeMultipart builds a multipart/form-data body.
//
// String values are appended as plain fields, [File] values as file parts,
// and every other value is JSON-stringified into a field.
func encodeMultipart(formData map[string]any) (io.Reader, string, error) {
	buffer := &bytes.Buffer{}
	writer := multipart.NewWriter(buffer)

	for field, value := range formData {
		if value == nil {
			continue
		}

		switch typed := value.(type) {
		case string:
			if err := writer.WriteField(field, typed); err != nil {
				return nil, "", fmt.Errorf("multipart_field_failed: %w", err)
			}

		case File:
			part, err := writer.CreateFormFile(field, typed.Name)
			if err != nil {
				return nil, "", fmt.Errorf("multipart_file_failed: %w", err)
			}
			if _, err := io.Copy(part, typed.Reader); err != nil {
				return nil, "", fmt.Errorf("multipart_file_copy_failed: %w", err)
			}

		default:
			encoded, err := json.Marshal(typed)
			if err != nil {
				return nil, "", fmt.Errorf("multipart_json_field_failed: %w", err)
			}
			if err := writer.WriteField(field, string(encoded)); err != nil {
				return nil, "", fmt.Errorf("multipart_field_failed: %w", err)
			}
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("multipart_close_failed: %w", err)
	}

	return buffer, writer.FormDataContentType(), nil
}
