// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain title", input: "Server rules", want: "server-rules"},
		{name: "accents removed", input: "Café Déjà Vu", want: "cafe-deja-vu"},
		{name: "punctuation collapsed", input: "Zasady serwera — przeczytaj!", want: "zasady-serwera-przeczytaj"},
		{name: "surrounding whitespace", input: "  hello world  ", want: "hello-world"},
		{name: "digits kept", input: "Patch 1.2.3 notes", want: "patch-1-2-3-notes"},
		{name: "only separators", input: "---!!!---", want: ""},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, From(tt.input))
		})
	}
}
