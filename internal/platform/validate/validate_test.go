// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frageo/frageo/internal/platform/apperr"
	"github.com/frageo/frageo/internal/platform/validate"
)

/*
TestValidator_Chaining verifies that failures accumulate across the chain and
surface as one VALIDATION_ERROR with per-field details.
*/
func TestValidator_Chaining(t *testing.T) {
	v := &validate.Validator{}
	v.Required("username", "").
		MinLen("password", "short", 8).
		Email("email", "not-an-email")

	err := v.Err()
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Len(t, appErr.Details, 3)

	fields := map[string]bool{}
	for _, detail := range appErr.Details {
		fields[detail.Field] = true
	}
	assert.True(t, fields["username"])
	assert.True(t, fields["password"])
	assert.True(t, fields["email"])
}

/*
TestValidator_Passing verifies that a fully valid chain returns nil.
*/
func TestValidator_Passing(t *testing.T) {
	v := &validate.Validator{}
	v.Required("username", "jsmith").
		MinLen("password", "longenough", 8).
		Email("email", "jsmith@example.com").
		Positive("category", 3).
		SteamID("steamid", "76561198012345678").
		HexColor("color", "#1d4ed8").
		OneOf("type", "public", "public", "private")

	assert.NoError(t, v.Err())
	assert.False(t, v.HasErrors())
}

/*
TestValidator_DomainRules exercises the portal-specific rules.
*/
func TestValidator_DomainRules(t *testing.T) {
	tests := []struct {
		name  string
		build func(v *validate.Validator)
		valid bool
	}{
		{"steamid too short", func(v *validate.Validator) { v.SteamID("s", "7656119") }, false},
		{"steamid wrong prefix", func(v *validate.Validator) { v.SteamID("s", "12345678901234567") }, false},
		{"steamid ok", func(v *validate.Validator) { v.SteamID("s", "76561198000000001") }, true},
		{"color missing hash", func(v *validate.Validator) { v.HexColor("c", "1d4ed8") }, false},
		{"color ok", func(v *validate.Validator) { v.HexColor("c", "#AABB00") }, true},
		{"positive zero", func(v *validate.Validator) { v.Positive("n", 0) }, false},
		{"custom failed", func(v *validate.Validator) { v.Custom("port", true, "bad port") }, false},
		{"custom passed", func(v *validate.Validator) { v.Custom("port", false, "bad port") }, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			v := &validate.Validator{}
			test.build(v)
			if test.valid {
				assert.NoError(t, v.Err())
			} else {
				assert.Error(t, v.Err())
			}
		})
	}
}
