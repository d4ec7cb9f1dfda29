// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestCookieCodec_RoundTrip verifies seal/open symmetry and tamper rejection.
*/
func TestCookieCodec_RoundTrip(t *testing.T) {
	var key [32]byte
	copy(key[:], "0123456789abcdef0123456789abcdef")
	codec := NewCookieCodec(key)

	// 1. Round trip
	sealed, err := codec.Seal("sess-42")
	require.NoError(t, err)
	opened, err := codec.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "sess-42", opened)

	// 2. Two seals of the same ID differ (random nonce)
	sealedAgain, err := codec.Seal("sess-42")
	require.NoError(t, err)
	assert.NotEqual(t, sealed, sealedAgain)

	// 3. Tampering is rejected
	_, err = codec.Open(sealed[:len(sealed)-2] + "xx")
	assert.Error(t, err)

	// 4. Garbage is rejected
	_, err = codec.Open("not-a-cookie")
	assert.Error(t, err)

	// 5. A different key cannot open it
	var otherKey [32]byte
	copy(otherKey[:], "ffffffffffffffffffffffffffffffff")
	_, err = NewCookieCodec(otherKey).Open(sealed)
	assert.Error(t, err)
}
