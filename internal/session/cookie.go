// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

package session

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"

	"golang.org/x/crypto/nacl/secretbox"

	"github.com/frageo/frageo/internal/platform/constants"
)

// nonceSize is the secretbox nonce length prepended to every sealed value.
const nonceSize = 24

// CookieCodec seals and opens the browser session cookie.
//
// The cookie carries only the session ID, authenticated and encrypted with
// NaCl secretbox. A tampered or truncated cookie fails to open and the
// request proceeds as anonymous.
type CookieCodec struct {
	key [32]byte
}

// NewCookieCodec creates a codec for the 32-byte session secret.
func NewCookieCodec(key [32]byte) *CookieCodec {
	return &CookieCodec{key: key}
}

// Seal encrypts the session ID into a cookie-safe string.
func (codec *CookieCodec) Seal(sessionID string) (string, error) {
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", fmt.Errorf("session_cookie_nonce_failed: %w", err)
	}

	sealed := secretbox.Seal(nonce[:], []byte(sessionID), &nonce, &codec.key)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Open decrypts a sealed cookie value back into the session ID.
func (codec *CookieCodec) Open(cookieValue string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cookieValue)
	if err != nil || len(raw) < nonceSize+secretbox.Overhead {
		return "", fmt.Errorf("session_cookie_malformed")
	}

	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])

	sessionID, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &codec.key)
	if !ok {
		return "", fmt.Errorf("session_cookie_open_failed")
	}

	return string(sessionID), nil
}

// # Cookie Construction

// NewCookie builds the session cookie for a sealed value.
func NewCookie(sealedValue string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    sealedValue,
		Path:     constants.SessionCookiePath,
		MaxAge:   int(constants.SessionTTL.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredCookie builds the deletion cookie issued on sign-out.
func ExpiredCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     constants.SessionCookiePath,
		MaxAge:   -1,
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
