// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the payload the backend embeds in an access token.
type TokenClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the JWT payload small.
	UserID   int    `json:"uid"`
	Username string `json:"unm"`
}

// TokenVerifier checks access-token signatures using the shared HMAC secret.
//
// # Why verify locally?
//
// Signature verification distinguishes a merely expired token (refreshable)
// from a forged or corrupted one (fatal) without an upstream round trip.
type TokenVerifier struct {
	secret []byte
}

// NewTokenVerifier creates a verifier for the backend's HS256 signing secret.
func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// Verify checks the signature of an access token and returns its claims.
//
// Expiry is deliberately NOT validated here — the caller compares the 'exp'
// claim against wall-clock time itself, because an expired-but-authentic
// token transitions to refresh rather than teardown.
func (verifier *TokenVerifier) Verify(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("session: unexpected signing method: %v", token.Header["alg"])
		}
		return verifier.secret, nil
	}, jwt.WithoutClaimsValidation())

	if err != nil {
		return nil, fmt.Errorf("session: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("session: invalid token claims")
	}

	return claims, nil
}

// ExpiresAt extracts the expiry of the claims, or zero time when absent.
func (claims *TokenClaims) ExpiresAtTime() time.Time {
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
