package domain

import (
	"crypto"
	"time"
)

// SigningKey is a public verification key published by an app's JWKS endpoint.
type SigningKey struct {
	AppID     string
	KeyID     string
	Algorithm string
	PublicKey crypto.PublicKey
}

// VerifiedClaims holds the identity asserted by a token whose signature, audience
// and allowlist membership have all been checked.
type VerifiedClaims struct {
	AppID     string
	BrandID   string
	UserID    string
	IssuedAt  *time.Time
	ExpiresAt *time.Time
}
