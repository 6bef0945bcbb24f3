package domain

import (
	"github.com/allisson/drive-proxy/internal/errors"
)

// Token verification errors. Every kind except ErrKeyFetch is an authentication failure.
var (
	// ErrMalformedToken indicates the token cannot be decoded or lacks a key id or a single audience.
	ErrMalformedToken = errors.Wrap(errors.ErrUnauthenticated, "malformed token")

	// ErrUnknownIssuer indicates no signing key is published for the token's app id and key id.
	ErrUnknownIssuer = errors.Wrap(errors.ErrUnauthenticated, "unknown issuer")

	// ErrSignatureInvalid indicates the signature does not verify against the resolved key.
	ErrSignatureInvalid = errors.Wrap(errors.ErrUnauthenticated, "signature invalid")

	// ErrMissingClaim indicates a required claim (aud, brandId, userId) is absent or empty.
	ErrMissingClaim = errors.Wrap(errors.ErrUnauthenticated, "missing claim")

	// ErrIssuerNotAllowed indicates the token's app id is not in the allowlist.
	ErrIssuerNotAllowed = errors.Wrap(errors.ErrUnauthenticated, "issuer not allowed")

	// ErrTokenExpired indicates the token's time claims (exp, nbf, iat) are not satisfied.
	ErrTokenExpired = errors.Wrap(errors.ErrUnauthenticated, "token expired")

	// ErrUnknownKey indicates the key set for an app id has no key with the requested id.
	ErrUnknownKey = errors.Wrap(errors.ErrUnauthenticated, "unknown key")

	// ErrKeyFetch indicates the key set could not be retrieved or decoded.
	ErrKeyFetch = errors.Wrap(errors.ErrUnavailable, "key fetch failed")
)
