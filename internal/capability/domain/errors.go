package domain

import (
	"github.com/allisson/drive-proxy/internal/errors"
)

// Capability errors. Redemption failures share ErrInvalidCapability so clients cannot
// tell a forged payload from an expired one.
var (
	// ErrEncryption indicates the KMS could not seal a capability.
	ErrEncryption = errors.Wrap(errors.ErrUnavailable, "capability encryption failed")

	// ErrDecryption indicates the payload is not valid base64url or does not open under the key.
	ErrDecryption = errors.Wrap(errors.ErrInvalidCapability, "capability decryption failed")

	// ErrPayloadMalformed indicates the decrypted payload is not a complete capability.
	ErrPayloadMalformed = errors.Wrap(errors.ErrInvalidCapability, "capability payload malformed")

	// ErrCapabilityExpired indicates the capability's expiry has passed.
	ErrCapabilityExpired = errors.Wrap(errors.ErrInvalidCapability, "capability expired")

	// ErrInvalidCapabilityInput indicates an empty token, empty file id or non-positive TTL.
	ErrInvalidCapabilityInput = errors.Wrap(errors.ErrInvalidInput, "invalid capability input")
)
