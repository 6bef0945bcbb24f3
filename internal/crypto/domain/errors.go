package domain

import (
	"github.com/allisson/drive-proxy/internal/errors"
)

// Envelope encryption errors.
var (
	// ErrKeeperUnavailable indicates the KMS keeper could not be opened or did not respond.
	ErrKeeperUnavailable = errors.Wrap(errors.ErrUnavailable, "kms keeper unavailable")

	// ErrRoundTripMismatch indicates a round trip through the keeper did not return the sealed bytes.
	ErrRoundTripMismatch = errors.Wrap(errors.ErrUnavailable, "kms round trip mismatch")
)
