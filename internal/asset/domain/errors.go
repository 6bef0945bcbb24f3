package domain

import (
	"github.com/allisson/drive-proxy/internal/errors"
)

// Asset relay errors.
var (
	// ErrOriginFetch indicates the origin answered with a non-success status.
	ErrOriginFetch = errors.Wrap(errors.ErrUpstream, "origin fetch failed")

	// ErrNoBody indicates the origin answered successfully without content.
	ErrNoBody = errors.Wrap(errors.ErrUpstream, "origin returned no body")

	// ErrOriginUnavailable indicates the origin could not be reached.
	ErrOriginUnavailable = errors.Wrap(errors.ErrUnavailable, "origin unavailable")
)
