// Package domain defines the capability carried by presigned asset URLs.
//
// A capability binds a delegated origin access token to one file for a short time.
// It only exists in plaintext in memory while a request is served; clients hold the
// KMS-sealed form in the payload query parameter.
package domain

import "time"

// Capability grants access to a single file until ExpiresAt.
type Capability struct {
	AccessToken string
	FileID      string
	ExpiresAt   time.Time
}

// Expired reports whether the capability is no longer valid at now.
// A capability is still valid at the exact expiry instant.
func (c *Capability) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
