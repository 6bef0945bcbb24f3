// Package domain defines the bearer-token authentication domain models.
// Tokens are signed by the app platform with rotating asymmetric keys published per app id
// as a JWKS document, and carry the app id as audience.
package domain

const (
	// ClaimBrandID is the token claim holding the brand identifier.
	ClaimBrandID = "brandId"

	// ClaimUserID is the token claim holding the user identifier.
	ClaimUserID = "userId"

	// AppIDPlaceholder is replaced by the path-escaped app id in the JWKS URL template.
	AppIDPlaceholder = "{appId}"
)
