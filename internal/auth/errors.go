// Package auth turns externally issued bearer tokens into local principals.
// Token verification runs against the identity provider's published key set;
// user records are provisioned lazily on first sight of a subject.
package auth

import "errors"

var (
	// ErrInvalidToken covers every token-verification failure: bad
	// signature, expired or malformed token, and an unreachable provider.
	// Collapsing them keeps token-validity information from leaking.
	ErrInvalidToken = errors.New("invalid token")

	// ErrProvisioningFailed means the token was valid but a local user
	// record could not be materialized. The request cannot proceed.
	ErrProvisioningFailed = errors.New("could not provision user")
)
