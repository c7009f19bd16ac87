package utils

import (
	"time"

	"github.com/google/uuid"
)

// AuthCacheTTL is how long a confirmed token subject is trusted without a
// database lookup.
const AuthCacheTTL = 10 * time.Minute

// Gin context keys set by the auth middleware.
const (
	CtxAccountID = "accountID"
	CtxRole      = "role"
	CtxEmail     = "email"
	CtxToken     = "token"
)

// ShortID returns the first block of a random UUID, for human-facing suffixes.
func ShortID() string {
	return uuid.NewString()[:8]
}

// NewID returns a random UUID string used as an entity id.
func NewID() string {
	return uuid.NewString()
}
