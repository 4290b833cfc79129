// Package common contains shared constants and sentinel errors used across
// Traffic Hub client components.
package common

const (
	// AuthorizationHeaderName carries the bearer credential on outbound requests.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the credential token in the Authorization header.
	BearerPrefix = "Bearer "

	// RequestIDHeaderName tags every outbound request for log correlation.
	RequestIDHeaderName = "X-Request-ID"

	// RoleAdmin is the only role allowed to see destructive vehicle actions.
	RoleAdmin = "admin"
)

// Keys of the two durable session entries.
const (
	SessionTokenKey = "token"
	SessionRoleKey  = "role"
)
