// Package client talks to the Traffic Hub backend.
//
// Client is the contract the views depend on; HTTPClient implements it over
// the backend's JSON API. Every call attaches the bearer credential from a
// TokenSource when one is present and tags the request with an X-Request-ID.
//
// # Errors
//
// Failures surface as *APIError values that wrap one of the sentinels
// ErrUnauthorized, ErrNotFound, ErrValidation or ErrUnavailable, so callers
// branch with errors.Is and show APIError.Message to the user.
//
// The package also bootstraps the local SQLite database (InitDatabase,
// RunMigrations) that backs the session store.
package client
