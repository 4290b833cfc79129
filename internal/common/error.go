package common

import "errors"

// Callers should use errors.Is to match these values.
var (
	// Storage could not be opened or queried.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// Validation errors.
	ErrorIncorrectInput = errors.New("incorrect input")
)
