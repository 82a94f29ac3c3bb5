package app

import "errors"

// Sentinel kinds for engine operations.
var (
	ErrListingNotFound = errors.New("listing not found")
)
