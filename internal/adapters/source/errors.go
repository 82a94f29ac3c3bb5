package source

import "errors"

// Sentinel kinds for backend fetch failures.
var (
	ErrTransport  = errors.New("backend transport failure")
	ErrStatus     = errors.New("backend returned non-success status")
	ErrBadPayload = errors.New("backend payload not decodable")
)
