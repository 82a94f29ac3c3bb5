package view

import "errors"

// Sentinel kinds for display-layer selectors.
var (
	ErrBadSelector = errors.New("bad selector")
)
