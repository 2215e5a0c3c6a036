package ccl

import "errors"

var (
	// ErrUnknownTicker is returned when a local ticker is absent from the ratio table
	ErrUnknownTicker = errors.New("unknown ticker")

	// ErrEmptyResult is returned when no instrument survives filtering or computing
	ErrEmptyResult = errors.New("empty result")

	errInvalidQuantile = errors.New("invalid volume quantile (must be within [0, 1])")
)
