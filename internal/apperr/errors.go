package apperr

import "errors"

// ErrInvalidInput is returned when an entity value cannot be turned into a
// request, e.g. a custom value that does not parse as a phone number.
// Use errors.Is(err, apperr.ErrInvalidInput) to detect it.
var ErrInvalidInput = errors.New("invalid input")

// ErrRequestFailed is returned when a request fails at the transport level or
// the remote API answers with a status outside 200, 202 and 404.
// Use errors.Is(err, apperr.ErrRequestFailed) to detect request failures uniformly.
var ErrRequestFailed = errors.New("request failed")

// ErrMissingAPIKey is returned when a lookup is attempted without an API key.
var ErrMissingAPIKey = errors.New("missing API key")
