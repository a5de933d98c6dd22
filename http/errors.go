package http

import "errors"

// Authentication failures raised before the credential store is consulted.
// Each maps to 401 with its text as the message.
var (
	ErrRequiresAuthHeader = errors.New("requires auth header")
	ErrRequiresToken      = errors.New("requires token")
	ErrRequiresBasicAuth  = errors.New("requires basic auth")
	ErrInvalidBasicAuth   = errors.New("invalid basic auth")
)

// ErrInvalidBody is returned when a request body cannot be decoded.
var ErrInvalidBody = errors.New("invalid request body")
