package httperrors

import (
	"net/http"
)

var (
	ErrBadRequestInvalidAddress   = NewHTTPError(http.StatusBadRequest, TypeInvalidAddress, "The given address is not a valid base58 account address.")
	ErrBadRequestInvalidSignature = NewHTTPError(http.StatusBadRequest, TypeInvalidSignature, "The given signature is not a valid base58 transaction signature.")
	ErrServiceUnavailableRPC      = NewHTTPError(http.StatusServiceUnavailable, TypeUpstreamUnavailable, "No RPC endpoint could be reached. Please retry.")
)

// NewRPCUnavailable reports an exhausted retry loop, carrying the attempt
// count and the last cause so clients can offer a retry.
func NewRPCUnavailable(attempts int, cause string, internal error) *HTTPError {
	e := *ErrServiceUnavailableRPC
	e.Attempts = attempts
	e.Cause = cause
	e.Internal = internal

	return &e
}
