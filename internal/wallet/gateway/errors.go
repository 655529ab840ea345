package gateway

import (
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"github.com/pkg/errors"
	"github.com/sony/gobreaker"
)

var ErrNoEndpoints = errors.New("at least one RPC URL is required")

// EndpointError is a single failed call against one endpoint. It is absorbed
// by the fallback loop and only ever seen inside AllEndpointsFailedError.
type EndpointError struct {
	Endpoint string
	Err      error
}

func (e *EndpointError) Error() string {
	return fmt.Sprintf("%s: %s", e.Endpoint, describe(e.Err))
}

func (e *EndpointError) Unwrap() error {
	return e.Err
}

// AllEndpointsFailedError is returned by Call when no endpoint answered.
type AllEndpointsFailedError struct {
	Category Category
	Failures []*EndpointError
}

func (e *AllEndpointsFailedError) Error() string {
	reasons := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		reasons = append(reasons, f.Error())
	}

	return fmt.Sprintf("all %d %s endpoints failed: %s", len(e.Failures), e.Category, strings.Join(reasons, "; "))
}

// Last returns the failure of the last endpoint tried.
func (e *AllEndpointsFailedError) Last() error {
	if len(e.Failures) == 0 {
		return nil
	}

	return e.Failures[len(e.Failures)-1]
}

// RetriesExhaustedError is the terminal error of Retry.
type RetriesExhaustedError struct {
	Category Category
	Attempts int
	Last     error
}

func (e *RetriesExhaustedError) Error() string {
	return fmt.Sprintf("%s request failed after %d attempts: %v", e.Category, e.Attempts, e.Last)
}

func (e *RetriesExhaustedError) Unwrap() error {
	return e.Last
}

// LastCause renders the last underlying failure without the attempt prefix.
func (e *RetriesExhaustedError) LastCause() string {
	var all *AllEndpointsFailedError
	if errors.As(e.Last, &all) && all.Last() != nil {
		return all.Last().Error()
	}
	if e.Last == nil {
		return ""
	}

	return e.Last.Error()
}

// describe keeps provider errors on one line. jsonrpc.RPCError prints a
// multi-line dump by default.
func describe(err error) string {
	var rpcErr *jsonrpc.RPCError
	switch {
	case err == nil:
		return "<nil>"
	case errors.As(err, &rpcErr):
		return fmt.Sprintf("rpc error %d: %s", rpcErr.Code, rpcErr.Message)
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "circuit breaker open"
	default:
		return err.Error()
	}
}
