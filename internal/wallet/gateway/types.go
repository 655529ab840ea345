package gateway

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/lightningnetwork/lnd/clock"
	"github.com/sony/gobreaker"
)

// Category names an endpoint list. Account info and history use separate lists.
type Category string

const (
	CategoryAccount Category = "account"
	CategoryHistory Category = "history"
)

const (
	DefaultMaxAttempts    = 3
	DefaultRetryDelay     = 2 * time.Second
	DefaultRequestTimeout = 15 * time.Second
)

// Client is the subset of the Solana JSON-RPC API the explorer needs.
// *rpc.Client satisfies it.
type Client interface {
	GetBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetBalanceResult, error)
	GetAccountInfoWithOpts(ctx context.Context, account solana.PublicKey, opts *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error)
	GetSignaturesForAddressWithOpts(ctx context.Context, account solana.PublicKey, opts *rpc.GetSignaturesForAddressOpts) ([]*rpc.TransactionSignature, error)
	GetTransaction(ctx context.Context, signature solana.Signature, opts *rpc.GetTransactionOpts) (*rpc.GetTransactionResult, error)
	GetHealth(ctx context.Context) (string, error)
}

// Dialer creates the client for one endpoint URL.
type Dialer func(url string) Client

// DialRPC is the default Dialer.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func DialRPC(url string) Client {
	return rpc.New(url)
}

// Endpoint is one provider of a category. Endpoints are created by New and
// never change afterwards.
type Endpoint struct {
	URL    string
	Client Client

	breaker *gobreaker.CircuitBreaker
}

// Operation is one logical request issued against a single endpoint.
type Operation[T any] func(ctx context.Context, client Client) (T, error)

// Outcome labels a finished endpoint call or attempt.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeFailure  Outcome = "failure"
	OutcomeRejected Outcome = "rejected"
	OutcomeCanceled Outcome = "canceled"
)

// Recorder receives an observation for every endpoint call and every attempt.
type Recorder interface {
	ObserveEndpointCall(category Category, endpoint string, outcome Outcome, elapsed time.Duration)
	ObserveAttempt(category Category, outcome Outcome)
}

type noopRecorder struct{}

func (noopRecorder) ObserveEndpointCall(Category, string, Outcome, time.Duration) {}
func (noopRecorder) ObserveAttempt(Category, Outcome)                            {}

// EndpointHealth is the result of probing one endpoint with getHealth.
type EndpointHealth struct {
	URL     string
	Healthy bool
	Status  string
	Latency time.Duration
	Err     error
}

type Option func(g *Gateway)

// WithDialer replaces DialRPC, mostly for tests.
func WithDialer(dialer Dialer) Option {
	return func(g *Gateway) {
		g.dialer = dialer
	}
}

// WithClock sets the clock used for the delay between attempts.
func WithClock(c clock.Clock) Option {
	return func(g *Gateway) {
		g.clock = c
	}
}

// WithRequestTimeout bounds every single endpoint call. Zero disables the bound.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(g *Gateway) {
		g.timeout = timeout
	}
}

func WithMaxAttempts(attempts int) Option {
	return func(g *Gateway) {
		g.maxAttempts = attempts
	}
}

func WithRetryDelay(delay time.Duration) Option {
	return func(g *Gateway) {
		g.retryDelay = delay
	}
}

func WithRecorder(recorder Recorder) Option {
	return func(g *Gateway) {
		if recorder != nil {
			g.recorder = recorder
		}
	}
}

// WithCircuitBreaker puts a breaker in front of every endpoint.
func WithCircuitBreaker(enabled bool) Option {
	return func(g *Gateway) {
		g.breakers = enabled
	}
}
