package gateway

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/lightningnetwork/lnd/clock"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"github/chapool/sol-explorer/internal/util"
)

// Gateway 封装一组有序的 RPC 节点，按顺序故障转移.
// The endpoint list and the settings are fixed at construction, so a Gateway
// is safe for concurrent use without locking.
type Gateway struct {
	category    Category
	endpoints   []*Endpoint
	dialer      Dialer
	clock       clock.Clock
	recorder    Recorder
	timeout     time.Duration
	maxAttempts int
	retryDelay  time.Duration
	breakers    bool
}

// New creates the gateway for category over urls, tried in the given order.
func New(category Category, urls []string, opts ...Option) (*Gateway, error) {
	if len(urls) == 0 {
		return nil, errors.Wrapf(ErrNoEndpoints, "category %s", category)
	}

	g := &Gateway{
		category:    category,
		dialer:      DialRPC,
		clock:       clock.NewDefaultClock(),
		recorder:    noopRecorder{},
		timeout:     DefaultRequestTimeout,
		maxAttempts: DefaultMaxAttempts,
		retryDelay:  DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.maxAttempts < 1 {
		return nil, errors.Errorf("max attempts must be at least 1, got %d", g.maxAttempts)
	}

	g.endpoints = make([]*Endpoint, 0, len(urls))
	for _, url := range urls {
		ep := &Endpoint{
			URL:    url,
			Client: g.dialer(url),
		}
		if g.breakers {
			ep.breaker = newCircuitBreaker(category, url)
		}
		g.endpoints = append(g.endpoints, ep)
	}

	return g, nil
}

func (g *Gateway) Category() Category {
	return g.category
}

// Endpoints returns the endpoints in fallback order.
func (g *Gateway) Endpoints() []*Endpoint {
	out := make([]*Endpoint, len(g.endpoints))
	copy(out, g.endpoints)

	return out
}

func (g *Gateway) MaxAttempts() int {
	return g.maxAttempts
}

func (g *Gateway) RetryDelay() time.Duration {
	return g.retryDelay
}

// Close 关闭所有客户端连接
func (g *Gateway) Close() {
	for _, ep := range g.endpoints {
		if closer, ok := ep.Client.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				log.Debug().Str("endpoint", ep.URL).Err(err).Msg("Failed to close RPC client")
			}
		}
	}
}

// Call runs op against the endpoints in order and returns the first success
// together with the endpoint that produced it. Later endpoints are not
// consulted once one has answered. Cancellation of ctx aborts the loop and is
// returned as is, never as an endpoint failure.
func Call[T any](ctx context.Context, g *Gateway, op Operation[T]) (T, *Endpoint, error) {
	log := g.logger(ctx)

	var zero T
	failures := make([]*EndpointError, 0, len(g.endpoints))

	for _, ep := range g.endpoints {
		if err := ctx.Err(); err != nil {
			return zero, nil, err
		}

		result, err := Invoke(ctx, g, ep, op)
		if err == nil {
			return result, ep, nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return zero, nil, ctxErr
		}

		failure := &EndpointError{Endpoint: ep.URL, Err: err}
		failures = append(failures, failure)

		log.Warn().
			Str("endpoint", ep.URL).
			Str("reason", describe(err)).
			Msg("RPC endpoint failed, trying next")
	}

	return zero, nil, &AllEndpointsFailedError{Category: g.category, Failures: failures}
}

// Invoke runs op against a single endpoint with the request timeout and the
// endpoint's circuit breaker applied.
func Invoke[T any](ctx context.Context, g *Gateway, ep *Endpoint, op Operation[T]) (T, error) {
	var zero T

	callCtx := ctx
	if g.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := g.clock.Now()

	var (
		result T
		err    error
	)
	if ep.breaker == nil {
		result, err = op(callCtx, ep.Client)
	} else {
		var canceled error
		_, err = ep.breaker.Execute(func() (interface{}, error) {
			var opErr error
			result, opErr = op(callCtx, ep.Client)
			if opErr != nil && ctx.Err() != nil {
				// the caller gave up, the endpoint did not fail
				canceled = opErr
				return nil, nil
			}

			return nil, opErr
		})
		if err == nil && canceled != nil {
			err = canceled
		}
	}

	elapsed := g.clock.Now().Sub(start)

	switch {
	case err == nil:
		g.recorder.ObserveEndpointCall(g.category, ep.URL, OutcomeSuccess, elapsed)
		return result, nil
	case ctx.Err() != nil:
		g.recorder.ObserveEndpointCall(g.category, ep.URL, OutcomeCanceled, elapsed)
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		g.recorder.ObserveEndpointCall(g.category, ep.URL, OutcomeRejected, elapsed)
	default:
		g.recorder.ObserveEndpointCall(g.category, ep.URL, OutcomeFailure, elapsed)
	}

	return zero, err
}

func (g *Gateway) logger(ctx context.Context) zerolog.Logger {
	return util.LogFromContext(ctx).With().
		Str("component", "rpc_gateway").
		Str("category", string(g.category)).
		Logger()
}

func newCircuitBreaker(category Category, url string) *gobreaker.CircuitBreaker {
	const (
		minRequests  = 5
		failureRatio = 0.6
		openTimeout  = 30 * time.Second
	)

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    fmt.Sprintf("%s %s", category, url),
		Timeout: openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= minRequests && ratio >= failureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if to == gobreaker.StateOpen {
				log.Warn().Str("breaker", name).Msg("RPC endpoint seems down, stop allowing requests")
			}
			if from == gobreaker.StateOpen && to == gobreaker.StateHalfOpen {
				log.Info().Str("breaker", name).Msg("Checking RPC endpoint status")
			}
			if from == gobreaker.StateHalfOpen && to == gobreaker.StateClosed {
				log.Info().Str("breaker", name).Msg("RPC endpoint seems ok, restart allowing requests")
			}
		},
	})
}
