package gateway

import (
	"context"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
)

// Health probes every endpoint with getHealth, in order. Unlike Call it does
// not stop at the first healthy endpoint.
func (g *Gateway) Health(ctx context.Context) []EndpointHealth {
	results := make([]EndpointHealth, 0, len(g.endpoints))

	for _, ep := range g.endpoints {
		start := g.clock.Now()
		status, err := Invoke(ctx, g, ep, func(ctx context.Context, client Client) (string, error) {
			return client.GetHealth(ctx)
		})

		h := EndpointHealth{
			URL:     ep.URL,
			Status:  status,
			Latency: g.clock.Now().Sub(start),
			Err:     err,
		}
		if err == nil && status != rpc.HealthOk {
			h.Err = errors.Errorf("node reports %q", status)
		}
		h.Healthy = h.Err == nil
		results = append(results, h)
	}

	return results
}

// Healthy reports whether at least one endpoint is healthy.
func (g *Gateway) Healthy(ctx context.Context) bool {
	for _, h := range g.Health(ctx) {
		if h.Healthy {
			return true
		}
	}

	return false
}
