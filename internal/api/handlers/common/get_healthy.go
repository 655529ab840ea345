package common

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github/chapool/sol-explorer/internal/api"
	"github/chapool/sol-explorer/internal/wallet/gateway"
)

func GetHealthyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/healthy", getHealthyHandler(s))
}

type endpointHealthResponse struct {
	URL       string `json:"url"`
	Healthy   bool   `json:"healthy"`
	Status    string `json:"status,omitempty"`
	LatencyMS int64  `json:"latencyMs"`
	Error     string `json:"error,omitempty"`
}

type healthyResponse struct {
	Healthy bool                     `json:"healthy"`
	Account []endpointHealthResponse `json:"account"`
	History []endpointHealthResponse `json:"history"`
}

// Liveness check
// Probes every configured RPC endpoint with getHealth. A category is healthy
// when at least one of its endpoints is, the service when both categories are.
func getHealthyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		account := s.Gateways.Account.Health(ctx)
		history := s.Gateways.History.Health(ctx)

		res := healthyResponse{
			Healthy: anyHealthy(account) && anyHealthy(history),
			Account: toEndpointHealthResponse(account),
			History: toEndpointHealthResponse(history),
		}

		status := http.StatusOK
		if !res.Healthy {
			status = http.StatusServiceUnavailable
		}

		return c.JSON(status, res)
	}
}

func anyHealthy(results []gateway.EndpointHealth) bool {
	for _, r := range results {
		if r.Healthy {
			return true
		}
	}

	return false
}

func toEndpointHealthResponse(results []gateway.EndpointHealth) []endpointHealthResponse {
	out := make([]endpointHealthResponse, 0, len(results))
	for _, r := range results {
		item := endpointHealthResponse{
			URL:       r.URL,
			Healthy:   r.Healthy,
			Status:    r.Status,
			LatencyMS: r.Latency.Milliseconds(),
		}
		if r.Err != nil {
			item.Error = r.Err.Error()
		}
		out = append(out, item)
	}

	return out
}
