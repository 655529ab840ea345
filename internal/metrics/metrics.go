package metrics

import (
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github/chapool/sol-explorer/internal/config"
	"github/chapool/sol-explorer/internal/wallet/gateway"
)

// Namespace prefixes every metric of the process.
const Namespace = "sol_explorer"

// Service owns the prometheus registry of the process and records the RPC
// gateway observations.
type Service struct {
	registry *prometheus.Registry

	endpointRequests *prometheus.CounterVec
	endpointDuration *prometheus.HistogramVec
	retryAttempts    *prometheus.CounterVec
}

var _ gateway.Recorder = (*Service)(nil)

func New(cfg config.Server) (*Service, error) {
	s := &Service{
		registry: prometheus.NewRegistry(),
		endpointRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "rpc",
			Name:      "endpoint_requests_total",
			Help:      "Number of calls issued to a single RPC endpoint, by outcome.",
		}, []string{"category", "endpoint", "outcome"}),
		endpointDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "rpc",
			Name:      "endpoint_request_duration_seconds",
			Help:      "Duration of calls issued to a single RPC endpoint.",
			Buckets:   prometheus.ExponentialBuckets(0.025, 2, 10), //nolint:mnd
		}, []string{"category", "endpoint"}),
		retryAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "rpc",
			Name:      "retry_attempts_total",
			Help:      "Number of whole fallback attempts, by outcome.",
		}, []string{"category", "outcome"}),
	}

	toRegister := []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		s.endpointRequests,
		s.endpointDuration,
		s.retryAttempts,
	}

	for _, c := range toRegister {
		if err := s.registry.Register(c); err != nil {
			return nil, errors.Wrap(err, "failed to register collector")
		}
	}

	// pre-create the series of configured endpoints so they show up as zero
	for category, urls := range map[gateway.Category][]string{
		gateway.CategoryAccount: cfg.RPC.AccountEndpoints,
		gateway.CategoryHistory: cfg.RPC.HistoryEndpoints,
	} {
		for _, url := range urls {
			s.endpointRequests.WithLabelValues(string(category), url, string(gateway.OutcomeSuccess))
			s.endpointRequests.WithLabelValues(string(category), url, string(gateway.OutcomeFailure))
		}
	}

	return s, nil
}

func (s *Service) ObserveEndpointCall(category gateway.Category, endpoint string, outcome gateway.Outcome, elapsed time.Duration) {
	s.endpointRequests.WithLabelValues(string(category), endpoint, string(outcome)).Inc()
	if outcome != gateway.OutcomeRejected {
		s.endpointDuration.WithLabelValues(string(category), endpoint).Observe(elapsed.Seconds())
	}
}

func (s *Service) ObserveAttempt(category gateway.Category, outcome gateway.Outcome) {
	s.retryAttempts.WithLabelValues(string(category), string(outcome)).Inc()
}

// Registry is exposed for tests.
func (s *Service) Registry() *prometheus.Registry {
	return s.registry
}

// Handler serves the registry in the prometheus text format.
func (s *Service) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{
		Registry: s.registry,
	})
}
