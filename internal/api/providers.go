package api

import (
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/lightningnetwork/lnd/clock"
	"github.com/pkg/errors"

	"github/chapool/sol-explorer/internal/config"
	"github/chapool/sol-explorer/internal/metrics"
	"github/chapool/sol-explorer/internal/wallet/account"
	"github/chapool/sol-explorer/internal/wallet/gateway"
	"github/chapool/sol-explorer/internal/wallet/history"
)

// PROVIDERS - used by wire to build the server components

//nolint:ireturn // Returning interface is intentional for dependency injection
func NewClock() clock.Clock {
	return clock.NewDefaultClock()
}

// NewGateways creates one gateway per endpoint category. Dialer is nil outside of tests.
func NewGateways(cfg config.Server, clk clock.Clock, m *metrics.Service, dialer gateway.Dialer) (*Gateways, error) {
	opts := []gateway.Option{
		gateway.WithClock(clk),
		gateway.WithRecorder(m),
		gateway.WithRequestTimeout(cfg.RPC.RequestTimeout),
		gateway.WithMaxAttempts(cfg.RPC.MaxAttempts),
		gateway.WithRetryDelay(cfg.RPC.RetryDelay),
		gateway.WithCircuitBreaker(cfg.RPC.CircuitBreakerEnabled),
	}
	if dialer != nil {
		opts = append(opts, gateway.WithDialer(dialer))
	}

	accountGateway, err := gateway.New(gateway.CategoryAccount, cfg.RPC.AccountEndpoints, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create account gateway")
	}

	historyGateway, err := gateway.New(gateway.CategoryHistory, cfg.RPC.HistoryEndpoints, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create history gateway")
	}

	return &Gateways{
		Account: accountGateway,
		History: historyGateway,
	}, nil
}

// NoDialer selects the real JSON-RPC client for every endpoint.
func NoDialer() gateway.Dialer {
	return nil
}

//nolint:ireturn // Returning interface is intentional for dependency injection
func NewAccountService(cfg config.Server, gws *Gateways) AccountService {
	return account.NewService(gws.Account, rpc.CommitmentType(cfg.RPC.Commitment))
}

//nolint:ireturn // Returning interface is intentional for dependency injection
func NewHistoryService(cfg config.Server, gws *Gateways) HistoryService {
	return history.NewService(gws.History, history.Options{
		Limit:             cfg.RPC.HistoryLimit,
		Concurrency:       cfg.RPC.HistoryConcurrency,
		RequestsPerSecond: cfg.RPC.HistoryRequestsPerSecond,
		Commitment:        rpc.CommitmentType(cfg.RPC.Commitment),
	})
}
