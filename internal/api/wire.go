//go:build wireinject

package api

import (
	"github.com/google/wire"

	"github/chapool/sol-explorer/internal/config"
	"github/chapool/sol-explorer/internal/metrics"
	"github/chapool/sol-explorer/internal/wallet/gateway"
)

// INJECTORS - https://github.com/google/wire/blob/main/docs/guide.md#injectors

// serviceSet groups the default set of providers that are required for initing a server
var serviceSet = wire.NewSet(
	newServerWithComponents,
	NewClock,
	metrics.New,
	NewGateways,
	NewAccountService,
	NewHistoryService,
)

// InitNewServer returns a new Server instance.
func InitNewServer(
	_ config.Server,
) (*Server, error) {
	wire.Build(serviceSet, NoDialer)
	return new(Server), nil
}

// InitNewServerWithDialer returns a new Server instance whose RPC clients are created by the given dialer.
// All the other components are initialized via go wire according to the configuration.
func InitNewServerWithDialer(
	_ config.Server,
	_ gateway.Dialer,
) (*Server, error) {
	wire.Build(serviceSet)
	return new(Server), nil
}
