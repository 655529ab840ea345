package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lightningnetwork/lnd/clock"
	"github.com/rs/zerolog/log"

	"github/chapool/sol-explorer/internal/config"
	"github/chapool/sol-explorer/internal/metrics"
	"github/chapool/sol-explorer/internal/util"
	"github/chapool/sol-explorer/internal/wallet/account"
	"github/chapool/sol-explorer/internal/wallet/gateway"
	"github/chapool/sol-explorer/internal/wallet/history"
)

// AccountService is the account info fetcher used by the handlers
type AccountService = account.Service

// HistoryService is the transaction history fetcher used by the handlers
type HistoryService = history.Service

// Gateways holds the RPC gateway of each endpoint category.
type Gateways struct {
	Account *gateway.Gateway
	History *gateway.Gateway
}

// All returns the gateways in a stable order.
func (g *Gateways) All() []*gateway.Gateway {
	return []*gateway.Gateway{g.Account, g.History}
}

type Router struct {
	Routes            []*echo.Route
	Root              *echo.Group
	Management        *echo.Group
	APIV1Accounts     *echo.Group
	APIV1Transactions *echo.Group
}

// Server is a central struct keeping all the dependencies.
// It is initialized with wire, which handles making the new instances of the components
// in the right order. To add a new component, 3 steps are required:
// - declaring it in this struct
// - adding a provider function in providers.go
// - adding the provider's function name to the arguments of wire.Build() in wire.go
//
// Components labeled as `wire:"-"` will be skipped and have to be initialized after the InitNewServer* call.
// For more information about wire refer to https://pkg.go.dev/github.com/google/wire
type Server struct {
	// skip wire:
	// -> initialized with router.Init(s) function
	Echo   *echo.Echo `wire:"-"`
	Router *Router    `wire:"-"`

	Config   config.Server
	Clock    clock.Clock
	Metrics  *metrics.Service
	Gateways *Gateways
	Accounts AccountService // Account info fetcher
	History  HistoryService // Transaction history fetcher
}

// newServerWithComponents is used by wire to initialize the server components.
// Components not listed here won't be handled by wire and should be initialized separately.
// Components which shouldn't be handled must be labeled `wire:"-"` in Server struct.
func newServerWithComponents(
	cfg config.Server,
	clock clock.Clock,
	metrics *metrics.Service,
	gateways *Gateways,
	accounts AccountService,
	history HistoryService,
) *Server {
	return &Server{
		Config:   cfg,
		Clock:    clock,
		Metrics:  metrics,
		Gateways: gateways,
		Accounts: accounts,
		History:  history,
	}
}

func NewServer(config config.Server) *Server {
	s := &Server{
		Config: config,
	}

	return s
}

func (s *Server) Ready() bool {
	if err := util.IsStructInitialized(s); err != nil {
		log.Debug().Err(err).Msg("Server is not fully initialized")
		return false
	}

	return true
}

func (s *Server) Start() error {
	if !s.Ready() {
		return errors.New("server is not ready")
	}

	if err := s.Echo.Start(s.Config.Echo.ListenAddress); err != nil {
		return fmt.Errorf("failed to start echo server: %w", err)
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) []error {
	log.Warn().Msg("Shutting down server")

	var errs []error

	if s.Gateways != nil {
		log.Debug().Msg("Closing RPC clients")

		for _, gw := range s.Gateways.All() {
			if gw != nil {
				gw.Close()
			}
		}
	}

	if s.Echo != nil {
		log.Debug().Msg("Shutting down echo server")

		if err := s.Echo.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Failed to shutdown echo server")
			errs = append(errs, err)
		}
	}

	return errs
}
