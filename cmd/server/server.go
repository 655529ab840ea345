package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github/chapool/sol-explorer/internal/api"
	"github/chapool/sol-explorer/internal/api/router"
	"github/chapool/sol-explorer/internal/config"
	"github/chapool/sol-explorer/internal/util/command"
)

const (
	shutdownTimeout = 10 * time.Second
)

func New() *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Starts the read-only explorer HTTP API",
		Long: `Starts the HTTP API serving account info, transaction history and
overviews. Key derivation is not exposed over HTTP.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := command.LoadConfigFromFlags(cmd)
			if err != nil {
				return err
			}

			return runServer(cfg)
		},
	}
}

func runServer(cfg config.Server) error {
	command.SetupLogger(cfg.Logger)

	s, err := api.InitNewServer(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize server")
		return err
	}

	router.Init(s)

	log.Info().
		Strs("account_endpoints", cfg.RPC.AccountEndpoints).
		Strs("history_endpoints", cfg.RPC.HistoryEndpoints).
		Bool("circuit_breaker", cfg.RPC.CircuitBreakerEnabled).
		Msg("RPC gateways initialized")

	go func() {
		if err := s.Start(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				log.Info().Msg("Server closed")
			} else {
				log.Fatal().Err(err).Msg("Failed to start server")
			}
		}
	}()

	log.Info().Str("listen_address", cfg.Echo.ListenAddress).Msg("Server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if errs := s.Shutdown(ctx); len(errs) > 0 {
		log.Error().Errs("shutdownErrors", errs).Msg("Failed to gracefully shut down server")
		return errs[0]
	}

	log.Info().Msg("Server shutdown complete")

	return nil
}
