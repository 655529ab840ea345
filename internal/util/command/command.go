package command

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/subosito/gotenv"

	"github/chapool/sol-explorer/internal/api"
	"github/chapool/sol-explorer/internal/config"
)

// SetupLogger configures the global zerolog logger from the logger config.
func SetupLogger(cfg config.LoggerServer) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.SetGlobalLevel(cfg.Level)

	if cfg.PrettyPrintConsole {
		log.Logger = log.Output(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.TimeFormat = "15:04:05"
		}))
	}

	if cfg.Caller {
		log.Logger = log.With().Caller().Logger()
	}
}

// WithServer initializes all server components without starting echo, runs f
// and shuts the components down afterwards. Used by CLI commands that need the
// configured RPC gateways but no HTTP listener.
func WithServer(ctx context.Context, cfg config.Server, f func(ctx context.Context, s *api.Server) error) error {
	SetupLogger(cfg.Logger)

	s, err := api.InitNewServer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	defer func() {
		for _, err := range s.Shutdown(ctx) {
			log.Error().Err(err).Msg("Failed to gracefully shut down server")
		}
	}()

	return f(ctx, s)
}

// NewSubcommandGroup returns a command that only groups subCommands and prints
// its help when run on its own.
func NewSubcommandGroup(name string, subCommands ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("%s related subcommands", name),
		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				log.Error().Err(err).Msg("Failed to print help")
			}
		},
	}

	cmd.AddCommand(subCommands...)

	return cmd
}

// ConfigFlag is the persistent root flag pointing to an optional config file.
const ConfigFlag = "config"

// LoadConfig reads .env (if present) into the environment, builds the config
// from env and layers the config file at path on top when path is set.
func LoadConfig(path string) (config.Server, error) {
	if err := gotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config.Server{}, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := config.DefaultServiceConfigFromEnv()
	if path == "" {
		if err := cfg.Validate(); err != nil {
			return config.Server{}, fmt.Errorf("invalid configuration: %w", err)
		}

		return cfg, nil
	}

	return config.MergeFile(path, cfg)
}

// LoadConfigFromFlags is LoadConfig with the path taken from the --config flag of cmd.
func LoadConfigFromFlags(cmd *cobra.Command) (config.Server, error) {
	path := ""
	if f := cmd.Flag(ConfigFlag); f != nil {
		path = f.Value.String()
	}

	return LoadConfig(path)
}
