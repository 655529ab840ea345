package config

import (
	"time"

	"github.com/rs/zerolog"
	"github/chapool/sol-explorer/internal/util"
)

type LoggerServer struct {
	Level              zerolog.Level
	PrettyPrintConsole bool
	Caller             bool
}

type EchoServer struct {
	Debug         bool
	ListenAddress string
}

// RPC configures the remote data providers. Account and history lookups use
// separate ordered endpoint lists.
type RPC struct {
	AccountEndpoints []string
	HistoryEndpoints []string
	Commitment       string
	RequestTimeout   time.Duration

	// outer retry, account lookups only
	MaxAttempts int
	RetryDelay  time.Duration

	HistoryLimit             int
	HistoryConcurrency       int
	HistoryRequestsPerSecond int

	CircuitBreakerEnabled bool
}

type Wallet struct {
	Scheme string
}

type Server struct {
	Logger LoggerServer
	Echo   EchoServer
	RPC    RPC
	Wallet Wallet
}

const (
	SchemeSolana = "solana"
	SchemeEVM    = "evm"
)

var (
	DefaultAccountEndpoints = []string{
		"https://api.devnet.solana.com/",
		"https://api.mainnet-beta.solana.com",
	}
	DefaultHistoryEndpoints = []string{
		"https://solana.public-rpc.com",
		"https://api.mainnet-beta.solana.com",
	}
)

const (
	defaultRequestTimeout     = 15 * time.Second
	defaultMaxAttempts        = 3
	defaultRetryDelay         = 2 * time.Second
	defaultHistoryLimit       = 10
	defaultHistoryConcurrency = 10
)

// DefaultServiceConfigFromEnv returns the server config as parsed from environment variables
// and their respective defaults defined below.
// We don't expect that ENV_VARs change while we are running our application or our tests
// (and it would be a bad thing to do anyways with parallel testing).
// Do NOT use os.Setenv / os.Unsetenv in tests utilizing DefaultServiceConfigFromEnv()!
func DefaultServiceConfigFromEnv() Server {
	return Server{
		Logger: LoggerServer{
			Level:              util.LogLevelFromString(util.GetEnv("SERVER_LOGGER_LEVEL", zerolog.InfoLevel.String())),
			PrettyPrintConsole: util.GetEnvAsBool("SERVER_LOGGER_PRETTY_PRINT_CONSOLE", false),
			Caller:             util.GetEnvAsBool("SERVER_LOGGER_CALLER", false),
		},
		Echo: EchoServer{
			Debug:         util.GetEnvAsBool("SERVER_ECHO_DEBUG", false),
			ListenAddress: util.GetEnv("SERVER_ECHO_LISTEN_ADDRESS", ":8080"),
		},
		RPC: RPC{
			AccountEndpoints:         util.GetEnvAsStringArr("RPC_ACCOUNT_ENDPOINTS", DefaultAccountEndpoints),
			HistoryEndpoints:         util.GetEnvAsStringArr("RPC_HISTORY_ENDPOINTS", DefaultHistoryEndpoints),
			Commitment:               util.GetEnvEnum("RPC_COMMITMENT", "confirmed", []string{"processed", "confirmed", "finalized"}),
			RequestTimeout:           util.GetEnvAsDuration("RPC_REQUEST_TIMEOUT", defaultRequestTimeout),
			MaxAttempts:              util.GetEnvAsInt("RPC_MAX_ATTEMPTS", defaultMaxAttempts),
			RetryDelay:               util.GetEnvAsDuration("RPC_RETRY_DELAY", defaultRetryDelay),
			HistoryLimit:             util.GetEnvAsInt("RPC_HISTORY_LIMIT", defaultHistoryLimit),
			HistoryConcurrency:       util.GetEnvAsInt("RPC_HISTORY_CONCURRENCY", defaultHistoryConcurrency),
			HistoryRequestsPerSecond: util.GetEnvAsInt("RPC_HISTORY_REQUESTS_PER_SECOND", 0),
			CircuitBreakerEnabled:    util.GetEnvAsBool("RPC_CIRCUIT_BREAKER_ENABLED", false),
		},
		Wallet: Wallet{
			Scheme: util.GetEnvEnum("WALLET_SCHEME", SchemeSolana, []string{SchemeSolana, SchemeEVM}),
		},
	}
}
