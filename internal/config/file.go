package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// MergeFile layers the settings found in the config file at path (yaml, toml or
// json, by extension) on top of base. Keys absent from the file keep their base value.
//
// Keys use the env layout in lower case, e.g.
//
//	rpc:
//	  account_endpoints: ["https://api.devnet.solana.com"]
//	  retry_delay: 2s
func MergeFile(path string, base Server) (Server, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return base, errors.Wrapf(err, "failed to read config file %s", path)
	}

	cfg := base

	if v.IsSet("logger.level") {
		lvl, err := parseLevel(v.GetString("logger.level"))
		if err != nil {
			return base, err
		}
		cfg.Logger.Level = lvl
	}
	if v.IsSet("logger.pretty_print_console") {
		cfg.Logger.PrettyPrintConsole = v.GetBool("logger.pretty_print_console")
	}
	if v.IsSet("logger.caller") {
		cfg.Logger.Caller = v.GetBool("logger.caller")
	}

	if v.IsSet("echo.listen_address") {
		cfg.Echo.ListenAddress = v.GetString("echo.listen_address")
	}
	if v.IsSet("echo.debug") {
		cfg.Echo.Debug = v.GetBool("echo.debug")
	}

	if v.IsSet("rpc.account_endpoints") {
		cfg.RPC.AccountEndpoints = v.GetStringSlice("rpc.account_endpoints")
	}
	if v.IsSet("rpc.history_endpoints") {
		cfg.RPC.HistoryEndpoints = v.GetStringSlice("rpc.history_endpoints")
	}
	if v.IsSet("rpc.commitment") {
		cfg.RPC.Commitment = v.GetString("rpc.commitment")
	}
	if v.IsSet("rpc.request_timeout") {
		cfg.RPC.RequestTimeout = v.GetDuration("rpc.request_timeout")
	}
	if v.IsSet("rpc.max_attempts") {
		cfg.RPC.MaxAttempts = v.GetInt("rpc.max_attempts")
	}
	if v.IsSet("rpc.retry_delay") {
		cfg.RPC.RetryDelay = v.GetDuration("rpc.retry_delay")
	}
	if v.IsSet("rpc.history_limit") {
		cfg.RPC.HistoryLimit = v.GetInt("rpc.history_limit")
	}
	if v.IsSet("rpc.history_concurrency") {
		cfg.RPC.HistoryConcurrency = v.GetInt("rpc.history_concurrency")
	}
	if v.IsSet("rpc.history_requests_per_second") {
		cfg.RPC.HistoryRequestsPerSecond = v.GetInt("rpc.history_requests_per_second")
	}
	if v.IsSet("rpc.circuit_breaker_enabled") {
		cfg.RPC.CircuitBreakerEnabled = v.GetBool("rpc.circuit_breaker_enabled")
	}

	if v.IsSet("wallet.scheme") {
		cfg.Wallet.Scheme = v.GetString("wallet.scheme")
	}

	if err := cfg.Validate(); err != nil {
		return base, err
	}

	return cfg, nil
}
