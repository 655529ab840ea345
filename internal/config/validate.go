package config

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Validate checks the settings the RPC layer and the key derivation rely on.
func (s Server) Validate() error {
	if len(s.RPC.AccountEndpoints) == 0 {
		return errors.New("at least one account RPC endpoint is required")
	}
	if len(s.RPC.HistoryEndpoints) == 0 {
		return errors.New("at least one history RPC endpoint is required")
	}
	if s.RPC.MaxAttempts < 1 {
		return errors.Errorf("max attempts must be at least 1, got %d", s.RPC.MaxAttempts)
	}
	if s.RPC.RetryDelay < 0 {
		return errors.Errorf("retry delay must not be negative, got %s", s.RPC.RetryDelay)
	}
	if s.RPC.HistoryLimit < 1 || s.RPC.HistoryLimit > 1000 {
		return errors.Errorf("history limit must be between 1 and 1000, got %d", s.RPC.HistoryLimit)
	}
	if s.RPC.HistoryConcurrency < 1 {
		return errors.Errorf("history concurrency must be at least 1, got %d", s.RPC.HistoryConcurrency)
	}

	switch s.Wallet.Scheme {
	case SchemeSolana, SchemeEVM:
	default:
		return errors.Errorf("unsupported wallet scheme %q", s.Wallet.Scheme)
	}

	return nil
}

func parseLevel(s string) (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, errors.Wrapf(err, "invalid log level %q", s)
	}

	return lvl, nil
}
