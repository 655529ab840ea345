package wallet

import (
	"context"

	"github.com/pkg/errors"

	"github/chapool/sol-explorer/internal/util"
	"github/chapool/sol-explorer/internal/wallet/keys"
	"github/chapool/sol-explorer/internal/wallet/registry"
	"github/chapool/sol-explorer/internal/wallet/seed"
)

var ErrSeedNotInitialized = errors.New("seed not initialized")

// Service owns the key pairs derived during one session
type Service interface {
	// DeriveNext derives the key pair for the next account index and appends it
	DeriveNext(ctx context.Context) (*Account, error)

	// Accounts lists every account derived so far, in index order
	Accounts() []*Account

	// Account gets the account at index
	Account(index int) (*Account, error)

	// Scheme reports the derivation scheme of the session
	Scheme() keys.Scheme
}

type service struct {
	seedManager seed.Manager
	engine      keys.Engine
	registry    *registry.Registry
}

// NewService creates a new session wallet Service
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(seedManager seed.Manager, engine keys.Engine, reg *registry.Registry) Service {
	if reg == nil {
		reg = registry.New()
	}

	return &service{
		seedManager: seedManager,
		engine:      engine,
		registry:    reg,
	}
}

// DeriveNext derives the account whose index equals the current registry size.
// Derivation happens under the registry lock so concurrent callers never race
// for the same index.
func (s *service) DeriveNext(ctx context.Context) (*Account, error) {
	log := util.LogFromContext(ctx).With().
		Str("scheme", string(s.engine.Scheme())).
		Logger()

	// Get seed from memory
	seed := s.seedManager.GetSeed()
	if seed == nil {
		return nil, ErrSeedNotInitialized
	}
	defer wipe(seed)

	index, kp, err := s.registry.AppendFunc(func(index int) (*keys.KeyPair, error) {
		return s.engine.DeriveKeyPair(seed, uint32(index)) //nolint:gosec // index is a registry position
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to derive key pair")
		return nil, errors.Wrap(err, "failed to derive key pair")
	}

	log.Debug().
		Int("account_index", index).
		Str("address", kp.Address).
		Str("path", kp.Path).
		Msg("Derived key pair")

	return newAccount(index, kp), nil
}

func (s *service) Accounts() []*Account {
	pairs := s.registry.All()
	accounts := make([]*Account, 0, len(pairs))
	for i, kp := range pairs {
		accounts = append(accounts, newAccount(i, kp))
	}

	return accounts
}

func (s *service) Account(index int) (*Account, error) {
	kp, err := s.registry.Get(index)
	if err != nil {
		return nil, err
	}

	return newAccount(index, kp), nil
}

func (s *service) Scheme() keys.Scheme {
	return s.engine.Scheme()
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
