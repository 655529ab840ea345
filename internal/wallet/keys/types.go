package keys

import (
	"bytes"
	"encoding/hex"

	"github.com/pkg/errors"
)

// Scheme selects the curve and the derivation rules.
type Scheme string

const (
	// SchemeSolana derives ed25519 keys along m/44'/501'/{account}'/0' (SLIP-10).
	SchemeSolana Scheme = "solana"
	// SchemeEVM derives secp256k1 keys along m/44'/60'/{account}'/0' (BIP-32).
	SchemeEVM Scheme = "evm"
)

var (
	ErrInvalidSeed       = errors.New("invalid seed")
	ErrNonHardenedIndex  = errors.New("ed25519 derivation supports hardened indices only")
	ErrUnsupportedScheme = errors.New("unsupported derivation scheme")
	ErrInvalidPath       = errors.New("invalid derivation path")
)

const (
	minSeedLength = 16
	maxSeedLength = 64
)

// Engine derives key pairs from a seed. Implementations are pure: the same
// seed and account index always yield the same key pair.
type Engine interface {
	Scheme() Scheme
	Path(accountIndex uint32) DerivationPath
	DeriveKeyPair(seed []byte, accountIndex uint32) (*KeyPair, error)
}

// KeyPair is created by an Engine and never mutated afterwards.
type KeyPair struct {
	Scheme       Scheme
	AccountIndex uint32
	Path         string
	Address      string
	PublicKey    []byte
	// SecretKey is the 64 byte ed25519 secret (seed || public key) for
	// SchemeSolana and the 32 byte secp256k1 scalar for SchemeEVM.
	SecretKey []byte
}

// SecretHex renders the secret key the way wallets usually export it.
func (k *KeyPair) SecretHex() string {
	return hex.EncodeToString(k.SecretKey)
}

// Equal reports whether both pairs carry the same key material.
func (k *KeyPair) Equal(other *KeyPair) bool {
	if k == nil || other == nil {
		return k == other
	}

	return k.Scheme == other.Scheme &&
		bytes.Equal(k.PublicKey, other.PublicKey) &&
		bytes.Equal(k.SecretKey, other.SecretKey)
}

func validateSeed(seed []byte) error {
	if len(seed) < minSeedLength || len(seed) > maxSeedLength {
		return errors.Wrapf(ErrInvalidSeed, "seed must be %d to %d bytes, got %d", minSeedLength, maxSeedLength, len(seed))
	}

	return nil
}
