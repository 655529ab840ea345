package keys

import (
	"crypto/ed25519"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

type solanaEngine struct{}

// NewSolanaEngine returns the ed25519 engine used for Solana accounts.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewSolanaEngine() Engine {
	return solanaEngine{}
}

func (solanaEngine) Scheme() Scheme {
	return SchemeSolana
}

func (solanaEngine) Path(accountIndex uint32) DerivationPath {
	return NewDerivationPath(CoinTypeSolana, accountIndex)
}

// DeriveKeyPair runs SLIP-10 over m/44'/501'/{accountIndex}'/0' and expands the
// derived 32 bytes into an ed25519 key pair.
func (e solanaEngine) DeriveKeyPair(seed []byte, accountIndex uint32) (*KeyPair, error) {
	if err := validateSeed(seed); err != nil {
		return nil, err
	}
	if accountIndex >= HardenedOffset {
		return nil, errors.Wrapf(ErrInvalidPath, "account index %d out of range", accountIndex)
	}

	path := e.Path(accountIndex)

	derived, err := deriveSlip10(seed, path.Indices())
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive key from path")
	}

	secret := solana.PrivateKey(ed25519.NewKeyFromSeed(derived))
	public := secret.PublicKey()

	return &KeyPair{
		Scheme:       SchemeSolana,
		AccountIndex: accountIndex,
		Path:         path.String(),
		Address:      public.String(),
		PublicKey:    public.Bytes(),
		SecretKey:    []byte(secret),
	}, nil
}
