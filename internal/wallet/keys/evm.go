package keys

import (
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip32"
)

type evmEngine struct{}

// NewEVMEngine returns the secp256k1 engine for EVM accounts.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewEVMEngine() Engine {
	return evmEngine{}
}

func (evmEngine) Scheme() Scheme {
	return SchemeEVM
}

func (evmEngine) Path(accountIndex uint32) DerivationPath {
	return NewDerivationPath(CoinTypeEthereum, accountIndex)
}

// DeriveKeyPair derives m/44'/60'/{accountIndex}'/0' with BIP-32.
func (e evmEngine) DeriveKeyPair(seed []byte, accountIndex uint32) (*KeyPair, error) {
	if err := validateSeed(seed); err != nil {
		return nil, err
	}
	if accountIndex >= HardenedOffset {
		return nil, errors.Wrapf(ErrInvalidPath, "account index %d out of range", accountIndex)
	}

	path := e.Path(accountIndex)

	// Create master key from seed
	masterKey, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create master key")
	}

	derivedKey, err := deriveBIP32(masterKey, path.Indices())
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive key from path")
	}

	// Convert to ECDSA private key
	privateKey, err := crypto.ToECDSA(derivedKey.Key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert to ECDSA private key")
	}

	secret := make([]byte, len(derivedKey.Key))
	copy(secret, derivedKey.Key)

	return &KeyPair{
		Scheme:       SchemeEVM,
		AccountIndex: accountIndex,
		Path:         path.String(),
		Address:      crypto.PubkeyToAddress(privateKey.PublicKey).Hex(),
		PublicKey:    crypto.CompressPubkey(&privateKey.PublicKey),
		SecretKey:    secret,
	}, nil
}

// deriveBIP32 derives a key step by step from masterKey
func deriveBIP32(masterKey *bip32.Key, indices []uint32) (*bip32.Key, error) {
	key := masterKey
	for _, index := range indices {
		var err error
		key, err = key.NewChildKey(index)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to derive child key at index %d", index)
		}
	}

	return key, nil
}
