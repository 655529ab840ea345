package wallet

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github/chapool/sol-explorer/internal/util"
	"github/chapool/sol-explorer/internal/wallet/keys"
	"github/chapool/sol-explorer/internal/wallet/seed"
)

const (
	// VerificationAccountIndex is the account index used to check a mnemonic and passphrase
	VerificationAccountIndex = 0
)

var ErrVerificationMismatch = errors.New("derived address does not match expected address")

// VerifyAddress derives the verification account from the loaded seed and
// compares its address with expected. A wrong passphrase still yields a valid
// seed, so this is the only way to tell that the wrong wallet was opened.
func VerifyAddress(ctx context.Context, seedManager seed.Manager, engine keys.Engine, expected string) error {
	log := util.LogFromContext(ctx).With().Str("component", "address_verification").Logger()

	// Get seed from memory
	seed := seedManager.GetSeed()
	if seed == nil {
		return ErrSeedNotInitialized
	}
	defer wipe(seed)

	kp, err := engine.DeriveKeyPair(seed, VerificationAccountIndex)
	if err != nil {
		log.Error().Err(err).Msg("Failed to derive verification address")
		return errors.Wrap(err, "failed to derive verification address")
	}

	if !sameAddress(kp.Scheme, expected, kp.Address) {
		log.Warn().
			Str("expected", expected).
			Str("derived", kp.Address).
			Msg("Verification address mismatch")

		return errors.Wrapf(ErrVerificationMismatch, "expected %s, derived %s", expected, kp.Address)
	}

	log.Info().Str("address", kp.Address).Msg("Verification address matches")

	return nil
}

// sameAddress compares addresses in the scheme's own form. EVM addresses are
// hex and may arrive with or without the EIP-55 checksum casing; base58 is
// case-sensitive.
func sameAddress(scheme keys.Scheme, expected, derived string) bool {
	if scheme == keys.SchemeEVM {
		return common.IsHexAddress(expected) && common.HexToAddress(expected) == common.HexToAddress(derived)
	}

	return expected == derived
}
