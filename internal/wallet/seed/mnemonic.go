package seed

import (
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"
)

// DefaultEntropyBits yields a 12 word mnemonic.
const DefaultEntropyBits = 128

// GenerateMnemonic creates a new BIP-39 mnemonic from bits of entropy
// (128, 160, 192, 224 or 256 for 12 to 24 words).
func GenerateMnemonic(bits int) (string, error) {
	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate entropy")
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate mnemonic")
	}

	return mnemonic, nil
}

// ValidateMnemonic checks word list membership and the BIP-39 checksum.
// Derivation does not require a valid checksum; callers use this to warn.
func ValidateMnemonic(mnemonic string) bool {
	return bip39.IsMnemonicValid(NormalizeMnemonic(mnemonic))
}
