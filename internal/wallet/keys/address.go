package keys

import (
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

var ErrInvalidAddress = errors.New("invalid address")

// ParseSolanaAddress decodes a base58 account address.
func ParseSolanaAddress(address string) (solana.PublicKey, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return solana.PublicKey{}, errors.Wrap(ErrInvalidAddress, "address is empty")
	}

	pubkey, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return solana.PublicKey{}, errors.Wrapf(ErrInvalidAddress, "%q: %v", address, err)
	}

	return pubkey, nil
}
