package wallet

import (
	"github/chapool/sol-explorer/internal/wallet/keys"
)

// Account is one derived key pair of the session together with its position.
type Account struct {
	Index   int
	KeyPair *keys.KeyPair
}

// Address is a shortcut for the key pair's encoded public key.
func (a *Account) Address() string {
	return a.KeyPair.Address
}

func newAccount(index int, kp *keys.KeyPair) *Account {
	return &Account{
		Index:   index,
		KeyPair: kp,
	}
}
