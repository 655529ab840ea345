package keys

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"

	"github.com/pkg/errors"
)

// ed25519SeedModifier is the HMAC key for the SLIP-10 ed25519 master node.
var ed25519SeedModifier = []byte("ed25519 seed")

// slip10Node is an ed25519 node of the SLIP-10 tree.
type slip10Node struct {
	key       []byte
	chainCode []byte
}

func newSlip10Master(seed []byte) *slip10Node {
	mac := hmac.New(sha512.New, ed25519SeedModifier)
	mac.Write(seed)
	sum := mac.Sum(nil)

	return &slip10Node{key: sum[:32], chainCode: sum[32:]}
}

// child derives the hardened child at index. ed25519 has no public parent to
// public child derivation, so non-hardened indices are rejected.
func (n *slip10Node) child(index uint32) (*slip10Node, error) {
	if index < HardenedOffset {
		return nil, errors.Wrapf(ErrNonHardenedIndex, "index %d", index)
	}

	data := make([]byte, 0, 1+len(n.key)+4)
	data = append(data, 0x00)
	data = append(data, n.key...)
	data = binary.BigEndian.AppendUint32(data, index)

	mac := hmac.New(sha512.New, n.chainCode)
	mac.Write(data)
	sum := mac.Sum(nil)

	return &slip10Node{key: sum[:32], chainCode: sum[32:]}, nil
}

// deriveSlip10 walks indices from the master node of seed and returns the
// 32 byte key material of the final node.
func deriveSlip10(seed []byte, indices []uint32) ([]byte, error) {
	node := newSlip10Master(seed)
	for _, index := range indices {
		var err error
		node, err = node.child(index)
		if err != nil {
			return nil, err
		}
	}

	return node.key, nil
}
