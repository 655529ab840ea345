package registry

import (
	"sync"

	"github.com/pkg/errors"

	"github/chapool/sol-explorer/internal/wallet/keys"
)

var (
	ErrNotFound      = errors.New("key pair not found")
	ErrNilKeyPair    = errors.New("key pair is nil")
	ErrIndexMismatch = errors.New("account index does not match registry position")
)

// Registry is the ordered, append-only list of key pairs derived in one
// session. The position of a key pair always equals its account index.
type Registry struct {
	mu    sync.RWMutex
	pairs []*keys.KeyPair
}

func New() *Registry {
	return &Registry{}
}

// Append stores kp at the next position and returns that position. kp must
// carry the account index of that position.
func (r *Registry) Append(kp *keys.KeyPair) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	index := len(r.pairs)
	if err := checkPosition(kp, index); err != nil {
		return 0, err
	}

	r.pairs = append(r.pairs, kp)

	return index, nil
}

// AppendFunc computes the next key pair from the index it will occupy and
// appends it while holding the lock, so no other append can take the index.
func (r *Registry) AppendFunc(next func(index int) (*keys.KeyPair, error)) (int, *keys.KeyPair, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	index := len(r.pairs)
	kp, err := next(index)
	if err != nil {
		return 0, nil, err
	}
	if err := checkPosition(kp, index); err != nil {
		return 0, nil, err
	}

	r.pairs = append(r.pairs, kp)

	return index, kp, nil
}

func (r *Registry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.pairs)
}

func (r *Registry) Get(index int) (*keys.KeyPair, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index < 0 || index >= len(r.pairs) {
		return nil, errors.Wrapf(ErrNotFound, "index %d, size %d", index, len(r.pairs))
	}

	return r.pairs[index], nil
}

// All returns a snapshot of the registry in index order.
func (r *Registry) All() []*keys.KeyPair {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*keys.KeyPair, len(r.pairs))
	copy(out, r.pairs)

	return out
}

func checkPosition(kp *keys.KeyPair, index int) error {
	if kp == nil {
		return ErrNilKeyPair
	}
	if int64(kp.AccountIndex) != int64(index) {
		return errors.Wrapf(ErrIndexMismatch, "account index %d, position %d", kp.AccountIndex, index)
	}

	return nil
}
