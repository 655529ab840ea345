package keys

import "github.com/pkg/errors"

// NewEngine returns the engine registered for scheme.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewEngine(scheme Scheme) (Engine, error) {
	switch scheme {
	case SchemeSolana:
		return NewSolanaEngine(), nil
	case SchemeEVM:
		return NewEVMEngine(), nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedScheme, "%q", scheme)
	}
}

// DeriveRange derives count consecutive key pairs starting at from.
func DeriveRange(engine Engine, seed []byte, from uint32, count int) ([]*KeyPair, error) {
	pairs := make([]*KeyPair, 0, count)
	for i := 0; i < count; i++ {
		kp, err := engine.DeriveKeyPair(seed, from+uint32(i))
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, kp)
	}

	return pairs, nil
}
