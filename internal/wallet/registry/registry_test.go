package registry_test

import (
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/chapool/sol-explorer/internal/wallet/keys"
	"github/chapool/sol-explorer/internal/wallet/registry"
)

func TestAppendIsMonotonic(t *testing.T) {
	t.Parallel()

	r := registry.New()
	assert.Equal(t, 0, r.Size())

	for k := 1; k <= 5; k++ {
		kp := &keys.KeyPair{AccountIndex: uint32(k - 1)}
		index, err := r.Append(kp)
		require.NoError(t, err)

		assert.Equal(t, k-1, index)
		assert.Equal(t, k, r.Size())

		got, err := r.Get(index)
		require.NoError(t, err)
		assert.Same(t, kp, got)
	}
}

func TestGetNotFound(t *testing.T) {
	t.Parallel()

	r := registry.New()
	_, err := r.Append(&keys.KeyPair{})
	require.NoError(t, err)

	_, err = r.Get(1)
	require.ErrorIs(t, err, registry.ErrNotFound)

	_, err = r.Get(-1)
	require.ErrorIs(t, err, registry.ErrNotFound)
}

func TestAllReturnsSnapshot(t *testing.T) {
	t.Parallel()

	r := registry.New()
	_, err := r.Append(&keys.KeyPair{Address: "a", AccountIndex: 0})
	require.NoError(t, err)

	snapshot := r.All()
	_, err = r.Append(&keys.KeyPair{Address: "b", AccountIndex: 1})
	require.NoError(t, err)

	require.Len(t, snapshot, 1)
	assert.Len(t, r.All(), 2)
}

func TestConcurrentAppendKeepsIndexEqualPosition(t *testing.T) {
	t.Parallel()

	const writers = 64

	r := registry.New()

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := r.AppendFunc(func(index int) (*keys.KeyPair, error) {
				return &keys.KeyPair{AccountIndex: uint32(index)}, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Equal(t, writers, r.Size())
	for i, kp := range r.All() {
		assert.Equal(t, uint32(i), kp.AccountIndex)
	}
}

func TestAppendFuncErrorLeavesRegistryUntouched(t *testing.T) {
	t.Parallel()

	r := registry.New()
	boom := errors.New("boom")

	_, _, err := r.AppendFunc(func(int) (*keys.KeyPair, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, r.Size())
}

func TestAppendRejectsKeyPairAtWrongPosition(t *testing.T) {
	t.Parallel()

	r := registry.New()

	_, err := r.Append(&keys.KeyPair{AccountIndex: 7})
	require.ErrorIs(t, err, registry.ErrIndexMismatch)

	_, err = r.Append(nil)
	require.ErrorIs(t, err, registry.ErrNilKeyPair)

	assert.Equal(t, 0, r.Size())

	index, err := r.Append(&keys.KeyPair{AccountIndex: 0})
	require.NoError(t, err)
	assert.Equal(t, 0, index)
}

func TestAppendFuncRejectsKeyPairAtWrongPosition(t *testing.T) {
	t.Parallel()

	r := registry.New()

	_, _, err := r.AppendFunc(func(index int) (*keys.KeyPair, error) {
		return &keys.KeyPair{AccountIndex: uint32(index + 1)}, nil
	})
	require.ErrorIs(t, err, registry.ErrIndexMismatch)

	_, _, err = r.AppendFunc(func(int) (*keys.KeyPair, error) {
		return nil, nil
	})
	require.ErrorIs(t, err, registry.ErrNilKeyPair)

	assert.Equal(t, 0, r.Size())
}
