package seed_test

import (
	"encoding/hex"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/sol-explorer/internal/wallet/seed"
)

//nolint:dupword // BIP-39 test vector
const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestToSeedVector(t *testing.T) {
	s := seed.ToSeed(testMnemonic, "")
	assert.Equal(t,
		"5eb00bbddcf069084889a8ab9155568165f5c453ccb85e70811aaed6f6da5fc19a5ac40b389cd370d086206dec8aa6c43daea6690f20ad3d8d48b2d2ce9e38e4",
		hex.EncodeToString(s),
	)
}

func TestManagerLifecycle(t *testing.T) {
	m := seed.NewManager()
	assert.False(t, m.IsInitialized())
	assert.Nil(t, m.GetSeed())

	require.NoError(t, m.Initialize("  abandon abandon abandon abandon abandon abandon\n abandon abandon abandon abandon abandon about ", ""))
	assert.True(t, m.IsInitialized())
	assert.Equal(t, seed.ToSeed(testMnemonic, ""), m.GetSeed())

	// copies must not leak into the manager
	s := m.GetSeed()
	s[0] ^= 0xff
	assert.Equal(t, seed.ToSeed(testMnemonic, ""), m.GetSeed())

	m.Clear()
	assert.False(t, m.IsInitialized())
	assert.Nil(t, m.GetSeed())
}

func TestManagerPassphraseChangesSeed(t *testing.T) {
	m := seed.NewManager()
	require.NoError(t, m.Initialize(testMnemonic, "TREZOR"))
	assert.NotEqual(t, seed.ToSeed(testMnemonic, ""), m.GetSeed())
}

func TestManagerEmptyMnemonic(t *testing.T) {
	m := seed.NewManager()
	require.ErrorIs(t, m.Initialize(" \t ", ""), seed.ErrEmptyMnemonic)
	assert.False(t, m.IsInitialized())
}

func TestManagerConcurrentAccess(t *testing.T) {
	m := seed.NewManager()
	require.NoError(t, m.Initialize(testMnemonic, ""))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Len(t, m.GetSeed(), 64)
		}()
	}
	wg.Wait()
}

func TestGenerateMnemonic(t *testing.T) {
	mnemonic, err := seed.GenerateMnemonic(seed.DefaultEntropyBits)
	require.NoError(t, err)
	assert.Len(t, strings.Fields(mnemonic), 12)
	assert.True(t, seed.ValidateMnemonic(mnemonic))

	mnemonic, err = seed.GenerateMnemonic(256)
	require.NoError(t, err)
	assert.Len(t, strings.Fields(mnemonic), 24)

	_, err = seed.GenerateMnemonic(100)
	require.Error(t, err)
}

func TestValidateMnemonic(t *testing.T) {
	assert.True(t, seed.ValidateMnemonic(testMnemonic))
	assert.False(t, seed.ValidateMnemonic(strings.Replace(testMnemonic, "about", "abandon", 1)))
	assert.False(t, seed.ValidateMnemonic("not a real mnemonic"))
}
