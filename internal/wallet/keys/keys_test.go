package keys_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/chapool/sol-explorer/internal/wallet/keys"
	"github/chapool/sol-explorer/internal/wallet/seed"
)

const abandonMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func abandonSeed(t *testing.T) []byte {
	t.Helper()

	return seed.ToSeed(abandonMnemonic, "")
}

func TestSolanaDeriveKeyPair(t *testing.T) {
	t.Parallel()

	engine := keys.NewSolanaEngine()
	s := abandonSeed(t)

	expected := []string{
		"HAgk14JpMQLgt6rVgv7cBQFJWFto5Dqxi472uT3DKpqk",
		"Hh8QwFUA6MtVu1qAoq12ucvFHNwCcVTV7hpWjeY1Hztb",
		"7WktogJEd2wQ9eH2oWusmcoFTgeYi6rS632UviTBJ2jm",
	}

	for i, address := range expected {
		kp, err := engine.DeriveKeyPair(s, uint32(i))
		require.NoError(t, err)

		assert.Equal(t, address, kp.Address)
		assert.Equal(t, keys.SchemeSolana, kp.Scheme)
		assert.Equal(t, uint32(i), kp.AccountIndex)
		assert.Len(t, kp.PublicKey, 32)
		assert.Len(t, kp.SecretKey, 64)
		// ed25519 secret keys carry the public key in their upper half
		assert.Equal(t, kp.PublicKey, kp.SecretKey[32:])
	}

	kp, err := engine.DeriveKeyPair(s, 0)
	require.NoError(t, err)
	assert.Equal(t, "m/44'/501'/0'/0'", kp.Path)
	assert.Equal(t, "37df573b3ac4ad5b522e064e25b63ea16bcbe79d449e81a0268d1047948bb445", kp.SecretHex()[:64])
}

func TestDeriveKeyPairDeterministic(t *testing.T) {
	t.Parallel()

	s := abandonSeed(t)

	for _, scheme := range []keys.Scheme{keys.SchemeSolana, keys.SchemeEVM} {
		engine, err := keys.NewEngine(scheme)
		require.NoError(t, err)

		first, err := engine.DeriveKeyPair(s, 7)
		require.NoError(t, err)
		second, err := engine.DeriveKeyPair(s, 7)
		require.NoError(t, err)

		assert.True(t, first.Equal(second), "scheme %s", scheme)
		assert.Equal(t, first.Address, second.Address)
	}
}

func TestDeriveKeyPairUnique(t *testing.T) {
	t.Parallel()

	engine := keys.NewSolanaEngine()
	pairs, err := keys.DeriveRange(engine, abandonSeed(t), 0, 100)
	require.NoError(t, err)
	require.Len(t, pairs, 100)

	seen := make(map[string]uint32, len(pairs))
	for _, kp := range pairs {
		prev, dup := seen[kp.Address]
		require.False(t, dup, "index %d repeats address of index %d", kp.AccountIndex, prev)
		seen[kp.Address] = kp.AccountIndex
	}
}

func TestDeriveKeyPairPassphraseChangesKeys(t *testing.T) {
	t.Parallel()

	engine := keys.NewSolanaEngine()

	withPass := seed.ToSeed(abandonMnemonic, "TREZOR")

	a, err := engine.DeriveKeyPair(abandonSeed(t), 0)
	require.NoError(t, err)
	b, err := engine.DeriveKeyPair(withPass, 0)
	require.NoError(t, err)

	assert.NotEqual(t, a.Address, b.Address)
}

func TestDeriveKeyPairInvalidSeed(t *testing.T) {
	t.Parallel()

	for _, scheme := range []keys.Scheme{keys.SchemeSolana, keys.SchemeEVM} {
		engine, err := keys.NewEngine(scheme)
		require.NoError(t, err)

		_, err = engine.DeriveKeyPair(nil, 0)
		require.ErrorIs(t, err, keys.ErrInvalidSeed)

		_, err = engine.DeriveKeyPair(make([]byte, 65), 0)
		require.ErrorIs(t, err, keys.ErrInvalidSeed)

		_, err = engine.DeriveKeyPair(make([]byte, 32), keys.HardenedOffset)
		require.ErrorIs(t, err, keys.ErrInvalidPath)
	}
}

func TestEVMDeriveKeyPair(t *testing.T) {
	t.Parallel()

	engine := keys.NewEVMEngine()
	kp, err := engine.DeriveKeyPair(abandonSeed(t), 0)
	require.NoError(t, err)

	assert.Equal(t, keys.SchemeEVM, kp.Scheme)
	assert.Equal(t, "m/44'/60'/0'/0'", kp.Path)
	assert.True(t, strings.HasPrefix(kp.Address, "0x"))
	assert.Len(t, kp.Address, 42)
	assert.Len(t, kp.PublicKey, 33)
	assert.Len(t, kp.SecretKey, 32)

	other, err := engine.DeriveKeyPair(abandonSeed(t), 1)
	require.NoError(t, err)
	assert.NotEqual(t, kp.Address, other.Address)
}

func TestNewEngineUnsupported(t *testing.T) {
	t.Parallel()

	_, err := keys.NewEngine("bitcoin")
	require.ErrorIs(t, err, keys.ErrUnsupportedScheme)
}

func TestParsePath(t *testing.T) {
	t.Parallel()

	indices, err := keys.ParsePath("m/44'/501'/0'/0'")
	require.NoError(t, err)
	assert.Equal(t, []uint32{2147483692, 2147484149, 2147483648, 2147483648}, indices)

	indices, err = keys.ParsePath("m/44h/60H/1/0")
	require.NoError(t, err)
	assert.Equal(t, []uint32{44 + keys.HardenedOffset, 60 + keys.HardenedOffset, 1, 0}, indices)

	indices, err = keys.ParsePath("m")
	require.NoError(t, err)
	assert.Empty(t, indices)

	for _, bad := range []string{"", "44'/501'", "m/x'", "m/2147483648"} {
		_, err := keys.ParsePath(bad)
		require.ErrorIs(t, err, keys.ErrInvalidPath, bad)
	}
}

func TestDerivationPathIndices(t *testing.T) {
	t.Parallel()

	p := keys.NewDerivationPath(keys.CoinTypeSolana, 3)
	assert.Equal(t, "m/44'/501'/3'/0'", p.String())

	parsed, err := keys.ParsePath(p.String())
	require.NoError(t, err)
	assert.Equal(t, p.Indices(), parsed)
}

func TestAccountIndexFromPath(t *testing.T) {
	t.Parallel()

	account, err := keys.AccountIndexFromPath("m/44'/501'/7'/0'", keys.CoinTypeSolana)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), account)

	account, err = keys.AccountIndexFromPath(keys.NewEVMEngine().Path(2).String(), keys.CoinTypeEthereum)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), account)

	for _, bad := range []string{
		"m/44'/60'/0'/0'", // other coin
		"m/44'/501'/0'",   // too short
		"m/44'/501'/0/0'", // account not hardened
		"m/44'/501'/0'/1'",
		"m/49'/501'/0'/0'",
		"m/44'/501'/0'/0'/0'",
		"501'/0'",
	} {
		_, err := keys.AccountIndexFromPath(bad, keys.CoinTypeSolana)
		require.ErrorIs(t, err, keys.ErrInvalidPath, bad)
	}
}

func TestParseSolanaAddress(t *testing.T) {
	t.Parallel()

	pubkey, err := keys.ParseSolanaAddress(" 11111111111111111111111111111111 ")
	require.NoError(t, err)
	assert.True(t, pubkey.IsZero())

	for _, bad := range []string{"", "not-base58-0OIl", "abc"} {
		_, err := keys.ParseSolanaAddress(bad)
		require.ErrorIs(t, err, keys.ErrInvalidAddress, bad)
	}
}
