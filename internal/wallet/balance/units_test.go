package balance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/chapool/sol-explorer/internal/wallet/balance"
)

func TestToSOL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0", balance.ToSOL(0).String())
	assert.Equal(t, "1", balance.ToSOL(balance.LamportsPerSOL).String())
	assert.Equal(t, "0.000005", balance.ToSOL(5000).String())
	assert.Equal(t, "18446744073.709551615", balance.ToSOL(^uint64(0)).String())
}

func TestFormatSOL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0.000000000", balance.FormatSOL(0))
	assert.Equal(t, "2.500000000", balance.FormatSOL(2_500_000_000))
	assert.Equal(t, "0.000000001", balance.FormatSOL(1))
}

func TestParseSOL(t *testing.T) {
	t.Parallel()

	lamports, err := balance.ParseSOL("1.5")
	require.NoError(t, err)
	assert.Equal(t, uint64(1_500_000_000), lamports)

	lamports, err = balance.ParseSOL("0.000000001")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), lamports)

	_, err = balance.ParseSOL("-1")
	require.ErrorIs(t, err, balance.ErrNegativeAmount)

	_, err = balance.ParseSOL("0.0000000001")
	require.ErrorIs(t, err, balance.ErrTooPrecise)

	_, err = balance.ParseSOL("18446744074")
	require.ErrorIs(t, err, balance.ErrAmountTooLarge)

	_, err = balance.ParseSOL("abc")
	require.Error(t, err)
}
