package account_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountcmd "github/chapool/sol-explorer/cmd/account"
	"github/chapool/sol-explorer/internal/test"
	"github/chapool/sol-explorer/internal/wallet/account"
	"github/chapool/sol-explorer/internal/wallet/gateway"
	"github/chapool/sol-explorer/internal/wallet/history"
)

const testAddress = "HAgk14JpMQLgt6rVgv7cBQFJWFto5Dqxi472uT3DKpqk"

func newServices(t *testing.T, accountClient *test.FakeClient) (account.Service, history.Service) {
	t.Helper()

	accountGateway, err := gateway.New(gateway.CategoryAccount, []string{"a"},
		gateway.WithDialer(test.FakeDialer(map[string]*test.FakeClient{"a": accountClient})),
		gateway.WithRetryDelay(time.Millisecond),
	)
	require.NoError(t, err)

	historyGateway, err := gateway.New(gateway.CategoryHistory, []string{"h"},
		gateway.WithDialer(test.FakeDialer(map[string]*test.FakeClient{"h": {
			Signatures: func(context.Context, solana.PublicKey, int) ([]*rpc.TransactionSignature, error) {
				return nil, nil
			},
		}})),
	)
	require.NoError(t, err)

	return account.NewService(accountGateway, rpc.CommitmentConfirmed), history.NewService(historyGateway, history.DefaultOptions())
}

func TestRun(t *testing.T) {
	t.Parallel()

	accounts, hist := newServices(t, &test.FakeClient{
		Balance: func(context.Context, solana.PublicKey) (*rpc.GetBalanceResult, error) {
			return &rpc.GetBalanceResult{Value: 1_000_000_000}, nil
		},
		AccountInfo: func(context.Context, solana.PublicKey) (*rpc.GetAccountInfoResult, error) {
			return nil, rpc.ErrNotFound
		},
	})

	var out bytes.Buffer
	require.NoError(t, accountcmd.Run(context.Background(), accounts, hist, &out, testAddress, 0))

	res := out.String()
	assert.Contains(t, res, "1.000000000 SOL")
	assert.Contains(t, res, account.SystemOwner)
	assert.Contains(t, res, "No transactions found.")
}

func TestRunAccountUnavailable(t *testing.T) {
	t.Parallel()

	accounts, hist := newServices(t, test.NewFailingClient())

	var out bytes.Buffer
	err := accountcmd.Run(context.Background(), accounts, hist, &out, testAddress, 0)
	require.Error(t, err)

	var exhausted *gateway.RetriesExhaustedError
	require.True(t, errors.As(err, &exhausted))
	assert.Equal(t, 3, exhausted.Attempts)

	res := out.String()
	assert.Contains(t, res, "unavailable after 3 attempts")
	assert.Contains(t, res, test.ErrUnavailable.Error())
	assert.Contains(t, res, "run the command again to retry")
}

func TestRunMinBalance(t *testing.T) {
	t.Parallel()

	accounts, hist := newServices(t, &test.FakeClient{
		Balance: func(context.Context, solana.PublicKey) (*rpc.GetBalanceResult, error) {
			return &rpc.GetBalanceResult{Value: 500_000_000}, nil
		},
		AccountInfo: func(context.Context, solana.PublicKey) (*rpc.GetAccountInfoResult, error) {
			return nil, rpc.ErrNotFound
		},
	})

	require.NoError(t, accountcmd.Run(context.Background(), accounts, hist, &bytes.Buffer{}, testAddress, 500_000_000))

	var out bytes.Buffer
	err := accountcmd.Run(context.Background(), accounts, hist, &out, testAddress, 500_000_001)
	require.ErrorIs(t, err, accountcmd.ErrBelowMinBalance)
	assert.Contains(t, err.Error(), "0.500000000 SOL < 0.500000001 SOL")
	assert.Contains(t, out.String(), "0.500000000 SOL")
}

func TestMinBalanceFlagRejectsInvalidAmount(t *testing.T) {
	t.Parallel()

	for _, bad := range []string{"-1", "0.0000000001", "abc"} {
		cmd := accountcmd.New()
		cmd.SetArgs([]string{testAddress, "--min-balance", bad})
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})

		err := cmd.Execute()
		require.Error(t, err, bad)
		assert.Contains(t, err.Error(), "invalid --min-balance", bad)
	}
}
