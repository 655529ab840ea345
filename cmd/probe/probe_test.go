package probe_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/chapool/sol-explorer/cmd/probe"
	"github/chapool/sol-explorer/internal/test"
	"github/chapool/sol-explorer/internal/wallet/gateway"
)

func healthy() *test.FakeClient {
	return &test.FakeClient{
		HealthFn: func(context.Context) (string, error) {
			return rpc.HealthOk, nil
		},
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	dialer := gateway.WithDialer(test.FakeDialer(map[string]*test.FakeClient{
		"https://b.rpc.test": healthy(),
		"https://c.rpc.test": healthy(),
	}))

	accountGateway, err := gateway.New(gateway.CategoryAccount, []string{"https://a.rpc.test", "https://b.rpc.test"}, dialer)
	require.NoError(t, err)
	historyGateway, err := gateway.New(gateway.CategoryHistory, []string{"https://c.rpc.test"}, dialer)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, probe.Run(context.Background(), &out, accountGateway, historyGateway))

	res := out.String()
	assert.Contains(t, res, "https://a.rpc.test")
	assert.Contains(t, res, test.ErrUnavailable.Error())
	assert.Contains(t, res, "https://c.rpc.test")
	assert.Contains(t, res, "All categories have at least one healthy endpoint.")
}

func TestRunNoHealthyEndpoint(t *testing.T) {
	t.Parallel()

	gw, err := gateway.New(gateway.CategoryHistory, []string{"https://a.rpc.test"}, gateway.WithDialer(test.FakeDialer(nil)))
	require.NoError(t, err)

	err = probe.Run(context.Background(), &bytes.Buffer{}, gw)
	require.Error(t, err)
	assert.True(t, errors.Is(err, probe.ErrNoHealthyEndpoint))
}
