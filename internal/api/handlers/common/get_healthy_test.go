package common_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/chapool/sol-explorer/internal/api"
	"github/chapool/sol-explorer/internal/test"
)

type healthyResponse struct {
	Healthy bool `json:"healthy"`
	Account []struct {
		URL     string `json:"url"`
		Healthy bool   `json:"healthy"`
		Status  string `json:"status"`
		Error   string `json:"error"`
	} `json:"account"`
	History []struct {
		URL     string `json:"url"`
		Healthy bool   `json:"healthy"`
	} `json:"history"`
}

func healthyClient() *test.FakeClient {
	return &test.FakeClient{
		HealthFn: func(context.Context) (string, error) {
			return rpc.HealthOk, nil
		},
	}
}

func TestGetHealthy(t *testing.T) {
	clients := map[string]*test.FakeClient{
		test.AccountEndpoint2: healthyClient(),
		test.HistoryEndpoint1: healthyClient(),
	}

	test.WithTestServerFakes(t, test.NewTestConfig(), clients, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/-/healthy", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response healthyResponse
		test.ParseResponseAndValidate(t, res, &response)

		assert.True(t, response.Healthy)
		require.Len(t, response.Account, 2)
		assert.Equal(t, test.AccountEndpoint1, response.Account[0].URL)
		assert.False(t, response.Account[0].Healthy)
		assert.NotEmpty(t, response.Account[0].Error)
		assert.Equal(t, test.AccountEndpoint2, response.Account[1].URL)
		assert.True(t, response.Account[1].Healthy)
		assert.Equal(t, rpc.HealthOk, response.Account[1].Status)
		require.Len(t, response.History, 2)
		assert.True(t, response.History[0].Healthy)
		assert.False(t, response.History[1].Healthy)
	})
}

func TestGetHealthyAllDown(t *testing.T) {
	clients := map[string]*test.FakeClient{
		test.AccountEndpoint1: healthyClient(),
	}

	test.WithTestServerFakes(t, test.NewTestConfig(), clients, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/-/healthy", nil, nil)
		require.Equal(t, http.StatusServiceUnavailable, res.Result().StatusCode)

		var response healthyResponse
		test.ParseResponseAndValidate(t, res, &response)

		assert.False(t, response.Healthy)
		assert.True(t, response.Account[0].Healthy)
		assert.False(t, response.History[0].Healthy)
		assert.False(t, response.History[1].Healthy)
	})
}
