package explorer_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/chapool/sol-explorer/internal/api"
	"github/chapool/sol-explorer/internal/api/handlers/explorer"
	"github/chapool/sol-explorer/internal/api/httperrors"
	"github/chapool/sol-explorer/internal/test"
)

func TestGetAccount(t *testing.T) {
	clients := map[string]*test.FakeClient{
		test.AccountEndpoint2: accountClient(1_500_000_001),
	}

	test.WithTestServerFakes(t, test.NewTestConfig(), clients, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/api/v1/accounts/"+testAddress, nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response explorer.AccountResponse
		test.ParseResponseAndValidate(t, res, &response)

		assert.Equal(t, testAddress, response.Address)
		assert.Equal(t, uint64(1_500_000_001), response.Lamports)
		assert.Equal(t, "1.500000001", response.Balance)
		assert.Equal(t, 165, response.DataSize)
		assert.Equal(t, tokenProgram, response.Owner)
		assert.True(t, response.Exists)
		assert.Equal(t, uint64(42), response.Slot)
	})
}

func TestGetAccountInvalidAddress(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/api/v1/accounts/not-an-address", nil, nil)
		test.RequireHTTPError(t, res, httperrors.ErrBadRequestInvalidAddress)
	})
}

func TestGetAccountAllEndpointsDown(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/api/v1/accounts/"+testAddress, nil, nil)
		test.RequireHTTPError(t, res, httperrors.ErrServiceUnavailableRPC)

		var response httperrors.HTTPError
		test.ParseResponseAndValidate(t, res, &response)

		assert.Equal(t, 3, response.Attempts)
		assert.Contains(t, response.Cause, test.AccountEndpoint2)
		assert.Contains(t, response.Cause, test.ErrUnavailable.Error())
	})
}
