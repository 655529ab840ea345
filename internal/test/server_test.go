package test_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/chapool/sol-explorer/internal/api/httperrors"
	"github/chapool/sol-explorer/internal/test"
)

func recordHTTPError(t *testing.T, httpError *httperrors.HTTPError) *httptest.ResponseRecorder {
	t.Helper()

	res := httptest.NewRecorder()
	res.WriteHeader(httpError.Code)
	require.NoError(t, json.NewEncoder(res).Encode(httpError))

	return res
}

func TestParseResponseAndValidateCanDecodeTwice(t *testing.T) {
	res := recordHTTPError(t, httperrors.NewRPCUnavailable(3, "endpoint down", nil))

	var first, second httperrors.HTTPError
	test.ParseResponseAndValidate(t, res, &first)
	test.ParseResponseAndValidate(t, res, &second)

	assert.Equal(t, first, second)
	assert.Equal(t, 3, second.Attempts)
}

func TestRequireHTTPErrorLeavesBodyReadable(t *testing.T) {
	res := recordHTTPError(t, httperrors.NewRPCUnavailable(3, "endpoint down", nil))

	test.RequireHTTPError(t, res, httperrors.ErrServiceUnavailableRPC)

	var response httperrors.HTTPError
	test.ParseResponseAndValidate(t, res, &response)
	assert.Equal(t, "endpoint down", response.Cause)
}
