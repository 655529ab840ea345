package test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github/chapool/sol-explorer/internal/api"
	"github/chapool/sol-explorer/internal/api/httperrors"
	"github/chapool/sol-explorer/internal/api/router"
	"github/chapool/sol-explorer/internal/config"
)

// Endpoint URLs of the test config. They are never dialed: the test server
// resolves them through a FakeDialer.
const (
	AccountEndpoint1 = "https://account-1.rpc.test"
	AccountEndpoint2 = "https://account-2.rpc.test"
	HistoryEndpoint1 = "https://history-1.rpc.test"
	HistoryEndpoint2 = "https://history-2.rpc.test"
)

// NewTestConfig returns the default config with fake endpoints and a short
// retry delay.
func NewTestConfig() config.Server {
	cfg := config.DefaultServiceConfigFromEnv()
	cfg.RPC.AccountEndpoints = []string{AccountEndpoint1, AccountEndpoint2}
	cfg.RPC.HistoryEndpoints = []string{HistoryEndpoint1, HistoryEndpoint2}
	cfg.RPC.RequestTimeout = time.Second
	cfg.RPC.RetryDelay = time.Millisecond

	return cfg
}

// WithTestServer executes closure with a fully initialized server whose RPC
// endpoints all fail.
func WithTestServer(t *testing.T, closure func(s *api.Server)) {
	t.Helper()

	WithTestServerConfigurable(t, NewTestConfig(), closure)
}

// WithTestServerConfigurable is WithTestServer with a custom config.
func WithTestServerConfigurable(t *testing.T, config config.Server, closure func(s *api.Server)) {
	t.Helper()

	WithTestServerFakes(t, config, nil, closure)
}

// WithTestServerFakes executes closure with a server whose RPC clients are
// served from clients by URL. URLs missing from clients get a failing client.
func WithTestServerFakes(t *testing.T, config config.Server, clients map[string]*FakeClient, closure func(s *api.Server)) {
	t.Helper()

	s, err := api.InitNewServerWithDialer(config, FakeDialer(clients))
	if err != nil {
		t.Fatalf("Failed to init server: %v", err)
	}

	router.Init(s)

	closure(s)

	// echo is never started, so shutdown only closes the gateways
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if errs := s.Shutdown(ctx); len(errs) > 0 {
		t.Fatalf("Failed to shutdown server: %v", errs)
	}
}

// PerformRequest runs method path against the echo instance of s without a
// network listener. body is JSON encoded when not nil.
func PerformRequest(t *testing.T, s *api.Server, method string, path string, body any, headers http.Header) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(b))
	}

	req := httptest.NewRequest(method, path, reader)
	if headers != nil {
		req.Header = headers
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	res := httptest.NewRecorder()
	s.Echo.ServeHTTP(res, req)

	return res
}

// ParseResponseAndValidate decodes the JSON body of res into v. The recorded
// body is left intact so res can be decoded more than once.
func ParseResponseAndValidate(t *testing.T, res *httptest.ResponseRecorder, v any) {
	t.Helper()

	require.NoError(t, json.NewDecoder(bytes.NewReader(res.Body.Bytes())).Decode(v))
}

// RequireHTTPError asserts that res carries httpError as JSON body.
func RequireHTTPError(t *testing.T, res *httptest.ResponseRecorder, httpError *httperrors.HTTPError) {
	t.Helper()

	var response httperrors.HTTPError
	ParseResponseAndValidate(t, res, &response)

	require.Equal(t, httpError.Code, res.Result().StatusCode)
	require.Equal(t, httpError.Code, response.Code)
	require.Equal(t, httpError.Type, response.Type)
	require.Equal(t, httpError.Title, response.Title)
}
