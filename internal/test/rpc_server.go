package test

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
)

// RPCHandler answers one JSON-RPC method. Returning a non-nil RPCError sends
// an error object instead of a result.
type RPCHandler func(params []json.RawMessage) (any, *jsonrpc.RPCError)

// RPCServer is a Solana JSON-RPC provider backed by httptest.
type RPCServer struct {
	*httptest.Server

	mu       sync.Mutex
	handlers map[string]RPCHandler
	calls    map[string]int
}

type rpcRequest struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      json.RawMessage   `json:"id"`
	Method  string            `json:"method"`
	Params  []json.RawMessage `json:"params"`
}

type rpcResponse struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      json.RawMessage   `json:"id"`
	Result  any               `json:"result,omitempty"`
	Error   *jsonrpc.RPCError `json:"error,omitempty"`
}

// NewRPCServer starts an RPCServer that is closed when the test ends.
// Methods without a handler answer with -32601.
func NewRPCServer(t *testing.T) *RPCServer {
	t.Helper()

	s := &RPCServer{
		handlers: make(map[string]RPCHandler),
		calls:    make(map[string]int),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serveHTTP))
	t.Cleanup(s.Close)

	return s
}

func (s *RPCServer) Handle(method string, handler RPCHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.handlers[method] = handler
}

// HandleResult answers method with a fixed result. A nil result is sent as JSON null.
func (s *RPCServer) HandleResult(method string, result any) {
	s.Handle(method, func([]json.RawMessage) (any, *jsonrpc.RPCError) {
		if result == nil {
			return json.RawMessage("null"), nil
		}

		return result, nil
	})
}

// HandleError answers method with a JSON-RPC error.
func (s *RPCServer) HandleError(method string, code int, message string) {
	s.Handle(method, func([]json.RawMessage) (any, *jsonrpc.RPCError) {
		return nil, &jsonrpc.RPCError{Code: code, Message: message}
	})
}

func (s *RPCServer) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.calls[method]
}

func (s *RPCServer) serveHTTP(w http.ResponseWriter, r *http.Request) {
	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.calls[req.Method]++
	handler, ok := s.handlers[req.Method]
	s.mu.Unlock()

	res := rpcResponse{JSONRPC: "2.0", ID: req.ID}
	if !ok {
		res.Error = &jsonrpc.RPCError{Code: -32601, Message: "Method not found"}
	} else {
		res.Result, res.Error = handler(req.Params)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// AccountValue builds the value of a getAccountInfo result with base64 data.
func AccountValue(lamports uint64, owner string, data []byte, executable bool) map[string]any {
	return map[string]any{
		"lamports":   lamports,
		"owner":      owner,
		"data":       []string{base64.StdEncoding.EncodeToString(data), "base64"},
		"executable": executable,
		"rentEpoch":  361,
	}
}

// WithContext wraps value the way methods returning RpcResponse do.
func WithContext(slot uint64, value any) map[string]any {
	return map[string]any{
		"context": map[string]any{"slot": slot},
		"value":   value,
	}
}
