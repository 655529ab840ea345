package test

import (
	"context"
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"

	"github/chapool/sol-explorer/internal/wallet/gateway"
)

// ErrUnavailable is what a FakeClient returns for methods it has no handler for.
var ErrUnavailable = errors.New("fake endpoint unavailable")

// FakeClient is a scriptable gateway.Client. Unset handlers fail with ErrUnavailable.
type FakeClient struct {
	Balance     func(ctx context.Context, account solana.PublicKey) (*rpc.GetBalanceResult, error)
	AccountInfo func(ctx context.Context, account solana.PublicKey) (*rpc.GetAccountInfoResult, error)
	Signatures  func(ctx context.Context, account solana.PublicKey, limit int) ([]*rpc.TransactionSignature, error)
	Transaction func(ctx context.Context, signature solana.Signature) (*rpc.GetTransactionResult, error)
	HealthFn    func(ctx context.Context) (string, error)

	mu    sync.Mutex
	calls map[string]int
}

var _ gateway.Client = (*FakeClient)(nil)

// NewFailingClient returns a client whose every call fails.
func NewFailingClient() *FakeClient {
	return &FakeClient{}
}

func (c *FakeClient) GetBalance(ctx context.Context, account solana.PublicKey, _ rpc.CommitmentType) (*rpc.GetBalanceResult, error) {
	c.record("getBalance")
	if c.Balance == nil {
		return nil, ErrUnavailable
	}

	return c.Balance(ctx, account)
}

func (c *FakeClient) GetAccountInfoWithOpts(ctx context.Context, account solana.PublicKey, _ *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error) {
	c.record("getAccountInfo")
	if c.AccountInfo == nil {
		return nil, ErrUnavailable
	}

	return c.AccountInfo(ctx, account)
}

func (c *FakeClient) GetSignaturesForAddressWithOpts(ctx context.Context, account solana.PublicKey, opts *rpc.GetSignaturesForAddressOpts) ([]*rpc.TransactionSignature, error) {
	c.record("getSignaturesForAddress")
	if c.Signatures == nil {
		return nil, ErrUnavailable
	}

	limit := 0
	if opts != nil && opts.Limit != nil {
		limit = *opts.Limit
	}

	return c.Signatures(ctx, account, limit)
}

func (c *FakeClient) GetTransaction(ctx context.Context, signature solana.Signature, _ *rpc.GetTransactionOpts) (*rpc.GetTransactionResult, error) {
	c.record("getTransaction")
	if c.Transaction == nil {
		return nil, ErrUnavailable
	}

	return c.Transaction(ctx, signature)
}

func (c *FakeClient) GetHealth(ctx context.Context) (string, error) {
	c.record("getHealth")
	if c.HealthFn == nil {
		return "", ErrUnavailable
	}

	return c.HealthFn(ctx)
}

// Calls returns how often method was invoked, e.g. "getBalance".
func (c *FakeClient) Calls(method string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.calls[method]
}

// TotalCalls returns the number of calls over all methods.
func (c *FakeClient) TotalCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, n := range c.calls {
		total += n
	}

	return total
}

func (c *FakeClient) record(method string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.calls == nil {
		c.calls = make(map[string]int)
	}
	c.calls[method]++
}

// FakeDialer serves the clients by URL. Unknown URLs get a failing client.
func FakeDialer(clients map[string]*FakeClient) gateway.Dialer {
	return func(url string) gateway.Client {
		if c, ok := clients[url]; ok {
			return c
		}

		return NewFailingClient()
	}
}
