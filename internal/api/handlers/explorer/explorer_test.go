package explorer_test

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github/chapool/sol-explorer/internal/test"
)

const (
	testAddress  = "HAgk14JpMQLgt6rVgv7cBQFJWFto5Dqxi472uT3DKpqk"
	tokenProgram = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
)

var testSignatures = []string{
	"2AXDGYSE4f2sz7tvMMzyHvUfcoJmxudvdhBcmiUSo6ijwfYmfZYsKRxboQMPh3R4kUhXRVdtSXFXMheka4Rc4P2",
	"3L3RY5sT8K4kyEnqhizwaqxLEbcYvpGrGPNEYRwtbCSUtL6YL86jdrvCbohnP5q8VxQ3qzGmt3W3iQJW97rD7m3",
}

func accountClient(lamports uint64) *test.FakeClient {
	owner := solana.MustPublicKeyFromBase58(tokenProgram)

	return &test.FakeClient{
		Balance: func(context.Context, solana.PublicKey) (*rpc.GetBalanceResult, error) {
			return &rpc.GetBalanceResult{RPCContext: rpc.RPCContext{Context: rpc.Context{Slot: 42}}, Value: lamports}, nil
		},
		AccountInfo: func(context.Context, solana.PublicKey) (*rpc.GetAccountInfoResult, error) {
			return &rpc.GetAccountInfoResult{Value: &rpc.Account{
				Lamports: lamports,
				Owner:    owner,
				Data:     rpc.DataBytesOrJSONFromBytes(make([]byte, 165)),
			}}, nil
		},
	}
}

// historyClient answers with testSignatures. The second lookup always fails.
func historyClient() *test.FakeClient {
	return &test.FakeClient{
		Signatures: func(context.Context, solana.PublicKey, int) ([]*rpc.TransactionSignature, error) {
			out := make([]*rpc.TransactionSignature, 0, len(testSignatures))
			for i, s := range testSignatures {
				out = append(out, &rpc.TransactionSignature{
					Signature: solana.MustSignatureFromBase58(s),
					Slot:      uint64(100 - i),
				})
			}
			return out, nil
		},
		Transaction: func(_ context.Context, sig solana.Signature) (*rpc.GetTransactionResult, error) {
			if sig.String() != testSignatures[0] {
				return nil, test.ErrUnavailable
			}

			blockTime := solana.UnixTimeSeconds(1_700_000_000)
			return &rpc.GetTransactionResult{
				Slot:      100,
				BlockTime: &blockTime,
				Meta:      &rpc.TransactionMeta{Fee: 5000},
			}, nil
		},
	}
}
